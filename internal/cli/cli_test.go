package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"listing-service/internal/adapters/rest"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := New(&out, &errOut).RootCommand()
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestFavoritesCommands(t *testing.T) {
	dir := t.TempDir()

	out, _, err := run(t, "favorites", "add", "p2", "p1", "p2", "--favorites-dir", dir)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, "✓ Added p1 to favorites") {
		t.Errorf("add output = %q", out)
	}

	out, _, err = run(t, "favorites", "list", "--favorites-dir", dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out != "  → p2\n  → p1\n" {
		t.Errorf("list output = %q", out)
	}

	if _, _, err := run(t, "favorites", "remove", "p2", "--favorites-dir", dir); err != nil {
		t.Fatalf("remove: %v", err)
	}
	out, _, _ = run(t, "favorites", "has", "p2", "--favorites-dir", dir)
	if !strings.Contains(out, "p2") || !strings.Contains(out, "not a favorite") {
		t.Errorf("has output = %q, want not a favorite", out)
	}
	out, _, _ = run(t, "favorites", "has", "p1", "--favorites-dir", dir)
	if strings.Contains(out, "not a favorite") || !strings.Contains(out, "favorite") {
		t.Errorf("has output = %q, want favorite", out)
	}

	// у другого владельца свой набор
	out, _, _ = run(t, "favorites", "list", "--favorites-dir", dir, "--owner", "someone-else")
	if strings.TrimSpace(out) != "› No favorites for someone-else" {
		t.Errorf("foreign owner list = %q", out)
	}
}

func listingServer(t *testing.T, gotQuery *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"data":[{"id":"p1","title":"T2 Lisboa","price":300000,"distrito":"Lisboa","concelho":"Lisboa","status":"active"},` +
			`{"id":"p2","title":"T3 Porto","price":410000.5,"distrito":"Porto","concelho":"Porto","status":"active"}],"total":20,"page":1,"totalPages":3}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSearchPrintsTable(t *testing.T) {
	var query string
	srv := listingServer(t, &query)

	out, _, err := run(t, "search", "distrito=Lisboa&minPrice=oops", "--sort", "Preço mais baixo", "--api-url", srv.URL)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if !strings.Contains(query, "sortBy=price") || !strings.Contains(query, "distrito=Lisboa") || strings.Contains(query, "minPrice") {
		t.Errorf("remote query = %q", query)
	}
	for _, want := range []string{
		"Page 1 of 3, showing 1-9 of 20",
		"TITLE", "T2 Lisboa", "410000.5",
		`ignoring minPrice="oops"`,
		"Next page: listingctl search 'distrito=Lisboa&page=2&sortBy=price'",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSearchFavoritesJSON(t *testing.T) {
	var query string
	srv := listingServer(t, &query)
	dir := t.TempDir()

	if _, _, err := run(t, "favorites", "add", "p2", "--favorites-dir", dir); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, "search", "--favorites", "--json", "--api-url", srv.URL, "--favorites-dir", dir)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	var view rest.ListingResponse
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if view.Total != 1 || len(view.Items) != 1 || view.Items[0].ID != "p2" || view.TotalPages != 1 || !view.FavoritesOnly {
		t.Errorf("unexpected favorites view %+v", view)
	}
	if strings.Contains(query, "favorites") {
		t.Errorf("favorites flag leaked to the remote query: %q", query)
	}
}

func TestSearchPlainOutputHasNoEscapes(t *testing.T) {
	var query string
	srv := listingServer(t, &query)

	out, _, err := run(t, "search", "--bedrooms", "2,3", "--api-url", srv.URL)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("output to a non-terminal must not carry ANSI styling: %q", out)
	}
	if !strings.Contains(query, "bedrooms=2&bedrooms=3") {
		t.Errorf("bedrooms flag not forwarded: %q", query)
	}
	if !strings.Contains(out, "Next page: listingctl search 'bedrooms=2%2C3&page=2'") {
		t.Errorf("next page hint must carry the bedrooms filter:\n%s", out)
	}
}

func TestSearchEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[],"total":0,"page":1,"totalPages":0}`))
	}))
	defer srv.Close()

	out, _, err := run(t, "search", "distrito=Faro", "--api-url", srv.URL)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if strings.TrimSpace(out) != "› No properties match the current filters." {
		t.Errorf("empty output = %q", out)
	}
}

func TestSearchUnknownSort(t *testing.T) {
	if _, _, err := run(t, "search", "--sort", "cheapest-ever", "--api-url", "http://127.0.0.1:1"); err == nil {
		t.Fatal("expected error for unknown sort")
	}
}

func TestSearchRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, _, err := run(t, "search", "--api-url", srv.URL)
	if err == nil || !strings.Contains(err.Error(), "search failed") {
		t.Fatalf("expected search failure, got %v", err)
	}
}
