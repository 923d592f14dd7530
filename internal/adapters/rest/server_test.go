package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"listing-service/internal/adapters/favorites_store"
	"listing-service/internal/adapters/memory"
	"listing-service/internal/adapters/rabbitmq"
	"listing-service/internal/adapters/rest"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/usecase"
)

const owner = "0b8f2a5e-7c1d-4e2a-9f3b-5d6c7e8f9a0b"

type fakeListings struct {
	mu   sync.Mutex
	last domain.Filter
	page *domain.ListingPage
	err  error
}

func (f *fakeListings) FetchListings(ctx context.Context, filter domain.Filter) (*domain.ListingPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = filter
	return f.page, f.err
}

func (f *fakeListings) lastFilter() domain.Filter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

type failingTrigger struct{}

func (failingTrigger) RequestTranslation(ctx context.Context, req domain.TranslationRequest) error {
	return errors.New("broker down")
}

type supersededSessions struct{}

func (supersededSessions) Load(ctx context.Context, id string, req domain.ListingRequest) (*domain.ListingView, error) {
	return nil, domain.ErrSuperseded
}

func (supersededSessions) Snapshot(id string) (*domain.ListingView, bool) { return nil, false }

type env struct {
	router    http.Handler
	listings  *fakeListings
	favorites *favorites_store.Store
}

func newEnv(t *testing.T, trigger interface {
	RequestTranslation(context.Context, domain.TranslationRequest) error
}) *env {
	t.Helper()
	listings := &fakeListings{page: &domain.ListingPage{
		Data:  []domain.Property{{ID: "A", Title: "T1"}, {ID: "B", Title: "T2", Price: 250000}, {ID: "C", Title: "T3"}},
		Total: 20, Page: 1, TotalPages: 3,
	}}
	store, err := favorites_store.NewStore(memory.NewKeyValueStore())
	if err != nil {
		t.Fatal(err)
	}
	if trigger == nil {
		trigger = rabbitmq.NoopTranslationTrigger{}
	}

	list := usecase.NewListPropertiesUseCase(listings, store)
	handlers := rest.Handlers{
		Listings: rest.NewListingsHandler(usecase.NewListingSessions(list, time.Minute)),
		Favorites: rest.NewFavoritesHandler(
			usecase.NewAddToFavoritesUseCase(store),
			usecase.NewRemoveFromFavoritesUseCase(store),
			usecase.NewIsFavoriteUseCase(store),
			usecase.NewGetFavoritesIdsUseCase(store),
		),
		Translations: rest.NewTranslationsHandler(usecase.NewRequestTranslationUseCase(trigger)),
	}
	router := rest.NewRouter(rest.ServerConfig{AllowedOrigins: []string{"*"}}, handlers, contextkeys.NoopLogger())
	return &env{router: router, listings: listings, favorites: store}
}

func (e *env) do(t *testing.T, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestPublicListing(t *testing.T) {
	e := newEnv(t, nil)
	rec := e.do(t, http.MethodGet, "/api/v1/listings?distrito=Lisboa&page=2&minPrice=abc&status=sold&limit=50", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp rest.ListingResponse
	decode(t, rec, &resp)

	if resp.State != "success" || resp.Page != 2 || resp.TotalPages != 3 || resp.StartItem != 10 || resp.EndItem != 18 {
		t.Errorf("unexpected view %+v", resp)
	}
	if len(resp.Issues) != 1 || resp.Issues[0].Param != "minPrice" {
		t.Errorf("issues = %+v, want one for minPrice", resp.Issues)
	}

	f := e.listings.lastFilter()
	if f.Status != domain.StatusActive || f.Limit != domain.PublicPageLimit || f.MinPrice != nil || f.Distrito != "Lisboa" {
		t.Errorf("remote filter = %+v", f)
	}

	if resp.Links == nil {
		t.Fatal("links missing")
	}
	if resp.Links.Prev != "/api/v1/listings?distrito=Lisboa" {
		t.Errorf("prev = %q", resp.Links.Prev)
	}
	if resp.Links.Next != "/api/v1/listings?distrito=Lisboa&page=3" {
		t.Errorf("next = %q", resp.Links.Next)
	}
	for _, s := range resp.Links.Sort {
		if strings.Contains(s.Href, "page=") {
			t.Errorf("sort link %q must reset page", s.Href)
		}
		if s.Key == "price" && s.Href != "/api/v1/listings?distrito=Lisboa&sortBy=price" {
			t.Errorf("price sort href = %q", s.Href)
		}
		if s.Key == "-price" && (s.Field != "price" || s.Order != "desc") {
			t.Errorf("highest price link = %+v, want price desc", s)
		}
		if s.Active != (s.Key == "-createdAt") {
			t.Errorf("sort %s active = %v", s.Key, s.Active)
		}
	}
}

func TestAdminListingReadsStatus(t *testing.T) {
	e := newEnv(t, nil)
	rec := e.do(t, http.MethodGet, "/api/v1/admin/listings?status=sold&limit=50", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	f := e.listings.lastFilter()
	if f.Status != "sold" || f.Limit != domain.AdminPageLimit {
		t.Errorf("remote filter = %+v", f)
	}
}

func TestListingRemoteFailure(t *testing.T) {
	e := newEnv(t, nil)
	e.listings.err = fmt.Errorf("%w: status 500", domain.ErrFetchFailed)

	rec := e.do(t, http.MethodGet, "/api/v1/listings", "", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	var resp rest.ListingResponse
	decode(t, rec, &resp)
	if resp.State != "error" || resp.Empty {
		t.Errorf("unexpected body %+v", resp)
	}
}

func TestListingFavoritesOnly(t *testing.T) {
	e := newEnv(t, nil)

	rec := e.do(t, http.MethodGet, "/api/v1/listings?favorites=true", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("without owner status = %d, want 401", rec.Code)
	}

	if err := e.favorites.Add(context.Background(), owner, "B"); err != nil {
		t.Fatal(err)
	}
	rec = e.do(t, http.MethodGet, "/api/v1/listings?favorites=true", "", map[string]string{"X-User-ID": owner})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp rest.ListingResponse
	decode(t, rec, &resp)
	if resp.Total != 1 || resp.TotalPages != 1 || len(resp.Items) != 1 || resp.Items[0].ID != "B" || !resp.FavoritesOnly {
		t.Errorf("unexpected favorites view %+v", resp)
	}
	if !strings.Contains(resp.Links.Self, "favorites=true") {
		t.Errorf("self link lost favorites flag: %q", resp.Links.Self)
	}
}

func TestListingSessionSnapshot(t *testing.T) {
	e := newEnv(t, nil)
	headers := map[string]string{"X-Listing-Session": "tab-1"}

	if rec := e.do(t, http.MethodGet, "/api/v1/listings/session", "", headers); rec.Code != http.StatusNotFound {
		t.Fatalf("status before load = %d, want 404", rec.Code)
	}
	e.do(t, http.MethodGet, "/api/v1/listings?page=3", "", headers)

	rec := e.do(t, http.MethodGet, "/api/v1/listings/session", "", headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp rest.ListingResponse
	decode(t, rec, &resp)
	if resp.Page != 3 || resp.StartItem != 19 || resp.EndItem != 20 || !resp.NextDisabled {
		t.Errorf("unexpected snapshot %+v", resp)
	}
}

func TestListingSuperseded(t *testing.T) {
	router := rest.NewRouter(rest.ServerConfig{}, rest.Handlers{Listings: rest.NewListingsHandler(supersededSessions{})}, contextkeys.NoopLogger())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestFavoritesEndpoints(t *testing.T) {
	e := newEnv(t, nil)
	h := map[string]string{"X-User-ID": owner}

	if rec := e.do(t, http.MethodGet, "/api/v1/favorites", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("missing owner status = %d", rec.Code)
	}
	if rec := e.do(t, http.MethodGet, "/api/v1/favorites", "", map[string]string{"X-User-ID": "nope"}); rec.Code != http.StatusUnauthorized {
		t.Errorf("bad owner status = %d", rec.Code)
	}

	for _, id := range []string{"p2", "p1", "p2"} {
		if rec := e.do(t, http.MethodPost, "/api/v1/favorites", `{"property_id":"`+id+`"}`, h); rec.Code != http.StatusCreated {
			t.Fatalf("add %s status = %d", id, rec.Code)
		}
	}
	if rec := e.do(t, http.MethodPost, "/api/v1/favorites", `{"property_id":" "}`, h); rec.Code != http.StatusBadRequest {
		t.Errorf("blank id status = %d, want 400", rec.Code)
	}

	var ids rest.FavoritesIdsResponse
	decode(t, e.do(t, http.MethodGet, "/api/v1/favorites", "", h), &ids)
	if strings.Join(ids.Data, ",") != "p2,p1" {
		t.Errorf("ids = %v, want [p2 p1]", ids.Data)
	}

	if rec := e.do(t, http.MethodDelete, "/api/v1/favorites/p2", "", h); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
	var status rest.FavoriteStatusResponse
	decode(t, e.do(t, http.MethodGet, "/api/v1/favorites/p2", "", h), &status)
	if status.Favorite {
		t.Error("p2 must be removed")
	}
}

func TestRequestTranslationEndpoint(t *testing.T) {
	e := newEnv(t, nil)
	body := `{"kind":"newsletter","content_id":"nl-9","fields":{"subject":"Novidades de outubro"}}`

	rec := e.do(t, http.MethodPost, "/api/v1/content/translations", body, nil)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp rest.TranslationAcceptedResponse
	decode(t, rec, &resp)
	if resp.RequestID == "" || resp.Status != "queued" || len(resp.TargetLangs) != 2 {
		t.Errorf("unexpected response %+v", resp)
	}

	if rec := e.do(t, http.MethodPost, "/api/v1/content/translations", `{"kind":"blog","content_id":"1","fields":{"a":"b"}}`, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid kind status = %d, want 400", rec.Code)
	}

	failing := newEnv(t, failingTrigger{})
	if rec := failing.do(t, http.MethodPost, "/api/v1/content/translations", body, nil); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("broker failure status = %d, want 503", rec.Code)
	}
}

func TestSortOptions(t *testing.T) {
	e := newEnv(t, nil)

	var resp rest.SortOptionsResponse
	decode(t, e.do(t, http.MethodGet, "/api/v1/sort-options?lang=en-GB", "", nil), &resp)
	if resp.Lang != "en" || len(resp.Options) != 4 || resp.Default != "-createdAt" {
		t.Errorf("unexpected options %+v", resp)
	}

	var opt rest.SortOptionResponse
	decode(t, e.do(t, http.MethodGet, "/api/v1/sort-options?lang=en&label=LOWEST%20price", "", nil), &opt)
	if opt.Key != "price" || opt.Field != "price" || opt.Order != "asc" {
		t.Errorf("label lookup = %+v, want price asc", opt)
	}
	for _, o := range resp.Options {
		if o.Key == "-createdAt" && (o.Field != "createdAt" || o.Order != "desc") {
			t.Errorf("newest option = %+v, want createdAt desc", o)
		}
	}

	if rec := e.do(t, http.MethodGet, "/api/v1/sort-options?label=whatever", "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown label status = %d, want 404", rec.Code)
	}
}

func TestTraceIDEchoed(t *testing.T) {
	e := newEnv(t, nil)
	traceID := "5a1d7c3e-2b4f-4a6e-8c9d-0e1f2a3b4c5d"
	rec := e.do(t, http.MethodGet, "/healthz", "", map[string]string{"X-Trace-ID": traceID})
	if got := rec.Header().Get("X-Trace-ID"); got != traceID {
		t.Errorf("X-Trace-ID = %q, want %q", got, traceID)
	}
}
