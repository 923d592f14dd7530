package filtercodec_test

import (
	"net/url"
	"testing"

	"listing-service/internal/core/filtercodec"
)

func TestPatchKeepsOtherParameters(t *testing.T) {
	current, _ := url.ParseQuery("distrito=Lisboa&bedrooms=2,3&page=2&utm_source=newsletter")

	next := filtercodec.Patch(current, "concelho", "Sintra")

	for key, want := range map[string]string{
		"distrito":   "Lisboa",
		"bedrooms":   "2,3",
		"page":       "2",
		"utm_source": "newsletter",
		"concelho":   "Sintra",
	} {
		if got := next.Get(key); got != want {
			t.Errorf("%s: expected %q, got %q", key, want, got)
		}
	}

	// исходные значения не изменились
	if current.Get("concelho") != "" {
		t.Error("patch must not mutate the current values")
	}
}

func TestPatchEmptyValueRemovesKey(t *testing.T) {
	current, _ := url.ParseQuery("distrito=Lisboa&concelho=Sintra")
	next := filtercodec.Patch(current, "concelho", "")
	if _, ok := next["concelho"]; ok {
		t.Error("expected concelho to be removed")
	}
	if next.Get("distrito") != "Lisboa" {
		t.Error("expected distrito to be kept")
	}
}

func TestPatchSortResetsPage(t *testing.T) {
	current, _ := url.ParseQuery("distrito=Faro&page=5")

	next := filtercodec.Patch(current, filtercodec.KeySortBy, "-price")
	if _, ok := next["page"]; ok {
		t.Fatal("changing sortBy must drop page")
	}

	f, _ := filtercodec.Decode(next, filtercodec.PublicView)
	if f.Page != 1 {
		t.Errorf("expected page=1 after sort change, got %d", f.Page)
	}
	if f.Distrito != "Faro" {
		t.Errorf("expected distrito kept, got %q", f.Distrito)
	}
}

func TestPatchOtherFacetKeepsPage(t *testing.T) {
	current, _ := url.ParseQuery("page=5")
	next := filtercodec.Patch(current, filtercodec.KeyDistrito, "Braga")
	if next.Get("page") != "5" {
		t.Errorf("expected page kept, got %q", next.Get("page"))
	}
}

func TestPatchIntsAndWithPage(t *testing.T) {
	current := url.Values{}
	next := filtercodec.PatchInts(current, filtercodec.KeyBedrooms, []int{1, 4})
	if next.Get("bedrooms") != "1,4" {
		t.Errorf("expected bedrooms=1,4, got %q", next.Get("bedrooms"))
	}

	next = filtercodec.WithPage(next, 3)
	if next.Get("page") != "3" {
		t.Errorf("expected page=3, got %q", next.Get("page"))
	}
	next = filtercodec.WithPage(next, 1)
	if _, ok := next["page"]; ok {
		t.Error("first page must be written without the parameter")
	}
}
