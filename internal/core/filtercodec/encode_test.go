package filtercodec_test

import (
	"net/url"
	"reflect"
	"testing"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/filtercodec"
)

func ptr(v float64) *float64 { return &v }

func TestRoundTrip(t *testing.T) {
	filters := []domain.Filter{
		{Status: "active", Page: 1, Limit: 9, SortBy: domain.SortNewest, Lang: "pt"},
		{
			TransactionType:  "rent",
			PropertyType:     "house",
			PropertyState:    "used",
			EnergyClass:      "B-",
			Distrito:         "Porto",
			Concelho:         "Vila Nova de Gaia",
			Country:          "Portugal",
			IsEmpreendimento: true,
			MinPrice:         ptr(0),
			MaxPrice:         ptr(1250.75),
			Bedrooms:         []int{2, 3},
			Bathrooms:        []int{1},
			Status:           "active",
			Page:             4,
			Limit:            9,
			SortBy:           domain.SortPriceDesc,
			Search:           "piscina & jardim",
			Lang:             "fr",
		},
		{Status: "active", Page: 2, Limit: 9, SortBy: domain.SortPriceAsc, Lang: "en", Bedrooms: []int{5}},
	}

	for _, f := range filters {
		values := filtercodec.Encode(f, filtercodec.PublicView)

		// через строку, как это происходит в адресной строке
		parsed, err := url.ParseQuery(values.Encode())
		if err != nil {
			t.Fatalf("parse encoded query: %v", err)
		}
		got, issues := filtercodec.Decode(parsed, filtercodec.PublicView)
		if len(issues) != 0 {
			t.Errorf("unexpected issues for %q: %v", values.Encode(), issues)
		}
		if !reflect.DeepEqual(got, f) {
			t.Errorf("round trip mismatch for %q:\n want %+v\n  got %+v", values.Encode(), f, got)
		}
	}
}

func TestRoundTripAdminStatus(t *testing.T) {
	f := domain.Filter{Status: "sold", Page: 1, Limit: 12, SortBy: domain.SortOldest, Lang: "pt"}
	got, _ := filtercodec.Decode(filtercodec.Encode(f, filtercodec.AdminView), filtercodec.AdminView)
	if !reflect.DeepEqual(got, f) {
		t.Errorf("expected %+v, got %+v", f, got)
	}
}

func TestEncodeOmitsDefaults(t *testing.T) {
	f := domain.Filter{Status: "active", Page: 1, Limit: 9, SortBy: domain.SortNewest, Lang: "pt"}
	if q := filtercodec.Encode(f, filtercodec.PublicView).Encode(); q != "" {
		t.Errorf("expected empty query, got %q", q)
	}
}

func TestEncodeNeverWritesLimit(t *testing.T) {
	f := domain.Filter{Page: 2, Limit: 9}
	if _, ok := filtercodec.Encode(f, filtercodec.PublicView)["limit"]; ok {
		t.Error("limit must not be part of the url surface")
	}
}

func TestEncodeFalseEmpreendimentoCollapses(t *testing.T) {
	f := domain.Filter{IsEmpreendimento: false, Page: 1}
	if _, ok := filtercodec.Encode(f, filtercodec.PublicView)["isEmpreendimento"]; ok {
		t.Error("false must be encoded as absent")
	}
}
