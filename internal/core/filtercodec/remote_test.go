package filtercodec_test

import (
	"net/url"
	"reflect"
	"testing"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/filtercodec"
)

func TestRemoteQueryAlwaysCarriesPaging(t *testing.T) {
	f, _ := filtercodec.Decode(url.Values{}, filtercodec.PublicView)
	q := filtercodec.RemoteQuery(f)

	want := map[string]string{
		"page":   "1",
		"limit":  "9",
		"sortBy": "-createdAt",
		"status": "active",
		"lang":   "pt",
	}
	for k, v := range want {
		if got := q.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestRemoteQueryRepeatsListKeys(t *testing.T) {
	f := domain.Filter{Bedrooms: []int{2, 3}, Bathrooms: []int{1}, Page: 2, Limit: 12}
	q := filtercodec.RemoteQuery(f)

	if got := q["bedrooms"]; !reflect.DeepEqual(got, []string{"2", "3"}) {
		t.Errorf("bedrooms = %v, want [2 3]", got)
	}
	if got := q["bathrooms"]; !reflect.DeepEqual(got, []string{"1"}) {
		t.Errorf("bathrooms = %v, want [1]", got)
	}
	if q.Has("status") {
		t.Error("empty status must not be sent")
	}
}

func TestIdentityIgnoresParameterOrder(t *testing.T) {
	a, _ := filtercodec.Decode(url.Values{"distrito": {"Lisboa"}, "minPrice": {"1000"}}, filtercodec.PublicView)
	b, _ := filtercodec.Decode(url.Values{"minPrice": {"1000"}, "distrito": {"Lisboa"}}, filtercodec.PublicView)
	if filtercodec.Identity(a) != filtercodec.Identity(b) {
		t.Error("identical filters must share identity")
	}

	c := a
	c.Page = 2
	if filtercodec.Identity(a) == filtercodec.Identity(c) {
		t.Error("different pages must not share identity")
	}
}
