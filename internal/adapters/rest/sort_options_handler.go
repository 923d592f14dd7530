package rest

import (
	"net/http"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/filtercodec"
)

// SortOptions обрабатывает GET /api/v1/sort-options?lang=en[&label=...]
func SortOptions(w http.ResponseWriter, r *http.Request) {
	lang, _ := filtercodec.NormalizeLang(r.URL.Query().Get(filtercodec.KeyLang))

	if label := r.URL.Query().Get("label"); label != "" {
		key, ok := filtercodec.SortKeyFromLabel(label, lang)
		if !ok {
			WriteJSONError(w, http.StatusNotFound, "Unknown sort label")
			return
		}
		RespondWithJSON(w, http.StatusOK, toSortOptionResponse(key, filtercodec.SortLabel(key, lang)))
		return
	}

	opts := filtercodec.SortOptions(lang)
	resp := SortOptionsResponse{
		Lang:    lang,
		Default: string(domain.DefaultSort),
		Options: make([]SortOptionResponse, len(opts)),
	}
	for i, o := range opts {
		resp.Options[i] = toSortOptionResponse(o.Key, o.Label)
	}
	RespondWithJSON(w, http.StatusOK, resp)
}
