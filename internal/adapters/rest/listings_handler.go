package rest

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/filtercodec"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
)

const sessionHeader = "X-Listing-Session"

type ListingsHandler struct {
	sessions usecases_port.ListingSessionsPort
}

func NewListingsHandler(sessions usecases_port.ListingSessionsPort) *ListingsHandler {
	return &ListingsHandler{sessions: sessions}
}

// ListPublic обрабатывает GET /api/v1/listings
func (h *ListingsHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, filtercodec.PublicView)
}

// ListAdmin обрабатывает GET /api/v1/admin/listings
func (h *ListingsHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, filtercodec.AdminView)
}

func (h *ListingsHandler) list(w http.ResponseWriter, r *http.Request, view filtercodec.View) {
	query := r.URL.Query()
	filter, issues := filtercodec.Decode(query, view)
	favoritesOnly := query.Get(filtercodec.KeyFavorites) == "true"
	sessionID := r.Header.Get(sessionHeader)

	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":    "ListProperties",
		"view":       view.Name,
		"session_id": sessionID,
	})
	for _, issue := range issues {
		handlerLogger.Warn("Ignoring malformed query parameter", port.Fields{
			"param":  issue.Key,
			"value":  issue.Value,
			"reason": issue.Reason,
		})
	}

	req := domain.ListingRequest{Filter: filter, FavoritesOnly: favoritesOnly}
	if favoritesOnly {
		owner, ok, err := ownerFromHeader(r)
		if !ok || err != nil {
			WriteJSONError(w, http.StatusUnauthorized, "X-User-ID header is required for favorites")
			return
		}
		req.Owner = owner
	}

	result, err := h.sessions.Load(r.Context(), sessionID, req)
	switch {
	case errors.Is(err, domain.ErrSuperseded):
		handlerLogger.Info("Listing request superseded by a newer one", nil)
		WriteJSONError(w, http.StatusConflict, "Superseded by a newer request in the same session")
		return
	case errors.Is(err, context.Canceled) && r.Context().Err() != nil:
		handlerLogger.Info("Client went away before the listing was ready", nil)
		return
	}

	base := canonicalQuery(filter, view, favoritesOnly)
	if result == nil {
		result = domain.ErrorView(filter, err)
	}
	resp := ToListingResponse(result)
	resp.Issues = toIssueResponses(issues)

	if err != nil {
		handlerLogger.Error("Listing use case failed", err, nil)
		RespondWithJSON(w, http.StatusBadGateway, resp)
		return
	}

	links := buildLinks(r.URL.Path, base, filter, result)
	resp.Links = &links
	RespondWithJSON(w, http.StatusOK, resp)
}

// Snapshot обрабатывает GET /api/v1/listings/session: последний вид сессии.
func (h *ListingsHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get(sessionHeader)
	if sessionID == "" {
		WriteJSONError(w, http.StatusBadRequest, sessionHeader+" header is missing")
		return
	}
	view, ok := h.sessions.Snapshot(sessionID)
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "Listing session not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, ToListingResponse(view))
}

// canonicalQuery - query текущей страницы без мусора и значений по умолчанию.
func canonicalQuery(f domain.Filter, view filtercodec.View, favoritesOnly bool) url.Values {
	values := filtercodec.Encode(f, view)
	if favoritesOnly {
		values.Set(filtercodec.KeyFavorites, "true")
	}
	return values
}

func buildLinks(path string, base url.Values, f domain.Filter, view *domain.ListingView) LinksResponse {
	links := LinksResponse{Self: href(path, base)}
	if !view.PrevDisabled {
		links.Prev = href(path, filtercodec.WithPage(base, view.Page-1))
	}
	if !view.NextDisabled {
		links.Next = href(path, filtercodec.WithPage(base, view.Page+1))
	}

	current := f.SortBy
	if current == "" {
		current = domain.DefaultSort
	}
	for _, opt := range filtercodec.SortOptions(f.Lang) {
		value := string(opt.Key)
		if opt.Key == domain.DefaultSort {
			value = ""
		}
		links.Sort = append(links.Sort, SortLinkResponse{
			Key:    string(opt.Key),
			Field:  opt.Key.Field(),
			Order:  sortOrder(opt.Key),
			Label:  opt.Label,
			Href:   href(path, filtercodec.Patch(base, filtercodec.KeySortBy, value)),
			Active: opt.Key == current,
		})
	}
	return links
}

func href(path string, values url.Values) string {
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}
