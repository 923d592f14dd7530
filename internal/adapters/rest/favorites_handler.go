package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
)

type FavoritesHandler struct {
	addUC    usecases_port.AddToFavoritesUseCase
	removeUC usecases_port.RemoveFromFavoritesUseCase
	hasUC    usecases_port.IsFavoriteUseCase
	getIdsUC usecases_port.GetFavoritesIdsUseCase
}

func NewFavoritesHandler(
	addUC usecases_port.AddToFavoritesUseCase,
	removeUC usecases_port.RemoveFromFavoritesUseCase,
	hasUC usecases_port.IsFavoriteUseCase,
	getIdsUC usecases_port.GetFavoritesIdsUseCase,
) *FavoritesHandler {
	return &FavoritesHandler{
		addUC:    addUC,
		removeUC: removeUC,
		hasUC:    hasUC,
		getIdsUC: getIdsUC,
	}
}

// requestLogger достаёт владельца, положенного OwnerMiddleware
func (h *FavoritesHandler) requestLogger(w http.ResponseWriter, r *http.Request, name string) (string, port.LoggerPort, bool) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": name})
	owner, ok := ownerFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing owner in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return "", nil, false
	}
	return owner, logger.WithFields(port.Fields{"owner": owner}), true
}

// GetFavoritesIds обрабатывает GET /api/v1/favorites
func (h *FavoritesHandler) GetFavoritesIds(w http.ResponseWriter, r *http.Request) {
	owner, logger, ok := h.requestLogger(w, r, "GetFavoritesIds")
	if !ok {
		return
	}

	ids, err := h.getIdsUC.Execute(r.Context(), owner)
	if err != nil {
		logger.Error("Get favorites ids use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve favorites")
		return
	}
	RespondWithJSON(w, http.StatusOK, FavoritesIdsResponse{Data: ids})
}

// AddToFavorites обрабатывает POST /api/v1/favorites
func (h *FavoritesHandler) AddToFavorites(w http.ResponseWriter, r *http.Request) {
	owner, logger, ok := h.requestLogger(w, r, "AddToFavorites")
	if !ok {
		return
	}

	var reqDTO AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode request body for add favorite", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.addUC.Execute(r.Context(), owner, reqDTO.PropertyID); err != nil {
		writeFavoritesError(w, logger, "Add to favorites use case failed", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// IsFavorite обрабатывает GET /api/v1/favorites/{propertyID}
func (h *FavoritesHandler) IsFavorite(w http.ResponseWriter, r *http.Request) {
	owner, logger, ok := h.requestLogger(w, r, "IsFavorite")
	if !ok {
		return
	}

	propertyID := chi.URLParam(r, "propertyID")
	favorite, err := h.hasUC.Execute(r.Context(), owner, propertyID)
	if err != nil {
		writeFavoritesError(w, logger, "Is favorite use case failed", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, FavoriteStatusResponse{PropertyID: propertyID, Favorite: favorite})
}

// RemoveFromFavorites обрабатывает DELETE /api/v1/favorites/{propertyID}
func (h *FavoritesHandler) RemoveFromFavorites(w http.ResponseWriter, r *http.Request) {
	owner, logger, ok := h.requestLogger(w, r, "RemoveFromFavorites")
	if !ok {
		return
	}

	if err := h.removeUC.Execute(r.Context(), owner, chi.URLParam(r, "propertyID")); err != nil {
		writeFavoritesError(w, logger, "Remove from favorites use case failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeFavoritesError(w http.ResponseWriter, logger port.LoggerPort, msg string, err error) {
	if errors.Is(err, domain.ErrInvalidPropertyID) {
		logger.Warn(msg, port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid property id")
		return
	}
	logger.Error(msg, err, nil)
	WriteJSONError(w, http.StatusInternalServerError, "Failed to update favorites")
}
