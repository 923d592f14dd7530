package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
)

type TranslationsHandler struct {
	requestUC usecases_port.RequestTranslationUseCase
}

func NewTranslationsHandler(requestUC usecases_port.RequestTranslationUseCase) *TranslationsHandler {
	return &TranslationsHandler{requestUC: requestUC}
}

// RequestTranslation обрабатывает POST /api/v1/content/translations
func (h *TranslationsHandler) RequestTranslation(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RequestTranslation"})

	var reqDTO TranslationRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode translation request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	accepted, err := h.requestUC.Execute(r.Context(), domain.TranslationRequest{
		Kind:        domain.ContentKind(reqDTO.Kind),
		ContentID:   reqDTO.ContentID,
		TargetLangs: reqDTO.TargetLangs,
		Fields:      reqDTO.Fields,
	})
	if errors.Is(err, domain.ErrInvalidTranslationRequest) {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logger.Error("Request translation use case failed", err, nil)
		WriteJSONError(w, http.StatusServiceUnavailable, "Translation service is unavailable")
		return
	}

	RespondWithJSON(w, http.StatusAccepted, TranslationAcceptedResponse{
		RequestID:   accepted.RequestID.String(),
		Status:      "queued",
		TargetLangs: accepted.TargetLangs,
		RequestedAt: accepted.RequestedAt,
	})
}
