package usecase

import (
	"context"
	"fmt"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// RequestTranslationUseCase ставит PT-контент в очередь на перевод и не ждёт результата.
type RequestTranslationUseCase struct {
	trigger port.TranslationTriggerPort
	now     func() time.Time
}

func NewRequestTranslationUseCase(trigger port.TranslationTriggerPort) *RequestTranslationUseCase {
	return &RequestTranslationUseCase{trigger: trigger, now: time.Now}
}

func (uc *RequestTranslationUseCase) Execute(ctx context.Context, req domain.TranslationRequest) (*domain.TranslationRequest, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "RequestTranslation",
		"kind":       string(req.Kind),
		"content_id": req.ContentID,
	})

	if err := req.Normalize(uc.now()); err != nil {
		ucLogger.Warn("Invalid translation request", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := uc.trigger.RequestTranslation(ctx, req); err != nil {
		ucLogger.Error("Failed to publish translation request", err, port.Fields{"request_id": req.RequestID.String()})
		return nil, fmt.Errorf("failed to request translation: %w", err)
	}

	ucLogger.Info("Translation requested", port.Fields{
		"request_id":   req.RequestID.String(),
		"target_langs": req.TargetLangs,
	})
	return &req, nil
}
