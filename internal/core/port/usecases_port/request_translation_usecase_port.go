package usecases_port

import (
	"context"
	"listing-service/internal/core/domain"
)

type RequestTranslationUseCase interface {
	Execute(ctx context.Context, req domain.TranslationRequest) (*domain.TranslationRequest, error)
}
