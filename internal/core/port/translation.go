package port

import (
	"context"
	"listing-service/internal/core/domain"
)

// TranslationTriggerPort отправляет запрос на автоперевод и не ждёт результата.
type TranslationTriggerPort interface {
	RequestTranslation(ctx context.Context, req domain.TranslationRequest) error
}
