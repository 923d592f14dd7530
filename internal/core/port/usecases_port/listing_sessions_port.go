package usecases_port

import (
	"context"
	"listing-service/internal/core/domain"
)

// ListingSessionsPort - загрузка выдачи, в которой новый запрос сессии отменяет старый.
type ListingSessionsPort interface {
	Load(ctx context.Context, sessionID string, req domain.ListingRequest) (*domain.ListingView, error)
	Snapshot(sessionID string) (*domain.ListingView, bool)
}
