package port

import (
	"context"
	"listing-service/internal/core/domain"
)

// ListingServicePort - контракт клиента удалённого сервиса выдачи.
// Фильтрация, сортировка и пагинация выполняются на его стороне.
type ListingServicePort interface {
	FetchListings(ctx context.Context, filter domain.Filter) (*domain.ListingPage, error)
}
