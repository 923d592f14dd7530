package usecase

import (
	"context"

	"listing-service/internal/core/port"
)

type IsFavoriteUseCase struct {
	store port.FavoritesStorePort
}

func NewIsFavoriteUseCase(store port.FavoritesStorePort) *IsFavoriteUseCase {
	return &IsFavoriteUseCase{store: store}
}

func (uc *IsFavoriteUseCase) Execute(ctx context.Context, owner, propertyID string) (bool, error) {
	return uc.store.Has(ctx, owner, propertyID)
}
