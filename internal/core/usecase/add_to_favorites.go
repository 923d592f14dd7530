package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
)

type AddToFavoritesUseCase struct {
	store port.FavoritesStorePort
}

func NewAddToFavoritesUseCase(store port.FavoritesStorePort) *AddToFavoritesUseCase {
	return &AddToFavoritesUseCase{store: store}
}

func (uc *AddToFavoritesUseCase) Execute(ctx context.Context, owner, propertyID string) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "AddToFavorites",
		"owner":       owner,
		"property_id": propertyID,
	})
	ucLogger.Info("Use case started", nil)

	if err := uc.store.Add(ctx, owner, propertyID); err != nil {
		ucLogger.Error("Favorites store returned an error", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
