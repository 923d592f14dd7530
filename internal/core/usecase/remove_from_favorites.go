package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
)

type RemoveFromFavoritesUseCase struct {
	store port.FavoritesStorePort
}

func NewRemoveFromFavoritesUseCase(store port.FavoritesStorePort) *RemoveFromFavoritesUseCase {
	return &RemoveFromFavoritesUseCase{store: store}
}

// Execute: удаление отсутствующего объекта - не ошибка.
func (uc *RemoveFromFavoritesUseCase) Execute(ctx context.Context, owner, propertyID string) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "RemoveFromFavorites",
		"owner":       owner,
		"property_id": propertyID,
	})
	ucLogger.Info("Use case started", nil)

	if err := uc.store.Remove(ctx, owner, propertyID); err != nil {
		ucLogger.Error("Favorites store returned an error", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
