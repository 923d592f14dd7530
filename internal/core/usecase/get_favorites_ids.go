package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
)

type GetFavoritesIdsUseCase struct {
	store port.FavoritesStorePort
}

func NewGetFavoritesIdsUseCase(store port.FavoritesStorePort) *GetFavoritesIdsUseCase {
	return &GetFavoritesIdsUseCase{store: store}
}

func (uc *GetFavoritesIdsUseCase) Execute(ctx context.Context, owner string) ([]string, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetFavoritesIds",
		"owner":    owner,
	})

	ids, err := uc.store.List(ctx, owner)
	if err != nil {
		ucLogger.Error("Favorites store returned an error", err, nil)
		return nil, err
	}

	ucLogger.Debug("Favorites loaded", port.Fields{"count": len(ids)})
	return ids, nil
}
