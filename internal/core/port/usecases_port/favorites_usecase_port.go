package usecases_port

import "context"

type AddToFavoritesUseCase interface {
	Execute(ctx context.Context, owner, propertyID string) error
}

type RemoveFromFavoritesUseCase interface {
	Execute(ctx context.Context, owner, propertyID string) error
}

type IsFavoriteUseCase interface {
	Execute(ctx context.Context, owner, propertyID string) (bool, error)
}

type GetFavoritesIdsUseCase interface {
	// Возвращает id объектов в порядке добавления
	Execute(ctx context.Context, owner string) ([]string, error)
}
