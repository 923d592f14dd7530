package port

import "context"

// FavoritesStorePort - хранилище избранного одного владельца.
// Оркестратор выдачи только читает его через List/Has.
type FavoritesStorePort interface {
	Add(ctx context.Context, owner, propertyID string) error
	Remove(ctx context.Context, owner, propertyID string) error
	Has(ctx context.Context, owner, propertyID string) (bool, error)
	List(ctx context.Context, owner string) ([]string, error)
}

// KeyValuePort - граница персистентности: значение по фиксированному ключу.
// found == false, если ключа ещё нет.
type KeyValuePort interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}
