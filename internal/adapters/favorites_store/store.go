package favorites_store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// StorageKey - фиксированный ключ, под которым лежит JSON-массив id избранных объектов.
const StorageKey = "favorite-properties"

// Store реализует FavoritesStorePort поверх любого key-value хранилища.
// Порядок добавления сохраняется, повторное добавление ничего не меняет.
type Store struct {
	kv port.KeyValuePort
	// read-modify-write одного ключа не должен перемешиваться
	mu sync.Mutex
}

func NewStore(kv port.KeyValuePort) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("key-value storage cannot be nil")
	}
	return &Store{kv: kv}, nil
}

// ErrCorrupted - под ключом лежит не JSON-массив строк. Чтение считает такой набор
// пустым, а запись отказывает, чтобы не затереть исходное значение.
var ErrCorrupted = errors.New("stored favorites value is corrupted")

// Key - ключ набора избранного конкретного владельца.
func Key(owner string) string {
	return StorageKey + ":" + owner
}

func (s *Store) Add(ctx context.Context, owner, propertyID string) error {
	owner, propertyID, err := validate(owner, propertyID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load(ctx, owner)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == propertyID {
			return nil
		}
	}
	return s.save(ctx, owner, append(ids, propertyID))
}

func (s *Store) Remove(ctx context.Context, owner, propertyID string) error {
	owner, propertyID, err := validate(owner, propertyID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load(ctx, owner)
	if err != nil {
		return err
	}
	kept := ids[:0:0]
	for _, id := range ids {
		if id != propertyID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(ids) {
		return nil
	}
	return s.save(ctx, owner, kept)
}

func (s *Store) Has(ctx context.Context, owner, propertyID string) (bool, error) {
	owner, propertyID, err := validate(owner, propertyID)
	if err != nil {
		return false, err
	}
	ids, err := s.List(ctx, owner)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == propertyID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) List(ctx context.Context, owner string) ([]string, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, domain.ErrInvalidOwner
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load(ctx, owner)
	if errors.Is(err, ErrCorrupted) {
		// Битое значение не должно ломать выдачу
		contextkeys.LoggerFromContext(ctx).Warn("Corrupted favorites value, reading it as an empty set", port.Fields{
			"component": "FavoritesStore",
			"owner":     owner,
			"error":     err.Error(),
		})
		return []string{}, nil
	}
	return ids, err
}

func (s *Store) load(ctx context.Context, owner string) ([]string, error) {
	raw, found, err := s.kv.Get(ctx, Key(owner))
	if err != nil {
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}
	if !found || len(raw) == 0 {
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("%w (owner %q): %v", ErrCorrupted, owner, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *Store) save(ctx context.Context, owner string, ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal favorites: %w", err)
	}
	if err := s.kv.Set(ctx, Key(owner), raw); err != nil {
		return fmt.Errorf("failed to write favorites: %w", err)
	}
	return nil
}

func validate(owner, propertyID string) (string, string, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return "", "", domain.ErrInvalidOwner
	}
	propertyID = strings.TrimSpace(propertyID)
	if propertyID == "" {
		return "", "", domain.ErrInvalidPropertyID
	}
	return owner, propertyID, nil
}
