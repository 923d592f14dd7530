package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/filtercodec"
	"listing-service/internal/core/port"
)

const defaultFetchTimeout = 15 * time.Second

type ListPropertiesUseCase struct {
	listings  port.ListingServicePort
	favorites port.FavoritesStorePort

	// Одинаковые одновременные запросы идут в сервис выдачи один раз
	group        singleflight.Group
	fetchTimeout time.Duration
}

// NewListPropertiesUseCase - favorites может быть nil, тогда режим "только избранное" недоступен.
func NewListPropertiesUseCase(listings port.ListingServicePort, favorites port.FavoritesStorePort) *ListPropertiesUseCase {
	return &ListPropertiesUseCase{
		listings:     listings,
		favorites:    favorites,
		fetchTimeout: defaultFetchTimeout,
	}
}

func (uc *ListPropertiesUseCase) Execute(ctx context.Context, req domain.ListingRequest) (*domain.ListingView, error) {
	f := req.Filter
	if f.Page < 1 {
		f.Page = 1
	}

	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":       "ListProperties",
		"page":           f.Page,
		"limit":          f.Limit,
		"sort_by":        string(f.SortBy),
		"favorites_only": req.FavoritesOnly,
	})
	ucLogger.Debug("Use case started", nil)

	page, err := uc.fetch(ctx, f)
	if err != nil {
		ucLogger.Error("Failed to fetch listings", err, nil)
		return domain.ErrorView(f, err), err
	}

	items := page.Data
	total := page.Total

	if req.FavoritesOnly {
		// Фильтруется только текущая страница: избранное на других страницах
		// сюда не попадает, и total считается по отфильтрованной странице.
		items, err = uc.keepFavorites(ctx, req.Owner, items)
		if err != nil {
			ucLogger.Error("Failed to read favorites", err, nil)
			return domain.ErrorView(f, err), err
		}
		total = len(items)
	}

	view := buildView(f, items, total)
	view.FavoritesOnly = req.FavoritesOnly

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total":       view.Total,
		"items":       len(view.Items),
		"total_pages": view.TotalPages,
	})
	return view, nil
}

// fetch идёт в сервис выдачи через singleflight. Общий запрос не привязан к отмене
// одного из ожидающих, но каждый вызывающий перестаёт ждать при отмене своего ctx.
func (uc *ListPropertiesUseCase) fetch(ctx context.Context, f domain.Filter) (*domain.ListingPage, error) {
	key := filtercodec.Identity(f)

	ch := uc.group.DoChan(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.fetchTimeout)
		defer cancel()
		return uc.listings.FetchListings(fetchCtx, f)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		page, ok := res.Val.(*domain.ListingPage)
		if !ok || page == nil {
			return nil, fmt.Errorf("%w: empty response", domain.ErrFetchFailed)
		}
		return page, nil
	}
}

func (uc *ListPropertiesUseCase) keepFavorites(ctx context.Context, owner string, items []domain.Property) ([]domain.Property, error) {
	if uc.favorites == nil {
		return nil, fmt.Errorf("favorites store is not configured")
	}
	ids, err := uc.favorites.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	// Новый срез: страница могла прийти из общего singleflight-ответа
	kept := make([]domain.Property, 0, len(items))
	for _, item := range items {
		if _, ok := set[item.ID]; ok {
			kept = append(kept, item)
		}
	}
	return kept, nil
}

func buildView(f domain.Filter, items []domain.Property, total int) *domain.ListingView {
	totalPages := domain.TotalPages(total, f.Limit)
	start, end := domain.DisplayRange(f.Page, f.Limit, total)
	prevDisabled, nextDisabled := domain.NavState(f.Page, totalPages)

	if items == nil {
		items = []domain.Property{}
	}
	return &domain.ListingView{
		State:        domain.StateSuccess,
		Items:        items,
		Total:        total,
		Page:         f.Page,
		Limit:        f.Limit,
		TotalPages:   totalPages,
		StartItem:    start,
		EndItem:      end,
		PrevDisabled: prevDisabled,
		NextDisabled: nextDisabled,
	}
}
