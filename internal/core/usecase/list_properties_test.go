package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"listing-service/internal/adapters/favorites_store"
	"listing-service/internal/adapters/memory"
	"listing-service/internal/core/domain"
)

type fakeListings struct {
	page    *domain.ListingPage
	err     error
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (f *fakeListings) FetchListings(ctx context.Context, filter domain.Filter) (*domain.ListingPage, error) {
	f.calls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func properties(ids ...string) []domain.Property {
	items := make([]domain.Property, len(ids))
	for i, id := range ids {
		items[i] = domain.Property{ID: id, Title: "Imóvel " + id}
	}
	return items
}

func publicFilter(page int) domain.Filter {
	return domain.Filter{Status: domain.StatusActive, Page: page, Limit: domain.PublicPageLimit, SortBy: domain.DefaultSort}
}

func TestListPropertiesDisplayMetadata(t *testing.T) {
	tests := []struct {
		name                       string
		page, total                int
		wantPages, wantStart, wEnd int
		wantPrev, wantNext         bool
	}{
		{"first page", 1, 20, 3, 1, 9, true, false},
		{"middle page", 2, 20, 3, 10, 18, false, false},
		{"last partial page", 3, 20, 3, 19, 20, false, true},
		{"single page", 1, 5, 1, 1, 5, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listings := &fakeListings{page: &domain.ListingPage{
				Data: properties("a", "b"), Total: tt.total, Page: tt.page, TotalPages: tt.wantPages,
			}}
			uc := NewListPropertiesUseCase(listings, nil)

			view, err := uc.Execute(context.Background(), domain.ListingRequest{Filter: publicFilter(tt.page)})
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if view.State != domain.StateSuccess {
				t.Fatalf("state = %s, want success", view.State)
			}
			if view.TotalPages != tt.wantPages || view.StartItem != tt.wantStart || view.EndItem != tt.wEnd {
				t.Errorf("pages=%d range=%d-%d, want pages=%d range=%d-%d",
					view.TotalPages, view.StartItem, view.EndItem, tt.wantPages, tt.wantStart, tt.wEnd)
			}
			if view.PrevDisabled != tt.wantPrev || view.NextDisabled != tt.wantNext {
				t.Errorf("prevDisabled=%v nextDisabled=%v, want %v %v",
					view.PrevDisabled, view.NextDisabled, tt.wantPrev, tt.wantNext)
			}
		})
	}
}

func TestListPropertiesEmptyResult(t *testing.T) {
	uc := NewListPropertiesUseCase(&fakeListings{page: &domain.ListingPage{Page: 1}}, nil)

	view, err := uc.Execute(context.Background(), domain.ListingRequest{Filter: publicFilter(1)})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !view.Empty() {
		t.Error("expected empty success view")
	}
	if view.TotalPages != 1 || view.StartItem != 0 || view.EndItem != 0 {
		t.Errorf("pages=%d range=%d-%d, want 1 and 0-0", view.TotalPages, view.StartItem, view.EndItem)
	}
	if !view.PrevDisabled || !view.NextDisabled {
		t.Error("both navigation buttons must be disabled on an empty result")
	}
	if view.Items == nil {
		t.Error("items must be an empty slice, not nil")
	}
}

func TestListPropertiesFetchFailure(t *testing.T) {
	failure := fmt.Errorf("%w: status 500", domain.ErrFetchFailed)
	uc := NewListPropertiesUseCase(&fakeListings{err: failure}, nil)

	view, err := uc.Execute(context.Background(), domain.ListingRequest{Filter: publicFilter(1)})
	if !errors.Is(err, domain.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	if view == nil || view.State != domain.StateError {
		t.Fatalf("expected error view, got %+v", view)
	}
	if view.Empty() {
		t.Error("failure must not look like an empty result")
	}
}

func TestListPropertiesFavoritesOnly(t *testing.T) {
	ctx := context.Background()
	store, err := favorites_store.NewStore(memory.NewKeyValueStore())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Add(ctx, "owner-1", "B"); err != nil {
		t.Fatal(err)
	}
	if err := store.Add(ctx, "owner-1", "Z"); err != nil {
		t.Fatal(err)
	}

	listings := &fakeListings{page: &domain.ListingPage{Data: properties("A", "B", "C"), Total: 30, Page: 1, TotalPages: 4}}
	uc := NewListPropertiesUseCase(listings, store)

	view, err := uc.Execute(ctx, domain.ListingRequest{Filter: publicFilter(1), FavoritesOnly: true, Owner: "owner-1"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if view.Total != 1 || view.TotalPages != 1 || len(view.Items) != 1 || view.Items[0].ID != "B" {
		t.Fatalf("unexpected favorites view: total=%d pages=%d items=%+v", view.Total, view.TotalPages, view.Items)
	}
	if !view.FavoritesOnly {
		t.Error("FavoritesOnly flag must be set on the view")
	}
	if len(listings.page.Data) != 3 {
		t.Error("remote page must not be mutated by the post-filter")
	}
}

func TestListPropertiesFavoritesOnlyWithoutStore(t *testing.T) {
	uc := NewListPropertiesUseCase(&fakeListings{page: &domain.ListingPage{Data: properties("A"), Total: 1}}, nil)

	view, err := uc.Execute(context.Background(), domain.ListingRequest{Filter: publicFilter(1), FavoritesOnly: true, Owner: "o"})
	if err == nil || view.State != domain.StateError {
		t.Fatalf("expected error view, got %+v, %v", view, err)
	}
}

func TestListPropertiesDeduplicatesConcurrentFetches(t *testing.T) {
	listings := &fakeListings{
		page:    &domain.ListingPage{Data: properties("A"), Total: 1, Page: 1, TotalPages: 1},
		started: make(chan struct{}, 2),
		release: make(chan struct{}),
	}
	uc := NewListPropertiesUseCase(listings, nil)
	req := domain.ListingRequest{Filter: publicFilter(1)}

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), req)
			errs <- err
		}()
		if i == 0 {
			<-listings.started
		}
	}
	// второй вызов должен успеть присоединиться к уже идущему запросу
	time.Sleep(50 * time.Millisecond)
	close(listings.release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
	}
	if n := listings.calls.Load(); n != 1 {
		t.Errorf("remote called %d times, want 1", n)
	}
}

func TestListPropertiesCallerCancellation(t *testing.T) {
	listings := &fakeListings{
		page:    &domain.ListingPage{},
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	defer close(listings.release)
	uc := NewListPropertiesUseCase(listings, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := uc.Execute(ctx, domain.ListingRequest{Filter: publicFilter(1)})
		done <- err
	}()
	<-listings.started
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Execute did not return after cancellation")
	}
}
