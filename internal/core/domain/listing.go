package domain

import "time"

// Property - карточка объекта в том виде, в каком её отдаёт сервис выдачи.
// Ядро её не изменяет.
type Property struct {
	ID       string
	Title    string
	Image    string
	Price    float64
	Distrito string
	Concelho string
	Status   string

	Reference       string
	TransactionType string
	PropertyType    string
	Bedrooms        *int
	Bathrooms       *int
	CreatedAt       *time.Time
}

// ListingPage - одна страница выдачи от удалённого сервиса.
type ListingPage struct {
	Data       []Property
	Total      int
	Page       int
	TotalPages int
}

// ListingRequest - вход оркестратора выдачи.
type ListingRequest struct {
	Filter Filter
	// FavoritesOnly - чисто клиентский флаг, на сервер выдачи не уходит.
	FavoritesOnly bool
	Owner         string
}

type ViewState string

const (
	StateLoading ViewState = "loading"
	StateError   ViewState = "error"
	StateSuccess ViewState = "success"
)

// ListingView - готовая к отображению страница. Ровно одно из трёх состояний.
type ListingView struct {
	State ViewState

	Items      []Property
	Total      int
	Page       int
	Limit      int
	TotalPages int
	StartItem  int
	EndItem    int

	PrevDisabled bool
	NextDisabled bool

	FavoritesOnly bool
	Err           error
}

// Empty - успешный ответ без единого объекта.
func (v *ListingView) Empty() bool {
	return v.State == StateSuccess && v.Total == 0
}

func LoadingView(f Filter) *ListingView {
	return &ListingView{State: StateLoading, Page: f.Page, Limit: f.Limit}
}

func ErrorView(f Filter, err error) *ListingView {
	return &ListingView{State: StateError, Page: f.Page, Limit: f.Limit, Err: err}
}
