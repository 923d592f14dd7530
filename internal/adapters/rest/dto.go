package rest

import (
	"time"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/filtercodec"
)

// ErrorResponse - стандартная структура для ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PropertyResponse - карточка объекта в том виде, который ждёт фронтенд.
type PropertyResponse struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Image    string  `json:"image,omitempty"`
	Price    float64 `json:"price"`
	Distrito string  `json:"distrito,omitempty"`
	Concelho string  `json:"concelho,omitempty"`
	Status   string  `json:"status,omitempty"`

	Reference       string     `json:"reference,omitempty"`
	TransactionType string     `json:"transactionType,omitempty"`
	PropertyType    string     `json:"propertyType,omitempty"`
	Bedrooms        *int       `json:"bedrooms,omitempty"`
	Bathrooms       *int       `json:"bathrooms,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
}

type SortLinkResponse struct {
	Key    string `json:"key"`
	Field  string `json:"field"`
	Order  string `json:"order"`
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

type LinksResponse struct {
	Self string             `json:"self"`
	Prev string             `json:"prev,omitempty"`
	Next string             `json:"next,omitempty"`
	Sort []SortLinkResponse `json:"sort"`
}

type IssueResponse struct {
	Param  string `json:"param"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// ListingResponse - страница выдачи со всем, что нужно для отрисовки.
type ListingResponse struct {
	State         string             `json:"state"`
	Items         []PropertyResponse `json:"items"`
	Total         int                `json:"total"`
	Page          int                `json:"page"`
	Limit         int                `json:"limit"`
	TotalPages    int                `json:"totalPages"`
	StartItem     int                `json:"startItem"`
	EndItem       int                `json:"endItem"`
	PrevDisabled  bool               `json:"prevDisabled"`
	NextDisabled  bool               `json:"nextDisabled"`
	Empty         bool               `json:"empty"`
	FavoritesOnly bool               `json:"favoritesOnly"`
	Error         string             `json:"error,omitempty"`
	Links         *LinksResponse     `json:"links,omitempty"`
	Issues        []IssueResponse    `json:"issues,omitempty"`
}

// ToListingResponse - общий вид выдачи для REST и listingctl --json.
func ToListingResponse(view *domain.ListingView) ListingResponse {
	resp := ListingResponse{
		State:         string(view.State),
		Items:         make([]PropertyResponse, len(view.Items)),
		Total:         view.Total,
		Page:          view.Page,
		Limit:         view.Limit,
		TotalPages:    view.TotalPages,
		StartItem:     view.StartItem,
		EndItem:       view.EndItem,
		PrevDisabled:  view.PrevDisabled,
		NextDisabled:  view.NextDisabled,
		Empty:         view.Empty(),
		FavoritesOnly: view.FavoritesOnly,
	}
	if view.Err != nil {
		resp.Error = view.Err.Error()
	}
	for i, p := range view.Items {
		resp.Items[i] = PropertyResponse{
			ID:              p.ID,
			Title:           p.Title,
			Image:           p.Image,
			Price:           p.Price,
			Distrito:        p.Distrito,
			Concelho:        p.Concelho,
			Status:          p.Status,
			Reference:       p.Reference,
			TransactionType: p.TransactionType,
			PropertyType:    p.PropertyType,
			Bedrooms:        p.Bedrooms,
			Bathrooms:       p.Bathrooms,
			CreatedAt:       p.CreatedAt,
		}
	}
	return resp
}

func toIssueResponses(issues []filtercodec.Issue) []IssueResponse {
	if len(issues) == 0 {
		return nil
	}
	out := make([]IssueResponse, len(issues))
	for i, is := range issues {
		out[i] = IssueResponse{Param: is.Key, Value: is.Value, Reason: is.Reason}
	}
	return out
}

type SortOptionResponse struct {
	Key   string `json:"key"`
	Field string `json:"field"`
	Order string `json:"order"`
	Label string `json:"label"`
}

func toSortOptionResponse(key domain.SortKey, label string) SortOptionResponse {
	return SortOptionResponse{Key: string(key), Field: key.Field(), Order: sortOrder(key), Label: label}
}

// sortOrder - направление в том виде, в каком его ждёт выпадающий список фронтенда.
func sortOrder(key domain.SortKey) string {
	if key.Descending() {
		return "desc"
	}
	return "asc"
}

type SortOptionsResponse struct {
	Lang    string               `json:"lang"`
	Default string               `json:"default"`
	Options []SortOptionResponse `json:"options"`
}

// AddFavoriteRequest - тело запроса для добавления в избранное.
type AddFavoriteRequest struct {
	PropertyID string `json:"property_id"`
}

type FavoriteStatusResponse struct {
	PropertyID string `json:"property_id"`
	Favorite   bool   `json:"favorite"`
}

type FavoritesIdsResponse struct {
	Data []string `json:"data"`
}

// TranslationRequestDTO - запрос админки на перевод PT-контента.
type TranslationRequestDTO struct {
	Kind        string            `json:"kind"`
	ContentID   string            `json:"content_id"`
	TargetLangs []string          `json:"target_langs"`
	Fields      map[string]string `json:"fields"`
}

type TranslationAcceptedResponse struct {
	RequestID   string    `json:"request_id"`
	Status      string    `json:"status"`
	TargetLangs []string  `json:"target_langs"`
	RequestedAt time.Time `json:"requested_at"`
}
