package listing_client

import (
	"time"

	"listing-service/internal/core/domain"
)

// DTO ответа GET /properties. Поля, кроме id, сервис выдачи может не прислать.
type propertyResponse struct {
	ID       string   `json:"id"`
	Title    *string  `json:"title"`
	Image    *string  `json:"image"`
	Price    *float64 `json:"price"`
	Distrito *string  `json:"distrito"`
	Concelho *string  `json:"concelho"`
	Status   *string  `json:"status"`

	Reference       string     `json:"reference,omitempty"`
	TransactionType string     `json:"transactionType,omitempty"`
	PropertyType    string     `json:"propertyType,omitempty"`
	Bedrooms        *int       `json:"bedrooms"`
	Bathrooms       *int       `json:"bathrooms"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
}

type listingPageResponse struct {
	Data       []propertyResponse `json:"data"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
}

func (r listingPageResponse) toDomain() *domain.ListingPage {
	items := make([]domain.Property, len(r.Data))
	for i, dto := range r.Data {
		items[i] = domain.Property{
			ID:              dto.ID,
			Title:           deref(dto.Title),
			Image:           deref(dto.Image),
			Distrito:        deref(dto.Distrito),
			Concelho:        deref(dto.Concelho),
			Status:          deref(dto.Status),
			Reference:       dto.Reference,
			TransactionType: dto.TransactionType,
			PropertyType:    dto.PropertyType,
			Bedrooms:        dto.Bedrooms,
			Bathrooms:       dto.Bathrooms,
			CreatedAt:       dto.CreatedAt,
		}
		if dto.Price != nil {
			items[i].Price = *dto.Price
		}
	}
	return &domain.ListingPage{
		Data:       items,
		Total:      r.Total,
		Page:       r.Page,
		TotalPages: r.TotalPages,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
