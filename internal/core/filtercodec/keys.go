// Package filtercodec переводит query-строку страницы выдачи в domain.Filter и обратно.
//
// Имена параметров - публичный контракт: ссылки с фильтрами сохраняют в закладки
// и пересылают, поэтому менять их нельзя.
package filtercodec

import "listing-service/internal/core/domain"

const (
	KeyTransactionType  = "transactionType"
	KeyPropertyType     = "propertyType"
	KeyPropertyState    = "propertyState"
	KeyEnergyClass      = "energyClass"
	KeyDistrito         = "distrito"
	KeyConcelho         = "concelho"
	KeyCountry          = "country"
	KeyIsEmpreendimento = "isEmpreendimento"
	KeyMinPrice         = "minPrice"
	KeyMaxPrice         = "maxPrice"
	KeyBedrooms         = "bedrooms"
	KeyBathrooms        = "bathrooms"
	KeyStatus           = "status"
	KeyPage             = "page"
	KeyLimit            = "limit"
	KeySortBy           = "sortBy"
	KeySearch           = "search"
	KeyLang             = "lang"

	// KeyFavorites - флаг "только избранное" нашего маршрута. В Filter не входит.
	KeyFavorites = "favorites"
)

// View - настройки конкретного экрана выдачи.
type View struct {
	Name  string
	Limit int
	// Status подставляется всегда, если StatusFromQuery == false.
	Status          string
	StatusFromQuery bool
}

var (
	PublicView = View{Name: "public", Limit: domain.PublicPageLimit, Status: domain.StatusActive}
	AdminView  = View{Name: "admin", Limit: domain.AdminPageLimit, StatusFromQuery: true}
)
