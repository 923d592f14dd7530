package filtercodec

import (
	"net/url"
	"strconv"

	"listing-service/internal/core/domain"
)

// RemoteQuery - параметры запроса к сервису выдачи. В отличие от Encode,
// page, limit, sortBy и status передаются всегда, а списки - повторяющимися ключами.
func RemoteQuery(f domain.Filter) url.Values {
	v := url.Values{}

	setString(v, KeyTransactionType, f.TransactionType)
	setString(v, KeyPropertyType, f.PropertyType)
	setString(v, KeyPropertyState, f.PropertyState)
	setString(v, KeyEnergyClass, f.EnergyClass)
	setString(v, KeyDistrito, f.Distrito)
	setString(v, KeyConcelho, f.Concelho)
	setString(v, KeyCountry, f.Country)

	if f.IsEmpreendimento {
		v.Set(KeyIsEmpreendimento, "true")
	}
	if f.MinPrice != nil {
		v.Set(KeyMinPrice, FormatPrice(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		v.Set(KeyMaxPrice, FormatPrice(*f.MaxPrice))
	}
	for _, n := range f.Bedrooms {
		v.Add(KeyBedrooms, strconv.Itoa(n))
	}
	for _, n := range f.Bathrooms {
		v.Add(KeyBathrooms, strconv.Itoa(n))
	}

	setString(v, KeyStatus, f.Status)

	page := f.Page
	if page < 1 {
		page = 1
	}
	v.Set(KeyPage, strconv.Itoa(page))
	if f.Limit > 0 {
		v.Set(KeyLimit, strconv.Itoa(f.Limit))
	}
	sort := f.SortBy
	if sort == "" {
		sort = domain.DefaultSort
	}
	v.Set(KeySortBy, string(sort))

	setString(v, KeySearch, f.Search)
	setString(v, KeyLang, f.Lang)
	return v
}

// Identity - канонический ключ фильтра: одинаковые фильтры дают одинаковую строку.
func Identity(f domain.Filter) string {
	// url.Values.Encode сортирует ключи
	return RemoteQuery(f).Encode()
}
