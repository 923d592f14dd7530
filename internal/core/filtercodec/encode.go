package filtercodec

import (
	"net/url"
	"strconv"
	"strings"

	"listing-service/internal/core/domain"
)

// Encode - обратное к Decode: незаданные фасеты, первая страница, сортировка
// и язык по умолчанию в строку не попадают. limit не пишется никогда.
func Encode(f domain.Filter, view View) url.Values {
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
	setString(v, KeyBedrooms, JoinInts(f.Bedrooms))
	setString(v, KeyBathrooms, JoinInts(f.Bathrooms))

	if view.StatusFromQuery {
		setString(v, KeyStatus, f.Status)
	}
	if f.Page > 1 {
		v.Set(KeyPage, strconv.Itoa(f.Page))
	}
	if f.SortBy != "" && f.SortBy != domain.DefaultSort {
		v.Set(KeySortBy, string(f.SortBy))
	}
	setString(v, KeySearch, f.Search)
	if f.Lang != "" && f.Lang != DefaultLang {
		v.Set(KeyLang, f.Lang)
	}

	return v
}

func setString(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

// JoinInts -> "2,3,4"; пустой срез -> "".
func JoinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
