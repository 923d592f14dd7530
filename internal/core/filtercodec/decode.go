package filtercodec

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"listing-service/internal/core/domain"
)

// Issue - значение параметра, которое не удалось разобрать и которое было проигнорировано.
type Issue struct {
	Key    string
	Value  string
	Reason string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s=%q: %s", i.Key, i.Value, i.Reason)
}

// Decode строит Filter по query-параметрам. Разбор мягкий: битые числа
// превращаются в "фасет не задан" и попадают в список Issue, ошибки не возвращаются.
func Decode(values url.Values, view View) (domain.Filter, []Issue) {
	d := &decoder{values: values, limit: view.Limit}

	f := domain.Filter{
		TransactionType: values.Get(KeyTransactionType),
		PropertyType:    values.Get(KeyPropertyType),
		PropertyState:   values.Get(KeyPropertyState),
		EnergyClass:     values.Get(KeyEnergyClass),
		Distrito:        values.Get(KeyDistrito),
		Concelho:        values.Get(KeyConcelho),
		Country:         values.Get(KeyCountry),

		// Только литерал "true"; "false" и всё прочее означает "не задано".
		IsEmpreendimento: values.Get(KeyIsEmpreendimento) == "true",

		MinPrice:  d.price(KeyMinPrice),
		MaxPrice:  d.price(KeyMaxPrice),
		Bedrooms:  d.intList(KeyBedrooms),
		Bathrooms: d.intList(KeyBathrooms),

		Status: view.Status,
		Page:   d.page(),
		Limit:  view.Limit,
		SortBy: d.sort(),
		Search: values.Get(KeySearch),
		Lang:   d.lang(),
	}

	if view.StatusFromQuery {
		if s := values.Get(KeyStatus); s != "" {
			f.Status = s
		}
	}

	return f, d.issues
}

type decoder struct {
	values url.Values
	limit  int
	issues []Issue
}

func (d *decoder) reject(key, value, reason string) {
	d.issues = append(d.issues, Issue{Key: key, Value: value, Reason: reason})
}

func (d *decoder) price(key string) *float64 {
	raw := d.values.Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		d.reject(key, raw, "not a number")
		return nil
	}
	if v < 0 {
		d.reject(key, raw, "must not be negative")
		return nil
	}
	return &v
}

func (d *decoder) page() int {
	raw := d.values.Get(KeyPage)
	if raw == "" {
		return 1
	}
	p, err := strconv.Atoi(raw)
	if err != nil || p < 1 {
		d.reject(KeyPage, raw, "must be a positive integer")
		return 1
	}
	if p > domain.MaxPage(d.limit) {
		d.reject(KeyPage, raw, "page is out of range")
		return 1
	}
	return p
}

// intList разбирает "2,3,4". Повторяющиеся ключи (bedrooms=2&bedrooms=3) тоже принимаются.
func (d *decoder) intList(key string) []int {
	var out []int
	for _, raw := range d.values[key] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil || n < 1 {
				d.reject(key, part, "must be a positive integer")
				continue
			}
			out = append(out, n)
		}
	}
	return out
}

func (d *decoder) sort() domain.SortKey {
	raw := d.values.Get(KeySortBy)
	if raw == "" {
		return domain.DefaultSort
	}
	key, ok := domain.ParseSortKey(raw)
	if !ok {
		d.reject(KeySortBy, raw, "unknown sort key")
		return domain.DefaultSort
	}
	return key
}

func (d *decoder) lang() string {
	raw := d.values.Get(KeyLang)
	if raw == "" {
		return DefaultLang
	}
	lang, ok := NormalizeLang(raw)
	if !ok {
		d.reject(KeyLang, raw, "unsupported locale")
	}
	return lang
}
