package domain

import "strings"

// SortKey - ключ сортировки выдачи. Ведущий "-" означает убывание.
type SortKey string

const (
	SortNewest    SortKey = "-createdAt"
	SortOldest    SortKey = "createdAt"
	SortPriceAsc  SortKey = "price"
	SortPriceDesc SortKey = "-price"

	DefaultSort = SortNewest
)

// SortKeys - закрытый список допустимых ключей в порядке показа в интерфейсе.
var SortKeys = []SortKey{SortNewest, SortOldest, SortPriceAsc, SortPriceDesc}

// ParseSortKey проверяет, что строка входит в перечисление.
func ParseSortKey(s string) (SortKey, bool) {
	for _, k := range SortKeys {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

func (k SortKey) Descending() bool {
	return strings.HasPrefix(string(k), "-")
}

// Field возвращает имя поля без маркера направления.
func (k SortKey) Field() string {
	return strings.TrimPrefix(string(k), "-")
}

const (
	StatusActive = "active"

	PublicPageLimit = 9
	AdminPageLimit  = 12
)

// Filter - плоское описание поискового запроса.
// Пустая строка, nil-указатель и nil-срез означают "фасет не задан".
type Filter struct {
	TransactionType string
	PropertyType    string
	PropertyState   string
	EnergyClass     string
	Distrito        string
	Concelho        string
	Country         string

	// Только true или "не задано": запросить "не empreendimento" нельзя.
	IsEmpreendimento bool

	MinPrice *float64
	MaxPrice *float64

	Bedrooms  []int
	Bathrooms []int

	Status string
	Page   int
	Limit  int
	SortBy SortKey
	Search string
	Lang   string
}
