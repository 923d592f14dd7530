package filtercodec

import (
	"strings"

	"listing-service/internal/core/domain"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DefaultLang = "pt"

var (
	supportedLangs = []string{"pt", "en", "fr"}
	langMatcher    = language.NewMatcher([]language.Tag{
		language.Portuguese,
		language.English,
		language.French,
	})
)

// NormalizeLang приводит тег локали ("pt-PT", "en_GB", "FR") к одному из
// поддерживаемых языков. Для неизвестной локали возвращается язык по умолчанию и false.
func NormalizeLang(raw string) (string, bool) {
	tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil {
		return DefaultLang, false
	}
	_, idx, conf := langMatcher.Match(tag)
	if conf == language.No {
		return DefaultLang, false
	}
	return supportedLangs[idx], true
}

var sortLabels = map[string]map[domain.SortKey]string{
	"pt": {
		domain.SortNewest:    "Mais recentes",
		domain.SortOldest:    "Mais antigos",
		domain.SortPriceAsc:  "Preço mais baixo",
		domain.SortPriceDesc: "Preço mais alto",
	},
	"en": {
		domain.SortNewest:    "Newest",
		domain.SortOldest:    "Oldest",
		domain.SortPriceAsc:  "Lowest price",
		domain.SortPriceDesc: "Highest price",
	},
	"fr": {
		domain.SortNewest:    "Plus récents",
		domain.SortOldest:    "Plus anciens",
		domain.SortPriceAsc:  "Prix le plus bas",
		domain.SortPriceDesc: "Prix le plus élevé",
	},
}

type SortOption struct {
	Key   domain.SortKey
	Label string
}

// SortOptions - пункты выпадающего списка сортировки на нужном языке.
func SortOptions(lang string) []SortOption {
	labels := labelsFor(lang)
	opts := make([]SortOption, 0, len(domain.SortKeys))
	for _, k := range domain.SortKeys {
		opts = append(opts, SortOption{Key: k, Label: labels[k]})
	}
	return opts
}

func SortLabel(key domain.SortKey, lang string) string {
	return labelsFor(lang)[key]
}

// SortKeyFromLabel - обратное отображение "Highest price" -> "-price".
// Регистр не учитывается; сначала ищем в указанном языке, потом во всех.
func SortKeyFromLabel(label, lang string) (domain.SortKey, bool) {
	want := fold(strings.TrimSpace(label))
	if want == "" {
		return "", false
	}
	if k, ok := findLabel(labelsFor(lang), want); ok {
		return k, true
	}
	for _, l := range supportedLangs {
		if k, ok := findLabel(sortLabels[l], want); ok {
			return k, true
		}
	}
	return "", false
}

func findLabel(labels map[domain.SortKey]string, folded string) (domain.SortKey, bool) {
	for k, l := range labels {
		if fold(l) == folded {
			return k, true
		}
	}
	return "", false
}

// Caser хранит состояние, поэтому создаётся на каждый вызов.
func fold(s string) string {
	return cases.Fold().String(s)
}

func labelsFor(lang string) map[domain.SortKey]string {
	if l, ok := sortLabels[lang]; ok {
		return l
	}
	normalized, _ := NormalizeLang(lang)
	return sortLabels[normalized]
}
