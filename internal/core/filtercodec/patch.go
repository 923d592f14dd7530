package filtercodec

import (
	"net/url"
	"strconv"
)

// Patch меняет один параметр и оставляет остальные как были.
// Пустое value удаляет ключ. Смена сортировки сбрасывает страницу:
// при другом порядке прежний номер страницы теряет смысл.
func Patch(current url.Values, key, value string) url.Values {
	next := make(url.Values, len(current)+1)
	for k, vs := range current {
		next[k] = append([]string(nil), vs...)
	}

	if value == "" {
		next.Del(key)
	} else {
		next.Set(key, value)
	}

	if key == KeySortBy {
		next.Del(KeyPage)
	}
	return next
}

// PatchInts - Patch для мультивыбора (bedrooms, bathrooms).
func PatchInts(current url.Values, key string, values []int) url.Values {
	return Patch(current, key, JoinInts(values))
}

// WithPage - ссылка на другую страницу той же выдачи. Первая страница пишется без параметра.
func WithPage(current url.Values, page int) url.Values {
	if page <= 1 {
		return Patch(current, KeyPage, "")
	}
	return Patch(current, KeyPage, strconv.Itoa(page))
}
