package domain

import "math"

// MaxPage - наибольший номер страницы, для которого (page-1)*limit и page*limit
// ещё помещаются в int.
func MaxPage(limit int) int {
	if limit <= 0 {
		return math.MaxInt
	}
	return math.MaxInt / limit
}

// TotalPages = ceil(total/limit), но не меньше одной страницы:
// пустая выдача всё равно показывается как "страница 1 из 1".
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}

// DisplayRange возвращает номера первого и последнего показанных объектов
// ("показано 19-20 из 20"). Для пустой выдачи оба равны нулю.
func DisplayRange(page, limit, total int) (start, end int) {
	if total <= 0 {
		return 0, 0
	}
	if page < 1 {
		page = 1
	}
	page = min(page, MaxPage(limit))
	start = (page-1)*limit + 1
	end = min(page*limit, total)
	return start, end
}

// NavState - доступность кнопок "назад"/"вперёд".
func NavState(page, totalPages int) (prevDisabled, nextDisabled bool) {
	return page <= 1, page >= totalPages
}
