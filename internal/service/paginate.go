package service

import "BrainrotDex/internal/model"

// DefaultPageSize: размер страницы по умолчанию.
const DefaultPageSize = 8

// PageSizes: допустимые размеры страницы.
var PageSizes = []int{4, 8, 12, 16}

// Page: одна страница объединённого списка.
type Page struct {
	Entries []model.Entry `json:"entries"`
	Total   int           `json:"total"`
	Page    int           `json:"page"`
	Size    int           `json:"size"`
	Pages   int           `json:"pages"`
}

// NormalizePageSize возвращает size, если он допустим, иначе DefaultPageSize.
func NormalizePageSize(size int) int {
	for _, s := range PageSizes {
		if s == size {
			return size
		}
	}
	return DefaultPageSize
}

// Paginate режет entries на страницы (нумерация с 1). Номер страницы зажимается в [1, pages].
func Paginate(entries []model.Entry, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(entries)
	pages := (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	out := make([]model.Entry, 0, end-start)
	out = append(out, entries[start:end]...)
	return Page{Entries: out, Total: total, Page: page, Size: size, Pages: pages}
}
