package models

// Pagination describes one page of an ordered result set.
type Pagination struct {
	Page    int
	PerPage int
	Total   int64
}

// NewPagination clamps page and perPage to at least 1.
func NewPagination(page, perPage int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	return Pagination{Page: page, PerPage: perPage, Total: total}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

func (p Pagination) LastPage() int {
	if p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

func (p Pagination) HasNext() bool {
	return p.Page < p.LastPage()
}

func (p Pagination) PrevPage() int {
	if !p.HasPrev() {
		return p.Page
	}
	return p.Page - 1
}

func (p Pagination) NextPage() int {
	if !p.HasNext() {
		return p.Page
	}
	return p.Page + 1
}
