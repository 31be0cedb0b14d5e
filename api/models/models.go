package models

import "github.com/samber/lo"

// Flash message severities, matching the css classes in the templates.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
)

// FlashMessage is a one-shot status message shown on the next rendered page.
type FlashMessage struct {
	Severity string
	Message  string
}

// User is the identity stored in the session.
type User struct {
	ID       uint
	Username string
	IsAdmin  bool
}

// Recipe is the view model rendered by the templates.
type Recipe struct {
	ID          uint
	Title       string
	Ingredients string
	Steps       string
	PhotoURL    string
}

// Pagination describes one window of an offset-paginated result set.
type Pagination struct {
	Page    int
	PerPage int
	Total   int64
	Pages   []int
}

// NewPagination computes the page number list for the given total.
func NewPagination(page, perPage int, total int64) Pagination {
	pages := (total + int64(perPage) - 1) / int64(perPage)
	return Pagination{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   lo.RangeFrom(1, int(pages)),
	}
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < len(p.Pages) }
func (p Pagination) Prev() int     { return p.Page - 1 }
func (p Pagination) Next() int     { return p.Page + 1 }
