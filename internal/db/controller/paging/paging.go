// Package paging pages gorm list queries.
package paging

import (
	"fmt"

	"gorm.io/gorm"
)

const (
	// DefaultLimit is used when no or a non-positive limit is requested.
	DefaultLimit = 10
	// MaxLimit caps the page size.
	MaxLimit = 100
)

// Page is a 1 based page request.
type Page struct {
	Page  int `query:"page" json:"page"`
	Limit int `query:"limit" json:"limit"`
}

// Normalize applies defaults to non-positive values and caps the limit.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}

	switch {
	case p.Limit < 1:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}

	return p
}

// Meta describes the returned page.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// Result is one page of rows.
type Result[T any] struct {
	Data       []T  `json:"data"`
	Pagination Meta `json:"pagination"`
}

// Find counts the rows matched by query, then loads the requested page into
// a Result. query must already carry the filters and the model. preloads only
// apply to the page query.
func Find[T any](query *gorm.DB, page Page, order string, preloads ...string) (Result[T], error) {
	page = page.Normalize()

	res := Result[T]{Data: []T{}}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return res, fmt.Errorf("failed to count rows: %w", err)
	}

	rows := query.Session(&gorm.Session{})
	for _, p := range preloads {
		rows = rows.Preload(p)
	}

	if err := rows.
		Order(order).
		Offset((page.Page - 1) * page.Limit).
		Limit(page.Limit).
		Find(&res.Data).Error; err != nil {
		return res, fmt.Errorf("failed to load page %d: %w", page.Page, err)
	}

	res.Pagination = Meta{
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: int((total + int64(page.Limit) - 1) / int64(page.Limit)),
	}

	return res, nil
}
