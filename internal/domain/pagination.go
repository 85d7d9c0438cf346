package domain

import "math"

// PageWindow selects the half-open range [Index*Size, Index*Size+Size).
// Index is zero-based.
type PageWindow struct {
	Index int `json:"page" query:"page"`
	Size  int `json:"page_size" query:"page_size"`
}

type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

func NewPaginatedResponse[T any](data []T, window PageWindow, totalItems int64) PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := 0
	if window.Size > 0 {
		totalPages = int((totalItems + int64(window.Size) - 1) / int64(window.Size))
	}

	return PaginatedResponse[T]{
		Data:       data,
		Page:       window.Index,
		PageSize:   window.Size,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    window.Index < totalPages-1,
		HasPrev:    window.Index > 0,
	}
}

func DefaultPageWindow() PageWindow {
	return PageWindow{
		Index: 0,
		Size:  20,
	}
}

func (p *PageWindow) Validate() {
	if p.Index < 0 {
		p.Index = 0
	}
	if p.Size < 1 {
		p.Size = 20
	}
	if p.Size > 100 {
		p.Size = 100
	}
	if limit := math.MaxInt / p.Size; p.Index > limit {
		p.Index = limit
	}
}

// Offset is the number of items before the window. It saturates at
// math.MaxInt instead of overflowing, so a far-out page is simply empty.
func (p PageWindow) Offset() int {
	if p.Index <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Index > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Index * p.Size
}
