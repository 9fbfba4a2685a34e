package models

// Page is one page of a counted listing. Page numbers start at 0.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPage wraps content fetched with the given page and size.
func NewPage[T any](content []T, page, size int, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return &Page[T]{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}
}

// Slice is one page of a listing that is not counted; HasNext tells whether
// another page follows.
type Slice[T any] struct {
	Content          []T  `json:"content"`
	Page             int  `json:"page"`
	Size             int  `json:"size"`
	NumberOfElements int  `json:"numberOfElements"`
	HasNext          bool `json:"hasNext"`
	First            bool `json:"first"`
}

// NewSlice wraps content fetched with the given page and size.
func NewSlice[T any](content []T, page, size int, hasNext bool) *Slice[T] {
	if content == nil {
		content = []T{}
	}
	return &Slice[T]{
		Content:          content,
		Page:             page,
		Size:             size,
		NumberOfElements: len(content),
		HasNext:          hasNext,
		First:            page == 0,
	}
}
