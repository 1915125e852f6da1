package dto

// PageResponse wraps one page of content with pagination metadata.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
}

// NewPageResponse computes page metadata from the total element count.
func NewPageResponse[T any](content []T, total int64, page, size int) PageResponse[T] {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return PageResponse[T]{
		Content:       content,
		TotalPages:    totalPages,
		TotalElements: total,
		Size:          size,
		Number:        page,
	}
}
