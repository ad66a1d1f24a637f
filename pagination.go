package kitadi

const (
	DefaultPage  = 1
	DefaultLimit = 15
)

// PageMeta describes where a page sits inside the full result set.
type PageMeta struct {
	Total           int64 `json:"total"`
	Page            int   `json:"page"`
	Limit           int   `json:"limit"`
	Pages           int   `json:"pages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// Page is the paginated response envelope.
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

// NormalizePageParams applies defaults and floors for page/limit.
func NormalizePageParams(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return page, limit
}

// PageOffset converts 1-based page/limit into a row offset.
func PageOffset(page, limit int) int {
	return (page - 1) * limit
}

// NewPageMeta computes pagination metadata. Pages is ceil(total/limit).
func NewPageMeta(total int64, page, limit int) PageMeta {
	page, limit = NormalizePageParams(page, limit)

	pages := int((total + int64(limit) - 1) / int64(limit))

	return PageMeta{
		Total:           total,
		Page:            page,
		Limit:           limit,
		Pages:           pages,
		HasNextPage:     page < pages,
		HasPreviousPage: page > 1,
	}
}
