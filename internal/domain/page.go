package domain

// PageQuery describes a paginated, optionally filtered listing.
type PageQuery struct {
	Page        int
	Size        int
	Keyword     string
	WithDeleted bool
}

// Offset is the number of rows skipped before the requested page.
func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Size
}

// PageMeta is returned alongside listings.
type PageMeta struct {
	TotalData  int `json:"totalData"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page"`
	Size       int `json:"size"`
}

func NewPageMeta(count int, q PageQuery) PageMeta {
	pages := 0
	if q.Size > 0 {
		pages = (count + q.Size - 1) / q.Size
	}
	return PageMeta{TotalData: count, TotalPages: pages, Page: q.Page, Size: q.Size}
}
