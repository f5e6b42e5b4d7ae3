package types

const (
	DefaultPageLimit = 10
	DefaultPage      = 1
)

// PageQuery carries 1-indexed pagination parameters for list endpoints.
// The zero value is not valid; use NewPageQuery to apply defaults.
type PageQuery struct {
	Limit int
	Page  int
}

func NewPageQuery(limit, page int) PageQuery {
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if page < 1 {
		page = DefaultPage
	}
	return PageQuery{Limit: limit, Page: page}
}

// Offset converts the 1-indexed page into a row offset.
func (p PageQuery) Offset() int {
	return p.Page*p.Limit - p.Limit
}
