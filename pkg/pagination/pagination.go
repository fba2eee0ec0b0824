package pagination

import "strconv"

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 10
	// MaxLimit caps how many rows any page query can request.
	MaxLimit = 50
)

// Params holds page-number pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Page describes the window that was actually served.
type Page struct {
	Number  int  `json:"page"`
	Limit   int  `json:"limit"`
	HasPrev bool `json:"has_prev"`
	HasNext bool `json:"has_next"`
}

// Prev returns the previous page number.
func (p Page) Prev() int { return p.Number - 1 }

// Next returns the next page number.
func (p Page) Next() int { return p.Number + 1 }

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizePage clamps page numbers to start at 1.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// LimitWithBuffer returns the normalization result plus one to detect the next page.
func LimitWithBuffer(limit int) int {
	return NormalizeLimit(limit) + 1
}

// Offset returns the row offset for p.
func (p Params) Offset() int {
	return (NormalizePage(p.Page) - 1) * NormalizeLimit(p.Limit)
}

// Resolve builds the served Page given how many rows the buffered query returned.
func (p Params) Resolve(fetched int) Page {
	limit := NormalizeLimit(p.Limit)
	number := NormalizePage(p.Page)
	return Page{
		Number:  number,
		Limit:   limit,
		HasPrev: number > 1,
		HasNext: fetched > limit,
	}
}

// ParseParams reads raw page/limit strings, ignoring malformed values.
func ParseParams(page, limit string) Params {
	p, _ := strconv.Atoi(page)
	l, _ := strconv.Atoi(limit)
	return Params{Page: NormalizePage(p), Limit: NormalizeLimit(l)}
}
