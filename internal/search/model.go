package search

import (
	"time"

	"github.com/axelignis/adventure/internal/catalog"
)

// DefaultLimit is the page size used when the caller does not pass one.
const DefaultLimit = 12

// MaxLimit caps the page size accepted from callers.
const MaxLimit = 100

// Filters is the transient multi-dimensional filter set. An empty slice in
// any dimension means no constraint on that dimension. Dimensions are
// OR-combined within themselves and AND-combined across each other.
type Filters struct {
	Categories   []catalog.Category
	Regions      []string
	Difficulties []catalog.Difficulty
	Durations    []catalog.Duration
	PriceMin     *int64
	PriceMax     *int64
	MinRating    *float64
}

// Params is a full search request.
type Params struct {
	Query   string
	Filters Filters
	Page    int
	Limit   int
}

// Normalize clamps pagination to sane values: pages below 1 become 1,
// out-of-range limits fall back to the default.
func (p *Params) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		p.Limit = DefaultLimit
	}
}

// ServiceSummary is the projection returned per result row.
type ServiceSummary struct {
	ID          string             `json:"id"`
	Slug        string             `json:"slug"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Category    catalog.Category   `json:"category"`
	Difficulty  catalog.Difficulty `json:"difficulty"`
	Duration    catalog.Duration   `json:"duration"`
	PriceBase   int64              `json:"price_base"`
	Rating      *float64           `json:"rating"`
	ReviewCount int                `json:"review_count"`
	CoverImage  *string            `json:"cover_image"`
	Region      catalog.Region     `json:"region"`
	Comuna      catalog.Comuna     `json:"comuna"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Result carries one page of summaries plus pagination metadata. Total is
// the count of all matching rows ignoring pagination.
type Result struct {
	Services   []ServiceSummary `json:"services"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
}

// TotalPages computes ceil(total/limit) without floating point.
func TotalPages(total, limit int) int {
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
