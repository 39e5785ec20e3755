package catalog

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/axelignis/adventure/internal/apperr"
	"github.com/axelignis/adventure/internal/db"
)

// RegionOption is a region with its count of visible services.
type RegionOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// EnumOption is an enum value with its count of visible services.
type EnumOption struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FilterOptions is the filter discovery payload. Counts reflect only
// approved, verified services. Regions without any visible service are
// omitted; categories/difficulties/durations report count 0 instead.
type FilterOptions struct {
	Regions      []RegionOption `json:"regions"`
	Categories   []EnumOption   `json:"categories"`
	Difficulties []EnumOption   `json:"difficulties"`
	Durations    []EnumOption   `json:"durations"`
}

// GetFilterOptions handles GET /search/filters.
func GetFilterOptions(c echo.Context) error {
	if options, ok := cachedOptions(); ok {
		return c.JSON(http.StatusOK, options)
	}

	options, err := loadFilterOptions(c.Request().Context())
	if err != nil {
		code, msg := apperr.Status(err)
		return c.JSON(code, echo.Map{"error": msg})
	}
	storeOptions(options)

	return c.JSON(http.StatusOK, options)
}

const visibleServices = `status = 'APPROVED' AND verified = TRUE`

func loadFilterOptions(ctx context.Context) (*FilterOptions, error) {
	options := &FilterOptions{
		Regions:    []RegionOption{},
		Categories: []EnumOption{},
	}

	rows, err := db.Conn.Query(ctx, `
        SELECT r.id, r.name, r.slug, COUNT(s.id)::int
        FROM regions r
        LEFT JOIN services s ON s.region_id = r.id AND s.status = 'APPROVED' AND s.verified = TRUE
        GROUP BY r.id, r.name, r.slug, r.sort_order
        HAVING COUNT(s.id) > 0
        ORDER BY r.sort_order, r.name`)
	if err != nil {
		return nil, apperr.Retryable("fetch region options", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r RegionOption
		if err := rows.Scan(&r.ID, &r.Name, &r.Slug, &r.Count); err != nil {
			return nil, apperr.Retryable("scan region option", err)
		}
		options.Regions = append(options.Regions, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Retryable("iterate region options", err)
	}

	catRows, err := db.Conn.Query(ctx, `
        SELECT category, COUNT(*)::int AS count
        FROM services
        WHERE `+visibleServices+`
        GROUP BY category
        ORDER BY count DESC`)
	if err != nil {
		return nil, apperr.Retryable("fetch category options", err)
	}
	defer catRows.Close()
	for catRows.Next() {
		var o EnumOption
		if err := catRows.Scan(&o.Value, &o.Count); err != nil {
			return nil, apperr.Retryable("scan category option", err)
		}
		options.Categories = append(options.Categories, o)
	}
	if err := catRows.Err(); err != nil {
		return nil, apperr.Retryable("iterate category options", err)
	}

	diffCounts, err := enumCounts(ctx, "difficulty")
	if err != nil {
		return nil, err
	}
	for _, d := range Difficulties {
		options.Difficulties = append(options.Difficulties, EnumOption{Value: string(d), Count: diffCounts[string(d)]})
	}

	durCounts, err := enumCounts(ctx, "duration")
	if err != nil {
		return nil, err
	}
	for _, d := range Durations {
		options.Durations = append(options.Durations, EnumOption{Value: string(d), Count: durCounts[string(d)]})
	}

	return options, nil
}

// enumCounts returns visible-service counts keyed by enum value for an enum
// column. Values with no rows are simply absent; callers fill in zeros in
// vocabulary order.
func enumCounts(ctx context.Context, column string) (map[string]int, error) {
	// column is one of our own identifiers, never caller input.
	rows, err := db.Conn.Query(ctx,
		`SELECT `+column+`, COUNT(*)::int FROM services WHERE `+visibleServices+` GROUP BY `+column)
	if err != nil {
		return nil, apperr.Retryable("fetch "+column+" options", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var value string
		var count int
		if err := rows.Scan(&value, &count); err != nil {
			return nil, apperr.Retryable("scan "+column+" option", err)
		}
		counts[value] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Retryable("iterate "+column+" options", err)
	}
	return counts, nil
}
