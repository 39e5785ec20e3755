package search

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/axelignis/adventure/internal/apperr"
)

const resultColumns = `s.id, s.slug, s.title, s.description, s.category, s.difficulty, s.duration,
       s.price_base, s.rating, s.review_count, s.cover_image,
       r.id, r.name, r.slug,
       c.id, c.name, c.slug,
       s.created_at`

const resultJoins = `FROM services s
       INNER JOIN regions r ON s.region_id = r.id
       INNER JOIN comunas c ON s.comuna_id = c.id`

// countSQL renders the count query over the shared predicate.
func (p *predicate) countSQL() (string, []any) {
	return "SELECT COUNT(*) FROM services s WHERE " + p.whereSQL(), p.args
}

// fetchSQL renders the paginated fetch query over the same predicate. Text
// mode ranks by relevance plus a small rating bonus; default mode surfaces
// featured listings, then rating with unrated rows last, then recency.
func (p *predicate) fetchSQL(limit, offset int) (string, []any) {
	args := append(append([]any(nil), p.args...), limit, offset)
	limitPh := fmt.Sprintf("$%d", len(p.args)+1)
	offsetPh := fmt.Sprintf("$%d", len(p.args)+2)

	var query string
	if p.queryPh != "" {
		rank := fmt.Sprintf(
			"ts_rank_cd(to_tsvector('spanish', unaccent(s.title || ' ' || s.description)), websearch_to_tsquery('spanish', unaccent(%s))) + (COALESCE(s.rating, 0) * 0.1)",
			p.queryPh,
		)
		query = fmt.Sprintf(`SELECT %s, %s AS rank
       %s
       WHERE %s
       ORDER BY rank DESC, s.created_at DESC
       LIMIT %s OFFSET %s`,
			resultColumns, rank, resultJoins, p.whereSQL(), limitPh, offsetPh)
	} else {
		query = fmt.Sprintf(`SELECT %s
       %s
       WHERE %s
       ORDER BY s.featured DESC, s.rating DESC NULLS LAST, s.created_at DESC
       LIMIT %s OFFSET %s`,
			resultColumns, resultJoins, p.whereSQL(), limitPh, offsetPh)
	}
	return query, args
}

// Run executes the count and the ranked fetch against the pool and returns
// one page of results plus the total ignoring pagination.
func Run(ctx context.Context, pool *pgxpool.Pool, params Params) (*Result, error) {
	params.Normalize()
	offset := (params.Page - 1) * params.Limit

	pr := build(params)

	countQuery, countArgs := pr.countSQL()
	var total int
	if err := pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, apperr.Retryable("count services", err)
	}

	result := &Result{
		Services:   []ServiceSummary{},
		Total:      total,
		Page:       params.Page,
		TotalPages: TotalPages(total, params.Limit),
	}
	if total == 0 {
		return result, nil
	}

	fetchQuery, fetchArgs := pr.fetchSQL(params.Limit, offset)
	rows, err := pool.Query(ctx, fetchQuery, fetchArgs...)
	if err != nil {
		return nil, apperr.Retryable("fetch services", err)
	}
	defer rows.Close()

	textMode := pr.queryPh != ""
	for rows.Next() {
		s, err := scanSummary(rows, textMode)
		if err != nil {
			return nil, apperr.Retryable("scan service row", err)
		}
		result.Services = append(result.Services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Retryable("iterate service rows", err)
	}

	return result, nil
}

func scanSummary(rows pgx.Rows, textMode bool) (ServiceSummary, error) {
	var s ServiceSummary
	dest := []any{
		&s.ID, &s.Slug, &s.Title, &s.Description, &s.Category, &s.Difficulty, &s.Duration,
		&s.PriceBase, &s.Rating, &s.ReviewCount, &s.CoverImage,
		&s.Region.ID, &s.Region.Name, &s.Region.Slug,
		&s.Comuna.ID, &s.Comuna.Name, &s.Comuna.Slug,
		&s.CreatedAt,
	}
	if textMode {
		var rank float64
		dest = append(dest, &rank)
	}
	if err := rows.Scan(dest...); err != nil {
		return ServiceSummary{}, err
	}
	return s, nil
}
