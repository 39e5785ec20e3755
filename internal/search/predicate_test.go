package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axelignis/adventure/internal/catalog"
)

func int64p(v int64) *int64 { return &v }

func float64p(v float64) *float64 { return &v }

func TestBuildAlwaysAppliesVisibility(t *testing.T) {
	pr := build(Params{})

	assert.Equal(t, "s.status = 'APPROVED' AND s.verified = TRUE", pr.whereSQL())
	assert.Empty(t, pr.args)
	assert.Empty(t, pr.queryPh)
}

func TestBuildMembershipWithinDimension(t *testing.T) {
	pr := build(Params{Filters: Filters{
		Categories: []catalog.Category{catalog.CategoryKayak, catalog.CategoryRafting},
	}})

	assert.Contains(t, pr.whereSQL(), "s.category IN ($1, $2)")
	assert.Equal(t, []any{"KAYAK", "RAFTING"}, pr.args)
}

func TestBuildDimensionsANDCombined(t *testing.T) {
	pr := build(Params{Filters: Filters{
		Categories:   []catalog.Category{catalog.CategoryKayak},
		Regions:      []string{"r1", "r2"},
		Difficulties: []catalog.Difficulty{catalog.DifficultyBasico},
		Durations:    []catalog.Duration{catalog.DurationMultiDia},
	}})

	where := pr.whereSQL()
	assert.Contains(t, where, "s.category IN ($1)")
	assert.Contains(t, where, "s.region_id IN ($2, $3)")
	assert.Contains(t, where, "s.difficulty IN ($4)")
	assert.Contains(t, where, "s.duration IN ($5)")
	// Two visibility clauses plus one clause per requested dimension.
	assert.Len(t, strings.Split(where, " AND "), 6)
	assert.Equal(t, []any{"KAYAK", "r1", "r2", "BASICO", "MULTI_DIA"}, pr.args)
}

func TestBuildPriceAndRatingBounds(t *testing.T) {
	pr := build(Params{Filters: Filters{
		PriceMin:  int64p(10000),
		PriceMax:  int64p(90000),
		MinRating: float64p(4.5),
	}})

	where := pr.whereSQL()
	assert.Contains(t, where, "s.price_base >= $1")
	assert.Contains(t, where, "s.price_base <= $2")
	assert.Contains(t, where, "s.rating >= $3")
	assert.Equal(t, []any{int64(10000), int64(90000), 4.5}, pr.args)
}

func TestBuildTextQueryIsAlsoAFilter(t *testing.T) {
	pr := build(Params{Query: "kayak lago"})

	require.Equal(t, "$1", pr.queryPh)
	assert.Contains(t, pr.whereSQL(), "@@ websearch_to_tsquery('spanish', unaccent($1))")
	assert.Equal(t, []any{"kayak lago"}, pr.args)
}

func TestBuildBlankQueryMeansDefaultMode(t *testing.T) {
	pr := build(Params{Query: "   "})

	assert.Empty(t, pr.queryPh)
	assert.NotContains(t, pr.whereSQL(), "websearch_to_tsquery")
}

func TestCountAndFetchShareTheSamePredicate(t *testing.T) {
	params := Params{
		Query: "rafting",
		Filters: Filters{
			Categories: []catalog.Category{catalog.CategoryRafting},
			PriceMax:   int64p(50000),
			MinRating:  float64p(4.0),
		},
	}
	pr := build(params)

	countQuery, countArgs := pr.countSQL()
	fetchQuery, fetchArgs := pr.fetchSQL(12, 0)

	// Identical WHERE text in both queries, by construction.
	where := pr.whereSQL()
	assert.Contains(t, countQuery, "WHERE "+where)
	assert.Contains(t, fetchQuery, "WHERE "+where)

	// Fetch args are the count args plus limit and offset, nothing else.
	require.Len(t, fetchArgs, len(countArgs)+2)
	assert.Equal(t, countArgs, fetchArgs[:len(countArgs)])
	assert.Equal(t, 12, fetchArgs[len(fetchArgs)-2])
	assert.Equal(t, 0, fetchArgs[len(fetchArgs)-1])
}

func TestFetchSQLTextModeRanking(t *testing.T) {
	pr := build(Params{Query: "kayak"})
	query, args := pr.fetchSQL(12, 12)

	assert.Contains(t, query, "ts_rank_cd")
	assert.Contains(t, query, "(COALESCE(s.rating, 0) * 0.1)")
	assert.Contains(t, query, "ORDER BY rank DESC, s.created_at DESC")
	// Query term placeholder reused in rank and match; limit/offset follow.
	assert.Contains(t, query, "LIMIT $2 OFFSET $3")
	assert.Equal(t, []any{"kayak", 12, 12}, args)
}

func TestFetchSQLDefaultModeOrdering(t *testing.T) {
	pr := build(Params{})
	query, args := pr.fetchSQL(12, 0)

	assert.Contains(t, query, "ORDER BY s.featured DESC, s.rating DESC NULLS LAST, s.created_at DESC")
	assert.NotContains(t, query, "ts_rank_cd")
	assert.Contains(t, query, "LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{12, 0}, args)
}

func TestCountSQLHasNoPagination(t *testing.T) {
	pr := build(Params{Filters: Filters{Regions: []string{"r1"}}})
	query, args := pr.countSQL()

	assert.NotContains(t, query, "LIMIT")
	assert.NotContains(t, query, "OFFSET")
	assert.Equal(t, []any{"r1"}, args)
}
