package search

import (
	"fmt"
	"strconv"
	"strings"
)

// predicate accumulates WHERE clauses and their positional args. Both the
// count query and the fetch query are rendered from the same instance, so
// their filter predicates cannot drift apart.
type predicate struct {
	clauses []string
	args    []any
	// queryPh holds the placeholder of the text-search term when a free-text
	// query is present, e.g. "$3". The fetch query reuses it in the rank
	// expression; Postgres allows the same $n more than once.
	queryPh string
}

// placeholder appends v to the arg list and returns its $n marker.
func (p *predicate) placeholder(v any) string {
	p.args = append(p.args, v)
	return "$" + strconv.Itoa(len(p.args))
}

func (p *predicate) where(clause string) {
	p.clauses = append(p.clauses, clause)
}

// compare adds "col op $n" for a single value.
func (p *predicate) compare(col, op string, v any) {
	p.where(col + " " + op + " " + p.placeholder(v))
}

// in adds a membership test over the submitted set: "col IN ($n, $n+1, ...)".
func (p *predicate) in(col string, vals []string) {
	if len(vals) == 0 {
		return
	}
	phs := make([]string, len(vals))
	for i, v := range vals {
		phs[i] = p.placeholder(v)
	}
	p.where(col + " IN (" + strings.Join(phs, ", ") + ")")
}

// matchClause is the spanish, accent-insensitive text match. It appears in
// the WHERE of both queries; a row with zero textual match is excluded
// entirely, rating can only reorder matching rows.
const matchClause = "to_tsvector('spanish', unaccent(s.title || ' ' || s.description)) @@ websearch_to_tsquery('spanish', unaccent(%s))"

// build compiles a Params value into the shared predicate. The fixed
// visibility predicate is always applied first.
func build(p Params) *predicate {
	pr := &predicate{}
	pr.where("s.status = 'APPROVED'")
	pr.where("s.verified = TRUE")

	f := p.Filters
	pr.in("s.category", asStrings(f.Categories))
	pr.in("s.region_id", f.Regions)
	pr.in("s.difficulty", asStrings(f.Difficulties))
	pr.in("s.duration", asStrings(f.Durations))

	if f.PriceMin != nil {
		pr.compare("s.price_base", ">=", *f.PriceMin)
	}
	if f.PriceMax != nil {
		pr.compare("s.price_base", "<=", *f.PriceMax)
	}
	if f.MinRating != nil {
		// NULL ratings never satisfy >=, so unrated services drop out here.
		pr.compare("s.rating", ">=", *f.MinRating)
	}

	if q := strings.TrimSpace(p.Query); q != "" {
		pr.queryPh = pr.placeholder(q)
		pr.where(fmt.Sprintf(matchClause, pr.queryPh))
	}

	return pr
}

func (p *predicate) whereSQL() string {
	return strings.Join(p.clauses, " AND ")
}

func asStrings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
