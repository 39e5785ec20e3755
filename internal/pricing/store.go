package pricing

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/axelignis/adventure/internal/apperr"
)

// PgSource reads current prices from Postgres.
type PgSource struct {
	pool *pgxpool.Pool
}

func NewPgSource(pool *pgxpool.Pool) *PgSource {
	return &PgSource{pool: pool}
}

func (s *PgSource) ServicePrice(ctx context.Context, serviceID string) (int64, error) {
	var priceBase int64
	err := s.pool.QueryRow(ctx,
		`SELECT price_base FROM services WHERE id = $1`, serviceID,
	).Scan(&priceBase)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperr.NotFound("service")
	}
	if err != nil {
		return 0, apperr.Retryable("fetch service price", err)
	}
	return priceBase, nil
}

// AddOnPrices joins on service_id, so ids belonging to other services never
// make it into the result.
func (s *PgSource) AddOnPrices(ctx context.Context, serviceID string, addOnIDs []string) (map[string]int64, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, price FROM service_add_ons WHERE service_id = $1 AND id = ANY($2)`,
		serviceID, addOnIDs,
	)
	if err != nil {
		return nil, apperr.Retryable("fetch add-on prices", err)
	}
	defer rows.Close()

	prices := make(map[string]int64, len(addOnIDs))
	for rows.Next() {
		var id string
		var price int64
		if err := rows.Scan(&id, &price); err != nil {
			return nil, apperr.Retryable("scan add-on price", err)
		}
		prices[id] = price
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Retryable("iterate add-on prices", err)
	}
	return prices, nil
}
