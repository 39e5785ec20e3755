package pricing

import (
	"context"

	"github.com/axelignis/adventure/internal/apperr"
)

// CatalogSource supplies current catalog prices. AddOnPrices must only
// return add-ons that belong to the given service; ids from other services
// or unknown ids are simply absent from the map.
type CatalogSource interface {
	ServicePrice(ctx context.Context, serviceID string) (int64, error)
	AddOnPrices(ctx context.Context, serviceID string, addOnIDs []string) (map[string]int64, error)
}

// AddOnLine is one selected add-on with the price actually applied.
type AddOnLine struct {
	ID    string `json:"id"`
	Price int64  `json:"price"`
}

// Breakdown is the line-itemized quote. All amounts are integer CLP.
type Breakdown struct {
	ServiceTotal   int64       `json:"service_total"`
	AddOnsTotal    int64       `json:"add_ons_total"`
	Total          int64       `json:"total"`
	PricePerPerson int64       `json:"price_per_person"`
	Participants   int         `json:"participants"`
	AddOns         []AddOnLine `json:"add_ons"`
}

// Calculator produces deterministic, side-effect-free price breakdowns.
type Calculator struct {
	source CatalogSource
}

func NewCalculator(source CatalogSource) *Calculator {
	return &Calculator{source: source}
}

// Quote computes priceBase*participants plus the sum of the selected
// add-ons. Duplicate add-on ids are deduplicated; ids that do not belong to
// the service are dropped from the sum rather than failing, so a stale
// client selection never breaks pricing.
func (c *Calculator) Quote(ctx context.Context, serviceID string, participants int, addOnIDs []string) (*Breakdown, error) {
	if serviceID == "" {
		return nil, apperr.Validationf("service id is required")
	}
	if participants < 1 {
		return nil, apperr.Validationf("participants must be at least 1")
	}

	priceBase, err := c.source.ServicePrice(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	b := &Breakdown{
		PricePerPerson: priceBase,
		Participants:   participants,
		ServiceTotal:   priceBase * int64(participants),
		AddOns:         []AddOnLine{},
	}

	if ids := dedupe(addOnIDs); len(ids) > 0 {
		prices, err := c.source.AddOnPrices(ctx, serviceID, ids)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			price, ok := prices[id]
			if !ok {
				continue
			}
			b.AddOns = append(b.AddOns, AddOnLine{ID: id, Price: price})
			b.AddOnsTotal += price
		}
	}

	b.Total = b.ServiceTotal + b.AddOnsTotal
	return b, nil
}

// dedupe removes duplicate ids preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
