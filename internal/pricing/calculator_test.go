package pricing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axelignis/adventure/internal/apperr"
)

// fakeSource serves catalog prices from memory. Add-ons are keyed by
// service, matching the store-level join on service_id.
type fakeSource struct {
	services map[string]int64
	addOns   map[string]map[string]int64
}

func (f *fakeSource) ServicePrice(_ context.Context, serviceID string) (int64, error) {
	price, ok := f.services[serviceID]
	if !ok {
		return 0, apperr.NotFound("service")
	}
	return price, nil
}

func (f *fakeSource) AddOnPrices(_ context.Context, serviceID string, addOnIDs []string) (map[string]int64, error) {
	prices := make(map[string]int64)
	for _, id := range addOnIDs {
		if price, ok := f.addOns[serviceID][id]; ok {
			prices[id] = price
		}
	}
	return prices, nil
}

func newTestCalculator() *Calculator {
	return NewCalculator(&fakeSource{
		services: map[string]int64{
			"kayak-tour":   35000,
			"rafting-trip": 45000,
		},
		addOns: map[string]map[string]int64{
			"kayak-tour":   {"lunch": 5000, "photos": 12000},
			"rafting-trip": {"wetsuit": 8000},
		},
	})
}

func TestQuoteWithAddOn(t *testing.T) {
	b, err := newTestCalculator().Quote(context.Background(), "kayak-tour", 3, []string{"lunch"})
	require.NoError(t, err)

	assert.Equal(t, int64(105000), b.ServiceTotal)
	assert.Equal(t, int64(5000), b.AddOnsTotal)
	assert.Equal(t, int64(110000), b.Total)
	assert.Equal(t, int64(35000), b.PricePerPerson)
	assert.Equal(t, 3, b.Participants)
	assert.Equal(t, []AddOnLine{{ID: "lunch", Price: 5000}}, b.AddOns)
}

func TestQuoteWithoutAddOns(t *testing.T) {
	for participants := 1; participants <= 5; participants++ {
		b, err := newTestCalculator().Quote(context.Background(), "kayak-tour", participants, nil)
		require.NoError(t, err)

		want := int64(35000) * int64(participants)
		assert.Equal(t, want, b.ServiceTotal)
		assert.Zero(t, b.AddOnsTotal)
		assert.Equal(t, want, b.Total)
	}
}

func TestQuoteDeduplicatesAddOnIDs(t *testing.T) {
	calc := newTestCalculator()

	once, err := calc.Quote(context.Background(), "kayak-tour", 2, []string{"lunch"})
	require.NoError(t, err)
	twice, err := calc.Quote(context.Background(), "kayak-tour", 2, []string{"lunch", "lunch"})
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestQuoteExcludesForeignAddOns(t *testing.T) {
	// wetsuit belongs to rafting-trip; it silently drops out of a kayak quote.
	b, err := newTestCalculator().Quote(context.Background(), "kayak-tour", 2, []string{"lunch", "wetsuit", "does-not-exist"})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), b.AddOnsTotal)
	assert.Equal(t, []AddOnLine{{ID: "lunch", Price: 5000}}, b.AddOns)
	assert.Equal(t, int64(75000), b.Total)
}

func TestQuoteRequiresExistingService(t *testing.T) {
	_, err := newTestCalculator().Quote(context.Background(), "nope", 2, nil)
	var nf *apperr.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestQuoteRejectsBadInput(t *testing.T) {
	calc := newTestCalculator()

	var verr *apperr.ValidationError
	_, err := calc.Quote(context.Background(), "kayak-tour", 0, nil)
	assert.ErrorAs(t, err, &verr)

	_, err = calc.Quote(context.Background(), "kayak-tour", -2, nil)
	assert.ErrorAs(t, err, &verr)

	_, err = calc.Quote(context.Background(), "", 1, nil)
	assert.ErrorAs(t, err, &verr)
}

func TestQuoteIsDeterministic(t *testing.T) {
	calc := newTestCalculator()
	ids := []string{"photos", "lunch"}

	first, err := calc.Quote(context.Background(), "kayak-tour", 4, ids)
	require.NoError(t, err)
	second, err := calc.Quote(context.Background(), "kayak-tour", 4, ids)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(35000*4+5000+12000), first.Total)
}

func TestDedupePreservesOrder(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, dedupe([]string{"a", "b", "a", "c", "b"}))
	assert.Empty(t, dedupe(nil))
}
