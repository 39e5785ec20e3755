package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetOptionsCache(t *testing.T) {
	t.Helper()
	optionsMu.Lock()
	optionsCache = nil
	optionsMu.Unlock()
	t.Cleanup(func() {
		optionsMu.Lock()
		optionsCache = nil
		optionsNow = time.Now
		optionsMu.Unlock()
	})
}

func TestOptionsCacheMissWhenEmpty(t *testing.T) {
	resetOptionsCache(t)

	_, ok := cachedOptions()
	assert.False(t, ok)
}

func TestOptionsCacheHitWithinTTL(t *testing.T) {
	resetOptionsCache(t)

	options := &FilterOptions{Categories: []EnumOption{{Value: "KAYAK", Count: 3}}}
	storeOptions(options)

	got, ok := cachedOptions()
	require.True(t, ok)
	assert.Same(t, options, got)
}

func TestOptionsCacheExpires(t *testing.T) {
	resetOptionsCache(t)

	now := time.Now()
	optionsNow = func() time.Time { return now }
	storeOptions(&FilterOptions{})

	optionsNow = func() time.Time { return now.Add(optionsTTL - time.Second) }
	_, ok := cachedOptions()
	assert.True(t, ok)

	optionsNow = func() time.Time { return now.Add(optionsTTL + time.Second) }
	_, ok = cachedOptions()
	assert.False(t, ok)
}
