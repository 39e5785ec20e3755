package catalog

import (
	"sync"
	"time"
)

// Filter options change only when the catalog changes, so they are served
// from a short-lived in-process cache.

const optionsTTL = 5 * time.Minute

type optionsEntry struct {
	options   *FilterOptions
	fetchedAt time.Time
}

var (
	optionsMu    sync.RWMutex
	optionsCache *optionsEntry
	optionsNow   = time.Now
)

func cachedOptions() (*FilterOptions, bool) {
	optionsMu.RLock()
	defer optionsMu.RUnlock()
	if optionsCache != nil && optionsNow().Sub(optionsCache.fetchedAt) < optionsTTL {
		return optionsCache.options, true
	}
	return nil, false
}

func storeOptions(o *FilterOptions) {
	optionsMu.Lock()
	defer optionsMu.Unlock()
	optionsCache = &optionsEntry{options: o, fetchedAt: optionsNow()}
}
