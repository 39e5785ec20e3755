package booking

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBookingNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ADV-\d{8}-[0-9A-F]{6}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		n := newBookingNumber()
		assert.Regexp(t, pattern, n)
		seen[n] = true
	}
	// Collisions in 50 draws would mean the suffix is not random.
	assert.Greater(t, len(seen), 45)
}
