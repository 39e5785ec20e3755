package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClampsPage(t *testing.T) {
	for _, page := range []int{0, -1, -100} {
		p := Params{Page: page, Limit: 12}
		p.Normalize()
		assert.Equal(t, 1, p.Page)
	}

	p := Params{Page: 7, Limit: 12}
	p.Normalize()
	assert.Equal(t, 7, p.Page)
}

func TestNormalizeLimitFallsBackToDefault(t *testing.T) {
	cases := map[int]int{
		0:            DefaultLimit,
		-3:           DefaultLimit,
		MaxLimit + 1: DefaultLimit,
		1:            1,
		12:           12,
		MaxLimit:     MaxLimit,
	}
	for in, want := range cases {
		p := Params{Page: 1, Limit: in}
		p.Normalize()
		assert.Equal(t, want, p.Limit, "limit %d", in)
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 12))
	assert.Equal(t, 1, TotalPages(1, 12))
	assert.Equal(t, 1, TotalPages(12, 12))
	assert.Equal(t, 2, TotalPages(13, 12))
	// 15 matching rows at limit 12: page 2 holds the last 3.
	assert.Equal(t, 2, TotalPages(15, 12))
}
