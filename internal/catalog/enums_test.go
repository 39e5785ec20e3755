package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, Category("SURF").Valid())
	assert.False(t, Category("kayak").Valid(), "vocabulary is case-sensitive")
	assert.False(t, Category("").Valid())
}

func TestDifficultyOrderEasiestFirst(t *testing.T) {
	assert.Equal(t, []Difficulty{
		DifficultyPrincipiante, DifficultyBasico, DifficultyIntermedio,
		DifficultyAvanzado, DifficultyExperto,
	}, Difficulties)
	assert.False(t, Difficulty("MEDIO").Valid())
}

func TestDurationOrderShortestFirst(t *testing.T) {
	assert.Equal(t, []Duration{DurationMedioDia, DurationDiaCompleto, DurationMultiDia}, Durations)
	assert.False(t, Duration("SEMANA").Valid())
}
