package commission

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comissoes/internal/core"
)

func TestResolveRate(t *testing.T) {
	rates := tableOf(levelsTable())

	got, err := ResolveRate(rates, DefaultRole, "guardião")
	require.NoError(t, err)
	assert.Equal(t, 0.5, got)

	got, err = ResolveRate(rates, DefaultRole, " EXPLORADOR ")
	require.NoError(t, err)
	assert.Equal(t, 0.125, got)

	got, err = ResolveRate(rates, "Sales Manager", "Guardiao")
	require.NoError(t, err)
	assert.Equal(t, 0.1, got)
}

func TestLookupLevel(t *testing.T) {
	rates := tableOf(levelsTable())

	lr, err := LookupLevel(rates, DefaultRole, "GUARDIÃO")
	require.NoError(t, err)
	assert.Equal(t, core.LevelRate{Level: "Guardiao", Percentage: 0.5}, lr)

	_, err = LookupLevel(rates, DefaultRole, "Mestre")
	assert.ErrorIs(t, err, ErrLevelNotFound)
}

func TestResolveRate_Errors(t *testing.T) {
	rates := tableOf(levelsTable())

	_, err := ResolveRate(rates, DefaultRole, "Mestre")
	assert.True(t, errors.Is(err, ErrLevelNotFound), "got %v", err)

	_, err = ResolveRate(rates, DefaultRole, "Quebrado")
	assert.True(t, errors.Is(err, ErrMalformedPercentage), "got %v", err)

	_, err = ResolveRate(rates, "Closer", "Guardiao")
	assert.True(t, errors.Is(err, ErrMissingColumn), "got %v", err)

	_, err = ResolveRate(tableOf([][]string{{"Nivel", "Sales Executive"}, {"Guardiao", "50%"}}), DefaultRole, "Guardiao")
	assert.True(t, errors.Is(err, ErrMissingColumn), "got %v", err)
}

func TestResolveRate_FirstMatchWins(t *testing.T) {
	rates := tableOf([][]string{
		{"Niveis", "Sales Executive"},
		{"Guardiao", "40%"},
		{"guardião", "60%"},
	})
	got, err := ResolveRate(rates, DefaultRole, "Guardiao")
	require.NoError(t, err)
	assert.Equal(t, 0.4, got)
}

func TestResolveRate_SuggestsCloseLevel(t *testing.T) {
	rates := tableOf(levelsTable())
	_, err := ResolveRate(rates, DefaultRole, "Guardiaoo")
	require.ErrorIs(t, err, ErrLevelNotFound)
	assert.Contains(t, err.Error(), `did you mean "Guardiao"`)
}
