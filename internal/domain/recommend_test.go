package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendationsBaseFloors(t *testing.T) {
	assert.GreaterOrEqual(t, len(Recommendations(LevelHigh, nil)), 5)
	assert.GreaterOrEqual(t, len(Recommendations(LevelMedium, nil)), 5)
	assert.GreaterOrEqual(t, len(Recommendations(LevelLow, nil)), 3)
}

func TestRecommendationsConditionalPerSource(t *testing.T) {
	factors := map[Source]Factor{
		SourceSatellite:  {Score: 80, Weight: 0.25},
		SourceWeather:    {Score: 75, Weight: 0.35},
		SourceTerrain:    {Score: 30, Weight: 0.25},
		SourceHistorical: {Score: 51, Weight: 0.15},
	}

	recs := Recommendations(LevelHigh, factors)

	base := len(baseRecommendations[LevelHigh])
	require.Len(t, recs, base+3)

	// Conditionals append after the base block in fixed source order.
	assert.Equal(t, conditionalRecommendations[SourceSatellite], recs[base])
	assert.Equal(t, conditionalRecommendations[SourceWeather], recs[base+1])
	assert.Equal(t, conditionalRecommendations[SourceHistorical], recs[base+2])
}

func TestRecommendationsThresholdIsExclusive(t *testing.T) {
	factors := map[Source]Factor{
		SourceWeather: {Score: 50, Weight: 0.35},
	}
	recs := Recommendations(LevelLow, factors)
	assert.Len(t, recs, len(baseRecommendations[LevelLow]))
}

func TestRecommendationsSkipUnavailableSources(t *testing.T) {
	factors := map[Source]Factor{
		SourceWeather: {Score: 90, Unavailable: true},
		SourceTerrain: {Score: 60, Weight: 0.25},
	}

	recs := Recommendations(LevelMedium, factors)

	base := len(baseRecommendations[LevelMedium])
	require.Len(t, recs, base+1)
	assert.Equal(t, conditionalRecommendations[SourceTerrain], recs[base])
}

func TestRecommendationsDoNotMutateBaseBlock(t *testing.T) {
	before := len(baseRecommendations[LevelLow])
	recs := Recommendations(LevelLow, map[Source]Factor{
		SourceWeather: {Score: 90, Weight: 0.35},
	})
	recs[0] = "mutated"
	assert.Len(t, baseRecommendations[LevelLow], before)
	assert.NotEqual(t, "mutated", baseRecommendations[LevelLow][0])
}
