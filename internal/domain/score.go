package domain

// Source identifies one category of observational input.
type Source string

const (
	SourceSatellite  Source = "satellite"
	SourceWeather    Source = "weather"
	SourceTerrain    Source = "terrain"
	SourceHistorical Source = "historical"
)

// SourceOrder fixes iteration order wherever per-source output must be
// deterministic, such as conditional recommendations.
var SourceOrder = []Source{SourceSatellite, SourceWeather, SourceTerrain, SourceHistorical}

// sourceWeights is the fixed weighting scheme. Weights sum to 1.0 when all
// four sources are present; absent sources contribute nothing.
var sourceWeights = map[Source]float64{
	SourceSatellite:  0.25,
	SourceWeather:    0.35,
	SourceTerrain:    0.25,
	SourceHistorical: 0.15,
}

// Weight returns the fixed aggregation weight for the source.
func (s Source) Weight() float64 { return sourceWeights[s] }

// Level is the discrete classification of a risk score.
type Level string

const (
	LevelHigh   Level = "HIGH"
	LevelMedium Level = "MEDIUM"
	LevelLow    Level = "LOW"
)

// LevelForScore classifies a score against the fixed 70/40 thresholds,
// inclusive on the high side. Sensitivity moves the score, never these
// boundaries.
func LevelForScore(score float64) Level {
	switch {
	case score >= 70:
		return LevelHigh
	case score >= 40:
		return LevelMedium
	default:
		return LevelLow
	}
}

// clampScore bounds a risk score to [0,100].
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
