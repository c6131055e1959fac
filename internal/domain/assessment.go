package domain

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// RiskAssessment is the immutable terminal result of one assessment. It
// copies scores out of the bundle's analyses and never references them by
// identity.
type RiskAssessment struct {
	ID              string            `json:"id"`
	Location        Coordinates       `json:"location"`
	Score           float64           `json:"score"`
	Level           Level             `json:"level"`
	Sensitivity     Sensitivity       `json:"sensitivity"`
	Factors         map[Source]Factor `json:"factors"`
	Timeline        []TimelinePoint   `json:"timeline"`
	Recommendations []string          `json:"recommendations"`
	Confidence      float64           `json:"confidence"`
	GeneratedAt     time.Time         `json:"generated_at"`
}

// Engine assembles a complete assessment from a feature bundle. It holds no
// request state; a single Engine serves concurrent callers.
type Engine struct {
	agg    *Aggregator
	logger *slog.Logger
}

// NewEngine creates an Engine. Pass nil models to use the heuristic defaults.
func NewEngine(models map[Source]RiskModel, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		agg:    NewAggregator(models, logger),
		logger: logger,
	}
}

// Assess validates the bundle, scores and aggregates the sources, projects
// the timeline, and attaches recommendations and confidence. Invalid
// sensitivity and empty bundles fail before any scoring; a bundle whose
// every supplied source degrades has nothing left to aggregate and fails
// with ErrEmptyBundle as well.
func (e *Engine) Assess(b FeatureBundle) (RiskAssessment, error) {
	if err := b.Validate(); err != nil {
		return RiskAssessment{}, err
	}

	sensitivity, err := ParseSensitivity(b.Sensitivity)
	if err != nil {
		return RiskAssessment{}, err
	}

	if b.Satellite == nil && b.Weather == nil && b.Elevation == nil {
		return RiskAssessment{}, ErrEmptyBundle
	}

	agg, err := e.agg.Aggregate(b, sensitivity)
	if err != nil {
		return RiskAssessment{}, err
	}
	if agg.Scored == 0 {
		return RiskAssessment{}, ErrEmptyBundle
	}

	return RiskAssessment{
		ID:              uuid.NewString(),
		Location:        b.Location,
		Score:           agg.Score,
		Level:           agg.Level,
		Sensitivity:     sensitivity,
		Factors:         agg.Factors,
		Timeline:        GenerateTimeline(usableWeather(b, agg), agg.Score),
		Recommendations: Recommendations(agg.Level, agg.Factors),
		Confidence:      confidence(agg),
		GeneratedAt:     clock.Now().UTC(),
	}, nil
}

// usableWeather returns the forecast only when the weather source actually
// scored; a degraded forecast falls back to the flat default timeline.
func usableWeather(b FeatureBundle, agg AggregateResult) *WeatherForecast {
	f, ok := agg.Factors[SourceWeather]
	if !ok || f.Unavailable {
		return nil
	}
	return b.Weather
}

// confidence starts from the 0.85 model baseline and drops 0.15 for each of
// the four sources that is absent or degraded, floored at 0.3.
func confidence(agg AggregateResult) float64 {
	missing := len(SourceOrder) - agg.Scored
	c := 0.85 - 0.15*float64(missing)
	if c < 0.3 {
		c = 0.3
	}
	return c
}
