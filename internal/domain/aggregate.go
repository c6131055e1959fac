package domain

import (
	"errors"
	"fmt"
	"log/slog"
)

// Factor is one source's contribution as reported back to the caller for
// transparency. Unavailable marks a source that was supplied but failed its
// required-field checks; it carries no score and no weight.
type Factor struct {
	Score       float64  `json:"score"`
	Weight      float64  `json:"weight"`
	Unavailable bool     `json:"unavailable,omitempty"`
	Details     []string `json:"details,omitempty"`
}

// AggregateResult holds the combined score, its classification, and the
// per-source breakdown.
type AggregateResult struct {
	Score    float64
	Level    Level
	Factors  map[Source]Factor
	Scored   int // sources that produced a usable score
	Degraded int // supplied sources dropped for missing fields
}

// Aggregator combines per-source model scores under the fixed weighting
// scheme. It holds no request state and is safe for concurrent use.
type Aggregator struct {
	models map[Source]RiskModel
	logger *slog.Logger
}

// NewAggregator creates an Aggregator. Pass nil models to use the heuristic
// defaults.
func NewAggregator(models map[Source]RiskModel, logger *slog.Logger) *Aggregator {
	if models == nil {
		models = DefaultModels()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{models: models, logger: logger}
}

// Aggregate scores each supplied source, folds the weighted sum, applies the
// sensitivity multiplier, and classifies the result. A source that fails its
// required-field checks degrades to unavailable instead of failing the whole
// request; the omission is logged and recorded in the factor map.
func (a *Aggregator) Aggregate(b FeatureBundle, sensitivity Sensitivity) (AggregateResult, error) {
	res := AggregateResult{Factors: make(map[Source]Factor, len(SourceOrder))}

	var weighted float64
	for _, src := range SourceOrder {
		model, ok := a.models[src]
		if !ok {
			continue
		}

		score, err := model.Score(b)
		if errors.Is(err, ErrSourceAbsent) {
			continue
		}
		var missing *MissingFeatureError
		if errors.As(err, &missing) {
			a.logger.Warn("source degraded to unavailable",
				"source", src,
				"field", missing.Field,
			)
			res.Factors[src] = Factor{Unavailable: true}
			res.Degraded++
			continue
		}
		if err != nil {
			return AggregateResult{}, fmt.Errorf("score %s: %w", src, err)
		}

		res.Factors[src] = Factor{
			Score:   score,
			Weight:  src.Weight(),
			Details: factorDetails(src, b),
		}
		res.Scored++
		weighted += score * src.Weight()
	}

	res.Score = clampScore(weighted * sensitivity.Multiplier())
	res.Level = LevelForScore(res.Score)
	return res, nil
}

// factorDetails surfaces observational notes for a source that scored. The
// notes describe the inputs, not the model, so they apply to any RiskModel
// variant.
func factorDetails(src Source, b FeatureBundle) []string {
	switch src {
	case SourceTerrain:
		return terrainDetails(b.Elevation)
	case SourceSatellite:
		return satelliteDetails(b.Satellite)
	default:
		return nil
	}
}

// terrainDetails labels the topography and flags depressions and coastal
// exposure. Only called after the terrain model scored, so fields are set.
func terrainDetails(e *ElevationProfile) []string {
	center, avg, slope := *e.CenterElevation, *e.AvgElevation, *e.AvgSlope

	details := []string{"terrain: " + classifyTerrain(slope, center)}
	if center < avg-20 {
		details = append(details, "location sits in a depression below the surrounding area")
	}
	if center < 10 {
		details = append(details, "near sea level, exposed to coastal flooding")
	}
	return details
}

// classifyTerrain labels the topography from slope (degrees) and elevation.
func classifyTerrain(slope, elevation float64) string {
	switch {
	case elevation < 10:
		return "coastal plain"
	case slope < 2:
		return "flat lowland"
	case slope < 5:
		return "rolling hills"
	case slope < 10:
		return "hilly terrain"
	default:
		return "mountainous"
	}
}

// satelliteDetails flags high or rising water coverage.
func satelliteDetails(s *SatelliteAnalysis) []string {
	var details []string
	if *s.WaterCoveragePct > 30 {
		details = append(details, fmt.Sprintf("high water coverage (%.1f%%)", *s.WaterCoveragePct))
	}
	if *s.ChangePct > 5 {
		details = append(details, fmt.Sprintf("water coverage up %.1f%% month over month", *s.ChangePct))
	}
	return details
}
