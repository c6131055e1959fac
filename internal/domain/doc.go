// Package domain implements the flood risk aggregation engine: it combines
// per-source risk measurements into a single 0-100 score, a discrete risk
// level, a per-day risk timeline, and an ordered list of recommended actions.
//
// # Sources and Weights
//
// Four observational sources feed an assessment, each scored 0-100 by its own
// [RiskModel] and folded into the aggregate under fixed weights:
//
//	satellite   0.25   water coverage and its month-over-month trend
//	weather     0.35   forecast rainfall and humidity
//	terrain     0.25   elevation and slope of the surrounding area
//	historical  0.15   flood frequency for the location's grid cell
//
// Weights sum to 1.0 when all sources are present. An absent source simply
// drops out of the weighted sum; the remaining weights are NOT renormalized.
// A thin bundle therefore scores lower and reports lower confidence instead
// of inflating the sources that remain.
//
// # Sensitivity
//
// The caller supplies a sensitivity (low, medium, high) that scales the
// aggregate by 0.8, 1.0, or 1.2 before clamping. It is a conservatism dial:
// per-source scores and the level thresholds never move with it.
//
// # Levels
//
// The aggregate classifies against fixed thresholds, inclusive on the high
// side:
//
//	HIGH    score >= 70
//	MEDIUM  score >= 40
//	LOW     score <  40
//
// # Degradation
//
// A source whose analysis is present but lacks a required field fails with a
// [MissingFeatureError]. The aggregator treats that source as unavailable:
// it contributes no weight, appears in the factor map with an unavailable
// marker, and lowers the assessment confidence. A bundle with no source
// analyses at all is rejected with [ErrEmptyBundle]; the historical baseline
// alone cannot support an assessment.
//
// # Determinism
//
// Every component here is a pure, single-pass function over its inputs. The
// only ambient input is time, drawn from an injectable clock (see [SetClock])
// so default timeline dates and assessment timestamps are reproducible in
// tests. The historical placeholder model hashes the location's grid cell
// rather than drawing random numbers.
package domain
