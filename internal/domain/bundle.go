package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Sensitivity is the caller-supplied conservatism dial. It scales the
// aggregate score only; per-source scores and level thresholds never move
// with it.
type Sensitivity string

const (
	SensitivityLow    Sensitivity = "low"
	SensitivityMedium Sensitivity = "medium"
	SensitivityHigh   Sensitivity = "high"
)

// ParseSensitivity normalizes and validates a sensitivity value.
func ParseSensitivity(value string) (Sensitivity, error) {
	switch Sensitivity(strings.ToLower(strings.TrimSpace(value))) {
	case SensitivityLow:
		return SensitivityLow, nil
	case SensitivityMedium:
		return SensitivityMedium, nil
	case SensitivityHigh:
		return SensitivityHigh, nil
	default:
		return "", &InvalidSensitivityError{Value: value}
	}
}

// Multiplier returns the factor applied to the aggregate score.
func (s Sensitivity) Multiplier() float64 {
	switch s {
	case SensitivityLow:
		return 0.8
	case SensitivityHigh:
		return 1.2
	default:
		return 1.0
	}
}

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// SatelliteAnalysis carries the water-coverage summary an upstream imagery
// pipeline derived for the area. Required fields are pointers so an omitted
// field can be distinguished from a legitimate zero.
type SatelliteAnalysis struct {
	WaterCoveragePct *float64 `json:"water_coverage_pct"`
	ChangePct        *float64 `json:"change_pct"` // month-over-month coverage change
}

// ForecastDay is one day of the weather forecast series.
type ForecastDay struct {
	Date       string  `json:"date"` // YYYY-MM-DD
	RainfallMM float64 `json:"rainfall_mm"`
}

// WeatherForecast carries the per-day rainfall series and average humidity
// supplied by an upstream forecast provider. Day ordering is chronological
// and significant.
type WeatherForecast struct {
	Days        []ForecastDay `json:"days"`
	AvgHumidity *float64      `json:"avg_humidity"` // percent
}

// TotalRainfall sums the forecast rainfall across all days.
func (w WeatherForecast) TotalRainfall() float64 {
	var total float64
	for _, day := range w.Days {
		total += day.RainfallMM
	}
	return total
}

// MaxDailyRainfall returns the heaviest single forecast day.
func (w WeatherForecast) MaxDailyRainfall() float64 {
	var max float64
	for _, day := range w.Days {
		if day.RainfallMM > max {
			max = day.RainfallMM
		}
	}
	return max
}

// ElevationProfile summarizes the topography around the location.
type ElevationProfile struct {
	CenterElevation *float64 `json:"center_elevation"`
	AvgElevation    *float64 `json:"avg_elevation"`
	AvgSlope        *float64 `json:"avg_slope"` // degrees
}

// HistoricalContext opts the historical flood-frequency model into an
// assessment. Lookups key off the bundle location; LookbackYears bounds the
// record window for store-backed models (0 means the store default).
type HistoricalContext struct {
	LookbackYears int `json:"lookback_years,omitempty"`
}

// FeatureBundle is the complete set of per-source analyses submitted for one
// assessment. Absent sources are nil; their weight simply drops out of the
// aggregate rather than being redistributed. The bundle is owned by the
// caller and read-only to the engine.
type FeatureBundle struct {
	Satellite   *SatelliteAnalysis `json:"satellite,omitempty"`
	Weather     *WeatherForecast   `json:"weather,omitempty"`
	Elevation   *ElevationProfile  `json:"elevation,omitempty"`
	History     *HistoricalContext `json:"history,omitempty"`
	Location    Coordinates        `json:"location"`
	Sensitivity string             `json:"sensitivity"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks structural constraints (coordinate ranges) before scoring.
func (b FeatureBundle) Validate() error {
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBundle, err)
	}
	return nil
}
