package domain

import (
	"fmt"
	"hash/fnv"
	"math"
)

// RiskModel scores one source's contribution to an assessment. Implementations
// read only their own analysis from the bundle and must be pure: the same
// bundle always yields the same score.
//
// Score returns [ErrSourceAbsent] when the bundle does not carry the model's
// source, and a [*MissingFeatureError] when the analysis is present but lacks
// a required field.
type RiskModel interface {
	Score(b FeatureBundle) (float64, error)
}

// DefaultModels returns the heuristic model for each source. Callers may
// replace individual entries, such as a store-backed historical model,
// without touching the aggregator.
func DefaultModels() map[Source]RiskModel {
	return map[Source]RiskModel{
		SourceSatellite:  SatelliteModel{},
		SourceWeather:    WeatherModel{},
		SourceTerrain:    TerrainModel{},
		SourceHistorical: HistoricalModel{},
	}
}

// TerrainModel scores flood exposure from elevation and slope. Low-lying and
// flat terrain accumulates water; each rule contributes its term
// independently and the sum clamps to 100.
type TerrainModel struct{}

func (TerrainModel) Score(b FeatureBundle) (float64, error) {
	e := b.Elevation
	if e == nil {
		return 0, ErrSourceAbsent
	}
	if e.CenterElevation == nil {
		return 0, &MissingFeatureError{Source: SourceTerrain, Field: "center_elevation"}
	}
	if e.AvgElevation == nil {
		return 0, &MissingFeatureError{Source: SourceTerrain, Field: "avg_elevation"}
	}
	if e.AvgSlope == nil {
		return 0, &MissingFeatureError{Source: SourceTerrain, Field: "avg_slope"}
	}

	var risk float64
	switch {
	case *e.CenterElevation < 50:
		risk += 35
	case *e.CenterElevation < 100:
		risk += 15
	}
	switch {
	case *e.AvgSlope < 2:
		risk += 30
	case *e.AvgSlope < 5:
		risk += 15
	}
	return clampScore(risk), nil
}

// WeatherModel scores flood exposure from the forecast: total rainfall over
// the horizon, average humidity, and the heaviest single day.
type WeatherModel struct{}

func (WeatherModel) Score(b FeatureBundle) (float64, error) {
	w := b.Weather
	if w == nil {
		return 0, ErrSourceAbsent
	}
	if len(w.Days) == 0 {
		return 0, &MissingFeatureError{Source: SourceWeather, Field: "days"}
	}
	if w.AvgHumidity == nil {
		return 0, &MissingFeatureError{Source: SourceWeather, Field: "avg_humidity"}
	}

	var risk float64
	switch total := w.TotalRainfall(); {
	case total > 100:
		risk += 40
	case total > 50:
		risk += 25
	case total > 20:
		risk += 10
	}
	switch {
	case *w.AvgHumidity > 80:
		risk += 15
	case *w.AvgHumidity > 70:
		risk += 8
	}
	switch maxDaily := w.MaxDailyRainfall(); {
	case maxDaily > 50:
		risk += 20
	case maxDaily > 30:
		risk += 10
	}
	return clampScore(risk), nil
}

// SatelliteModel approximates water-body risk from the coverage percentage
// and its month-over-month trend. It stands in for an NDWI-based computation
// behind the same interface; falling coverage is ignored rather than
// credited.
type SatelliteModel struct{}

func (SatelliteModel) Score(b FeatureBundle) (float64, error) {
	s := b.Satellite
	if s == nil {
		return 0, ErrSourceAbsent
	}
	if s.WaterCoveragePct == nil {
		return 0, &MissingFeatureError{Source: SourceSatellite, Field: "water_coverage_pct"}
	}
	if s.ChangePct == nil {
		return 0, &MissingFeatureError{Source: SourceSatellite, Field: "change_pct"}
	}

	rising := *s.ChangePct
	if rising < 0 {
		rising = 0
	}
	return clampScore(*s.WaterCoveragePct*1.2 + rising*2), nil
}

// HistoricalModel is the deterministic placeholder for a real flood-frequency
// lookup. It hashes the location's grid cell into a stable baseline in
// [10,40), the range the production lookup is calibrated against.
type HistoricalModel struct{}

func (HistoricalModel) Score(b FeatureBundle) (float64, error) {
	if b.History == nil {
		return 0, ErrSourceAbsent
	}
	return BaselineForCell(GridCell(b.Location)), nil
}

// GridCell snaps coordinates to the 0.1 degree cell historical lookups key on.
func GridCell(c Coordinates) Coordinates {
	return Coordinates{
		Lat: math.Round(c.Lat*10) / 10,
		Lon: math.Round(c.Lon*10) / 10,
	}
}

// BaselineForCell derives the placeholder historical baseline for a grid
// cell. The FNV hash keeps neighbouring cells uncorrelated while staying
// reproducible across runs.
func BaselineForCell(cell Coordinates) float64 {
	h := fnv.New32a()
	fmt.Fprintf(h, "%.1f,%.1f", cell.Lat, cell.Lon)
	return 10 + float64(h.Sum32()%3000)/100
}
