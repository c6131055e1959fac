package domain

import "time"

// defaultTimelineDays is the horizon projected when no forecast is supplied.
const defaultTimelineDays = 3

// TimelinePoint is one day of the projected risk trajectory.
type TimelinePoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Score float64 `json:"score"`
}

// GenerateTimeline projects the aggregate score across the forecast horizon.
// Heavy-rain days push above the baseline (+15 beyond 30mm, +8 beyond 15mm),
// each day clamped to 100. Without a forecast the baseline repeats for three
// days starting today; output ordering always matches input date ordering.
func GenerateTimeline(weather *WeatherForecast, baseline float64) []TimelinePoint {
	if weather == nil || len(weather.Days) == 0 {
		today := clock.Now().UTC()
		points := make([]TimelinePoint, defaultTimelineDays)
		for i := range points {
			points[i] = TimelinePoint{
				Date:  today.AddDate(0, 0, i).Format(time.DateOnly),
				Score: clampScore(baseline),
			}
		}
		return points
	}

	points := make([]TimelinePoint, len(weather.Days))
	for i, day := range weather.Days {
		points[i] = TimelinePoint{
			Date:  day.Date,
			Score: clampScore(baseline + rainfallBonus(day.RainfallMM)),
		}
	}
	return points
}

// rainfallBonus is the daily risk bump for forecast rain.
func rainfallBonus(mm float64) float64 {
	switch {
	case mm > 30:
		return 15
	case mm > 15:
		return 8
	default:
		return 0
	}
}
