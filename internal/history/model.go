package history

import (
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/couchcryptid/flood-risk-engine/internal/domain"
)

// clock supplies the current year for lookback windows; tests freeze it.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Model implements domain.RiskModel against a flood-frequency store. Cells
// without records, and lookup failures, fall back to the deterministic
// placeholder baseline so a thin database degrades rather than errors.
type Model struct {
	store   Lookup
	lookups *prometheus.CounterVec // labels: result={hit,miss,error}; may be nil
	logger  *slog.Logger
}

// NewModel creates a store-backed historical model. lookups may be nil.
func NewModel(store Lookup, lookups *prometheus.CounterVec, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	return &Model{store: store, lookups: lookups, logger: logger}
}

func (m *Model) Score(b domain.FeatureBundle) (float64, error) {
	if b.History == nil {
		return 0, domain.ErrSourceAbsent
	}

	cell := domain.GridCell(b.Location)
	sinceYear := 0
	if b.History.LookbackYears > 0 {
		sinceYear = clock.Now().UTC().Year() - b.History.LookbackYears
	}

	events, found, err := m.store.FloodEvents(cell, sinceYear)
	if err != nil {
		m.logger.Warn("history lookup failed, using placeholder baseline",
			"cell_lat", cell.Lat,
			"cell_lon", cell.Lon,
			"error", err,
		)
		m.count("error")
		return domain.BaselineForCell(cell), nil
	}
	if !found {
		m.count("miss")
		return domain.BaselineForCell(cell), nil
	}

	m.count("hit")
	return ScoreForEvents(events), nil
}

func (m *Model) count(result string) {
	if m.lookups != nil {
		m.lookups.WithLabelValues(result).Inc()
	}
}

// ScoreForEvents maps a recorded flood count to a risk score: 10 for a clean
// record, 8 more per event, capped at 90. The cap leaves headroom so the
// historical factor alone never saturates the aggregate.
func ScoreForEvents(events int) float64 {
	score := 10 + 8*float64(events)
	if score > 90 {
		return 90
	}
	return score
}
