// Package history provides the store-backed variant of the historical
// flood-frequency risk model. Flood records live in a local sqlite database
// keyed by 0.1 degree grid cell and year; cells without records fall back to
// the deterministic placeholder baseline.
package history

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // pure-Go sqlite driver

	"github.com/couchcryptid/flood-risk-engine/internal/domain"
)

// Record is one grid cell's flood count for a single year.
type Record struct {
	Lat    float64
	Lon    float64
	Year   int
	Events int
}

const schema = `
CREATE TABLE IF NOT EXISTS flood_history (
	cell_lat REAL    NOT NULL,
	cell_lon REAL    NOT NULL,
	year     INTEGER NOT NULL,
	events   INTEGER NOT NULL,
	PRIMARY KEY (cell_lat, cell_lon, year)
);`

// Store reads and writes the flood-frequency table.
type Store struct {
	db *sql.DB
}

// Open opens the store at path, creating the schema if necessary.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// FloodEvents sums the recorded flood events for a grid cell from sinceYear
// onward (0 means the full record). The boolean is false when the cell has
// no rows in the window.
func (s *Store) FloodEvents(cell domain.Coordinates, sinceYear int) (int, bool, error) {
	var total sql.NullInt64
	err := s.db.QueryRow(
		`SELECT SUM(events) FROM flood_history
		 WHERE cell_lat = ? AND cell_lon = ? AND year >= ?`,
		cell.Lat, cell.Lon, sinceYear,
	).Scan(&total)
	if err != nil {
		return 0, false, fmt.Errorf("lookup flood events: %w", err)
	}
	if !total.Valid {
		return 0, false, nil
	}
	return int(total.Int64), true, nil
}

// Seed upserts records, snapping coordinates to their grid cell. Reseeding a
// (cell, year) pair replaces the previous count.
func (s *Store) Seed(records []Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.Prepare(
		`INSERT INTO flood_history (cell_lat, cell_lon, year, events)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (cell_lat, cell_lon, year) DO UPDATE SET events = excluded.events`,
	)
	if err != nil {
		return fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		cell := domain.GridCell(domain.Coordinates{Lat: r.Lat, Lon: r.Lon})
		if _, err := stmt.Exec(cell.Lat, cell.Lon, r.Year, r.Events); err != nil {
			return fmt.Errorf("seed cell (%.1f, %.1f): %w", cell.Lat, cell.Lon, err)
		}
	}
	return tx.Commit()
}
