package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/flood-risk-engine/internal/history"
)

func newSeedHistoryCmd() *cobra.Command {
	var (
		csvPath string
		dbPath  string
	)

	cmd := &cobra.Command{
		Use:   "seed-history",
		Short: "Load flood event records into the history database",
		Long: `Seed-history reads a CSV of flood event counts and upserts them into the
sqlite history database. Each row is lat,lon,year,events; coordinates are
snapped to their 0.1 degree grid cell. A header row is skipped if present.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := readHistoryCSV(csvPath)
			if err != nil {
				return err
			}

			store, err := history.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open history database: %w", err)
			}
			defer store.Close()

			if err := store.Seed(records); err != nil {
				return fmt.Errorf("seed history: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d records into %s\n", len(records), dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "path to CSV of lat,lon,year,events rows")
	cmd.Flags().StringVar(&dbPath, "db", "", "path to sqlite flood history database")
	cmd.MarkFlagRequired("csv") //nolint:errcheck // flag exists
	cmd.MarkFlagRequired("db")  //nolint:errcheck // flag exists

	return cmd
}

func readHistoryCSV(path string) ([]history.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 4

	var records []history.Record
	for line := 1; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if line == 1 && row[0] == "lat" {
			continue
		}

		rec, err := parseHistoryRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseHistoryRow(row []string) (history.Record, error) {
	lat, err := strconv.ParseFloat(row[0], 64)
	if err != nil {
		return history.Record{}, fmt.Errorf("invalid lat %q", row[0])
	}
	lon, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return history.Record{}, fmt.Errorf("invalid lon %q", row[1])
	}
	year, err := strconv.Atoi(row[2])
	if err != nil {
		return history.Record{}, fmt.Errorf("invalid year %q", row[2])
	}
	events, err := strconv.Atoi(row[3])
	if err != nil {
		return history.Record{}, fmt.Errorf("invalid events %q", row[3])
	}
	if events < 0 {
		return history.Record{}, fmt.Errorf("events must be non-negative, got %d", events)
	}
	return history.Record{Lat: lat, Lon: lon, Year: year, Events: events}, nil
}
