package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/flood-risk-engine/internal/domain"
	"github.com/couchcryptid/flood-risk-engine/internal/history"
)

func newAssessCmd() *cobra.Command {
	var (
		bundlePath  string
		sensitivity string
		historyDB   string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Run a flood risk assessment for a feature bundle",
		Long: `Assess reads a feature bundle JSON document and prints the resulting
risk assessment. Pass "-" to read the bundle from stdin.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bundle, err := readBundle(bundlePath)
			if err != nil {
				return err
			}
			if sensitivity != "" {
				bundle.Sensitivity = sensitivity
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

			models := domain.DefaultModels()
			if historyDB != "" {
				store, err := history.Open(historyDB)
				if err != nil {
					return fmt.Errorf("open history database: %w", err)
				}
				defer store.Close()
				models[domain.SourceHistorical] = history.NewModel(store, nil, logger)
			}

			assessment, err := domain.NewEngine(models, logger).Assess(bundle)
			if err != nil {
				return err
			}

			switch output {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(assessment)
			case "human":
				printAssessment(cmd.OutOrStdout(), assessment)
				return nil
			default:
				return fmt.Errorf("unknown output format %q: must be json or human", output)
			}
		},
	}

	cmd.Flags().StringVarP(&bundlePath, "file", "f", "", "path to feature bundle JSON (use - for stdin)")
	cmd.Flags().StringVar(&sensitivity, "sensitivity", "", "override bundle sensitivity (low, medium, high)")
	cmd.Flags().StringVar(&historyDB, "history-db", "", "path to sqlite flood history database")
	cmd.Flags().StringVarP(&output, "output", "o", "human", "output format (json or human)")
	cmd.MarkFlagRequired("file") //nolint:errcheck // flag exists

	return cmd
}

func readBundle(path string) (domain.FeatureBundle, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.FeatureBundle{}, fmt.Errorf("read bundle: %w", err)
	}

	var bundle domain.FeatureBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return domain.FeatureBundle{}, fmt.Errorf("parse bundle: %w", err)
	}
	return bundle, nil
}

func printAssessment(w io.Writer, a domain.RiskAssessment) {
	fmt.Fprintf(w, "Location:    %.4f, %.4f\n", a.Location.Lat, a.Location.Lon)
	fmt.Fprintf(w, "Risk score:  %.1f\n", a.Score)
	fmt.Fprintf(w, "Risk level:  %s\n", levelColor(a.Level).Sprint(a.Level))
	fmt.Fprintf(w, "Sensitivity: %s\n", a.Sensitivity)
	fmt.Fprintf(w, "Confidence:  %.0f%%\n", a.Confidence*100)

	fmt.Fprintln(w, "\nFactors:")
	for _, src := range domain.SourceOrder {
		f, ok := a.Factors[src]
		if !ok {
			continue
		}
		if f.Unavailable {
			fmt.Fprintf(w, "  %-12s unavailable\n", src)
			continue
		}
		fmt.Fprintf(w, "  %-12s %5.1f (weight %.2f)\n", src, f.Score, f.Weight)
		for _, d := range f.Details {
			fmt.Fprintf(w, "               - %s\n", d)
		}
	}

	fmt.Fprintln(w, "\nTimeline:")
	for _, p := range a.Timeline {
		fmt.Fprintf(w, "  %s  %5.1f\n", p.Date, p.Score)
	}

	fmt.Fprintln(w, "\nRecommendations:")
	for _, r := range a.Recommendations {
		fmt.Fprintf(w, "  - %s\n", r)
	}
}

func levelColor(level domain.Level) *color.Color {
	switch level {
	case domain.LevelHigh:
		return color.New(color.FgRed, color.Bold)
	case domain.LevelMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}
