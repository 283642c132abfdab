package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ehr/consultreport/internal/config"
	"github.com/ehr/consultreport/internal/domain/consultation"
	"github.com/ehr/consultreport/internal/platform/reporting"
	"github.com/ehr/consultreport/internal/platform/synth"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "consult-report",
		Short:         "Descriptive statistics over a consultation export",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(measuresCmd())
	rootCmd.AddCommand(generateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute the statistics battery over a JSON export",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyReportFlags(cmd, cfg)
			if err := cfg.RequireInput(); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			measures, _ := cmd.Flags().GetStringSlice("measure")

			logger := newLogger(cfg)
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runReport(ctx, cfg, measures, cmd.OutOrStdout(), logger)
		},
	}
	cmd.Flags().StringP("input", "i", "", "Path to the JSON export (overrides CONSULT_INPUT)")
	cmd.Flags().StringP("format", "f", "", "Output format: text, json or yaml (overrides REPORT_FORMAT)")
	cmd.Flags().StringSliceP("measure", "m", nil, "Measure IDs to evaluate (default: all)")
	cmd.Flags().Int("top", 0, "Entries in top-N rankings (overrides REPORT_TOP_N)")
	cmd.Flags().Int("reference-year", 0, "Year ages are computed against (overrides REFERENCE_YEAR)")
	return cmd
}

func applyReportFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input, _ = flags.GetString("input")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("top") {
		cfg.TopN, _ = flags.GetInt("top")
	}
	if flags.Changed("reference-year") {
		cfg.ReferenceYear, _ = flags.GetInt("reference-year")
	}
}

// runReport loads the export, evaluates the measures and renders the report.
func runReport(ctx context.Context, cfg *config.Config, measures []string, out io.Writer, logger zerolog.Logger) error {
	svc := consultation.NewService(consultation.NewEncounterRepoJSON(cfg.Input), logger)
	ds, err := svc.Load(ctx)
	if err != nil {
		return err
	}

	gen := reporting.NewGenerator(logger, reporting.Options{
		TopN:          cfg.TopN,
		SummaryRows:   cfg.SummaryRows,
		ReferenceYear: cfg.ReferenceYear,
	})
	report, err := gen.Run(ctx, svc.Source(), ds, measures)
	if err != nil {
		return err
	}
	return reporting.Render(out, report, cfg.Format)
}

func measuresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "measures",
		Short: "List the available measures",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listMeasures(cmd.OutOrStdout())
		},
	}
}

func listMeasures(out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
	for _, m := range reporting.PredefinedMeasures {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ID, m.Name, m.Description)
	}
	return tw.Flush()
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic consultation export",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			out, _ := cmd.Flags().GetString("out")
			opts := synth.DefaultOptions()
			opts.Encounters, _ = cmd.Flags().GetInt("encounters")
			opts.Seed, _ = cmd.Flags().GetUint64("seed")
			opts.MaxMedicines, _ = cmd.Flags().GetInt("max-medicines")
			if opts.Encounters <= 0 {
				return fmt.Errorf("--encounters must be positive, got %d", opts.Encounters)
			}

			encounters := synth.Generate(opts)
			if err := synth.WriteFile(out, encounters); err != nil {
				return err
			}
			logger.Info().Str("path", out).Int("encounters", len(encounters)).Uint64("seed", opts.Seed).Msg("synthetic export written")
			return nil
		},
	}
	defaults := synth.DefaultOptions()
	cmd.Flags().StringP("out", "o", "", "Path of the export to write")
	cmd.Flags().Int("encounters", defaults.Encounters, "Number of encounters to generate")
	cmd.Flags().Uint64("seed", defaults.Seed, "Random seed")
	cmd.Flags().Int("max-medicines", defaults.MaxMedicines, "Maximum medicines per encounter")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

// newLogger writes to stderr so stdout carries only the report.
func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}
