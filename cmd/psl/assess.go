package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/psl/pkg/cli"
	"mercator-hq/psl/pkg/config"
	"mercator-hq/psl/pkg/history"
	"mercator-hq/psl/pkg/history/storage"
	"mercator-hq/psl/pkg/psl/execution"
)

var assessFlags struct {
	exec   string
	format string
	record bool
}

var assessCmd = &cobra.Command{
	Use:   "assess FILE",
	Short: "Score a PSL document",
	Long: `Parse, validate and score a PSL document.

The assessment reports CSR, HRR, PSL coverage and the 3C score, the
weighted quality score and its level (EXCELLENT, GOOD, FAIR or POOR).
CSR is computed against execution results loaded with --exec; without
them every constraint counts as unsatisfied.

Examples:
  # Assess a document
  psl assess borscht.psl

  # Assess against observed execution results
  psl assess borscht.psl --exec results.yaml

  # Record the assessment in the history store
  psl assess borscht.psl --record --format json`,
	Args: cobra.ExactArgs(1),
	RunE: assessDocument,
}

func init() {
	rootCmd.AddCommand(assessCmd)

	assessCmd.Flags().StringVarP(&assessFlags.exec, "exec", "e", "", "execution results file (YAML or JSON)")
	assessCmd.Flags().StringVar(&assessFlags.format, "format", "text", "output format: text, json")
	assessCmd.Flags().BoolVar(&assessFlags.record, "record", false, "record the assessment in history (default: history.enabled)")
}

func assessDocument(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	out := io.Writer(os.Stdout)
	if cmd != nil {
		ctx = cmd.Context()
		out = cmd.OutOrStdout()
	}

	return runAssess(ctx, out, cfg, args[0])
}

// runAssess assesses file and writes the report to out. A document that
// cannot be assessed fails with cli.ErrValidationFailed after the report
// is written.
func runAssess(ctx context.Context, out io.Writer, cfg *config.Config, file string) error {
	format, err := cli.ParseFormat(assessFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}

	var results execution.Results
	if assessFlags.exec != "" {
		results, err = execution.LoadFile(assessFlags.exec)
		if err != nil {
			return cli.NewCommandError("assess", err)
		}
	}

	assessment := newAssessor(cfg.Lint).AssessFile(ctx, file, results)
	report := &cli.AssessmentReport{File: file, Assessment: assessment}

	if assessFlags.record || cfg.History.Enabled {
		rec, err := recordAssessment(ctx, cfg.History, report)
		if err != nil {
			return cli.NewCommandError("assess", err)
		}
		report.RecordID = rec.ID
	}

	if err := cli.NewFormatter(format).FormatTo(out, report); err != nil {
		return fmt.Errorf("failed to write assessment: %w", err)
	}

	if assessment.Failed() {
		return cli.NewCommandError("assess", fmt.Errorf("%w: %s", cli.ErrValidationFailed, assessment.Error))
	}
	return nil
}

func recordAssessment(ctx context.Context, cfg config.HistoryConfig, report *cli.AssessmentReport) (*history.Record, error) {
	store, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("failed to close history storage", "error", err)
		}
	}()

	return history.NewRecorder(store).Record(ctx, report.File, report.Assessment)
}
