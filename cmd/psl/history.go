package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/psl/pkg/cli"
	"mercator-hq/psl/pkg/config"
	"mercator-hq/psl/pkg/history"
	"mercator-hq/psl/pkg/history/retention"
	"mercator-hq/psl/pkg/history/storage"
	"mercator-hq/psl/pkg/psl/metrics"
)

var historyFlags struct {
	path   string
	level  string
	since  time.Duration
	limit  int
	format string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query and prune recorded assessments",
	Long: `Query and prune the assessment history.

Assessments are recorded by "psl assess --record" and by "psl watch" when
history.enabled is set in the config file.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded assessments",
	Long: `List recorded assessments, newest first.

Examples:
  # Last 20 assessments of one document
  psl history list --path borscht.psl --limit 20

  # POOR assessments from the last week as CSV
  psl history list --level poor --since 168h --format csv`,
	Args: cobra.NoArgs,
	RunE: listHistory,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete assessments outside the retention policy",
	Long: `Delete assessments older than history.retention.days and, when
history.retention.max_records is set, the oldest records over the cap.`,
	Args: cobra.NoArgs,
	RunE: pruneHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyPruneCmd)

	historyListCmd.Flags().StringVar(&historyFlags.path, "path", "", "only records for this document path")
	historyListCmd.Flags().StringVar(&historyFlags.level, "level", "", "only records with this quality level")
	historyListCmd.Flags().DurationVar(&historyFlags.since, "since", 0, "only records newer than this duration (e.g. 24h)")
	historyListCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", history.DefaultQueryLimit, "maximum number of records")
	historyListCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json, csv")
}

func listHistory(cmd *cobra.Command, args []string) error {
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

	return runHistoryList(ctx, out, cfg)
}

// runHistoryList queries the history store with historyFlags and writes the
// records to out.
func runHistoryList(ctx context.Context, out io.Writer, cfg *config.Config) error {
	format, err := cli.ParseFormat(historyFlags.format, cli.FormatText, cli.FormatJSON, cli.FormatCSV)
	if err != nil {
		return err
	}

	query, err := historyQuery(time.Now())
	if err != nil {
		return err
	}

	return withStorage(cfg.History, func(store history.Storage) error {
		records, err := store.Query(ctx, query)
		if err != nil {
			return cli.NewCommandError("history list", err)
		}
		if records == nil {
			records = []*history.Record{}
		}
		return cli.NewFormatter(format).FormatTo(out, &cli.HistoryReport{Records: records})
	})
}

// historyQuery builds the storage query from historyFlags.
func historyQuery(now time.Time) (*history.Query, error) {
	query := &history.Query{
		Path:  historyFlags.path,
		Limit: historyFlags.limit,
	}

	if historyFlags.level != "" {
		level, ok := metrics.ParseLevel(historyFlags.level)
		if !ok {
			return nil, cli.NewConfigError("level", fmt.Sprintf("unknown quality level %q", historyFlags.level))
		}
		query.Level = string(level)
	}

	if historyFlags.since < 0 {
		return nil, cli.NewConfigError("since", "duration must not be negative")
	}
	if historyFlags.since > 0 {
		since := now.Add(-historyFlags.since)
		query.Since = &since
	}

	if historyFlags.limit < 0 {
		return nil, cli.NewConfigError("limit", "must not be negative")
	}
	return query, nil
}

func pruneHistory(cmd *cobra.Command, args []string) error {
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

	return runHistoryPrune(ctx, out, cfg)
}

// runHistoryPrune applies the configured retention policy once.
func runHistoryPrune(ctx context.Context, out io.Writer, cfg *config.Config) error {
	return withStorage(cfg.History, func(store history.Storage) error {
		pruner := retention.NewPruner(store, retention.FromConfig(cfg.History.Retention))
		run := retention.NewScheduler(pruner).RunNow(ctx)
		if run.Err != nil {
			return cli.NewCommandError("history prune", run.Err)
		}
		fmt.Fprintf(out, "Pruned %d record(s) in %s\n", run.Deleted, run.Duration.Round(time.Millisecond))
		return nil
	})
}

// withStorage opens the history store, runs fn and closes the store.
func withStorage(cfg config.HistoryConfig, fn func(history.Storage) error) error {
	store, err := storage.Open(cfg)
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("failed to close history storage", "error", err)
		}
	}()

	return fn(store)
}
