/*
Package cli provides command-line helpers for the psl command.

Output Formatting:

Command results are written in text, JSON or CSV. Text output is styled
with lipgloss and degrades to plain text when stdout is not a terminal:

	format, err := cli.ParseFormat(flag, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}
	report := cli.NewLintReport(files, strict)
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, report); err != nil {
		return err
	}

Results implement TextRenderer for text output and Tabular for CSV.

Progress Reporting:

Linting many files shows a progress bar on stderr:

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Start(int64(len(files)))
	// each worker calls progress.Increment()
	progress.Finish()

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()

Exit codes are derived from command errors with ExitCode.
*/
package cli
