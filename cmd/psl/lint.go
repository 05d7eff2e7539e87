package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mercator-hq/psl/pkg/cli"
	"mercator-hq/psl/pkg/config"
	"mercator-hq/psl/pkg/psl/ast"
	pslErrors "mercator-hq/psl/pkg/psl/errors"
	"mercator-hq/psl/pkg/psl/parser"
	"mercator-hq/psl/pkg/psl/validator"
)

var lintFlags struct {
	dir      string
	patterns []string
	strict   bool
	format   string
	progress bool
}

var lintCmd = &cobra.Command{
	Use:   "lint [files...]",
	Short: "Validate PSL documents",
	Long: `Validate PSL documents against the lint rules L-01 to L-10.

Documents are taken from the arguments, from --dir, from --pattern globs or,
when none of these are given, from lint.patterns in the config file.
Unknown section tags are reported as notes with the closest known tag.

Examples:
  # Lint single file
  psl lint borscht.psl

  # Lint directory
  psl lint --dir procedures/

  # Lint with a recursive glob
  psl lint --pattern 'procedures/**/*.psl'

  # Strict mode (warnings as errors)
  psl lint borscht.psl --strict

  # JSON output for CI/CD
  psl lint --dir procedures/ --format json`,
	RunE: lintDocuments,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of PSL documents")
	lintCmd.Flags().StringArrayVarP(&lintFlags.patterns, "pattern", "p", nil, "doublestar glob of PSL documents (repeatable)")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json, csv")
	lintCmd.Flags().BoolVar(&lintFlags.progress, "progress", false, "show progress on stderr")
}

func lintDocuments(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	out, errOut := io.Writer(os.Stdout), io.Writer(os.Stderr)
	if cmd != nil {
		ctx = cmd.Context()
		out, errOut = cmd.OutOrStdout(), cmd.ErrOrStderr()
	}

	var progress cli.ProgressReporter = cli.NopProgress{}
	if lintFlags.progress {
		progress = cli.NewProgressReporter(errOut)
	}

	return runLint(ctx, out, cfg, progress, args)
}

// runLint lints the documents selected by args and lintFlags and writes the
// report to out.
func runLint(ctx context.Context, out io.Writer, cfg *config.Config, progress cli.ProgressReporter, args []string) error {
	format, err := cli.ParseFormat(lintFlags.format, cli.FormatText, cli.FormatJSON, cli.FormatCSV)
	if err != nil {
		return err
	}

	files, err := collectFiles(args, lintFlags.dir, lintFlags.patterns, cfg.Lint)
	if err != nil {
		return cli.NewCommandError("lint", err)
	}
	if len(files) == 0 {
		return cli.NewConfigError("lint", "no PSL documents found: pass files, --dir or --pattern")
	}

	reports, err := lintFiles(ctx, files, cfg.Lint, progress)
	if err != nil {
		return cli.NewCommandError("lint", err)
	}

	strict := lintFlags.strict || cfg.Lint.Strict
	report := cli.NewLintReport(reports, strict)

	if err := cli.NewFormatter(format).FormatTo(out, report); err != nil {
		return fmt.Errorf("failed to write lint report: %w", err)
	}

	if report.Failed() {
		return cli.NewCommandError("lint", cli.ErrValidationFailed)
	}
	return nil
}

// lintFiles lints files concurrently. Reports keep the order of files.
func lintFiles(ctx context.Context, files []string, cfg config.LintConfig, progress cli.ProgressReporter) ([]cli.FileReport, error) {
	p := newParser(cfg)
	v := newValidator(cfg)

	reports := make([]cli.FileReport, len(files))
	progress.Start(int64(len(files)))
	defer progress.Finish()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Concurrency, 1))
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = lintFile(p, v, file)
			progress.Increment()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// lintFile parses and validates one document. Read failures are reported in
// the FileReport, not returned.
func lintFile(p *parser.Parser, v *validator.Validator, file string) cli.FileReport {
	doc, err := p.ParseFile(file)
	if err != nil {
		return cli.FileReport{File: file, Issues: []pslErrors.Issue{}, Error: err.Error()}
	}

	return cli.FileReport{
		File:   file,
		Issues: v.Validate(doc),
		Notes:  unknownTagNotes(doc),
	}
}

func unknownTagNotes(doc *ast.Document) []string {
	var notes []string
	for _, tag := range doc.UnknownTags() {
		note := fmt.Sprintf("unknown section [%s] is ignored", tag)
		if suggestion := pslErrors.SuggestTag(tag, ast.CanonicalOrder); suggestion != "" {
			note += ". " + suggestion
		}
		notes = append(notes, note)
	}
	return notes
}

// collectFiles resolves the documents to lint. Explicit files come first,
// then --dir, then patterns. Config patterns are used only when nothing else
// selects a file. Duplicates are dropped.
func collectFiles(args []string, dir string, patterns []string, cfg config.LintConfig) ([]string, error) {
	var files []string
	files = append(files, args...)

	if dir != "" {
		found, err := walkDocuments(dir, cfg.Extensions)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	if len(files) == 0 && len(patterns) == 0 {
		patterns = cfg.Patterns
	}
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		slices.Sort(matches)
		files = append(files, matches...)
	}

	seen := make(map[string]bool, len(files))
	unique := files[:0]
	for _, f := range files {
		clean := filepath.Clean(f)
		if seen[clean] {
			continue
		}
		seen[clean] = true
		unique = append(unique, f)
	}
	return unique, nil
}

// walkDocuments returns every file under dir with one of the extensions,
// in lexical order.
func walkDocuments(dir string, extensions []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(extensions, strings.ToLower(filepath.Ext(path))) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list PSL documents in %s: %w", dir, err)
	}
	return files, nil
}
