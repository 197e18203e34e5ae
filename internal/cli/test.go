package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cypher2sql/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Filter      string // suite file filter (glob pattern on the base name)
	Concurrency int    // cases run at once per suite
}

// SuiteResult holds the result of a single suite.
type SuiteResult struct {
	Name   string               `json:"name"`
	File   string               `json:"file"`
	Pass   bool                 `json:"pass"`
	Cases  []harness.CaseResult `json:"cases,omitempty"`
	Errors []string             `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Suites []SuiteResult `json:"suites"`
	Passed int           `json:"passed"` // cases
	Failed int           `json:"failed"` // cases, plus suites that could not run
	Total  int           `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <suite-file-or-dir>...",
		Short: "Run translation fixture suites",
		Long: `Run YAML fixture suites: each case gives a Cypher query and the SQL
or error code it must translate to, optionally with rows it must return
from a seeded sqlite database.

Exit codes:
  0 - All cases passed
  1 - One or more cases failed
  2 - Command error (invalid paths, etc.)

Examples:
  cypher2sql test ./fixtures
  cypher2sql test ./fixtures --filter "movies*"
  cypher2sql test ./fixtures/movies.yaml --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter suite files by glob pattern")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", harness.DefaultConcurrency, "cases run at once per suite")

	return cmd
}

func runTests(opts *TestOptions, paths []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	var files []string
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return fail(formatter, ExitCommandError, ErrCodeNotFound, fmt.Errorf("path not found: %s", p))
		}
		found, err := findSuiteFiles(p, opts.Filter)
		if err != nil {
			return fail(formatter, ExitCommandError, ErrCodeInvalidFlag, fmt.Errorf("failed to find suites: %w", err))
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		if formatter.IsJSON() {
			return formatter.Success(TestResult{Suites: []SuiteResult{}})
		}
		fmt.Fprintln(formatter.Writer, "No suites found.")
		return nil
	}

	result := TestResult{Suites: make([]SuiteResult, 0, len(files))}
	for _, file := range files {
		sr := runSuite(opts, formatter, file, cmd)
		result.Suites = append(result.Suites, sr)

		if len(sr.Errors) > 0 {
			result.Failed++
			result.Total++
		}
		for _, c := range sr.Cases {
			result.Total++
			if c.Pass {
				result.Passed++
			} else {
				result.Failed++
			}
		}
	}

	if formatter.IsJSON() {
		if result.Failed > 0 {
			if err := formatter.Failure(ErrCodeGeneric, fmt.Sprintf("%d of %d case(s) failed", result.Failed, result.Total), result); err != nil {
				return err
			}
			return NewExitError(ExitFailure, fmt.Sprintf("%d case(s) failed", result.Failed))
		}
		return formatter.Success(result)
	}

	return outputTestText(formatter, result)
}

// findSuiteFiles returns path itself if it is a file, or every YAML file
// under it, filtered by base name.
func findSuiteFiles(path string, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		// Only process .yaml and .yml files
		ext := filepath.Ext(p)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		// Apply filter if specified
		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(p), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, p)
		return nil
	})

	return files, err
}

// runSuite loads and runs one suite file.
func runSuite(opts *TestOptions, formatter *OutputFormatter, file string, cmd *cobra.Command) SuiteResult {
	suite, err := harness.LoadSuite(file)
	if err != nil {
		return SuiteResult{
			Name:   filepath.Base(file),
			File:   file,
			Errors: []string{fmt.Sprintf("failed to load suite: %v", err)},
		}
	}

	formatter.VerboseLog("Running suite %s (%d cases)", suite.Name, len(suite.Cases))
	report, err := harness.Run(cmd.Context(), suite,
		harness.WithLogger(opts.logger(formatter.GetErrWriter())),
		harness.WithConcurrency(opts.Concurrency),
	)
	if err != nil {
		return SuiteResult{
			Name:   suite.Name,
			File:   file,
			Errors: []string{fmt.Sprintf("execution failed: %v", err)},
		}
	}

	return SuiteResult{
		Name:  suite.Name,
		File:  file,
		Pass:  report.Pass,
		Cases: report.Cases,
	}
}

// outputTestText prints per-case marks and a summary.
func outputTestText(formatter *OutputFormatter, result TestResult) error {
	w := formatter.Writer
	for _, s := range result.Suites {
		for _, e := range s.Errors {
			fmt.Fprintf(w, "✗ %s\n  %s\n", s.Name, e)
		}
		for _, c := range s.Cases {
			if c.Pass {
				fmt.Fprintf(w, "✓ %s/%s\n", s.Name, c.Name)
				continue
			}
			fmt.Fprintf(w, "✗ %s/%s\n", s.Name, c.Name)
			for _, e := range c.Errors {
				fmt.Fprintf(w, "  %s\n", e)
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d case(s) failed", result.Failed))
	}
	return nil
}
