package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cypher2sql/internal/mapping"
	"github.com/roach88/cypher2sql/internal/schema"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// TraceIDs stamps JSON responses. Default: UUIDv7Generator.
	TraceIDs TraceIDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the cypher2sql CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cypher2sql",
		Short: "cypher2sql - Cypher patterns to SQL",
		Long: `Translate Cypher MATCH/RETURN patterns into SQL SELECT statements
using a schema that maps node labels to tables and edge types to joins.`,
		SilenceUsage:  true,
		SilenceErrors: true, // Execute prints errors commands did not report
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewTranslateCommand(opts))
	cmd.AddCommand(NewExecCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// Execute runs the root command and returns the process exit code.
// Commands report their own failures; anything else (flag parsing,
// argument counts) is printed to stderr here.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return ExitCommandError
		}
		return exitErr.Code
	}
	return ExitSuccess
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// formatter builds the output formatter for one command invocation.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	gen := o.TraceIDs
	if gen == nil {
		gen = UUIDv7Generator{}
	}
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
		TraceID:   gen.Generate(),
	}
}

// logger returns a Debug-level text logger on w when verbose, otherwise a
// logger that discards everything.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	if !o.Verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// loadTranslator loads the schema at path and builds a Translator over it.
// Missing or unreadable files are command errors; malformed or invalid
// schemas are failures.
func loadTranslator(opts *RootOptions, f *OutputFormatter, path string) (*mapping.Translator, error) {
	if path == "" {
		return nil, fail(f, ExitCommandError, ErrCodeInvalidFlag, errors.New("--schema is required"))
	}

	reg, err := schema.LoadFile(path)
	if err != nil {
		var loadErr *schema.LoadError
		if errors.As(err, &loadErr) && (loadErr.Code == schema.ErrCodeNotFound || loadErr.Code == schema.ErrCodeFormat) {
			return nil, fail(f, ExitCommandError, "", err)
		}
		return nil, fail(f, ExitFailure, "", err)
	}

	f.VerboseLog("Loaded schema %s: %d node mapping(s), %d edge mapping(s)", path, len(reg.Nodes()), len(reg.Edges()))
	return mapping.New(reg, mapping.WithLogger(opts.logger(f.GetErrWriter()))), nil
}

// readQuery returns the query argument, or stdin when the argument is "-".
func readQuery(arg string, stdin io.Reader) (string, error) {
	query := arg
	if arg == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read query from stdin: %w", err)
		}
		query = string(data)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return "", errors.New("query is empty")
	}
	return query, nil
}
