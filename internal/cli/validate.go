package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cypher2sql/internal/schema"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                     `json:"valid"`
	Nodes  int                      `json:"nodes"`
	Edges  int                      `json:"edges"`
	Errors []schema.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <schema-file>",
		Short: "Validate a schema file",
		Long: `Validate a schema file without translating anything.

Checks that the file decodes (YAML, JSON or CUE), that every label and
edge type is declared once, that each edge carries the keys its kind
needs, and that edge endpoints name declared node labels.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	reg, err := schema.ReadFile(path)
	if err != nil {
		var loadErr *schema.LoadError
		if errors.As(err, &loadErr) && (loadErr.Code == schema.ErrCodeNotFound || loadErr.Code == schema.ErrCodeFormat) {
			return fail(formatter, ExitCommandError, "", err)
		}
		return fail(formatter, ExitFailure, "", err)
	}

	formatter.VerboseLog("Read %d node mapping(s) and %d edge mapping(s) from %s", len(reg.Nodes()), len(reg.Edges()), path)

	if errs := schema.Validate(reg); len(errs) > 0 {
		return outputValidationErrors(formatter, errs)
	}

	return outputValidateSuccess(formatter, len(reg.Nodes()), len(reg.Edges()))
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, nodes, edges int) error {
	if formatter.IsJSON() {
		return formatter.Success(ValidationResult{Valid: true, Nodes: nodes, Edges: edges})
	}

	fmt.Fprintf(formatter.Writer, "✓ Schema valid (%d nodes, %d edges)\n", nodes, edges)
	return nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []schema.ValidationError) error {
	if formatter.IsJSON() {
		if err := formatter.Failure(errs[0].Code, errs[0].Message, ValidationResult{Errors: errs}); err != nil {
			return err
		}
		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s %s: %s\n", err.Code, err.Field, err.Message)
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
