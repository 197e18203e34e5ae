package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/cypher2sql/internal/querysql"
)

// TranslateOptions holds flags for the translate command.
type TranslateOptions struct {
	*RootOptions
	Schema  string // schema file (.yaml, .yml, .json, .cue)
	Dialect string // identifier quoting
}

// TranslateResult is the JSON payload of a successful translation.
type TranslateResult struct {
	Query   string `json:"query"`
	SQL     string `json:"sql"`
	Dialect string `json:"dialect"`
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate <query>",
		Short: "Translate a Cypher query to SQL",
		Long: `Translate a Cypher MATCH/RETURN query into a SQL SELECT statement.

Pass "-" as the query to read it from stdin.

Exit codes:
  0 - Translated
  1 - Query or schema could not be translated
  2 - Command error (missing schema file, unknown dialect, etc.)

Examples:
  cypher2sql translate --schema schema.yaml "MATCH (p:Person) RETURN p"
  cypher2sql translate -s schema.cue --dialect mysql "MATCH ()-[r:ACTED_IN]->() RETURN r"
  echo "MATCH (p:Person) RETURN p.name" | cypher2sql translate -s schema.yaml -`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Schema, "schema", "s", "", "schema file (required)")
	cmd.Flags().StringVar(&opts.Dialect, "dialect", "basic", "identifier quoting (basic|postgres|mysql|sqlite)")

	return cmd
}

func runTranslate(opts *TranslateOptions, arg string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	query, err := readQuery(arg, cmd.InOrStdin())
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeNoInput, err)
	}

	dialect, err := querysql.DialectByName(opts.Dialect)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeInvalidFlag, err)
	}

	translator, err := loadTranslator(opts.RootOptions, formatter, opts.Schema)
	if err != nil {
		return err
	}

	sql, err := translator.Translate(query, dialect)
	if err != nil {
		return fail(formatter, ExitFailure, "", err)
	}

	if formatter.IsJSON() {
		return formatter.Success(TranslateResult{
			Query:   query,
			SQL:     sql,
			Dialect: dialect.Name(),
		})
	}
	return formatter.Success(sql)
}
