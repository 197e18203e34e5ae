package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/cypher2sql/internal/store"
)

// ExecOptions holds flags for the exec command.
type ExecOptions struct {
	*RootOptions
	Schema string
	Driver string // sqlite3 | postgres | mysql
	DSN    string
	Seed   string // SQL script run before the query
	Demo   bool   // load the built-in people/movies tables
}

// ExecResult is the JSON payload of a successful exec.
type ExecResult struct {
	SQL     string           `json:"sql"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
	Count   int              `json:"count"`
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExecOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "exec <query>",
		Short: "Translate a Cypher query and run it",
		Long: `Translate a Cypher query and run the SQL against a database.

Identifier quoting follows the driver. The default database is an
in-memory sqlite3 database; use --seed or --demo to give it tables.

Examples:
  cypher2sql exec -s schema.yaml --demo "MATCH (p:Person)-[:ACTED_IN]->(m:Movie) RETURN p.name, m.title"
  cypher2sql exec -s schema.yaml --driver postgres --dsn "postgres://localhost/movies?sslmode=disable" "MATCH (p:Person) RETURN p"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Schema, "schema", "s", "", "schema file (required)")
	cmd.Flags().StringVar(&opts.Driver, "driver", store.DriverSQLite, "database driver (sqlite3|postgres|mysql)")
	cmd.Flags().StringVar(&opts.DSN, "dsn", ":memory:", "data source name")
	cmd.Flags().StringVar(&opts.Seed, "seed", "", "SQL script to run before the query")
	cmd.Flags().BoolVar(&opts.Demo, "demo", false, "load the built-in people/movies tables first")

	return cmd
}

func runExec(opts *ExecOptions, arg string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	ctx := cmd.Context()

	query, err := readQuery(arg, cmd.InOrStdin())
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeNoInput, err)
	}

	if _, err := store.DriverByName(opts.Driver); err != nil {
		return fail(formatter, ExitCommandError, ErrCodeInvalidFlag, err)
	}

	translator, err := loadTranslator(opts.RootOptions, formatter, opts.Schema)
	if err != nil {
		return err
	}

	st, err := store.Open(opts.Driver, opts.DSN)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeDatabase, err)
	}
	defer st.Close()

	if opts.Demo {
		formatter.VerboseLog("Loading demo tables")
		if err := st.ExecScript(ctx, store.MoviesScript()); err != nil {
			return fail(formatter, ExitCommandError, ErrCodeDatabase, err)
		}
	}
	if opts.Seed != "" {
		script, err := os.ReadFile(opts.Seed)
		if err != nil {
			return fail(formatter, ExitCommandError, ErrCodeNotFound, err)
		}
		formatter.VerboseLog("Running seed script %s", opts.Seed)
		if err := st.ExecScript(ctx, string(script)); err != nil {
			return fail(formatter, ExitCommandError, ErrCodeDatabase, err)
		}
	}

	sql, err := translator.Translate(query, st.Dialect())
	if err != nil {
		return fail(formatter, ExitFailure, "", err)
	}
	formatter.VerboseLog("SQL: %s", sql)

	rs, err := st.Query(ctx, sql)
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodeDatabase, err)
	}

	if formatter.IsJSON() {
		return formatter.Success(ExecResult{
			SQL:     sql,
			Columns: rs.Columns,
			Rows:    rs.Records(),
			Count:   len(rs.Rows),
		})
	}
	return writeTable(formatter, rs)
}

// writeTable prints rs as aligned columns followed by a row count.
func writeTable(f *OutputFormatter, rs *store.ResultSet) error {
	tw := tabwriter.NewWriter(f.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(rs.Columns, "\t"))
	for _, row := range rs.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			if v == nil {
				cells[i] = "NULL"
			} else {
				cells[i] = fmt.Sprint(v)
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(f.Writer, "(%d rows)\n", len(rs.Rows))
	return nil
}
