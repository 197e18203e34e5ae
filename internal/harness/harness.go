package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/cypher2sql/internal/mapping"
	"github.com/roach88/cypher2sql/internal/querysql"
	"github.com/roach88/cypher2sql/internal/schema"
	"github.com/roach88/cypher2sql/internal/store"
)

// DefaultConcurrency bounds how many cases run at once.
const DefaultConcurrency = 8

// Option configures Run.
type Option func(*runner)

// WithLogger sets the logger for suite progress.
// Default: a logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(r *runner) {
		r.logger = logger
	}
}

// WithConcurrency sets how many cases run at once. Values below 1 are
// ignored.
func WithConcurrency(n int) Option {
	return func(r *runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

type runner struct {
	logger      *slog.Logger
	concurrency int
	translator  *mapping.Translator
	dialect     querysql.Dialect
	store       *store.Store
}

// Run executes every case of suite and returns the report.
//
// The schema is loaded once and shared by all cases; cases are translated
// in parallel. When the suite has a seed script it is loaded into a fresh
// in-memory sqlite database and cases with expected rows run against it.
//
// Case failures are reported in the Report. The returned error is for
// problems that prevent the suite from running at all.
func Run(ctx context.Context, suite *Suite, opts ...Option) (*Report, error) {
	r := &runner{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}

	reg, err := schema.LoadFile(suite.Schema)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	dialectName := suite.Dialect
	if dialectName == "" {
		dialectName = "basic"
	}
	r.dialect, err = querysql.DialectByName(dialectName)
	if err != nil {
		return nil, err
	}

	if suite.Seed != "" {
		script, err := os.ReadFile(suite.Seed)
		if err != nil {
			return nil, fmt.Errorf("read seed: %w", err)
		}
		st, err := store.Open(store.DriverSQLite, ":memory:")
		if err != nil {
			return nil, fmt.Errorf("failed to create in-memory store: %w", err)
		}
		defer st.Close()
		if err := st.ExecScript(ctx, string(script)); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
		r.store = st
	}

	r.translator = mapping.New(reg, mapping.WithLogger(r.logger))

	report := &Report{
		Suite: suite.Name,
		Pass:  true,
		Cases: make([]CaseResult, len(suite.Cases)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, c := range suite.Cases {
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report.Cases[i] = r.runCase(gctx, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, c := range report.Cases {
		if !c.Pass {
			report.Pass = false
		}
	}

	r.logger.Info("suite finished",
		"suite", suite.Name,
		"cases", len(report.Cases),
		"failed", len(report.Failed()),
	)
	return report, nil
}

func (r *runner) runCase(ctx context.Context, c Case) CaseResult {
	res := CaseResult{Name: c.Name, Pass: true}

	sql, err := r.translator.Translate(c.Query, r.dialect)
	if err != nil {
		res.ErrorCode = mapping.ErrorCode(err)
		switch {
		case c.Error == "":
			res.addError(fmt.Sprintf("unexpected error: %v", err))
		case res.ErrorCode != c.Error:
			res.addError(fmt.Sprintf("error code = %q, want %q (%v)", res.ErrorCode, c.Error, err))
		}
		r.logger.Debug("case finished", "case", c.Name, "pass", res.Pass, "error_code", res.ErrorCode)
		return res
	}

	res.SQL = sql
	if c.Error != "" {
		res.addError(fmt.Sprintf("expected error %s, got SQL: %s", c.Error, sql))
		return res
	}
	if sql != c.SQL {
		res.addError(fmt.Sprintf("sql mismatch:\n  got:  %s\n  want: %s", sql, c.SQL))
	}

	if len(c.Rows) > 0 && r.store != nil {
		rs, err := r.store.Query(ctx, sql)
		if err != nil {
			res.addError(fmt.Sprintf("execute: %v", err))
		} else if got, want := rowKeys(rs.Rows), rowKeys(c.Rows); !slices.Equal(got, want) {
			res.addError(fmt.Sprintf("rows = %v, want %v", got, want))
		}
	}

	r.logger.Debug("case finished", "case", c.Name, "pass", res.Pass)
	return res
}

// rowKeys prints each row as "a|b|c" and sorts the result so row order
// does not matter.
func rowKeys(rows [][]any) []string {
	keys := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprint(v)
		}
		keys[i] = strings.Join(cells, "|")
	}
	slices.Sort(keys)
	return keys
}
