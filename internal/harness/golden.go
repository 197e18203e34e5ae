package harness

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden runs suite and compares every case's outcome against the
// golden file testdata/golden/<suite name>.golden.
//
// The golden text has one block per case in suite order:
//
//	-- case name
//	SELECT ...            (or "error: CODE")
//
// Regenerate with: go test -update
func RunWithGolden(t *testing.T, suite *Suite) (*Report, error) {
	t.Helper()

	report, err := Run(context.Background(), suite)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, suite.Name, []byte(FormatOutcomes(report)))

	return report, nil
}

// FormatOutcomes renders the golden text for report.
func FormatOutcomes(report *Report) string {
	var sb strings.Builder
	for _, c := range report.Cases {
		fmt.Fprintf(&sb, "-- %s\n", c.Name)
		if c.ErrorCode != "" {
			fmt.Fprintf(&sb, "error: %s\n", c.ErrorCode)
		} else {
			sb.WriteString(c.SQL)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
