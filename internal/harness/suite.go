package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Suite is a set of translation fixtures over one schema.
type Suite struct {
	// Name uniquely identifies this suite.
	Name string `yaml:"name"`

	// Description explains what this suite covers.
	Description string `yaml:"description,omitempty"`

	// Schema is the path to the schema file (YAML, JSON or CUE).
	// Relative paths are resolved against the suite file's directory.
	Schema string `yaml:"schema"`

	// Dialect names the quoting used to render SQL. Defaults to "basic".
	Dialect string `yaml:"dialect,omitempty"`

	// Seed is an optional SQL script loaded into a fresh in-memory sqlite
	// database. Required when any case lists expected rows.
	// Relative paths are resolved like Schema.
	Seed string `yaml:"seed,omitempty"`

	// Cases are the fixtures, run in parallel.
	Cases []Case `yaml:"cases"`
}

// Case is one query and its expected outcome. Exactly one of SQL or Error
// is set. Rows may accompany SQL.
type Case struct {
	// Name identifies the case within the suite.
	Name string `yaml:"name"`

	// Query is the Cypher text.
	Query string `yaml:"query"`

	// SQL is the expected rendered statement.
	SQL string `yaml:"sql,omitempty"`

	// Error is the expected error code, e.g. "AMBIGUOUS_LABEL".
	Error string `yaml:"error,omitempty"`

	// Rows are the expected result rows, compared without regard to order.
	// Cells are compared by their printed form.
	Rows [][]any `yaml:"rows,omitempty"`
}

// LoadSuite reads and parses a suite YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	// Reject unknown fields (catches typos like "querry:")
	var suite Suite
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&suite); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Dir(path)
	suite.Schema = resolvePath(base, suite.Schema)
	suite.Seed = resolvePath(base, suite.Seed)

	if err := validateSuite(&suite); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}

	return &suite, nil
}

func resolvePath(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// validateSuite checks that required fields are present and valid.
func validateSuite(s *Suite) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Schema == "" {
		return fmt.Errorf("schema is required")
	}
	if _, err := os.Stat(s.Schema); os.IsNotExist(err) {
		return fmt.Errorf("schema file not found: %s", s.Schema)
	}

	if s.Seed != "" {
		if _, err := os.Stat(s.Seed); os.IsNotExist(err) {
			return fmt.Errorf("seed file not found: %s", s.Seed)
		}
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate name %q", i, c.Name)
		}
		seen[c.Name] = true

		if c.Query == "" {
			return fmt.Errorf("cases[%d]: query is required", i)
		}
		if (c.SQL == "") == (c.Error == "") {
			return fmt.Errorf("cases[%d]: exactly one of sql or error is required", i)
		}
		if len(c.Rows) > 0 {
			if c.Error != "" {
				return fmt.Errorf("cases[%d]: rows cannot be combined with error", i)
			}
			if s.Seed == "" {
				return fmt.Errorf("cases[%d]: rows require a seed script", i)
			}
		}
	}

	return nil
}
