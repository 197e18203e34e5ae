package schema

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaDefinition string

// Load error codes (E020-E029)
const (
	ErrCodeNotFound      = "E020" // schema file not found or unreadable
	ErrCodeFormat        = "E021" // unsupported file extension
	ErrCodeDecode        = "E022" // YAML/JSON decode failed
	ErrCodeCUE           = "E023" // CUE compile or validation failed
	ErrCodeDuplicate     = "E024" // label or type declared twice
	ErrCodeInvalidSchema = "E025" // mappings failed validation
)

// LoadError represents an error that occurred while reading a schema file.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ValidationErrors is returned by LoadFile when the decoded mappings are
// inconsistent.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%s: %d schema error(s): %s", ErrCodeInvalidSchema, len(v), strings.Join(msgs, "; "))
}

// document is the persisted schema shape shared by YAML, JSON and CUE.
type document struct {
	Nodes []nodeDoc `yaml:"nodes" json:"nodes"`
	Edges []edgeDoc `yaml:"edges" json:"edges"`
}

type nodeDoc struct {
	Label      string `yaml:"label" json:"label"`
	Table      string `yaml:"table" json:"table"`
	PrimaryKey string `yaml:"primaryKey" json:"primaryKey"`
}

type edgeDoc struct {
	Type string `yaml:"type" json:"type"`
	Kind string `yaml:"kind" json:"kind"`

	FromLabel   string `yaml:"fromLabel" json:"fromLabel"`
	ToLabel     string `yaml:"toLabel" json:"toLabel"`
	Label       string `yaml:"label" json:"label"`
	ParentLabel string `yaml:"parentLabel" json:"parentLabel"`
	ChildLabel  string `yaml:"childLabel" json:"childLabel"`

	JoinTable        string `yaml:"joinTable" json:"joinTable"`
	FromJoinKey      string `yaml:"fromJoinKey" json:"fromJoinKey"`
	ToJoinKey        string `yaml:"toJoinKey" json:"toJoinKey"`
	FromKey          string `yaml:"fromKey" json:"fromKey"`
	ToKey            string `yaml:"toKey" json:"toKey"`
	ParentPrimaryKey string `yaml:"parentPrimaryKey" json:"parentPrimaryKey"`
	ChildForeignKey  string `yaml:"childForeignKey" json:"childForeignKey"`
}

// LoadFile reads a schema file and validates it. The format is chosen by
// extension: .yaml, .yml and .json are decoded as YAML, .cue is unified
// with the built-in #Schema definition.
func LoadFile(path string) (*Registry, error) {
	r, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	if errs := Validate(r); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return r, nil
}

// ReadFile reads a schema file without validating the mappings.
func ReadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading schema: %v", err)}
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
		return ReadYAML(bytes.NewReader(data))
	case ".cue":
		return ReadCUE(data, path)
	default:
		return nil, &LoadError{Code: ErrCodeFormat, Message: fmt.Sprintf("unsupported schema format %q (want .yaml, .yml, .json or .cue)", ext)}
	}
}

// ReadYAML decodes a YAML (or JSON) schema. Unknown fields are rejected.
func ReadYAML(r io.Reader) (*Registry, error) {
	var doc document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return NewRegistry(), nil
		}
		return nil, &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("decoding schema: %v", err)}
	}
	return doc.registry()
}

// ReadCUE compiles src, unifies it with #Schema and decodes the result.
// filename is used for error positions only.
func ReadCUE(src []byte, filename string) (*Registry, error) {
	ctx := cuecontext.New()

	def := ctx.CompileString(schemaDefinition, cue.Filename("schema.cue")).LookupPath(cue.ParsePath("#Schema"))
	if err := def.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeCUE, Message: fmt.Sprintf("building schema definition: %v", err)}
	}

	value := ctx.CompileBytes(src, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	unified := def.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var doc document
	if err := unified.Decode(&doc); err != nil {
		return nil, formatCUEError(err)
	}
	return doc.registry()
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: ErrCodeCUE, Message: err.Error()}
	}

	first := errs[0]
	loadErr := &LoadError{Code: ErrCodeCUE, Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		loadErr.Pos = positions[0]
	}
	return loadErr
}

func (d document) registry() (*Registry, error) {
	r := NewRegistry()
	for _, n := range d.Nodes {
		if _, err := r.NodeForLabel(n.Label); err == nil {
			return nil, &LoadError{Code: ErrCodeDuplicate, Message: fmt.Sprintf("node label %s declared twice", n.Label)}
		}
		table := n.Table
		if table == "" {
			table = DefaultTable(n.Label)
		}
		pk := n.PrimaryKey
		if pk == "" {
			pk = DefaultPrimaryKey
		}
		r.AddNode(NewNodeMapping(n.Label, table, pk))
	}

	for _, e := range d.Edges {
		if _, err := r.EdgeForType(e.Type); err == nil {
			return nil, &LoadError{Code: ErrCodeDuplicate, Message: fmt.Sprintf("edge type %s declared twice", e.Type)}
		}
		m, err := e.mapping()
		if err != nil {
			return nil, &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("edge %s: %v", e.Type, err)}
		}
		r.AddEdge(m)
	}
	return r, nil
}

func (e edgeDoc) mapping() (EdgeMapping, error) {
	kind, err := ParseRelationKind(e.Kind)
	if err != nil {
		return EdgeMapping{}, err
	}

	from, to := e.FromLabel, e.ToLabel
	switch kind {
	case SelfReferential:
		if e.Label != "" {
			from, to = orDefault(from, e.Label), orDefault(to, e.Label)
		}
	case OneToMany:
		from, to = orDefault(from, e.ParentLabel), orDefault(to, e.ChildLabel)
	}

	return EdgeMapping{
		Type:             e.Type,
		Kind:             kind,
		FromLabel:        from,
		ToLabel:          to,
		JoinTable:        e.JoinTable,
		FromJoinKey:      e.FromJoinKey,
		ToJoinKey:        e.ToJoinKey,
		FromKey:          e.FromKey,
		ToKey:            e.ToKey,
		ParentPrimaryKey: e.ParentPrimaryKey,
		ChildForeignKey:  e.ChildForeignKey,
	}, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
