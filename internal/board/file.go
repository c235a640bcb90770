package board

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/taskboard/internal/utils"
)

//go:embed board.schema.json
var embeddedSchema []byte

// SchemaVersion is the only seed file version understood.
const SchemaVersion = 1

// File is the on-disk seed representation of a board.
type File struct {
	SchemaVersion int      `json:"schema_version"`
	Title         string   `json:"title,omitempty"`
	Columns       []Column `json:"columns"`

	raw []byte
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dotted path, e.g. columns[0].tasks[2].title
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath overrides the embedded schema. A missing or broken file
	// produces a warning and the embedded schema is used instead.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool
}

// Load reads and parses a seed file from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes seed JSON. It does not validate.
func Parse(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	f.raw = bytes.Clone(data)
	return &f, nil
}

// Snapshot captures the current contents of b as a File.
func Snapshot(b *Board) *File {
	return &File{
		SchemaVersion: SchemaVersion,
		Title:         b.Title(),
		Columns:       b.Columns(),
	}
}

// Options converts the file into board options.
func (f *File) Options() []Option {
	opts := []Option{WithColumns(f.Columns)}
	if strings.TrimSpace(f.Title) != "" {
		opts = append(opts, WithTitle(f.Title))
	}
	return opts
}

// MaxID returns the largest numeric suffix among task ids, so a Sequence
// can start after it.
func (f *File) MaxID() int64 {
	var max int64
	for _, col := range f.Columns {
		for _, t := range col.Tasks {
			if n := numericSuffix(t.ID); n > max {
				max = n
			}
		}
	}
	return max
}

// Validate checks the file against the schema and the board invariants the
// schema cannot express.
func (f *File) Validate(opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	schema, warning := compileSchema(opts.SchemaPath)
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}
	if schema == nil {
		result.Warnings = append(result.Warnings, "JSON Schema validation not available, using minimal checks")
		f.validateMinimal(result)
		f.validateUniqueIDs(result)
		return result
	}

	result.UsedSchema = true
	doc, err := f.document()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: err})
		return result
	}
	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
	f.validateUniqueIDs(result)
	return result
}

// document returns the generic JSON value the schema validates.
func (f *File) document() (interface{}, error) {
	data := f.raw
	if data == nil {
		var err error
		data, err = json.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("marshal seed for validation: %w", err)
		}
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal seed for validation: %w", err)
	}
	return doc, nil
}

func compileSchema(path string) (*jsonschema.Schema, string) {
	if path != "" {
		schema, err := compileSchemaFile(path)
		if err == nil {
			return schema, ""
		}
		warning := err.Error()
		if embedded, err := compileEmbedded(); err == nil {
			return embedded, warning + "; using embedded schema"
		}
		return nil, warning
	}
	schema, err := compileEmbedded()
	if err != nil {
		return nil, err.Error()
	}
	return schema, ""
}

func compileSchemaFile(path string) (*jsonschema.Schema, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid schema path: %v", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("schema file not found: %s", absPath)
		}
		return nil, fmt.Errorf("failed to read schema file: %v", err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Errorf("invalid schema file: %v", err)
	}
	return schema, nil
}

func compileEmbedded() (*jsonschema.Schema, error) {
	const url = "https://github.com/nibzard/taskboard/board.schema.json"
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(url, bytes.NewReader(embeddedSchema)); err != nil {
		return nil, fmt.Errorf("load embedded schema: %v", err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile embedded schema: %v", err)
	}
	return schema, nil
}

// validateMinimal mirrors the schema for when it cannot be compiled.
func (f *File) validateMinimal(result *ValidationResult) {
	if f.SchemaVersion != SchemaVersion {
		result.fail("schema_version", fmt.Errorf("expected %d, got %d", SchemaVersion, f.SchemaVersion))
	}
	if f.Columns == nil {
		result.fail("columns", fmt.Errorf("missing required field"))
		return
	}
	want := ColumnIDs()
	if len(f.Columns) != len(want) {
		result.fail("columns", fmt.Errorf("expected %d columns, got %d", len(want), len(f.Columns)))
	}
	for i, col := range f.Columns {
		path := fmt.Sprintf("columns[%d]", i)
		if i < len(want) && col.ID != want[i] {
			result.fail(path+".id", fmt.Errorf("expected %q, got %q", want[i], col.ID))
		}
		for j, task := range col.Tasks {
			taskPath := fmt.Sprintf("%s.tasks[%d]", path, j)
			if strings.TrimSpace(task.ID) == "" {
				result.fail(taskPath+".id", fmt.Errorf("missing required field"))
			}
			if strings.TrimSpace(task.Title) == "" {
				result.fail(taskPath+".title", fmt.Errorf("missing required field"))
			}
		}
	}
}

func (f *File) validateUniqueIDs(result *ValidationResult) {
	seen := make(map[string]string)
	for i, col := range f.Columns {
		for j, task := range col.Tasks {
			if task.ID == "" {
				continue
			}
			path := fmt.Sprintf("columns[%d].tasks[%d].id", i, j)
			if first, dup := seen[task.ID]; dup {
				result.fail(path, fmt.Errorf("duplicate task id %q (first used at %s)", task.ID, first))
				continue
			}
			seen[task.ID] = path
		}
	}
}

func (r *ValidationResult) fail(path string, err error) {
	r.Valid = false
	r.Errors = append(r.Errors, &ValidationError{Path: path, Err: err})
}

func appendSchemaErrors(result *ValidationResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

func numericSuffix(id string) int64 {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	if i == len(id) {
		return 0
	}
	var n int64
	for _, c := range id[i:] {
		n = n*10 + int64(c-'0')
		if n > 1<<40 {
			return 0
		}
	}
	return n
}
