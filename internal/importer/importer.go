package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/catexplorer/internal/model"
)

// Parser converts an uploaded transaction file into a normalized Table.
type Parser interface {
	Parse(r io.Reader) (*model.Table, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// ForFile picks a parser from the file extension. Files without a
// registered extension are read as CSV.
func (r *Registry) ForFile(name string) (Parser, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if p := r.Get(ext); p != nil {
		return p, nil
	}
	if p := r.Get(FormatCSV); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("no parser for %q", name)
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewCSVParser())
	r.Register(NewTSVParser())
	return r
}

// Load parses one file with the registry's parser for its extension.
func (r *Registry) Load(name string, src io.Reader) (*model.Table, error) {
	p, err := r.ForFile(name)
	if err != nil {
		return nil, err
	}
	tbl, err := p.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(name), err)
	}
	return tbl, nil
}
