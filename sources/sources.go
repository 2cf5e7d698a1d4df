/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sources

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/suparena/agml/errors"
	"github.com/suparena/agml/registry"
)

const (
	// PublicSourcesFile is the document mapping dataset name to its attribute table.
	PublicSourcesFile = "public_datasources.json"
	// CitationSourcesFile is the parallel document holding license and citation text.
	CitationSourcesFile = "public_citations.json"
	// EnvSourcesDir overrides the embedded documents with a directory on disk.
	EnvSourcesDir = "AGML_SOURCES_DIR"
)

//go:embed assets/*.json
var assets embed.FS

func init() {
	decodeYAML := func(data []byte, out any) error { return yaml.Unmarshal(data, out) }
	// JSON documents are valid YAML, so a single decoder keeps key order for both.
	registry.RegisterDecoder(".json", decodeYAML)
	registry.RegisterDecoder(".yaml", decodeYAML)
	registry.RegisterDecoder(".yml", decodeYAML)
}

// Tables holds the source of truth for dataset metadata.
type Tables struct {
	Public    *Table
	Citations *Table
}

var defaultTables = sync.OnceValues(func() (*Tables, error) {
	if dir := os.Getenv(EnvSourcesDir); dir != "" {
		slog.Debug("Loading dataset sources from directory.", "dir", dir)
		return Load(os.DirFS(dir), PublicSourcesFile, CitationSourcesFile)
	}
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		return nil, err
	}
	return Load(sub, PublicSourcesFile, CitationSourcesFile)
})

// Default returns the process-wide tables. They are loaded on first use and
// are read-only for the remainder of the process.
func Default() (*Tables, error) {
	return defaultTables()
}

// Load decodes the public and citation documents found in fsys.
func Load(fsys fs.FS, publicPath, citationPath string) (*Tables, error) {
	public, err := loadTable(fsys, publicPath)
	if err != nil {
		return nil, err
	}
	citations, err := loadTable(fsys, citationPath)
	if err != nil {
		return nil, err
	}

	for _, name := range public.Keys() {
		if _, ok := public.Table(name); !ok {
			return nil, errors.NewMalformedMetadataError(name, name, "a dataset entry must be a mapping")
		}
	}

	slog.Debug("Dataset sources loaded.", "datasets", public.Len(), "citations", citations.Len())
	return &Tables{Public: public, Citations: citations}, nil
}

func loadTable(fsys fs.FS, path string) (*Table, error) {
	decode, err := registry.DecoderForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source document: %w", err)
	}
	t := &Table{}
	if err := decode(data, t); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return t, nil
}

// Lookup returns the attribute table for a dataset.
func (s *Tables) Lookup(name string) (*Table, bool) {
	return s.Public.Table(name)
}

// Citation returns the citation table for a dataset.
func (s *Tables) Citation(name string) (*Table, bool) {
	return s.Citations.Table(name)
}

// Names returns every dataset name in sorted order.
func (s *Tables) Names() []string {
	names := s.Public.Keys()
	sort.Strings(names)
	return names
}

// DataSources returns the names of every public dataset from the default tables.
func DataSources() ([]string, error) {
	t, err := Default()
	if err != nil {
		return nil, err
	}
	return t.Names(), nil
}
