/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/suparena/agml/errors"
	"github.com/suparena/agml/sources"
)

// CopyrightPrinter writes the license and citation block for a dataset.
type CopyrightPrinter interface {
	PrintCopyright(w io.Writer, name string) error
}

// Named is anything that carries a canonical dataset name, including
// *DatasetMetadata itself.
type Named interface {
	Name() string
}

// Option configures how a DatasetMetadata is resolved.
type Option func(*options)

type options struct {
	tables  *sources.Tables
	printer CopyrightPrinter
}

// WithTables resolves names against tables instead of the default sources.
func WithTables(tables *sources.Tables) Option {
	return func(o *options) { o.tables = tables }
}

// WithCopyrightPrinter replaces the collaborator used by CitationSummary.
func WithCopyrightPrinter(p CopyrightPrinter) Option {
	return func(o *options) { o.printer = p }
}

// interpreted remembers which hyphenated names were already reported.
var interpreted sync.Map

// DatasetMetadata exposes the metadata of one public dataset. It is
// immutable once constructed and safe to share between goroutines.
type DatasetMetadata struct {
	name     string
	metadata *sources.Table
	citation *sources.Table
	printer  CopyrightPrinter
}

// New resolves name against the dataset sources. When name is unknown the
// lookup is retried with hyphens replaced by underscores.
func New(name string, opts ...Option) (*DatasetMetadata, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tables == nil {
		tables, err := sources.Default()
		if err != nil {
			return nil, err
		}
		o.tables = tables
	}
	if o.printer == nil {
		o.printer = o.tables
	}

	canonical, err := resolve(o.tables, name)
	if err != nil {
		return nil, err
	}
	record, _ := o.tables.Lookup(canonical)
	citation, ok := o.tables.Citation(canonical)
	if !ok {
		slog.Debug("Dataset has no citation entry.", "dataset", canonical)
		citation = nil
	}

	return &DatasetMetadata{
		name:     canonical,
		metadata: record,
		citation: citation,
		printer:  o.printer,
	}, nil
}

// NewFrom resolves the canonical name carried by ref.
func NewFrom(ref Named, opts ...Option) (*DatasetMetadata, error) {
	return New(ref.Name(), opts...)
}

func resolve(tables *sources.Tables, name string) (string, error) {
	if _, ok := tables.Lookup(name); ok {
		return name, nil
	}
	normalized := strings.ReplaceAll(name, "-", "_")
	if normalized != name {
		if _, ok := tables.Lookup(normalized); ok {
			if _, seen := interpreted.LoadOrStore(name, struct{}{}); !seen {
				slog.Warn("Interpreted dataset name.", "given", name, "dataset", normalized)
			}
			return normalized, nil
		}
	}
	return "", errors.NewInvalidNameError("public source", name, sources.Suggest(name, tables.Public.Keys()))
}

// Name returns the canonical dataset name.
func (m *DatasetMetadata) Name() string {
	return m.name
}

func (m *DatasetMetadata) String() string {
	return m.name
}

// Equal reports whether both values describe the same dataset.
func (m *DatasetMetadata) Equal(other *DatasetMetadata) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.name == other.name
}

// Data returns the raw attribute table.
func (m *DatasetMetadata) Data() *sources.Table {
	return m.metadata
}

// Attribute looks a key up in the raw attribute table. Any attribute added to
// the source documents is reachable here without a dedicated accessor.
func (m *DatasetMetadata) Attribute(key string) (any, error) {
	v, ok := m.metadata.Get(key)
	if !ok {
		return nil, errors.NewInvalidNameError("info parameter", key, sources.Suggest(key, m.metadata.Keys()))
	}
	return v, nil
}

// CitationSummary prints the license and citation block for the dataset.
func (m *DatasetMetadata) CitationSummary(w io.Writer) error {
	return m.printer.PrintCopyright(w, m.name)
}

func (m *DatasetMetadata) lookup(key string) (any, error) {
	v, ok := m.metadata.Get(key)
	if !ok {
		return nil, errors.NewMissingMetadataError(m.name, key)
	}
	return v, nil
}
