/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/suparena/agml/datastore"
	"github.com/suparena/agml/datastore/ddb"
	"github.com/suparena/agml/errors"
	"github.com/suparena/agml/sources"
)

// now is replaced in tests.
var now = time.Now

// Publish writes the source entry of every named dataset, or of every dataset
// when no names are given. It returns the number of records written.
func Publish(ctx context.Context, ds datastore.DataStore[Record], tables *sources.Tables, names ...string) (int, error) {
	if len(names) == 0 {
		names = tables.Names()
	}
	published := 0
	for _, name := range names {
		record, err := NewRecord(tables, name, now())
		if err != nil {
			return published, err
		}
		if err := ds.Put(ctx, record); err != nil {
			return published, fmt.Errorf("failed to publish %s: %w", name, err)
		}
		published++
	}
	slog.Info("Published dataset records.", "count", published)
	return published, nil
}

// ListOption narrows or orders List.
type ListOption func(*listOptions)

type listOptions struct {
	prefix     string
	descending bool
}

// WithPrefix keeps only datasets whose name starts with prefix.
func WithPrefix(prefix string) ListOption {
	return func(o *listOptions) { o.prefix = prefix }
}

// Descending returns names in reverse order.
func Descending() ListOption {
	return func(o *listOptions) { o.descending = true }
}

// List returns the names of the published datasets in sorted order.
func List(ctx context.Context, ds datastore.DataStore[Record], opts ...ListOption) ([]string, error) {
	var o listOptions
	for _, opt := range opts {
		opt(&o)
	}
	records, err := listRecords(ctx, ds, o)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	sort.Strings(names)
	if o.descending {
		slices.Reverse(names)
	}
	return names, nil
}

func listRecords(ctx context.Context, ds datastore.DataStore[Record], o listOptions) ([]Record, error) {
	q := ddb.QueryGSI(CatalogIndex).WithPartitionKey(CatalogPartition)
	if o.prefix != "" {
		q = q.WithSortKeyPrefix(o.prefix)
	}
	if o.descending {
		q = q.Descending()
	}
	params, err := q.Build()
	if err != nil {
		return nil, err
	}
	records, err := ds.Query(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	out := records[:0]
	for _, r := range records {
		// Stores other than DynamoDB may ignore the key condition.
		if r.EntityType == RecordEntityType && strings.HasPrefix(r.Name, o.prefix) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Fetch rebuilds source tables from the published records of the named
// datasets, or of every published dataset when no names are given. The
// result can back metadata lookups in place of the embedded sources.
func Fetch(ctx context.Context, ds datastore.DataStore[Record], names ...string) (*sources.Tables, error) {
	var records []Record
	if len(names) == 0 {
		all, err := listRecords(ctx, ds, listOptions{})
		if err != nil {
			return nil, err
		}
		records = all
	} else {
		for _, name := range names {
			r, err := getRecord(ctx, ds, name)
			if errors.IsNotFound(err) {
				return nil, unpublished(ctx, ds, name)
			}
			if err != nil {
				return nil, fmt.Errorf("failed to fetch %s: %w", name, err)
			}
			records = append(records, *r)
		}
	}

	public := make(map[string]any, len(records))
	citations := make(map[string]any, len(records))
	order := make([]string, 0, len(records))
	for _, r := range records {
		attrs, err := r.Attributes()
		if err != nil {
			return nil, err
		}
		public[r.Name] = attrs
		order = append(order, r.Name)
		if entry := r.CitationEntry(); entry != nil {
			citations[r.Name] = entry
		}
	}
	return &sources.Tables{
		Public:    sources.TableFromMap(public, order),
		Citations: sources.TableFromMap(citations, order),
	}, nil
}

// getRecord looks name up, retrying with hyphens replaced by underscores the
// way metadata lookups do.
func getRecord(ctx context.Context, ds datastore.DataStore[Record], name string) (*Record, error) {
	r, err := ds.GetOne(ctx, name)
	if !errors.IsNotFound(err) || !strings.Contains(name, "-") {
		return r, err
	}
	return ds.GetOne(ctx, strings.ReplaceAll(name, "-", "_"))
}

func unpublished(ctx context.Context, ds datastore.DataStore[Record], name string) error {
	known, err := List(ctx, ds)
	if err != nil {
		slog.Debug("Could not list catalog for suggestions.", "error", err)
	}
	return errors.NewInvalidNameError("published dataset", name, sources.Suggest(name, known))
}
