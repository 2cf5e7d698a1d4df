/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package transfer

import (
	"archive/zip"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/suparena/agml/blob"
	"github.com/suparena/agml/errors"
	"github.com/suparena/agml/sources"
)

const (
	// DefaultBucket holds the public dataset archives.
	DefaultBucket = "agdata-data"
	// DefaultRegion is the region of DefaultBucket.
	DefaultRegion = "us-west-1"

	archiveExt         = ".zip"
	archiveContentType = "application/zip"
)

var errNotSeekable = stderrors.New("transfer: source is not seekable")

// API moves dataset archives between a local directory and blob storage.
type API struct {
	store   blob.Store
	tables  *sources.Tables
	metrics *Metrics
}

// Option configures an API.
type Option func(*API)

// WithMetrics records transfers in m.
func WithMetrics(m *Metrics) Option {
	return func(a *API) { a.metrics = m }
}

// WithTables validates download names against tables instead of the default
// sources.
func WithTables(t *sources.Tables) Option {
	return func(a *API) { a.tables = t }
}

// New returns an API over store.
func New(store blob.Store, opts ...Option) *API {
	a := &API{store: store}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ArchiveKey is the object key of a dataset archive.
func ArchiveKey(name string) string { return name + archiveExt }

// DataSources returns the names of every public dataset.
func (a *API) DataSources() ([]string, error) {
	tables, err := a.sourceTables()
	if err != nil {
		return nil, err
	}
	return tables.Names(), nil
}

func (a *API) sourceTables() (*sources.Tables, error) {
	if a.tables != nil {
		return a.tables, nil
	}
	return sources.Default()
}

// Upload sends <dir>/<name>.zip to the store under <name>.zip. The name is not
// checked against the sources so new datasets can be staged before they are
// registered.
func (a *API) Upload(ctx context.Context, name, dir string, progress ProgressFunc) (blob.Info, error) {
	path := filepath.Join(dir, ArchiveKey(name))
	f, err := os.Open(path)
	if err != nil {
		return blob.Info{}, fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return blob.Info{}, fmt.Errorf("failed to stat archive: %w", err)
	}
	pr := &progressReader{r: f, total: stat.Size(), report: progress}

	slog.Info("Uploading dataset.", "dataset", name, "bytes", stat.Size(), "driver", a.store.Driver())
	info, err := a.store.Put(ctx, ArchiveKey(name), pr, blob.PutOptions{
		ContentType:   archiveContentType,
		ContentLength: stat.Size(),
	})
	a.metrics.observe(directionUpload, pr.transferred.Load(), err)
	if err != nil {
		slog.Warn("Upload unsuccessful; you may not have permission to write to the bucket.", "dataset", name, "error", err)
		return blob.Info{}, fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return info, nil
}

// Download fetches <name>.zip into dest, extracts it there and removes the
// archive. It returns the path of the extracted dataset.
func (a *API) Download(ctx context.Context, name, dest string, progress ProgressFunc) (string, error) {
	tables, err := a.sourceTables()
	if err != nil {
		return "", err
	}
	if _, ok := tables.Lookup(name); !ok {
		return "", errors.NewInvalidNameError("public source", name, sources.Suggest(name, tables.Public.Keys()))
	}

	written, err := a.download(ctx, name, dest, progress)
	a.metrics.observe(directionDownload, written, err)
	if err != nil {
		return "", err
	}
	return filepath.Join(dest, name), nil
}

func (a *API) download(ctx context.Context, name, dest string, progress ProgressFunc) (int64, error) {
	key := ArchiveKey(name)
	head, err := a.store.Head(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to locate %s: %w", key, err)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", dest, err)
	}

	archive := filepath.Join(dest, key)
	written, err := a.fetch(ctx, key, archive, head.Size, progress)
	if err != nil {
		_ = os.Remove(archive)
		return written, err
	}
	defer os.Remove(archive)

	if err := Extract(archive, dest); err != nil {
		return written, err
	}
	slog.Info("Dataset downloaded.", "dataset", name, "bytes", written, "dest", dest)
	return written, nil
}

func (a *API) fetch(ctx context.Context, key, path string, total int64, progress ProgressFunc) (int64, error) {
	_, body, err := a.store.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to download %s: %w", key, err)
	}
	defer body.Close()

	out, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create archive: %w", err)
	}
	pw := &progressWriter{w: out, total: total, report: progress}
	_, copyErr := io.Copy(pw, body)
	closeErr := out.Close()
	if copyErr != nil {
		return pw.transferred, fmt.Errorf("failed to download %s: %w", key, copyErr)
	}
	if closeErr != nil {
		return pw.transferred, fmt.Errorf("failed to write archive: %w", closeErr)
	}
	return pw.transferred, nil
}

// Extract unpacks the zip archive at path into dest. Entries resolving outside
// dest are rejected.
func Extract(path, dest string) error {
	r, err := zip.OpenReader(path)
	// Insecure names are rejected per entry below.
	if err != nil && !stderrors.Is(err, zip.ErrInsecurePath) {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer r.Close()

	root, err := filepath.Abs(dest)
	if err != nil {
		return err
	}
	slog.Debug("Extracting files.", "archive", path, "entries", len(r.File))
	for _, f := range r.File {
		if err := extractFile(f, root); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, root string) error {
	target := filepath.Join(root, f.Name)
	if rel, err := filepath.Rel(root, target); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return errors.NewValidationError("archive", fmt.Sprintf("entry %q escapes the destination", f.Name))
	}
	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	defer src.Close()
	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.Mode().Perm()|0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("failed to extract %s: %w", f.Name, err)
	}
	return dst.Close()
}
