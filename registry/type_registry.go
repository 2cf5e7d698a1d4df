/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// DecodeFunc decodes a raw source document into out.
type DecodeFunc func(data []byte, out any) error

var (
	decoderRegistry = make(map[string]DecodeFunc)
	decoderMu       sync.RWMutex
)

// RegisterDecoder registers a decode function for a file extension such as ".json".
// If a decoder is already registered for the extension, it panics to prevent accidental overrides.
func RegisterDecoder(ext string, fn DecodeFunc) {
	ext = normalizeExt(ext)

	decoderMu.Lock()
	defer decoderMu.Unlock()
	if _, exists := decoderRegistry[ext]; exists {
		panic(fmt.Sprintf("decoder registry: decoder for extension %q already registered", ext))
	}
	decoderRegistry[ext] = fn
}

// GetDecoder returns the registered decode function for the given extension.
// If no function is registered, it returns an error.
func GetDecoder(ext string) (DecodeFunc, error) {
	ext = normalizeExt(ext)

	decoderMu.RLock()
	defer decoderMu.RUnlock()
	fn, ok := decoderRegistry[ext]
	if !ok {
		return nil, fmt.Errorf("decoder registry: no decoder registered for extension %q (registered: %s)",
			ext, strings.Join(extensions(), ", "))
	}
	return fn, nil
}

// DecoderForPath returns the decode function matching the extension of path.
func DecoderForPath(path string) (DecodeFunc, error) {
	return GetDecoder(filepath.Ext(path))
}

// extensions lists the registered extensions in sorted order. Callers hold decoderMu.
func extensions() []string {
	exts := make([]string, 0, len(decoderRegistry))
	for ext := range decoderRegistry {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
