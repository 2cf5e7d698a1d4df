/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"maps"
	"reflect"
	"sync"
)

// IndexMapRegistry associates Go types with their DynamoDB key templates.

var (
	indexMapRegistry = make(map[reflect.Type]map[string]string)
	indexMapMu       sync.RWMutex
)

// RegisterIndexMap associates a Go type T with a given DynamoDB index map (PK, SK, etc.).
func RegisterIndexMap[T any](idxMap map[string]string) {
	t := reflect.TypeFor[T]()

	indexMapMu.Lock()
	defer indexMapMu.Unlock()
	indexMapRegistry[t] = maps.Clone(idxMap)
}

// GetIndexMap retrieves the indexMap for type T, if any.
// The returned map is a copy and may be modified by the caller.
func GetIndexMap[T any]() (map[string]string, bool) {
	t := reflect.TypeFor[T]()

	indexMapMu.RLock()
	defer indexMapMu.RUnlock()
	m, ok := indexMapRegistry[t]
	if !ok {
		return nil, false
	}
	return maps.Clone(m), true
}
