/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"strconv"
	"strings"
)

// GSIConfig names a global secondary index and its key attributes.
type GSIConfig struct {
	IndexName        string
	PartitionKeyName string
	SortKeyName      string
}

// GetGSIConfig resolves an index name: "GSI<n>" maps to the PK<n>/SK<n>
// attributes Put writes from the index map.
func GetGSIConfig(indexName string) (GSIConfig, bool) {
	suffix, found := strings.CutPrefix(indexName, "GSI")
	if !found {
		return GSIConfig{}, false
	}
	if n, err := strconv.Atoi(suffix); err != nil || n < 1 {
		return GSIConfig{}, false
	}
	return GSIConfig{
		IndexName:        indexName,
		PartitionKeyName: "PK" + suffix,
		SortKeyName:      "SK" + suffix,
	}, true
}

// keyCondition renders the key condition for a partition value and an
// optional sort key operator ("=" or "begins_with").
func (g GSIConfig) keyCondition(sortOp string) string {
	cond := g.PartitionKeyName + " = :pk"
	switch sortOp {
	case "=":
		cond += " AND " + g.SortKeyName + " = :sk"
	case "begins_with":
		cond += " AND begins_with(" + g.SortKeyName + ", :sk)"
	}
	return cond
}
