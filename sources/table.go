/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sources

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table is an ordered, string-keyed mapping decoded from a source document.
// Nested mappings are themselves *Table values, sequences are []any and
// scalars keep the type yaml.v3 resolves for them. A Table is never mutated
// once decoded.
type Table struct {
	keys   []string
	values map[string]any
}

func newTable(size int) *Table {
	return &Table{keys: make([]string, 0, size), values: make(map[string]any, size)}
}

func (t *Table) set(key string, value any) {
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// TableFromMap builds a Table from m. Keys listed in order come first in that
// order; the remaining keys follow sorted.
func TableFromMap(m map[string]any, order []string) *Table {
	t := newTable(len(m))
	for _, k := range order {
		if v, ok := m[k]; ok {
			t.set(k, fromPlain(v))
		}
	}
	rest := make([]string, 0, len(m))
	for k := range m {
		if _, seen := t.values[k]; !seen {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		t.set(k, fromPlain(m[k]))
	}
	return t
}

func fromPlain(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		return TableFromMap(tv, nil)
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = fromPlain(item)
		}
		return out
	default:
		return v
	}
}

// Get returns the value stored under key.
func (t *Table) Get(key string) (any, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.values[key]
	return v, ok
}

// Table returns the nested table stored under key.
func (t *Table) Table(key string) (*Table, bool) {
	v, ok := t.Get(key)
	if !ok {
		return nil, false
	}
	nested, ok := v.(*Table)
	return nested, ok
}

// Has reports whether key is present.
func (t *Table) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Keys returns the keys in document order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.keys)
}

// Values returns the values in document order.
func (t *Table) Values() []any {
	if t == nil {
		return nil
	}
	out := make([]any, len(t.keys))
	for i, k := range t.keys {
		out[i] = t.values[k]
	}
	return out
}

// Len returns the number of keys.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// HasNestedTables reports whether any value is itself a mapping.
func (t *Table) HasNestedTables() bool {
	for _, v := range t.Values() {
		if _, ok := v.(*Table); ok {
			return true
		}
	}
	return false
}

// ToMap converts the table, recursively, into plain maps and slices.
func (t *Table) ToMap() map[string]any {
	if t == nil {
		return nil
	}
	out := make(map[string]any, len(t.keys))
	for _, k := range t.keys {
		out[k] = toPlain(t.values[k])
	}
	return out
}

func toPlain(v any) any {
	switch tv := v.(type) {
	case *Table:
		return tv.ToMap()
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = toPlain(item)
		}
		return out
	default:
		return v
	}
}

// UnmarshalYAML decodes a mapping node, keeping key order.
func (t *Table) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, found %s", node.Line, kindName(node.Kind))
	}

	decoded := newTable(len(node.Content) / 2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
		}
		value, err := decodeNode(valueNode)
		if err != nil {
			return fmt.Errorf("key %q: %w", keyNode.Value, err)
		}
		decoded.set(keyNode.Value, value)
	}
	*t = *decoded
	return nil
}

func decodeNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return decodeNode(node.Content[0])
	case yaml.AliasNode:
		return decodeNode(node.Alias)
	case yaml.MappingNode:
		nested := &Table{}
		if err := nested.UnmarshalYAML(node); err != nil {
			return nil, err
		}
		return nested, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := decodeNode(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// MarshalYAML encodes the table as a mapping in document order.
func (t *Table) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if t == nil {
		return node, nil
	}
	for _, k := range t.keys {
		keyNode := &yaml.Node{}
		if err := keyNode.Encode(k); err != nil {
			return nil, err
		}
		valueNode, err := encodeValue(t.values[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

// encodeValue keeps integral floats as floats ("2290.0"), so a table read
// back from its own encoding holds the same types.
func encodeValue(v any) (*yaml.Node, error) {
	switch tv := v.(type) {
	case float64:
		return floatNode(tv, 64), nil
	case float32:
		return floatNode(float64(tv), 32), nil
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range tv {
			n, err := encodeValue(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, err
		}
		return n, nil
	}
}

func floatNode(f float64, bits int) *yaml.Node {
	var value string
	switch {
	case math.IsInf(f, 1):
		value = ".inf"
	case math.IsInf(f, -1):
		value = "-.inf"
	case math.IsNaN(f):
		value = ".nan"
	default:
		value = strconv.FormatFloat(f, 'g', -1, bits)
		if !strings.ContainsAny(value, ".e") {
			value += ".0"
		}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: value}
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "nothing"
	}
}
