/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/suparena/agml/internal/term"
	"github.com/suparena/agml/sources"
)

const boldMarker = "<|>"

var boldPattern = regexp.MustCompile(`"?<\|>(.*?)<\|>"?`)

var displayNames = map[string]string{
	"ml_task":        "Machine Learning Task",
	"ag_task":        "Agricultural Task",
	"real_synthetic": "Real Or Synthetic",
	"n_images":       "Number of Images",
	"docs_url":       "Documentation",
}

// Summary prints every attribute of the dataset as a readable table. It
// writes to w and returns only write or encoding failures.
func (m *DatasetMetadata) Summary(w io.Writer) error {
	caser := cases.Title(language.Und)
	formatted := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range m.metadata.Keys() {
		value, _ := m.metadata.Get(key)
		name, ok := displayNames[key]
		if !ok {
			name = caser.String(strings.ReplaceAll(key, "_", " "))
		}
		switch key {
		case "n_images":
			if n, err := m.NumImages(); err == nil {
				value = n
			}
		case "crop_types":
			value = intKeyed(value)
		}

		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: boldMarker + name + boldMarker}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(value); err != nil {
			return fmt.Errorf("failed to format %q: %w", key, err)
		}
		formatted.Content = append(formatted.Content, keyNode, valueNode)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(formatted); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	content := boldPattern.ReplaceAllStringFunc(buf.String(), func(s string) string {
		return term.Bold(boldPattern.FindStringSubmatch(s)[1])
	})

	var out strings.Builder
	out.WriteString(strings.Repeat("=", 20) + " DATASET SUMMARY " + strings.Repeat("=", 20) + "\n")
	out.WriteString(term.Bold("Name") + ": " + m.name + "\n")
	out.WriteString(content)
	out.WriteString(strings.Repeat("=", 57) + "\n")
	_, err := io.WriteString(w, out.String())
	return err
}

// intKeyed re-keys a mapping of numeric strings by integer. Values that are
// not such a mapping are returned unchanged.
func intKeyed(v any) any {
	t, ok := v.(*sources.Table)
	if !ok {
		return v
	}
	out := make(map[int]any, t.Len())
	for _, k := range t.Keys() {
		n, err := toInt(k)
		if err != nil {
			return v
		}
		out[n], _ = t.Get(k)
	}
	return out
}
