/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sources

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/suparena/agml/errors"
)

const fixturePublic = `{
  "zeta_dataset": {"n_images": 10, "b_key": 1, "a_key": {"q": 1, "p": 2}},
  "alpha_dataset": {"n_images": "3000", "docs_url": "https://example.org/alpha"}
}`

const fixtureCitations = `
alpha_dataset:
  license: MIT
  citation: ""
`

func fixtureFS() fstest.MapFS {
	return fstest.MapFS{
		"public.json":    {Data: []byte(fixturePublic)},
		"citations.yaml": {Data: []byte(fixtureCitations)},
	}
}

func TestLoadKeepsDocumentOrder(t *testing.T) {
	tables, err := Load(fixtureFS(), "public.json", "citations.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta_dataset", "alpha_dataset"}, tables.Public.Keys())
	assert.Equal(t, []string{"alpha_dataset", "zeta_dataset"}, tables.Names())

	zeta, ok := tables.Lookup("zeta_dataset")
	require.True(t, ok)
	assert.Equal(t, []string{"n_images", "b_key", "a_key"}, zeta.Keys())

	nested, ok := zeta.Table("a_key")
	require.True(t, ok)
	assert.Equal(t, []string{"q", "p"}, nested.Keys())
	assert.Equal(t, []any{1, 2}, nested.Values())
	assert.True(t, zeta.HasNestedTables())

	alpha, _ := tables.Lookup("alpha_dataset")
	v, ok := alpha.Get("n_images")
	require.True(t, ok)
	assert.Equal(t, "3000", v)
	assert.False(t, alpha.HasNestedTables())

	cit, ok := tables.Citation("alpha_dataset")
	require.True(t, ok)
	lic, _ := cit.Get("license")
	assert.Equal(t, "MIT", lic)
}

func TestLoadErrors(t *testing.T) {
	fsys := fixtureFS()
	fsys["bad.txt"] = &fstest.MapFile{Data: []byte("{}")}
	fsys["list.json"] = &fstest.MapFile{Data: []byte(`["a", "b"]`)}
	fsys["scalar_entry.json"] = &fstest.MapFile{Data: []byte(`{"a": 1}`)}

	_, err := Load(fsys, "bad.txt", "citations.yaml")
	assert.ErrorContains(t, err, "no decoder registered")
	assert.ErrorContains(t, err, ".json, .yaml, .yml")

	_, err = Load(fsys, "missing.json", "citations.yaml")
	assert.ErrorContains(t, err, "failed to read source document")

	_, err = Load(fsys, "list.json", "citations.yaml")
	assert.ErrorContains(t, err, "expected a mapping, found sequence")

	_, err = Load(fsys, "scalar_entry.json", "citations.yaml")
	assert.True(t, errors.IsMalformedMetadata(err))
}

func TestTableRoundTripsThroughMaps(t *testing.T) {
	tables, err := Load(fixtureFS(), "public.json", "citations.yaml")
	require.NoError(t, err)
	zeta, _ := tables.Lookup("zeta_dataset")

	plain := zeta.ToMap()
	want := map[string]any{
		"n_images": 10,
		"b_key":    1,
		"a_key":    map[string]any{"q": 1, "p": 2},
	}
	if diff := cmp.Diff(want, plain); diff != "" {
		t.Errorf("ToMap mismatch (-want +got):\n%s", diff)
	}

	rebuilt := TableFromMap(plain, zeta.Keys())
	assert.Equal(t, zeta.Keys(), rebuilt.Keys())
	nested, ok := rebuilt.Table("a_key")
	require.True(t, ok)
	assert.Equal(t, []string{"p", "q"}, nested.Keys())
}

func TestTableMarshalYAMLKeepsOrder(t *testing.T) {
	tables, err := Load(fixtureFS(), "public.json", "citations.yaml")
	require.NoError(t, err)
	zeta, _ := tables.Lookup("zeta_dataset")

	out, err := yaml.Marshal(zeta)
	require.NoError(t, err)
	assert.Equal(t, "n_images: 10\nb_key: 1\na_key:\n    q: 1\n    p: 2\n", string(out))
}

func TestTableMarshalYAMLKeepsFloats(t *testing.T) {
	src := TableFromMap(map[string]any{
		"n_images": 2290.0,
		"mean":     []any{0.0, 0.5, 1},
	}, []string{"n_images", "mean"})

	out, err := yaml.Marshal(src)
	require.NoError(t, err)
	assert.Equal(t, "n_images: 2290.0\nmean:\n    - 0.0\n    - 0.5\n    - 1\n", string(out))

	decoded := &Table{}
	require.NoError(t, yaml.Unmarshal(out, decoded))
	if diff := cmp.Diff(src.ToMap(), decoded.ToMap()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNilTable(t *testing.T) {
	var tbl *Table
	_, ok := tbl.Get("x")
	assert.False(t, ok)
	assert.Equal(t, 0, tbl.Len())
	assert.Nil(t, tbl.Keys())
	assert.Nil(t, tbl.ToMap())
}

func TestSuggest(t *testing.T) {
	candidates := []string{"apple_flower", "apple_detection_usa", "bean_disease_uganda", "ab"}

	assert.Equal(t, []string{"apple_flower"}, Suggest("aple_flower", candidates))
	assert.Equal(t, []string{"ab"}, Suggest("ac", candidates))
	assert.Empty(t, Suggest("zzzzzzzz", candidates))
	assert.Empty(t, Suggest("apple_flower", []string{"apple_flower"}))

	many := []string{"abcd1", "abcd2", "abcd3", "abcd4"}
	assert.Len(t, Suggest("abcd", many), 3)
}

func TestPrintCopyright(t *testing.T) {
	tables, err := Load(fixtureFS(), "public.json", "citations.yaml")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tables.PrintCopyright(&buf, "alpha_dataset"))
	out := buf.String()
	assert.Contains(t, out, "CITATION AND LICENSE")
	assert.Contains(t, out, "MIT")
	assert.Contains(t, out, "no associated citation")
	assert.Contains(t, out, "https://example.org/alpha")

	buf.Reset()
	require.NoError(t, tables.PrintCopyright(&buf, "zeta_dataset"))
	assert.Contains(t, buf.String(), "no license")

	err = tables.PrintCopyright(&buf, "alpha_datset")
	assert.True(t, errors.IsInvalidName(err))
	assert.Contains(t, err.Error(), "alpha_dataset")
}

func TestDefaultTables(t *testing.T) {
	tables, err := Default()
	require.NoError(t, err)

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, tables, again)

	required := []string{
		"n_images", "ml_task", "ag_task", "location", "stats", "sensor_modality",
		"input_data_format", "annotation_format", "docs_url", "classes", "external_image_sources",
	}
	for _, name := range tables.Names() {
		record, ok := tables.Lookup(name)
		require.True(t, ok, name)
		for _, key := range required {
			assert.True(t, record.Has(key), "%s is missing %s", name, key)
		}
		assert.False(t, strings.Contains(name, "-"), "dataset names use underscores: %s", name)
	}

	names, err := DataSources()
	require.NoError(t, err)
	assert.Equal(t, tables.Names(), names)
}
