/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"fmt"

	"github.com/suparena/agml/errors"
	"github.com/suparena/agml/sources"
)

// ClassMapping maps integer labels to class names. It is either FlatClasses,
// for datasets with one set of classes, or GroupedClasses, for datasets that
// label the same images along several groupings.
type ClassMapping interface {
	isClassMapping()
}

// FlatClasses maps a label to its class name.
type FlatClasses map[int]string

// GroupedClasses maps a grouping name to its label mapping.
type GroupedClasses map[string]FlatClasses

func (FlatClasses) isClassMapping()    {}
func (GroupedClasses) isClassMapping() {}

// ClassIndex is the inverse of ClassMapping: FlatIndex or GroupedIndex.
type ClassIndex interface {
	isClassIndex()
}

// FlatIndex maps a class name to its label.
type FlatIndex map[string]int

// GroupedIndex maps a grouping name to its class index.
type GroupedIndex map[string]FlatIndex

func (FlatIndex) isClassIndex()    {}
func (GroupedIndex) isClassIndex() {}

// ClassList holds class names in document order: FlatLabels or GroupedLabels.
type ClassList interface {
	// Len is the number of classes, or of groupings for GroupedLabels.
	Len() int
}

// FlatLabels lists class names.
type FlatLabels []string

// GroupedLabels lists class names per grouping.
type GroupedLabels map[string][]string

func (l FlatLabels) Len() int    { return len(l) }
func (l GroupedLabels) Len() int { return len(l) }

// NumToClass returns the label to class name mapping.
func (m *DatasetMetadata) NumToClass() (ClassMapping, error) {
	classes, err := m.classTable()
	if err != nil {
		return nil, err
	}
	if !classes.HasNestedTables() {
		return m.flatClasses("classes", classes)
	}
	out := make(GroupedClasses, classes.Len())
	for _, group := range classes.Keys() {
		nested, err := m.group(classes, group)
		if err != nil {
			return nil, err
		}
		flat, err := m.flatClasses("classes."+group, nested)
		if err != nil {
			return nil, err
		}
		out[group] = flat
	}
	return out, nil
}

// ClassToNum returns the class name to label mapping.
func (m *DatasetMetadata) ClassToNum() (ClassIndex, error) {
	mapping, err := m.NumToClass()
	if err != nil {
		return nil, err
	}
	switch tm := mapping.(type) {
	case FlatClasses:
		return invert(tm), nil
	case GroupedClasses:
		out := make(GroupedIndex, len(tm))
		for group, flat := range tm {
			out[group] = invert(flat)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected class mapping %T", mapping)
	}
}

// Classes returns the class names without their labels.
func (m *DatasetMetadata) Classes() (ClassList, error) {
	classes, err := m.classTable()
	if err != nil {
		return nil, err
	}
	if !classes.HasNestedTables() {
		return m.labels("classes", classes)
	}
	out := make(GroupedLabels, classes.Len())
	for _, group := range classes.Keys() {
		nested, err := m.group(classes, group)
		if err != nil {
			return nil, err
		}
		labels, err := m.labels("classes."+group, nested)
		if err != nil {
			return nil, err
		}
		out[group] = labels
	}
	return out, nil
}

// NumClasses returns the number of classes. For grouped classes this is the
// number of groupings.
func (m *DatasetMetadata) NumClasses() (int, error) {
	classes, err := m.Classes()
	if err != nil {
		return 0, err
	}
	return classes.Len(), nil
}

func (m *DatasetMetadata) classTable() (*sources.Table, error) {
	v, err := m.lookup("classes")
	if err != nil {
		return nil, err
	}
	t, ok := v.(*sources.Table)
	if !ok {
		return nil, errors.NewMalformedMetadataError(m.name, "classes", fmt.Sprintf("expected a mapping, found %T", v))
	}
	return t, nil
}

func (m *DatasetMetadata) group(classes *sources.Table, name string) (*sources.Table, error) {
	nested, ok := classes.Table(name)
	if !ok {
		return nil, errors.NewMalformedMetadataError(m.name, "classes."+name, "grouped classes must all be mappings")
	}
	return nested, nil
}

func (m *DatasetMetadata) flatClasses(key string, t *sources.Table) (FlatClasses, error) {
	out := make(FlatClasses, t.Len())
	for _, k := range t.Keys() {
		num, err := toInt(k)
		if err != nil {
			return nil, errors.NewMalformedMetadataError(m.name, key, "class key "+err.Error())
		}
		v, _ := t.Get(k)
		label, ok := v.(string)
		if !ok {
			return nil, errors.NewMalformedMetadataError(m.name, key, fmt.Sprintf("class %q must be a string", k))
		}
		out[num] = label
	}
	return out, nil
}

func (m *DatasetMetadata) labels(key string, t *sources.Table) (FlatLabels, error) {
	out := make(FlatLabels, 0, t.Len())
	for _, v := range t.Values() {
		label, ok := v.(string)
		if !ok {
			return nil, errors.NewMalformedMetadataError(m.name, key, "class names must be strings")
		}
		out = append(out, label)
	}
	return out, nil
}

func invert(flat FlatClasses) FlatIndex {
	out := make(FlatIndex, len(flat))
	for num, label := range flat {
		out[label] = num
	}
	return out
}
