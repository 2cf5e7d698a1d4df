/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package synthetic

import (
	"reflect"
	"slices"
)

// Kind is the declared type of a parameter field.
type Kind int

const (
	// KindAny accepts every value, including nil.
	KindAny Kind = iota
	// KindNumber accepts any integer or floating point value. Booleans are not numbers.
	KindNumber
	// KindString accepts a string.
	KindString
	// KindNumberList accepts a slice or array whose elements are all numbers.
	KindNumberList
	// KindPath accepts a filesystem path given as a string.
	KindPath
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindNumberList:
		return "list of numbers"
	case KindPath:
		return "path"
	default:
		return "any"
	}
}

// Accepts reports whether v satisfies the kind.
func (k Kind) Accepts(v any) bool {
	switch k {
	case KindAny:
		return true
	case KindNumber:
		return isNumber(v)
	case KindString, KindPath:
		_, ok := v.(string)
		return ok
	case KindNumberList:
		return isNumberList(v)
	default:
		return false
	}
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

func isNumberList(v any) bool {
	items, ok := anySlice(v)
	if !ok {
		return false
	}
	for _, item := range items {
		if !isNumber(item) {
			return false
		}
	}
	return true
}

// anySlice unpacks any slice or array into its elements.
func anySlice(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// Field is a named, typed parameter.
type Field struct {
	Name string
	Kind Kind
}

// Schema is the fixed field set of one parameter group.
type Schema struct {
	name   string
	fields []Field
	index  map[string]int
}

// NewSchema declares a schema. Field names must be unique; a duplicate panics
// since schemas are declared at package initialization.
func NewSchema(name string, fields ...Field) *Schema {
	s := &Schema{name: name, fields: slices.Clone(fields), index: make(map[string]int, len(fields))}
	for i, f := range fields {
		if _, exists := s.index[f.Name]; exists {
			panic("synthetic: duplicate field " + f.Name + " in schema " + name)
		}
		s.index[f.Name] = i
	}
	return s
}

// Name returns the schema name, e.g. "CanopyParameters".
func (s *Schema) Name() string { return s.name }

// Fields returns the declared fields in order.
func (s *Schema) Fields() []Field { return slices.Clone(s.fields) }

// Field returns the declaration of name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Names returns the field names in order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// CanopySchema holds the canopy geometry parameters of the Helios canopy generator.
var CanopySchema = NewSchema("CanopyParameters",
	Field{"leaf_length", KindNumber},
	Field{"leaf_width", KindNumber},
	Field{"leaf_size", KindNumber},
	Field{"leaf_subdivisions", KindNumberList},
	Field{"leaf_texture_file", KindString},
	Field{"leaf_color", KindString},
	Field{"leaf_angle_distribution", KindString},
	Field{"leaf_area_index", KindNumber},
	Field{"leaf_area_density", KindNumber},
	Field{"leaf_spacing_fraction", KindNumber},
	Field{"stem_color", KindNumberList},
	Field{"stem_subdivisions", KindNumber},
	Field{"stems_per_plant", KindNumber},
	Field{"stem_radius", KindNumber},
	Field{"plant_height", KindNumber},
	Field{"grape_radius", KindNumber},
	Field{"grape_color", KindNumberList},
	Field{"grape_subdivisions", KindNumber},
	Field{"fruit_color", KindNumberList},
	Field{"fruit_radius", KindNumber},
	Field{"fruit_subdivisions", KindNumber},
	Field{"fruit_texture_file", KindPath},
	Field{"wood_texture_file", KindPath},
	Field{"wood_subdivisions", KindNumber},
	Field{"clusters_per_stem", KindNumber},
	Field{"plant_spacing", KindNumber},
	Field{"row_spacing", KindNumber},
	Field{"level_spacing", KindNumber},
	Field{"plant_count", KindNumberList},
	Field{"canopy_origin", KindNumberList},
	Field{"canopy_rotation", KindNumber},
	Field{"canopy_height", KindNumber},
	Field{"canopy_extent", KindNumberList},
	Field{"canopy_configuration", KindString},
	Field{"base_height", KindNumber},
	Field{"crown_radius", KindNumber},
	Field{"cluster_radius", KindNumber},
	Field{"cluster_height_max", KindNumber},
	Field{"trunk_height", KindNumber},
	Field{"trunk_radius", KindNumber},
	Field{"cordon_height", KindNumber},
	Field{"cordon_radius", KindNumber},
	Field{"cordon_spacing", KindNumber},
	Field{"shoot_length", KindNumber},
	Field{"shoot_radius", KindNumber},
	Field{"shoots_per_cordon", KindNumber},
	Field{"shoot_angle", KindNumber},
	Field{"shoot_angle_tip", KindNumber},
	Field{"shoot_angle_base", KindNumber},
	Field{"shoot_color", KindNumberList},
	Field{"shoot_subdivisions", KindNumberList},
	Field{"needle_width", KindNumber},
	Field{"needle_length", KindNumber},
	Field{"needle_color", KindNumberList},
	Field{"needle_subdivisions", KindNumberList},
	Field{"branch_length", KindNumber},
	Field{"branches_per_level", KindNumber},
	Field{"buffer", KindString},
)

// CameraSchema holds the camera pose.
var CameraSchema = NewSchema("CameraParameters",
	Field{"image_resolution", KindNumberList},
	Field{"camera_position", KindNumberList},
	Field{"camera_lookat", KindNumberList},
)

// LiDARSchema holds the LiDAR scan geometry.
var LiDARSchema = NewSchema("LiDARParameters",
	Field{"origin", KindNumberList},
	Field{"size", KindNumberList},
	Field{"thetaMin", KindNumber},
	Field{"thetaMax", KindNumber},
	Field{"phiMin", KindNumber},
	Field{"phiMax", KindNumber},
	Field{"exitDiameter", KindNumber},
	Field{"beamDivergence", KindNumber},
	Field{"ASCII_format", KindString},
)
