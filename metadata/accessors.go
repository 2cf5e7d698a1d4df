/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/suparena/agml/errors"
	"github.com/suparena/agml/sources"
)

// Tasks holds the machine learning and agricultural tasks of a dataset.
type Tasks struct {
	ML string
	Ag string
}

// Location holds where the dataset images were captured.
type Location struct {
	Continent string
	Country   string
}

// ImageStats holds the per-channel mean and standard deviation of the images.
type ImageStats struct {
	Mean []float64
	Std  []float64
}

// NumImages returns the number of images. The source may store it as a
// number or as a numeric string such as "2290.0".
func (m *DatasetMetadata) NumImages() (int, error) {
	v, err := m.lookup("n_images")
	if err != nil {
		return 0, err
	}
	n, err := toInt(v)
	if err != nil {
		return 0, errors.NewMalformedMetadataError(m.name, "n_images", err.Error())
	}
	return n, nil
}

// Tasks returns the machine learning and agricultural tasks.
func (m *DatasetMetadata) Tasks() (Tasks, error) {
	ml, err := m.stringAttr("ml_task")
	if err != nil {
		return Tasks{}, err
	}
	ag, err := m.stringAttr("ag_task")
	if err != nil {
		return Tasks{}, err
	}
	return Tasks{ML: ml, Ag: ag}, nil
}

// Location returns the continent and country the dataset was captured in.
func (m *DatasetMetadata) Location() (Location, error) {
	first, second, err := m.pair("location", "continent", "country")
	if err != nil {
		return Location{}, err
	}
	continent, ok1 := first.(string)
	country, ok2 := second.(string)
	if !ok1 || !ok2 {
		return Location{}, errors.NewMalformedMetadataError(m.name, "location", "continent and country must be strings")
	}
	return Location{Continent: continent, Country: country}, nil
}

// ImageStats returns the mean and standard deviation of the RGB images.
func (m *DatasetMetadata) ImageStats() (ImageStats, error) {
	first, second, err := m.pair("stats", "mean", "std")
	if err != nil {
		return ImageStats{}, err
	}
	mean, err := toFloats(first)
	if err != nil {
		return ImageStats{}, errors.NewMalformedMetadataError(m.name, "stats", "mean: "+err.Error())
	}
	std, err := toFloats(second)
	if err != nil {
		return ImageStats{}, errors.NewMalformedMetadataError(m.name, "stats", "std: "+err.Error())
	}
	return ImageStats{Mean: mean, Std: std}, nil
}

// SensorModality returns the sensor used to capture the images.
func (m *DatasetMetadata) SensorModality() (string, error) {
	return m.stringAttr("sensor_modality")
}

// ImageFormat returns the input data format, e.g. "jpg".
func (m *DatasetMetadata) ImageFormat() (string, error) {
	return m.stringAttr("input_data_format")
}

// AnnotationFormat returns the annotation format, e.g. "coco_json".
func (m *DatasetMetadata) AnnotationFormat() (string, error) {
	return m.stringAttr("annotation_format")
}

// Docs returns the documentation URL.
func (m *DatasetMetadata) Docs() (string, error) {
	return m.stringAttr("docs_url")
}

// ExternalImageSources returns the external sources the images came from.
func (m *DatasetMetadata) ExternalImageSources() ([]string, error) {
	v, err := m.lookup("external_image_sources")
	if err != nil {
		return nil, err
	}
	switch tv := v.(type) {
	case nil:
		return nil, nil
	case string:
		if tv == "" {
			return nil, nil
		}
		return []string{tv}, nil
	case []any:
		out := make([]string, 0, len(tv))
		for _, item := range tv {
			s, ok := item.(string)
			if !ok {
				return nil, errors.NewMalformedMetadataError(m.name, "external_image_sources", "entries must be strings")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errors.NewMalformedMetadataError(m.name, "external_image_sources", fmt.Sprintf("unexpected %T", v))
	}
}

// License returns the dataset license. An empty license is reported as absent.
func (m *DatasetMetadata) License() (string, bool) {
	return m.citationField("license")
}

// Citation returns the citation text. An empty citation is reported as absent.
func (m *DatasetMetadata) Citation() (string, bool) {
	return m.citationField("citation")
}

func (m *DatasetMetadata) citationField(key string) (string, bool) {
	v, ok := m.citation.Get(key)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	if s == "" {
		return "", false
	}
	return s, true
}

func (m *DatasetMetadata) stringAttr(key string) (string, error) {
	v, err := m.lookup(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.NewMalformedMetadataError(m.name, key, fmt.Sprintf("expected a string, found %T", v))
	}
	return s, nil
}

// pair unpacks a two-entry mapping. Named keys win; otherwise the entries
// are taken in document order.
func (m *DatasetMetadata) pair(key, firstKey, secondKey string) (any, any, error) {
	v, err := m.lookup(key)
	if err != nil {
		return nil, nil, err
	}
	t, ok := v.(*sources.Table)
	if !ok || t.Len() != 2 {
		return nil, nil, errors.NewMalformedMetadataError(m.name, key, "expected a two-entry mapping")
	}
	first, ok1 := t.Get(firstKey)
	second, ok2 := t.Get(secondKey)
	if ok1 && ok2 {
		return first, second, nil
	}
	values := t.Values()
	return values[0], values[1], nil
}

// toInt converts a number or numeric string through float, so "3.0" is 3.
func toInt(v any) (int, error) {
	switch tv := v.(type) {
	case int:
		return tv, nil
	case int64:
		return int(tv), nil
	case uint64:
		return int(tv), nil
	case float64:
		return floatToInt(tv)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(tv), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", tv)
		}
		return floatToInt(f)
	default:
		return 0, fmt.Errorf("expected a number, found %T", v)
	}
}

func floatToInt(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%v is not a finite number", f)
	}
	return int(f), nil
}

func toFloats(v any) ([]float64, error) {
	switch tv := v.(type) {
	case []any:
		out := make([]float64, len(tv))
		for i, item := range tv {
			f, err := toFloat(item)
			if err != nil {
				return nil, err
			}
			out[i] = f
		}
		return out, nil
	default:
		f, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		return []float64{f}, nil
	}
}

func toFloat(v any) (float64, error) {
	switch tv := v.(type) {
	case int:
		return float64(tv), nil
	case int64:
		return float64(tv), nil
	case uint64:
		return float64(tv), nil
	case float64:
		return tv, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(tv), 64)
	default:
		return 0, fmt.Errorf("expected a number, found %T", v)
	}
}
