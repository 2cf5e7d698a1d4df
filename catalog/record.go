/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package catalog

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
	"gopkg.in/yaml.v3"

	"github.com/suparena/agml/errors"
	"github.com/suparena/agml/registry"
	"github.com/suparena/agml/sources"
)

// RecordEntityType tags catalog records in the shared table.
const RecordEntityType = "DatasetRecord"

const (
	// CatalogIndex is the GSI listing every published dataset.
	CatalogIndex = "GSI1"
	// CatalogPartition is the GSI partition all records share.
	CatalogPartition = "CATALOG"
)

func init() {
	registry.RegisterIndexMap[Record](map[string]string{
		"PK":  "DATASET#{Name}",
		"SK":  "METADATA",
		"PK1": CatalogPartition,
		"SK1": "{Name}",
	})
}

// Record is the published form of one dataset: its attribute table as an
// ordered YAML document and its citation entry.
type Record struct {
	Name string
	// Document holds the attribute table, keys in source order.
	Document    string
	HasCitation bool
	License     string
	Citation    string
	EntityType  string
	UpdatedAt   Timestamp
}

// Timestamp is a strfmt.DateTime stored as an RFC 3339 string attribute.
type Timestamp strfmt.DateTime

// NewTimestamp converts t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(strfmt.DateTime(t.UTC()))
}

// Time returns the timestamp as a time.Time.
func (t Timestamp) Time() time.Time { return time.Time(t) }

func (t Timestamp) String() string { return strfmt.DateTime(t).String() }

// MarshalDynamoDBAttributeValue implements attributevalue.Marshaler.
func (t Timestamp) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberS{Value: t.String()}, nil
}

// UnmarshalDynamoDBAttributeValue implements attributevalue.Unmarshaler.
func (t *Timestamp) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	s, ok := av.(*types.AttributeValueMemberS)
	if !ok {
		return fmt.Errorf("timestamp: expected a string attribute, found %T", av)
	}
	dt, err := strfmt.ParseDateTime(s.Value)
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	*t = Timestamp(dt)
	return nil
}

// NewRecord captures the source entry for name.
func NewRecord(tables *sources.Tables, name string, now time.Time) (Record, error) {
	attrs, ok := tables.Lookup(name)
	if !ok {
		return Record{}, errors.NewInvalidNameError("public source", name, sources.Suggest(name, tables.Public.Keys()))
	}
	doc, err := yaml.Marshal(attrs)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode %s: %w", name, err)
	}

	r := Record{
		Name:       name,
		Document:   string(doc),
		EntityType: RecordEntityType,
		UpdatedAt:  NewTimestamp(now),
	}
	if citation, ok := tables.Citation(name); ok {
		r.HasCitation = true
		r.License = stringField(citation, "license")
		r.Citation = stringField(citation, "citation")
	}
	return r, nil
}

// Attributes decodes the attribute table.
func (r Record) Attributes() (*sources.Table, error) {
	t := &sources.Table{}
	if err := yaml.Unmarshal([]byte(r.Document), t); err != nil {
		return nil, errors.NewMalformedMetadataError(r.Name, "document", err.Error())
	}
	return t, nil
}

// CitationEntry rebuilds the citation table, or nil when the dataset had none.
func (r Record) CitationEntry() *sources.Table {
	if !r.HasCitation {
		return nil
	}
	return sources.TableFromMap(map[string]any{
		"license":  r.License,
		"citation": r.Citation,
	}, []string{"license", "citation"})
}

func stringField(t *sources.Table, key string) string {
	v, _ := t.Get(key)
	s, _ := v.(string)
	return s
}
