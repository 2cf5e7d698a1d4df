/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package catalog

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/agml/datastore/mock"
	"github.com/suparena/agml/errors"
	"github.com/suparena/agml/metadata"
	"github.com/suparena/agml/registry"
	"github.com/suparena/agml/sources"
	"github.com/suparena/agml/storagemodels"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func newStore(t *testing.T) *mock.DataStore[Record] {
	t.Helper()
	now = func() time.Time { return fixedNow }
	t.Cleanup(func() { now = time.Now })
	return mock.New[Record]().WithGetKeyFunc(func(r Record) string { return r.Name })
}

func defaultTables(t *testing.T) *sources.Tables {
	t.Helper()
	tables, err := sources.Default()
	require.NoError(t, err)
	return tables
}

func TestIndexMapRegistered(t *testing.T) {
	indexMap, ok := registry.GetIndexMap[Record]()
	require.True(t, ok)
	assert.Equal(t, "DATASET#{Name}", indexMap["PK"])
	assert.Equal(t, "METADATA", indexMap["SK"])
	assert.Equal(t, "CATALOG", indexMap["PK1"])
	assert.Equal(t, "{Name}", indexMap["SK1"])
}

func TestPublishAndList(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	tables := defaultTables(t)

	n, err := Publish(ctx, store, tables)
	require.NoError(t, err)
	assert.Equal(t, len(tables.Names()), n)

	names, err := List(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, tables.Names(), names)

	queries := store.Queries()
	require.Len(t, queries, 1)
	assert.Equal(t, "GSI1", *queries[0].IndexName)
	pk, _ := queries[0].PartitionValue()
	assert.Equal(t, "CATALOG", pk)

	record := store.GetData()["bean_disease_uganda"]
	assert.Equal(t, RecordEntityType, record.EntityType)
	assert.Equal(t, fixedNow, record.UpdatedAt.Time())
}

func TestPublishSelectedAndUnknown(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	tables := defaultTables(t)

	n, err := Publish(ctx, store, tables, "apple_detection_usa")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, store.Count())

	_, err = Publish(ctx, store, tables, "apple_detection_us")
	assert.True(t, errors.IsInvalidName(err))
	assert.Contains(t, err.Error(), "apple_detection_usa")
}

func TestPublishStoreFailure(t *testing.T) {
	store := newStore(t).WithPutError(stderrors.New("throttled"))
	n, err := Publish(context.Background(), store, defaultTables(t), "bean_disease_uganda")
	assert.Equal(t, 0, n)
	assert.ErrorContains(t, err, "failed to publish bean_disease_uganda: throttled")
}

func TestFetchRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	tables := defaultTables(t)
	_, err := Publish(ctx, store, tables)
	require.NoError(t, err)

	fetched, err := Fetch(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, tables.Names(), fetched.Names())

	for _, name := range tables.Names() {
		original, err := metadata.New(name, metadata.WithTables(tables))
		require.NoError(t, err)
		restored, err := metadata.New(name, metadata.WithTables(fetched))
		require.NoError(t, err)

		assert.Equal(t, original.Data().ToMap(), restored.Data().ToMap(), name)
		assert.Equal(t, original.Data().Keys(), restored.Data().Keys(), name)

		wantClasses, err := original.Classes()
		require.NoError(t, err)
		gotClasses, err := restored.Classes()
		require.NoError(t, err)
		assert.Equal(t, wantClasses, gotClasses, name)

		wantLicense, wantOK := original.License()
		gotLicense, gotOK := restored.License()
		assert.Equal(t, wantOK, gotOK, name)
		assert.Equal(t, wantLicense, gotLicense, name)
	}
}

func TestListPrefixAndDescending(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	_, err := Publish(ctx, store, defaultTables(t), "apple_detection_usa", "apple_flower_segmentation", "bean_disease_uganda")
	require.NoError(t, err)

	names, err := List(ctx, store, WithPrefix("apple"), Descending())
	require.NoError(t, err)
	assert.Equal(t, []string{"apple_flower_segmentation", "apple_detection_usa"}, names)

	queries := store.Queries()
	require.Len(t, queries, 1)
	assert.Equal(t, "PK1 = :pk AND begins_with(SK1, :sk)", queries[0].KeyConditionExpression)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "apple"}, queries[0].ExpressionAttributeValues[":sk"])
	require.NotNil(t, queries[0].ScanIndexForward)
	assert.False(t, *queries[0].ScanIndexForward)
}

func TestFetchHyphenatedName(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	_, err := Publish(ctx, store, defaultTables(t), "carrot_weeds_germany")
	require.NoError(t, err)

	fetched, err := Fetch(ctx, store, "carrot-weeds-germany")
	require.NoError(t, err)
	assert.Equal(t, []string{"carrot_weeds_germany"}, fetched.Names())
}

func TestFetchKeepsMissingCitation(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	tables := defaultTables(t)
	_, err := Publish(ctx, store, tables, "vine_virus_photo_dataset")
	require.NoError(t, err)
	assert.False(t, store.GetData()["vine_virus_photo_dataset"].HasCitation)

	fetched, err := Fetch(ctx, store, "vine_virus_photo_dataset")
	require.NoError(t, err)
	_, ok := fetched.Citation("vine_virus_photo_dataset")
	assert.False(t, ok)
}

func TestFetchUnpublished(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	_, err := Publish(ctx, store, defaultTables(t), "carrot_weeds_germany")
	require.NoError(t, err)

	_, err = Fetch(ctx, store, "carrot_weeds_germny")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidName(err))
	assert.Contains(t, err.Error(), "published dataset")
	assert.Contains(t, err.Error(), "did you mean 'carrot_weeds_germany'?")
}

func TestFetchStoreFailure(t *testing.T) {
	store := newStore(t).WithGetError(stderrors.New("timeout"))
	_, err := Fetch(context.Background(), store, "x")
	assert.ErrorContains(t, err, "timeout")
	assert.False(t, errors.IsInvalidName(err))
}

func TestListSkipsForeignEntities(t *testing.T) {
	store := newStore(t).WithQueryFunc(func(ctx context.Context, _ *storagemodels.QueryParams) ([]Record, error) {
		return []Record{
			{Name: "b", EntityType: RecordEntityType},
			{Name: "other", EntityType: "Something"},
			{Name: "a", EntityType: RecordEntityType},
		}, nil
	})
	names, err := List(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestRecordAttributeValues(t *testing.T) {
	record, err := NewRecord(defaultTables(t), "carrot_weeds_germany", fixedNow)
	require.NoError(t, err)

	av, err := attributevalue.MarshalMap(record)
	require.NoError(t, err)
	assert.Contains(t, av, "UpdatedAt")

	var decoded Record
	require.NoError(t, attributevalue.UnmarshalMap(av, &decoded))
	assert.Equal(t, record.Name, decoded.Name)
	assert.Equal(t, record.Document, decoded.Document)
	assert.True(t, fixedNow.Equal(decoded.UpdatedAt.Time()))
	assert.True(t, decoded.HasCitation)
	assert.Equal(t, "", decoded.License)
}

func TestMalformedDocument(t *testing.T) {
	_, err := Record{Name: "x", Document: "- not\n- a mapping\n"}.Attributes()
	assert.True(t, errors.IsMalformedMetadata(err))
}
