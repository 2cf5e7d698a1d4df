/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	agmlerrors "github.com/suparena/agml/errors"
	"github.com/suparena/agml/registry"
)

type testDataset struct {
	Name       string
	NumImages  int
	Public     bool
	EntityType string
}

type unregistered struct {
	Name string
}

type unkeyed struct {
	Name    string
	Version string
}

func init() {
	registry.RegisterIndexMap[testDataset](map[string]string{
		"PK":  "DATASET#{Name}",
		"SK":  "METADATA",
		"PK1": "CATALOG",
		"SK1": "{Name}#{NumImages}",
	})
}

// fakeClient keeps items keyed by PK|SK and pages query results.
type fakeClient struct {
	items    map[string]map[string]types.AttributeValue
	pages    [][]map[string]types.AttributeValue
	queries  []*sdk.QueryInput
	tables   []string
	queryErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{items: make(map[string]map[string]types.AttributeValue)}
}

func itemKey(key map[string]types.AttributeValue) string {
	pk := key["PK"].(*types.AttributeValueMemberS).Value
	sk := key["SK"].(*types.AttributeValueMemberS).Value
	return pk + "|" + sk
}

func (f *fakeClient) GetItem(ctx context.Context, in *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.tables = append(f.tables, aws.ToString(in.TableName))
	return &sdk.GetItemOutput{Item: f.items[itemKey(in.Key)]}, nil
}

func (f *fakeClient) PutItem(ctx context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.tables = append(f.tables, aws.ToString(in.TableName))
	f.items[itemKey(in.Item)] = in.Item
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeClient) DeleteItem(ctx context.Context, in *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.tables = append(f.tables, aws.ToString(in.TableName))
	delete(f.items, itemKey(in.Key))
	return &sdk.DeleteItemOutput{}, nil
}

func (f *fakeClient) Query(ctx context.Context, in *sdk.QueryInput, _ ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	f.tables = append(f.tables, aws.ToString(in.TableName))
	recorded := *in
	f.queries = append(f.queries, &recorded)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	page := len(f.queries) - 1
	if page >= len(f.pages) {
		return &sdk.QueryOutput{}, nil
	}
	out := &sdk.QueryOutput{Items: f.pages[page]}
	if page < len(f.pages)-1 {
		out.LastEvaluatedKey = map[string]types.AttributeValue{"PK": &types.AttributeValueMemberS{Value: "next"}}
	}
	return out, nil
}

func TestExpandMacros(t *testing.T) {
	indexMap, ok := registry.GetIndexMap[testDataset]()
	require.True(t, ok)

	expanded, err := expandMacros(indexMap, testDataset{Name: "bean_disease_uganda", NumImages: 1295})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"PK":  "DATASET#bean_disease_uganda",
		"SK":  "METADATA",
		"PK1": "CATALOG",
		"SK1": "bean_disease_uganda#1295",
	}, expanded)

	expanded, err = expandMacros(map[string]string{"PK": "FLAG#{Public}", "SK": "{Missing}"}, testDataset{Public: true})
	require.NoError(t, err)
	assert.Equal(t, "FLAG#true", expanded["PK"])
	assert.Equal(t, "", expanded["SK"])
}

func TestExpandStringKey(t *testing.T) {
	expanded := expandStringKey(map[string]string{"PK": "DATASET#{Name}", "SK": "METADATA"}, "a$1_b")
	assert.Equal(t, "DATASET#a$1_b", expanded["PK"], "keys are substituted literally")
	assert.Equal(t, "METADATA", expanded["SK"])

	_, err := buildKeyFromExpanded(map[string]string{"PK": "x"})
	assert.Error(t, err)
}

func TestPutGetDelete(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	store := NewWithClient[testDataset](client, "agml-catalog")

	entity := testDataset{Name: "carrot_weeds_germany", NumImages: 60, EntityType: "testDataset"}
	require.NoError(t, store.Put(ctx, entity))

	stored := client.items["DATASET#carrot_weeds_germany|METADATA"]
	require.NotNil(t, stored)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "CATALOG"}, stored["PK1"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "carrot_weeds_germany#60"}, stored["SK1"])

	got, err := store.GetOne(ctx, "carrot_weeds_germany")
	require.NoError(t, err)
	assert.Equal(t, entity, *got)

	require.NoError(t, store.Delete(ctx, "carrot_weeds_germany"))
	_, err = store.GetOne(ctx, "carrot_weeds_germany")
	assert.True(t, agmlerrors.IsNotFound(err))

	for _, table := range client.tables {
		assert.Equal(t, "agml-catalog", table)
	}
}

func TestUnregisteredTypeFails(t *testing.T) {
	ctx := context.Background()
	store := NewWithClient[unregistered](newFakeClient(), "agml-catalog")

	assert.ErrorIs(t, store.Put(ctx, unregistered{Name: "x"}), agmlerrors.ErrNoIndexMap)
	_, err := store.GetOne(ctx, "x")
	assert.ErrorIs(t, err, agmlerrors.ErrNoIndexMap)
	assert.ErrorIs(t, store.Delete(ctx, "x"), agmlerrors.ErrNoIndexMap)
}

func TestPutRequiresPrimaryKey(t *testing.T) {
	registry.RegisterIndexMap[unkeyed](map[string]string{"PK": "DATASET#{Name}", "SK": "{Version}"})
	store := NewWithClient[unkeyed](newFakeClient(), "agml-catalog")

	err := store.Put(context.Background(), unkeyed{Name: "x"})
	assert.ErrorContains(t, err, "missing valid PK or SK")
}

func TestQueryFollowsPages(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	page := func(names ...string) []map[string]types.AttributeValue {
		var items []map[string]types.AttributeValue
		for _, n := range names {
			av, err := attributevalue.MarshalMap(testDataset{Name: n})
			require.NoError(t, err)
			items = append(items, av)
		}
		return items
	}
	client.pages = [][]map[string]types.AttributeValue{page("a", "b"), page("c")}
	store := NewWithClient[testDataset](client, "agml-catalog")

	params, err := QueryGSI("GSI1").WithPartitionKey("CATALOG").Build()
	require.NoError(t, err)
	results, err := store.Query(ctx, params)
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, "c", results[2].Name)
	require.Len(t, client.queries, 2)
	assert.Nil(t, client.queries[0].ExclusiveStartKey)
	assert.NotNil(t, client.queries[1].ExclusiveStartKey)
	assert.Equal(t, "agml-catalog", aws.ToString(client.queries[0].TableName))
	assert.Equal(t, "GSI1", aws.ToString(client.queries[0].IndexName))
}

func TestQueryWithLimitReadsOnePage(t *testing.T) {
	client := newFakeClient()
	client.pages = [][]map[string]types.AttributeValue{{}, {}}
	store := NewWithClient[testDataset](client, "agml-catalog")

	params, err := QueryGSI("GSI1").WithPartitionKey("CATALOG").WithLimit(1).Build()
	require.NoError(t, err)
	_, err = store.Query(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, client.queries, 1)
}

func TestQueryErrors(t *testing.T) {
	client := newFakeClient()
	client.queryErr = errors.New("throttled")
	store := NewWithClient[testDataset](client, "agml-catalog")

	_, err := store.Query(context.Background(), nil)
	assert.Error(t, err)

	params, _ := QueryGSI("GSI1").WithPartitionKey("CATALOG").Build()
	_, err = store.Query(context.Background(), params)
	assert.ErrorContains(t, err, "throttled")
}

func TestGSIQueryBuilder(t *testing.T) {
	params, err := QueryGSI("GSI1").WithPartitionKey("CATALOG").WithSortKeyPrefix("apple").Descending().Build()
	require.NoError(t, err)
	assert.Equal(t, "PK1 = :pk AND begins_with(SK1, :sk)", params.KeyConditionExpression)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "apple"}, params.ExpressionAttributeValues[":sk"])
	assert.False(t, aws.ToBool(params.ScanIndexForward))

	pk, ok := params.PartitionValue()
	assert.True(t, ok)
	assert.Equal(t, "CATALOG", pk)

	params, err = QueryGSI("GSI1").WithPartitionKey("CATALOG").WithSortKey("x").Build()
	require.NoError(t, err)
	assert.Equal(t, "PK1 = :pk AND SK1 = :sk", params.KeyConditionExpression)

	_, err = QueryGSI("ByOwner").WithPartitionKey("CATALOG").Build()
	assert.ErrorContains(t, err, `unknown GSI "ByOwner"`)
	_, err = QueryGSI("GSI0").WithPartitionKey("CATALOG").Build()
	assert.Error(t, err)
	_, err = QueryGSI("GSI1").Build()
	assert.Error(t, err)
}

func TestGSIConfigResolution(t *testing.T) {
	gsi, ok := GetGSIConfig("GSI2")
	require.True(t, ok)
	assert.Equal(t, GSIConfig{IndexName: "GSI2", PartitionKeyName: "PK2", SortKeyName: "SK2"}, gsi)

	params, err := QueryGSI("GSI2").WithPartitionKey("MIT").WithSortKey("apple").Build()
	require.NoError(t, err)
	assert.Equal(t, "PK2 = :pk AND SK2 = :sk", params.KeyConditionExpression)
	assert.Equal(t, "GSI2", aws.ToString(params.IndexName))

	_, ok = GetGSIConfig("GSI1x")
	assert.False(t, ok)
}

func TestNewDynamodbDataStoreRequiresTable(t *testing.T) {
	_, err := NewDynamodbDataStore[testDataset](context.Background(), Config{Region: "us-west-1"})
	assert.True(t, agmlerrors.IsValidationError(err))
}
