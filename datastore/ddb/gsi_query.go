/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/agml/storagemodels"
)

// GSIQueryBuilder provides a fluent interface for building GSI queries.
type GSIQueryBuilder struct {
	indexName  string
	pkValue    string
	skValue    string
	skOperator string // "=" or "begins_with"
	limit      *int32
	descending bool
}

// QueryGSI starts a query on the named index.
func QueryGSI(indexName string) *GSIQueryBuilder {
	return &GSIQueryBuilder{indexName: indexName}
}

// WithPartitionKey sets the GSI partition key value.
func (q *GSIQueryBuilder) WithPartitionKey(value string) *GSIQueryBuilder {
	q.pkValue = value
	return q
}

// WithSortKey matches the GSI sort key exactly.
func (q *GSIQueryBuilder) WithSortKey(value string) *GSIQueryBuilder {
	q.skValue = value
	q.skOperator = "="
	return q
}

// WithSortKeyPrefix matches GSI sort keys starting with prefix.
func (q *GSIQueryBuilder) WithSortKeyPrefix(prefix string) *GSIQueryBuilder {
	q.skValue = prefix
	q.skOperator = "begins_with"
	return q
}

// WithLimit caps the number of items returned.
func (q *GSIQueryBuilder) WithLimit(limit int32) *GSIQueryBuilder {
	q.limit = aws.Int32(limit)
	return q
}

// Descending reverses the sort key order.
func (q *GSIQueryBuilder) Descending() *GSIQueryBuilder {
	q.descending = true
	return q
}

// Build constructs the query parameters.
func (q *GSIQueryBuilder) Build() (*storagemodels.QueryParams, error) {
	gsi, ok := GetGSIConfig(q.indexName)
	if !ok {
		return nil, fmt.Errorf("unknown GSI %q", q.indexName)
	}
	if q.pkValue == "" {
		return nil, fmt.Errorf("GSI partition key value is required")
	}

	params := &storagemodels.QueryParams{
		IndexName: aws.String(gsi.IndexName),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: q.pkValue},
		},
		Limit: q.limit,
	}
	if q.skOperator != "" {
		params.ExpressionAttributeValues[":sk"] = &types.AttributeValueMemberS{Value: q.skValue}
	}
	params.KeyConditionExpression = gsi.keyCondition(q.skOperator)
	if q.descending {
		params.ScanIndexForward = aws.Bool(false)
	}
	return params, nil
}
