/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

The DynamodbDataStore supports:
  - Single-table design with key templates registered per entity type
  - Macro-based key expansion (e.g., "DATASET#{Name}")
  - Queries on a Global Secondary Index, decoded directly into T

Macro Expansion:
Keys use macros that are replaced with entity field values on Put, and with
the lookup key on GetOne and Delete:

	registry.RegisterIndexMap[catalog.Record](map[string]string{
	    "PK":  "DATASET#{Name}", // Becomes "DATASET#bean_disease_uganda"
	    "SK":  "METADATA",       // Static value
	    "PK1": "CATALOG",
	    "SK1": "{Name}",
	})

GSI queries are built independently of a store:

	params, err := ddb.QueryGSI("GSI1").WithPartitionKey("CATALOG").Build()
	records, err := store.Query(ctx, params)
*/
package ddb
