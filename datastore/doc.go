/*
Package datastore defines the persistence interface behind the dataset catalog.

The main interface is DataStore[T], which provides keyed access and queries for
any entity type T:

	type DataStore[T any] interface {
	    GetOne(ctx context.Context, key string) (*T, error)
	    Put(ctx context.Context, entity T) error
	    Query(ctx context.Context, params *storagemodels.QueryParams) ([]T, error)
	    Delete(ctx context.Context, key string) error
	}

Implementations:
  - ddb: DynamoDB implementation with single-table key templates
  - mock: In-memory implementation for testing
*/
package datastore
