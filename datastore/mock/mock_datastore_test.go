/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/suparena/agml/datastore"
	"github.com/suparena/agml/datastore/mock"
	"github.com/suparena/agml/errors"
	"github.com/suparena/agml/storagemodels"
)

type datasetEntry struct {
	Name     string
	NumItems int
}

var _ datastore.DataStore[datasetEntry] = (*mock.DataStore[datasetEntry])(nil)

func byName(e datasetEntry) string { return e.Name }

func TestMockDataStore(t *testing.T) {
	ctx := context.Background()

	t.Run("BasicOperations", func(t *testing.T) {
		mockStore := mock.New[datasetEntry]().WithGetKeyFunc(byName)

		entry := datasetEntry{Name: "bean_disease_uganda", NumItems: 1295}
		if err := mockStore.Put(ctx, entry); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		retrieved, err := mockStore.GetOne(ctx, "bean_disease_uganda")
		if err != nil {
			t.Fatalf("GetOne failed: %v", err)
		}
		if *retrieved != entry {
			t.Fatalf("Retrieved entity mismatch: %+v", retrieved)
		}

		if err := mockStore.Delete(ctx, "bean_disease_uganda"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		_, err = mockStore.GetOne(ctx, "bean_disease_uganda")
		if !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error, got: %v", err)
		}
		if err := mockStore.Delete(ctx, "bean_disease_uganda"); !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error on second delete, got: %v", err)
		}
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		mockStore := mock.New[datasetEntry]()

		putErr := errors.NewValidationError("name", "required")
		mockStore.WithPutError(putErr)
		if err := mockStore.Put(ctx, datasetEntry{Name: "x"}); err != putErr {
			t.Fatalf("Expected put error, got: %v", err)
		}

		getErr := errors.NewNotFoundError("table", "catalog")
		mockStore.WithGetError(getErr)
		if _, err := mockStore.GetOne(ctx, "x"); err != getErr {
			t.Fatalf("Expected get error, got: %v", err)
		}

		deleteErr := errors.NewValidationError("key", "locked")
		mockStore.WithDeleteError(deleteErr)
		if err := mockStore.Delete(ctx, "x"); err != deleteErr {
			t.Fatalf("Expected delete error, got: %v", err)
		}
	})

	t.Run("EmptyKeyIsRejected", func(t *testing.T) {
		mockStore := mock.New[datasetEntry]().WithGetKeyFunc(byName)
		if err := mockStore.Put(ctx, datasetEntry{}); !errors.IsValidationError(err) {
			t.Fatalf("Expected validation error, got: %v", err)
		}
	})

	t.Run("QueryReturnsKeyOrder", func(t *testing.T) {
		mockStore := mock.New[datasetEntry]().WithGetKeyFunc(byName)
		for _, name := range []string{"c", "a", "b"} {
			if err := mockStore.Put(ctx, datasetEntry{Name: name}); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
		}

		params := &storagemodels.QueryParams{KeyConditionExpression: "PK1 = :pk", Limit: aws.Int32(10)}
		results, err := mockStore.Query(ctx, params)
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if len(results) != 3 || results[0].Name != "a" || results[2].Name != "c" {
			t.Fatalf("Unexpected query results: %+v", results)
		}
		if queries := mockStore.Queries(); len(queries) != 1 || queries[0] != params {
			t.Fatalf("Expected the query to be recorded, got %+v", queries)
		}
	})

	t.Run("CustomQueryFunction", func(t *testing.T) {
		mockStore := mock.New[datasetEntry]()
		mockStore.WithQueryFunc(func(ctx context.Context, params *storagemodels.QueryParams) ([]datasetEntry, error) {
			return []datasetEntry{{Name: "filtered"}}, nil
		})

		results, err := mockStore.Query(ctx, &storagemodels.QueryParams{})
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if len(results) != 1 || results[0].Name != "filtered" {
			t.Fatalf("Expected the filtered result, got %+v", results)
		}
	})

	t.Run("HelperMethods", func(t *testing.T) {
		mockStore := mock.New[datasetEntry]().WithGetKeyFunc(byName)

		mockStore.SetData(map[string]datasetEntry{
			"1": {Name: "1"},
			"2": {Name: "2"},
		})
		if mockStore.Count() != 2 {
			t.Fatalf("Expected count 2, got %d", mockStore.Count())
		}
		if data := mockStore.GetData(); len(data) != 2 {
			t.Fatalf("Expected 2 items in data, got %d", len(data))
		}

		mockStore.Clear()
		if mockStore.Count() != 0 {
			t.Fatalf("Expected count 0 after clear, got %d", mockStore.Count())
		}
	})
}
