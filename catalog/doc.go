/*
Package catalog publishes dataset source entries to a datastore and reads them
back as source tables.

Each dataset is one Record keyed "DATASET#<name>" / "METADATA", with every
record also placed on GSI1 under the "CATALOG" partition so the catalog can be
listed with a single query.
*/
package catalog
