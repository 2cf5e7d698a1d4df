/*
Package sources loads the documents that describe every public AgML dataset.

Two documents are read: public_datasources.json, mapping a dataset name to its
attribute table, and public_citations.json, holding the license and citation
text for the same names. Both are embedded in the binary; setting
AGML_SOURCES_DIR points Default at a directory holding newer copies.

	tables, err := sources.Default()
	record, ok := tables.Lookup("apple_flower_segmentation")
	n, _ := record.Get("n_images")

Documents are decoded through the decoder registry, so any extension with a
registered decoder (.json, .yaml, .yml) may be passed to Load. Decoding keeps
key order, which the dataset summary relies on.

The default tables are loaded once, on first use, and never change afterwards.
*/
package sources
