/*
Package agml is the root of a toolkit for agricultural machine learning data.

The module is organised by concern:
  - metadata: typed access to the attributes of every public dataset
  - sources: the dataset and citation tables metadata is resolved against
  - synthetic: validated Helios parameter stores for synthetic data generation
  - transfer, blob: moving dataset archives to and from object storage
  - catalog, datastore: publishing dataset metadata to a DynamoDB table
  - errors: semantic error types shared by all packages

Basic Usage:

	m, err := metadata.New("apple_flower_segmentation")
	if err != nil {
		return err
	}
	n, _ := m.NumImages()

	opts, _ := synthetic.NewHeliosOptions("VSPGrapevine")
	_ = opts.Canopy().Set("plant_spacing", 2.0)

The agml command in cmd/agml exposes the same operations from a terminal.
*/
package agml
