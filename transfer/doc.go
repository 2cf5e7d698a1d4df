/*
Package transfer uploads and downloads public dataset archives.

Each dataset is stored as a single "<name>.zip" object. Download streams the
archive next to its destination, extracts it and removes the archive:

	store, _ := s3.New(ctx, s3.Config{Bucket: transfer.DefaultBucket, Region: transfer.DefaultRegion})
	api := transfer.New(store, transfer.WithMetrics(transfer.NewMetrics(prometheus.DefaultRegisterer)))
	path, err := api.Download(ctx, "apple_flower_segmentation", "/data", nil)
*/
package transfer
