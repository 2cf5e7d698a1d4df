/*
Package registry holds the process-wide lookup tables agml populates at init time.

Decoder Registry:
Maps a file extension to the function that decodes source documents with
that extension. The sources package registers YAML and JSON decoders:

	registry.RegisterDecoder(".json", func(data []byte, out any) error {
	    return yaml.Unmarshal(data, out)
	})

	decode, err := registry.DecoderForPath("assets/public_datasources.json")

Index Map Registry:
Associates Go types with DynamoDB key patterns used by the ddb datastore:

	registry.RegisterIndexMap[catalog.Record](map[string]string{
	    "PK":  "DATASET#{Name}",
	    "SK":  "METADATA",
	    "PK1": "CATALOG",
	    "SK1": "{Name}",
	})

Both registries are thread-safe and should be populated during initialization,
typically in init() functions. Registering the same decoder extension twice panics.
*/
package registry
