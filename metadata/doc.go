/*
Package metadata exposes the metadata of a public AgML dataset.

A DatasetMetadata is resolved once from the dataset sources and never changes
afterwards. Typed accessors cover the attributes every dataset carries:

	info, err := metadata.New("apple_flower_segmentation")
	n, _ := info.NumImages()        // 148
	tasks, _ := info.Tasks()        // {semantic_segmentation flower_segmentation}
	mapping, _ := info.NumToClass() // FlatClasses{1: "apple_flower"}

Names are matched exactly first; a name using hyphens is retried with
underscores, and the substitution is logged once per name.

Anything without a dedicated accessor is reachable through Attribute, which
fails with a did-you-mean error over the dataset's own keys:

	platform, err := info.Attribute("platform")

Datasets labelled along several groupings return GroupedClasses from
NumToClass, so callers switch on the variant:

	switch m := mapping.(type) {
	case metadata.FlatClasses:
	case metadata.GroupedClasses:
	}
*/
package metadata
