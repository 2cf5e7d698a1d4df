/*
Package errors provides semantic error types for the agml toolkit.

Every failure raised by the metadata registry and the parameter stores is one
of the types below. Each type matches its sentinel through errors.Is, so callers
may check either the concrete type or the helper function.

	var (
	    ErrInvalidName       = errors.New("invalid name")
	    ErrMissingMetadata   = errors.New("missing metadata")
	    ErrMalformedMetadata = errors.New("malformed metadata")
	    ErrUnknownField      = errors.New("unknown field")
	    ErrTypeMismatch      = errors.New("type mismatch")
	)

Usage:

	info, err := metadata.New("aple_flower")
	if err != nil {
	    if errors.IsInvalidName(err) {
	        // err.Error() contains: did you mean 'apple_flower'?
	    }
	    return err
	}

	if err := canopy.Set("plant_spacing", "tall"); errors.IsTypeMismatch(err) {
	    // expected a value of type (number) for attribute 'plant_spacing' ...
	}

Raw map lookups never leak to callers: a missing key is always reported as a
MissingMetadataError naming both the dataset and the key.
*/
package errors
