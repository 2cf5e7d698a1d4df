/*
Package synthetic holds the validated parameter sets used to drive the Helios
synthetic data generator.

Each parameter group (canopy, camera, LiDAR) is a Store with a fixed schema.
Stores are filled from the embedded Helios configuration and then sealed:
assigning a field outside the schema fails with an UnknownFieldError, and a
value of the wrong kind fails with a TypeMismatchError.

	opts, err := synthetic.NewHeliosOptions("VSPGrapevine")
	if err != nil {
		return err
	}
	if err := opts.Canopy().Set("plant_spacing", 2.0); err != nil {
		return err
	}
	opts.Reset() // plant_spacing is 1.5 again
*/
package synthetic
