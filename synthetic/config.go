/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package synthetic

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"sync"

	"github.com/suparena/agml/errors"
	"github.com/suparena/agml/registry"
	"github.com/suparena/agml/sources"
)

// DefaultConfigFile is the embedded Helios configuration.
const DefaultConfigFile = "helios_config.yaml"

//go:embed assets/helios_config.yaml
var assets embed.FS

// Configuration is the default Helios configuration: canopy parameters keyed
// by canopy type, plus single camera and LiDAR defaults shared by every
// canopy. It is read-only once loaded.
type Configuration struct {
	canopyTypes []string
	canopy      *sources.Table
	camera      *sources.Table
	lidar       *sources.Table
}

type configDocument struct {
	Canopy struct {
		Types      []string       `yaml:"types"`
		Parameters *sources.Table `yaml:"parameters"`
	} `yaml:"canopy"`
	Camera struct {
		Parameters *sources.Table `yaml:"parameters"`
	} `yaml:"camera"`
	LiDAR struct {
		Parameters *sources.Table `yaml:"parameters"`
	} `yaml:"lidar"`
}

var defaultConfiguration = sync.OnceValues(func() (*Configuration, error) {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		return nil, err
	}
	return LoadConfiguration(sub, DefaultConfigFile)
})

// DefaultConfiguration returns the process-wide configuration, loaded on
// first use.
func DefaultConfiguration() (*Configuration, error) {
	return defaultConfiguration()
}

// LoadConfiguration reads a configuration document from fsys. The decoder is
// chosen by the file extension.
func LoadConfiguration(fsys fs.FS, path string) (*Configuration, error) {
	decode, err := registry.DecoderForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read helios configuration: %w", err)
	}
	var doc configDocument
	if err := decode(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	switch {
	case len(doc.Canopy.Types) == 0:
		return nil, errors.NewValidationError("canopy.types", "at least one canopy type is required")
	case doc.Canopy.Parameters == nil:
		return nil, errors.NewValidationError("canopy.parameters", "is required")
	case doc.Camera.Parameters == nil:
		return nil, errors.NewValidationError("camera.parameters", "is required")
	case doc.LiDAR.Parameters == nil:
		return nil, errors.NewValidationError("lidar.parameters", "is required")
	}
	for _, canopy := range doc.Canopy.Types {
		if _, ok := doc.Canopy.Parameters.Table(canopy); !ok {
			return nil, errors.NewValidationError("canopy.parameters."+canopy, "missing parameters for canopy type")
		}
	}

	slog.Debug("Loaded helios configuration.", "path", path, "canopy_types", len(doc.Canopy.Types))
	return &Configuration{
		canopyTypes: doc.Canopy.Types,
		canopy:      doc.Canopy.Parameters,
		camera:      doc.Camera.Parameters,
		lidar:       doc.LiDAR.Parameters,
	}, nil
}

// CanopyTypes returns the canopy types a HeliosOptions may be built for.
func (c *Configuration) CanopyTypes() []string {
	return slices.Clone(c.canopyTypes)
}

// CanopyDomains returns every canopy domain with default parameters.
func (c *Configuration) CanopyDomains() []string {
	return c.canopy.Keys()
}

// CanopyDefaults returns the default canopy parameters of domain.
func (c *Configuration) CanopyDefaults(domain string) (*sources.Table, error) {
	defaults, ok := c.canopy.Table(domain)
	if !ok {
		domains := c.CanopyDomains()
		return nil, errors.NewInvalidChoiceError("canopy domain", domain, sources.Suggest(domain, domains), domains)
	}
	return defaults, nil
}

// CameraDefaults returns the shared camera defaults.
func (c *Configuration) CameraDefaults() *sources.Table { return c.camera }

// LiDARDefaults returns the shared LiDAR defaults.
func (c *Configuration) LiDARDefaults() *sources.Table { return c.lidar }
