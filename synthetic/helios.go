/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package synthetic

import (
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/suparena/agml/errors"
	"github.com/suparena/agml/sources"
)

// Option configures where parameter defaults come from.
type Option func(*options)

type options struct {
	config *Configuration
}

// WithConfiguration uses c instead of the embedded default configuration.
func WithConfiguration(c *Configuration) Option {
	return func(o *options) { o.config = c }
}

func resolveConfiguration(opts []Option) (*Configuration, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.config != nil {
		return o.config, nil
	}
	return DefaultConfiguration()
}

// NewCanopyParameters builds the canopy parameter store for domain.
func NewCanopyParameters(domain string, opts ...Option) (*Store, error) {
	config, err := resolveConfiguration(opts)
	if err != nil {
		return nil, err
	}
	defaults, err := config.CanopyDefaults(domain)
	if err != nil {
		return nil, err
	}
	return NewStore(CanopySchema, domain, defaults)
}

// NewCameraParameters builds the camera parameter store.
func NewCameraParameters(opts ...Option) (*Store, error) {
	config, err := resolveConfiguration(opts)
	if err != nil {
		return nil, err
	}
	return NewStore(CameraSchema, "camera", config.CameraDefaults())
}

// NewLiDARParameters builds the LiDAR parameter store.
func NewLiDARParameters(opts ...Option) (*Store, error) {
	config, err := resolveConfiguration(opts)
	if err != nil {
		return nil, err
	}
	return NewStore(LiDARSchema, "lidar", config.LiDARDefaults())
}

// HeliosOptions groups the canopy, camera and LiDAR parameters used to
// generate one synthetic dataset. The three stores are selected together by
// the canopy type and reset together.
type HeliosOptions struct {
	mu         sync.Mutex
	canopyType string
	canopy     *Store
	camera     *Store
	lidar      *Store
}

// NewHeliosOptions builds the parameter bundle for canopyType, which must be
// one of the configuration's canopy types.
func NewHeliosOptions(canopyType string, opts ...Option) (*HeliosOptions, error) {
	config, err := resolveConfiguration(opts)
	if err != nil {
		return nil, err
	}
	types := config.CanopyTypes()
	if !slices.Contains(types, canopyType) {
		return nil, errors.NewInvalidChoiceError("canopy type", canopyType, sources.Suggest(canopyType, types), types)
	}

	withConfig := WithConfiguration(config)
	canopy, err := NewCanopyParameters(canopyType, withConfig)
	if err != nil {
		return nil, err
	}
	camera, err := NewCameraParameters(withConfig)
	if err != nil {
		return nil, err
	}
	lidar, err := NewLiDARParameters(withConfig)
	if err != nil {
		return nil, err
	}
	return &HeliosOptions{canopyType: canopyType, canopy: canopy, camera: camera, lidar: lidar}, nil
}

// CanopyType returns the canopy type the bundle was built for.
func (h *HeliosOptions) CanopyType() string { return h.canopyType }

// Canopy returns the canopy parameters.
func (h *HeliosOptions) Canopy() *Store { return h.canopy }

// Camera returns the camera parameters.
func (h *HeliosOptions) Camera() *Store { return h.camera }

// LiDAR returns the LiDAR parameters.
func (h *HeliosOptions) LiDAR() *Store { return h.lidar }

// Reset restores all three parameter stores to the defaults of the canopy type.
func (h *HeliosOptions) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.canopy.Reset()
	h.camera.Reset()
	h.lidar.Reset()
}

// MarshalYAML encodes the canopy type followed by the three parameter groups.
func (h *HeliosOptions) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	entries := []struct {
		key   string
		value any
	}{
		{"canopy", h.canopyType},
		{"canopy_parameters", h.canopy},
		{"camera_parameters", h.camera},
		{"lidar_parameters", h.lidar},
	}
	for _, e := range entries {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.key}
		value := &yaml.Node{}
		if err := value.Encode(e.value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}
