// Package seed bootstraps the vessel directory and port-state table from a
// YAML file at start-up.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	notifiermodels "sulfurwatch/internal/notifier/models"
	vesselmodels "sulfurwatch/internal/vessel/models"
)

// Vessel is one directory entry in the seed file.
type Vessel struct {
	VesselID  string `yaml:"vessel_id"`
	Owner     string `yaml:"owner"`
	FlagState string `yaml:"flag_state"`
}

// PortState is one port-state assignment in the seed file.
type PortState struct {
	Location  string `yaml:"location"`
	PortState string `yaml:"port_state"`
}

// File is the root of the seed document.
type File struct {
	Vessels    []Vessel    `yaml:"vessels"`
	PortStates []PortState `yaml:"port_states"`
}

type VesselRegistrar interface {
	Register(ctx context.Context, vesselID, owner, flagState string) (*vesselmodels.Vessel, error)
}

type PortStateSetter interface {
	SetPortState(ctx context.Context, location, label string) (*notifiermodels.PortState, error)
}

// Load reads and parses the seed file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes a seed document, rejecting unknown keys.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &f, nil
}

// Apply registers every vessel and port state through the services, so the
// usual authorization, validation and events apply. ctx must carry the
// administrative identity.
func Apply(ctx context.Context, f *File, vessels VesselRegistrar, ports PortStateSetter, logger *slog.Logger) error {
	for i, v := range f.Vessels {
		if _, err := vessels.Register(ctx, v.VesselID, v.Owner, v.FlagState); err != nil {
			return fmt.Errorf("seed vessel %d (%q): %w", i, v.VesselID, err)
		}
	}
	for i, ps := range f.PortStates {
		if _, err := ports.SetPortState(ctx, ps.Location, ps.PortState); err != nil {
			return fmt.Errorf("seed port state %d (%q): %w", i, ps.Location, err)
		}
	}
	if logger != nil {
		logger.InfoContext(ctx, "seed applied",
			"vessels", len(f.Vessels),
			"port_states", len(f.PortStates),
		)
	}
	return nil
}
