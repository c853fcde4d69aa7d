// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package srscatalog

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geombr/pkg/geo/geopb"
	"github.com/cockroachdb/geombr/pkg/geo/geoprojbase"
	"gopkg.in/yaml.v3"
)

type yamlDefinition struct {
	SRID              uint32  `yaml:"srid"`
	Name              string  `yaml:"name"`
	Geographic        bool    `yaml:"geographic"`
	SemiMajorAxis     float64 `yaml:"semi_major_axis"`
	InverseFlattening float64 `yaml:"inverse_flattening"`
	AngularUnit       float64 `yaml:"angular_unit"`
}

type yamlFile struct {
	SpatialReferenceSystems []yamlDefinition `yaml:"spatial_reference_systems"`
}

// ParseDefinitions parses a YAML document listing reference systems under a
// spatial_reference_systems key.
func ParseDefinitions(r io.Reader) ([]geoprojbase.Definition, error) {
	var f yamlFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "parsing SRS definitions")
	}
	defs := make([]geoprojbase.Definition, 0, len(f.SpatialReferenceSystems))
	for _, d := range f.SpatialReferenceSystems {
		defs = append(defs, geoprojbase.Definition{
			SRID:              geopb.SRID(d.SRID),
			Name:              d.Name,
			Geographic:        d.Geographic,
			SemiMajorAxis:     d.SemiMajorAxis,
			InverseFlattening: d.InverseFlattening,
			AngularUnit:       d.AngularUnit,
		})
	}
	return defs, nil
}

// LoadYAML parses definitions from r and upserts all of them. Nothing is
// added if any definition is invalid.
func (c *Catalog) LoadYAML(r io.Reader) (int, error) {
	defs, err := ParseDefinitions(r)
	if err != nil {
		return 0, err
	}
	for _, d := range defs {
		if d.SRID == geopb.UnknownSRID {
			return 0, errors.Newf("SRID %d is reserved", d.SRID)
		}
		if _, err := d.Build(); err != nil {
			return 0, errors.Wrapf(err, "invalid definition for SRID %d", d.SRID)
		}
	}
	for _, d := range defs {
		if err := c.Upsert(d); err != nil {
			return 0, err
		}
	}
	return len(defs), nil
}
