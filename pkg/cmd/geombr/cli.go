// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package main

import (
	"context"
	"encoding/binary"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geombr/pkg/geo/geopb"
	"github.com/cockroachdb/geombr/pkg/geo/geoprojbase"
	"github.com/cockroachdb/geombr/pkg/geo/srscatalog"
	"github.com/cockroachdb/geombr/pkg/util/encoding"
	"github.com/cockroachdb/geombr/pkg/util/log"
	"github.com/cockroachdb/logtags"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// cliConfig holds the flags shared by all commands.
type cliConfig struct {
	srsFile    string
	srid       uint32
	byteOrder  byteOrderFlag
	verbosity  int
	redactable bool

	catalog *srscatalog.Catalog
}

// byteOrderFlag is a pflag.Value naming a WKB byte order.
type byteOrderFlag struct {
	name  string
	order binary.ByteOrder
}

var _ pflag.Value = (*byteOrderFlag)(nil)

func (f *byteOrderFlag) String() string { return f.name }

func (f *byteOrderFlag) Set(s string) error {
	order, err := encoding.StringToByteOrder(s)
	if err != nil {
		return err
	}
	f.name, f.order = s, order
	return nil
}

func (f *byteOrderFlag) Type() string { return "ndr|xdr" }

func makeGeombrCommand() *cobra.Command {
	cfg := &cliConfig{byteOrder: byteOrderFlag{name: "ndr", order: binary.LittleEndian}}
	command := &cobra.Command{
		Use:   "geombr [command] (flags)",
		Short: "geombr computes and compares R-tree bounding rectangles.",
		Long: `geombr computes and compares the minimum bounding rectangles (MBRs) an
R-tree index keeps for spatial values.

Boxes are written as xmin,xmax,ymin,ymax. Raw MBRs, used by the cost
commands, are written as min,max pairs for any number of dimensions.

Typical usage:
    geombr envelope 'SRID=4326;LINESTRING(170 0, -170 0)'
    geombr contains --srid=4326 -- 170,190,-10,10 -175,-172,0,1
    geombr cost increase 0,0,0,5 0,10,0,5
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cfg.init(cmd)
		},
	}

	flags := command.PersistentFlags()
	flags.StringVar(&cfg.srsFile, "srs-file", cfg.srsFile, "YAML file with additional spatial reference systems")
	flags.Uint32Var(&cfg.srid, "srid", cfg.srid, "SRID of the boxes, and the default SRID of geometries")
	flags.Var(&cfg.byteOrder, "byte-order", "byte order of encoded geometries")
	flags.IntVarP(&cfg.verbosity, "verbosity", "v", cfg.verbosity, "log verbosity")
	flags.BoolVar(&cfg.redactable, "redactable-logs", cfg.redactable, "keep redaction markers in log output")

	command.AddCommand(makeEnvelopeCommand(cfg))
	for _, c := range makePredicateCommands(cfg) {
		command.AddCommand(c)
	}
	command.AddCommand(makeJoinCommand(cfg))
	command.AddCommand(makeAreaCommand(cfg))
	command.AddCommand(makeJoinAreaCommand(cfg))
	command.AddCommand(makeCostCommand(cfg))
	command.AddCommand(makeSRSCommand(cfg))
	return command
}

func (cfg *cliConfig) init(cmd *cobra.Command) error {
	log.SetOutput(cmd.ErrOrStderr())
	log.SetVerbosity(cfg.verbosity)
	log.SetRedactable(cfg.redactable)

	cfg.catalog = srscatalog.New()
	if cfg.srsFile == "" {
		return nil
	}
	f, err := os.Open(cfg.srsFile)
	if err != nil {
		return errors.Wrap(err, "opening SRS file")
	}
	defer f.Close()
	n, err := cfg.catalog.LoadYAML(f)
	if err != nil {
		return errors.Wrapf(err, "loading %s", cfg.srsFile)
	}
	log.Infof(cfg.context(cmd), "loaded %d spatial reference systems from %s", n, cfg.srsFile)
	return nil
}

func (cfg *cliConfig) context(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logtags.AddTag(ctx, "cmd", cmd.Name())
}

// resolve returns the reference system of the given SRID, nil if it is not
// defined.
func (cfg *cliConfig) resolve(ctx context.Context, srid geopb.SRID) *geoprojbase.SpatialReferenceSystem {
	srs := srscatalog.ResolveFromCatalog(ctx, cfg.catalog, srid)
	if srid != geopb.UnknownSRID && srs == nil {
		log.Warningf(ctx, "SRID %d is not defined, using cartesian coordinates", srid)
	}
	return srs
}

// parseFloats parses a comma separated list of numbers.
func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	vals := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %q", s)
		}
		vals[i] = f
	}
	return vals, nil
}

// parseBox parses xmin,xmax,ymin,ymax.
func parseBox(s string) (geopb.BoundingBox, error) {
	vals, err := parseFloats(s)
	if err != nil {
		return geopb.BoundingBox{}, err
	}
	if len(vals) != 4 {
		return geopb.BoundingBox{}, errors.Newf("box %q needs 4 coordinates, got %d", s, len(vals))
	}
	b, _ := geopb.BoundingBoxFromFlat(vals)
	return b, nil
}

func parseBoxes(args []string) ([]geopb.BoundingBox, error) {
	boxes := make([]geopb.BoundingBox, len(args))
	for i, arg := range args {
		b, err := parseBox(arg)
		if err != nil {
			return nil, err
		}
		boxes[i] = b
	}
	return boxes, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
