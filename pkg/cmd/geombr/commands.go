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
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geombr/pkg/geo"
	"github.com/cockroachdb/geombr/pkg/geo/geombr"
	"github.com/cockroachdb/geombr/pkg/geo/geopb"
	"github.com/cockroachdb/geombr/pkg/geo/geoprojbase"
	"github.com/cockroachdb/geombr/pkg/util/encoding"
	"github.com/cockroachdb/geombr/pkg/util/log"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func makeEnvelopeCommand(cfg *cliConfig) *cobra.Command {
	var geoHash bool
	var mixed bool
	runCmdFunc := func(cmd *cobra.Command, args []string) error {
		ctx := cfg.context(cmd)
		v, err := geo.ParseValue(args[0], geopb.SRID(cfg.srid), cfg.byteOrder.order)
		if err != nil {
			return err
		}
		if log.V(1) {
			hex, err := geo.ValueToWKBHex(v, cfg.byteOrder.order)
			if err != nil {
				return err
			}
			log.Infof(ctx, "SRID %d, WKB %s", v.SRID(), hex)
		}
		var srs *geoprojbase.SpatialReferenceSystem
		if !mixed {
			srs = cfg.resolve(ctx, v.SRID())
		}
		mbr, srid, err := geombr.Envelope(ctx, srs, v, len(v), 2)
		if err != nil {
			if errors.Is(err, geombr.ErrInvalidGeometry) {
				return errors.Wrap(err, "invalid geometry")
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "SRID=%d;%s\n", srid, mbr)
		if geoHash {
			hash, err := geo.BoundingBoxToGeoHash(mbr, geo.GeoHashAutoPrecision)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "geohash: %s\n", hash)
		}
		return nil
	}
	cmd := &cobra.Command{
		Use:   "envelope <geometry>",
		Short: "Print the bounding rectangle of a geometry.",
		Long: `Print the bounding rectangle of a geometry given as (E)WKT, (E)WKB hex or
GeoJSON. The rectangle is computed in the coordinate model of the geometry's
SRID. Empty geometries get a rectangle covering every coordinate.`,
		Args: cobra.ExactArgs(1),
		RunE: runCmdFunc,
	}
	cmd.Flags().BoolVar(&geoHash, "geohash", geoHash, "also print the GeoHash of the rectangle")
	cmd.Flags().BoolVar(&mixed, "mixed", mixed, "ignore the SRID, as indexes over mixed SRIDs do")
	return cmd
}

func makePredicateCommands(cfg *cliConfig) []*cobra.Command {
	predicates := []struct {
		name  string
		short string
		fn    func(*geoprojbase.SpatialReferenceSystem, geopb.BoundingBox, geopb.BoundingBox) bool
	}{
		{"contains", "Report whether box a covers box b.", geombr.Contains},
		{"equals", "Report whether boxes a and b cover the same region.", geombr.Equals},
		{"intersects", "Report whether boxes a and b may intersect. Always true.", geombr.Intersects},
		{"disjoint", "Report whether boxes a and b are apart. Always false.", geombr.Disjoint},
		{"within", "Report whether box a lies in box b.", geombr.Within},
	}
	cmds := make([]*cobra.Command, 0, len(predicates))
	for _, p := range predicates {
		p := p
		cmds = append(cmds, &cobra.Command{
			Use:   p.name + " <a> <b>",
			Short: p.short,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				boxes, err := parseBoxes(args)
				if err != nil {
					return err
				}
				srs := cfg.resolve(cfg.context(cmd), geopb.SRID(cfg.srid))
				fmt.Fprintln(cmd.OutOrStdout(), p.fn(srs, boxes[0], boxes[1]))
				return nil
			},
		})
	}
	return cmds
}

func makeJoinCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "join <a> <b>...",
		Short: "Print the smallest box covering all the given boxes.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			boxes, err := parseBoxes(args)
			if err != nil {
				return err
			}
			srs := cfg.resolve(cfg.context(cmd), geopb.SRID(cfg.srid))
			joined := boxes[0]
			for _, b := range boxes[1:] {
				joined = geombr.Join(srs, joined, b)
			}
			fmt.Fprintln(cmd.OutOrStdout(), joined)
			return nil
		},
	}
}

func makeAreaCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "area <a>",
		Short: "Print the area of a box.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseBox(args[0])
			if err != nil {
				return err
			}
			srs := cfg.resolve(cfg.context(cmd), geopb.SRID(cfg.srid))
			fmt.Fprintln(cmd.OutOrStdout(), formatFloat(geombr.ComputeArea(srs, a)))
			return nil
		},
	}
}

func makeJoinAreaCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "join-area <a> <b>",
		Short: "Print the area of the smallest box covering two boxes.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			boxes, err := parseBoxes(args)
			if err != nil {
				return err
			}
			srs := cfg.resolve(cfg.context(cmd), geopb.SRID(cfg.srid))
			fmt.Fprintln(cmd.OutOrStdout(), formatFloat(geombr.JoinArea(srs, boxes[0], boxes[1])))
			return nil
		},
	}
}

func makeCostCommand(cfg *cliConfig) *cobra.Command {
	// rawMBRs encodes the two arguments, which must have the same number of
	// dimensions.
	rawMBRs := func(cmd *cobra.Command, args []string) ([]byte, []byte, error) {
		var raw [2][]byte
		for i, arg := range args {
			bounds, err := parseFloats(arg)
			if err != nil {
				return nil, nil, err
			}
			raw[i], err = encoding.EncodeRawMBR(encoding.RawMBRByteOrder, bounds...)
			if err != nil {
				return nil, nil, err
			}
			log.VEventf(cfg.context(cmd), 1, "raw MBR %d: %x", i, raw[i])
		}
		if len(raw[0]) != len(raw[1]) {
			return nil, nil, errors.Newf("MBRs have %d and %d dimensions",
				encoding.MBRDimensions(len(raw[0])), encoding.MBRDimensions(len(raw[1])))
		}
		return raw[0], raw[1], nil
	}

	command := &cobra.Command{
		Use:   "cost [command]",
		Short: "Compute the insertion and split costs of raw MBRs.",
	}
	command.AddCommand(&cobra.Command{
		Use:   "increase <a> <b>",
		Short: "Print how much the area of a grows to cover b, and the area of the union.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, err := rawMBRs(cmd, args)
			if err != nil {
				return err
			}
			srs := cfg.resolve(cfg.context(cmd), geopb.SRID(cfg.srid))
			increase, union := geombr.AreaIncrease(srs, a, b, len(a))
			fmt.Fprintf(cmd.OutOrStdout(), "increase=%s union=%s\n", formatFloat(increase), formatFloat(union))
			return nil
		},
	})
	command.AddCommand(&cobra.Command{
		Use:   "overlap <a> <b>",
		Short: "Print the area shared by a and b.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, err := rawMBRs(cmd, args)
			if err != nil {
				return err
			}
			srs := cfg.resolve(cfg.context(cmd), geopb.SRID(cfg.srid))
			fmt.Fprintln(cmd.OutOrStdout(), formatFloat(geombr.AreaOverlapping(srs, a, b, len(a))))
			return nil
		},
	})
	return command
}

func makeSRSCommand(cfg *cliConfig) *cobra.Command {
	command := &cobra.Command{
		Use:   "srs [command]",
		Short: "Inspect the spatial reference systems.",
	}
	command.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the known spatial reference systems.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap := cfg.catalog.Snapshot()
			defer snap.Release()
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetAutoFormatHeaders(false)
			table.SetAutoWrapText(false)
			table.SetHeader([]string{"SRID", "NAME", "SYSTEM", "SEMI-MAJOR", "SEMI-MINOR"})
			snap.Each(func(srs *geoprojbase.SpatialReferenceSystem) bool {
				table.Append([]string{
					strconv.Itoa(int(srs.SRID())),
					srs.Name(),
					srs.CoordinateSystem().String(),
					formatFloat(srs.SemiMajorAxis()),
					formatFloat(srs.SemiMinorAxis()),
				})
				return true
			})
			table.Render()
			return nil
		},
	})
	command.AddCommand(&cobra.Command{
		Use:   "show <srid>",
		Short: "Show one spatial reference system and its coordinate model.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var srid uint32
			if _, err := fmt.Sscan(args[0], &srid); err != nil {
				return errors.Wrapf(err, "parsing SRID %q", args[0])
			}
			snap := cfg.catalog.Snapshot()
			defer snap.Release()
			srs, err := snap.Lookup(geopb.SRID(srid))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), srs)
			fmt.Fprintln(cmd.OutOrStdout(), geombr.ModelFor(srs))
			return nil
		},
	})
	return command
}
