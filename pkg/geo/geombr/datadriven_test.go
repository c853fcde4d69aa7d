// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geombr

import (
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/geombr/pkg/geo/geopb"
	"github.com/cockroachdb/geombr/pkg/geo/geoprojbase"
	"github.com/cockroachdb/geombr/pkg/geo/srscatalog"
	"github.com/cockroachdb/geombr/pkg/util/encoding"
	"github.com/stretchr/testify/require"
)

func parseFloats(t *testing.T, d *datadriven.TestData, key string) []float64 {
	for _, arg := range d.CmdArgs {
		if arg.Key != key {
			continue
		}
		vals := make([]float64, len(arg.Vals))
		for i, v := range arg.Vals {
			f, err := strconv.ParseFloat(v, 64)
			require.NoError(t, err, "%s: %s", d.Pos, arg)
			vals[i] = f
		}
		return vals
	}
	d.Fatalf(t, "missing argument %q", key)
	return nil
}

func parseBox(t *testing.T, d *datadriven.TestData, key string) geopb.BoundingBox {
	b, ok := geopb.BoundingBoxFromFlat(parseFloats(t, d, key))
	if !ok {
		d.Fatalf(t, "%s needs four coordinates", key)
	}
	return b
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 10, 64)
}

func formatBox(b geopb.BoundingBox) string {
	return fmt.Sprintf("BOX(%s %s,%s %s)",
		formatFloat(b.LoX), formatFloat(b.LoY), formatFloat(b.HiX), formatFloat(b.HiY))
}

func TestDataDriven(t *testing.T) {
	ctx := context.Background()
	catalog := srscatalog.New()

	datadriven.Walk(t, "testdata", func(t *testing.T, path string) {
		datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
			var srs *geoprojbase.SpatialReferenceSystem
			if d.HasArg("srid") {
				var srid int
				d.ScanArgs(t, "srid", &srid)
				srs = srscatalog.ResolveFromCatalog(ctx, catalog, geopb.SRID(srid))
			}

			switch d.Cmd {
			case "contains", "equals", "intersects", "disjoint", "within":
				fn := map[string]func(*geoprojbase.SpatialReferenceSystem, geopb.BoundingBox, geopb.BoundingBox) bool{
					"contains":   Contains,
					"equals":     Equals,
					"intersects": Intersects,
					"disjoint":   Disjoint,
					"within":     Within,
				}[d.Cmd]
				return strconv.FormatBool(fn(srs, parseBox(t, d, "a"), parseBox(t, d, "b")))

			case "join":
				return formatBox(Join(srs, parseBox(t, d, "a"), parseBox(t, d, "b")))

			case "join-area":
				return formatFloat(JoinArea(srs, parseBox(t, d, "a"), parseBox(t, d, "b")))

			case "area":
				return formatFloat(ComputeArea(srs, parseBox(t, d, "a")))

			case "increase", "overlap":
				a, err := encoding.EncodeRawMBR(encoding.RawMBRByteOrder, parseFloats(t, d, "a")...)
				require.NoError(t, err)
				b, err := encoding.EncodeRawMBR(encoding.RawMBRByteOrder, parseFloats(t, d, "b")...)
				require.NoError(t, err)
				if d.Cmd == "overlap" {
					return formatFloat(AreaOverlapping(srs, a, b, len(a)))
				}
				increase, union := AreaIncrease(srs, a, b, len(a))
				return fmt.Sprintf("increase=%s union=%s", formatFloat(increase), formatFloat(union))

			default:
				d.Fatalf(t, "unknown command %s", d.Cmd)
				return ""
			}
		})
	})
}
