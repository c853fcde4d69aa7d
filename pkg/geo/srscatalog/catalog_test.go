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
	"context"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geombr/pkg/geo/geopb"
	"github.com/cockroachdb/geombr/pkg/geo/geoprojbase"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	ctx := context.Background()
	c := New()

	testCases := []struct {
		desc       string
		srid       geopb.SRID
		found      bool
		geographic bool
	}{
		{"unknown SRID", 0, false, false},
		{"WGS 84", 4326, true, true},
		{"web mercator", 3857, true, false},
		{"undefined", 999999, false, false},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			srs := ResolveFromCatalog(ctx, c, tc.srid)
			if !tc.found {
				require.Nil(t, srs)
				return
			}
			require.NotNil(t, srs)
			require.Equal(t, tc.srid, srs.SRID())
			require.Equal(t, tc.geographic, srs.IsGeographic())
		})
	}
}

type failingReader struct{}

func (failingReader) Lookup(geopb.SRID) (*geoprojbase.SpatialReferenceSystem, error) {
	return nil, errors.New("catalog unavailable")
}

func TestResolveLookupFailureIsAbsence(t *testing.T) {
	require.Nil(t, Resolve(context.Background(), failingReader{}, 4326))
	require.Nil(t, Resolve(context.Background(), nil, 4326))
}

func TestResolveReturnsPrivateCopy(t *testing.T) {
	ctx := context.Background()
	snap := New().Snapshot()
	defer snap.Release()
	a := Resolve(ctx, snap, 4326)
	b := Resolve(ctx, snap, 4326)
	require.Equal(t, a, b)
	require.NotSame(t, a, b)
}

func TestSnapshotIsolation(t *testing.T) {
	c := New()
	snap := c.Snapshot()
	defer snap.Release()

	require.True(t, c.Delete(4326))
	require.NoError(t, c.Upsert(geoprojbase.Definition{SRID: 7, Name: "local grid"}))

	_, err := snap.Lookup(4326)
	require.NoError(t, err)
	_, err = snap.Lookup(7)
	require.True(t, errors.Is(err, ErrSRSNotFound))

	fresh := c.Snapshot()
	defer fresh.Release()
	_, err = fresh.Lookup(4326)
	require.True(t, errors.Is(err, ErrSRSNotFound))
	srs, err := fresh.Lookup(7)
	require.NoError(t, err)
	require.True(t, srs.IsCartesian())
}

func TestReleasedSnapshot(t *testing.T) {
	snap := New().Snapshot()
	snap.Release()
	_, err := snap.Lookup(4326)
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrSRSNotFound))
}

func TestSnapshotEach(t *testing.T) {
	c := New()
	snap := c.Snapshot()
	defer snap.Release()
	var srids []geopb.SRID
	snap.Each(func(srs *geoprojbase.SpatialReferenceSystem) bool {
		srids = append(srids, srs.SRID())
		return true
	})
	require.Len(t, srids, c.Len())
	for i := 1; i < len(srids); i++ {
		require.Less(t, srids[i-1], srids[i])
	}
}

func TestUpsertRejectsInvalid(t *testing.T) {
	c := NewEmpty()
	require.Error(t, c.Upsert(geoprojbase.Definition{SRID: 0}))
	require.Error(t, c.Upsert(geoprojbase.Definition{SRID: 5, Geographic: true}))
	require.Equal(t, 0, c.Len())
}

func TestLoadYAML(t *testing.T) {
	const doc = `
spatial_reference_systems:
  - srid: 104001
    name: unit sphere in grads
    geographic: true
    semi_major_axis: 1
    angular_unit: 0.015707963267948967
  - srid: 104002
    name: local plane
`
	c := NewEmpty()
	n, err := c.LoadYAML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, 2, n)

	srs := ResolveFromCatalog(context.Background(), c, 104001)
	require.NotNil(t, srs)
	require.True(t, srs.IsGeographic())
	require.Equal(t, 1.0, srs.SemiMajorAxis())
	require.Equal(t, 1.0, srs.SemiMinorAxis())
	require.InDelta(t, math.Pi, srs.ToRadians(200), 1e-12)

	srs = ResolveFromCatalog(context.Background(), c, 104002)
	require.NotNil(t, srs)
	require.True(t, srs.IsCartesian())
}

func TestLoadYAMLErrors(t *testing.T) {
	for _, doc := range []string{
		"spatial_reference_systems:\n  - srid: 0\n",
		"spatial_reference_systems:\n  - srid: 1\n    geographic: true\n",
		"spatial_reference_systems:\n  - srid: 1\n    bogus: 3\n",
		"spatial_reference_systems: [",
	} {
		c := NewEmpty()
		_, err := c.LoadYAML(strings.NewReader(doc))
		require.Error(t, err, doc)
		require.Equal(t, 0, c.Len())
	}

	n, err := NewEmpty().LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestConcurrentResolve(t *testing.T) {
	ctx := context.Background()
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if i%2 == 0 {
					_ = c.Upsert(geoprojbase.Definition{SRID: geopb.SRID(200000 + j), Name: "tmp"})
				}
				if ResolveFromCatalog(ctx, c, 4326) == nil {
					t.Error("SRID 4326 did not resolve")
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
