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

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geombr/pkg/geo/geopb"
	"github.com/cockroachdb/geombr/pkg/geo/geoprojbase"
	"github.com/cockroachdb/geombr/pkg/util/log"
)

// Reader looks up reference systems. *Snapshot implements it.
type Reader interface {
	Lookup(srid geopb.SRID) (*geoprojbase.SpatialReferenceSystem, error)
}

// Resolve returns a private copy of the reference system identified by srid,
// read through the given reader. SRID 0, an unknown SRID, or a failed lookup
// all resolve to nil, which callers treat as a cartesian system with no
// spheroid. Resolve never returns an error.
func Resolve(
	ctx context.Context, r Reader, srid geopb.SRID,
) *geoprojbase.SpatialReferenceSystem {
	if srid == geopb.UnknownSRID || r == nil {
		return nil
	}
	srs, err := r.Lookup(srid)
	if err != nil {
		if !errors.Is(err, ErrSRSNotFound) {
			log.Warningf(ctx, "resolving SRID %d: %v", srid, err)
		} else {
			log.VEventf(ctx, 2, "SRID %d is not defined", srid)
		}
		return nil
	}
	return srs.Clone()
}

// ResolveFromCatalog takes a snapshot of c, resolves srid through it and
// releases the snapshot before returning.
func ResolveFromCatalog(
	ctx context.Context, c *Catalog, srid geopb.SRID,
) *geoprojbase.SpatialReferenceSystem {
	if srid == geopb.UnknownSRID {
		return nil
	}
	snap := c.Snapshot()
	defer snap.Release()
	return Resolve(ctx, snap, srid)
}
