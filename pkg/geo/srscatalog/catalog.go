// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package srscatalog stores spatial reference system definitions and
// resolves SRIDs to immutable reference system snapshots.
//
// Readers never touch the live catalog. They take a Snapshot, which is a
// copy-on-write clone of the catalog's tree, look up what they need, and
// release it.
package srscatalog

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geombr/pkg/geo/geopb"
	"github.com/cockroachdb/geombr/pkg/geo/geoprojbase"
	"github.com/cockroachdb/geombr/pkg/util/syncutil"
	"github.com/google/btree"
)

// ErrSRSNotFound is returned by lookups of SRIDs that have no definition.
var ErrSRSNotFound = errors.New("spatial reference system not found")

type catalogEntry struct {
	srid geopb.SRID
	srs  *geoprojbase.SpatialReferenceSystem
}

func (e catalogEntry) Less(than btree.Item) bool {
	return e.srid < than.(catalogEntry).srid
}

// Catalog is a mutable set of spatial reference system definitions.
type Catalog struct {
	mu struct {
		syncutil.RWMutex
		bt *btree.BTree
	}
}

// New returns a catalog holding the built-in definitions.
func New() *Catalog {
	c := NewEmpty()
	for _, d := range geoprojbase.BuiltinDefinitions {
		if err := c.Upsert(d); err != nil {
			panic(errors.NewAssertionErrorWithWrappedErrf(err, "built-in SRS %d", d.SRID))
		}
	}
	return c
}

// NewEmpty returns a catalog without any definitions.
func NewEmpty() *Catalog {
	c := &Catalog{}
	c.mu.bt = btree.New(8)
	return c
}

// Upsert validates the definition and adds it to the catalog, replacing any
// existing definition with the same SRID.
func (c *Catalog) Upsert(d geoprojbase.Definition) error {
	if d.SRID == geopb.UnknownSRID {
		return errors.Newf("SRID %d is reserved", d.SRID)
	}
	srs, err := d.Build()
	if err != nil {
		return errors.Wrapf(err, "invalid definition for SRID %d", d.SRID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.upsertLocked(srs)
	return nil
}

func (c *Catalog) upsertLocked(srs *geoprojbase.SpatialReferenceSystem) {
	c.mu.AssertHeld()
	c.mu.bt.ReplaceOrInsert(catalogEntry{srid: srs.SRID(), srs: srs})
}

// Delete removes the definition of srid. It returns whether one existed.
func (c *Catalog) Delete(srid geopb.SRID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mu.bt.Delete(catalogEntry{srid: srid}) != nil
}

// Len returns the number of definitions in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mu.bt.Len()
}

// Snapshot returns a read-only view of the catalog as of now. Later changes
// to the catalog are not visible through it.
func (c *Catalog) Snapshot() *Snapshot {
	// Clone is lazy copy-on-write and mutates the source tree's bookkeeping,
	// so it needs the write lock.
	c.mu.Lock()
	defer c.mu.Unlock()
	return &Snapshot{bt: c.mu.bt.Clone()}
}

// Snapshot is a read-only view of a Catalog. A snapshot must not be used
// after Release.
type Snapshot struct {
	bt *btree.BTree
}

// Lookup returns the reference system with the given SRID. It returns
// ErrSRSNotFound if there is none.
func (s *Snapshot) Lookup(srid geopb.SRID) (*geoprojbase.SpatialReferenceSystem, error) {
	if s.bt == nil {
		return nil, errors.AssertionFailedf("lookup of SRID %d on a released snapshot", srid)
	}
	item := s.bt.Get(catalogEntry{srid: srid})
	if item == nil {
		return nil, errors.Wrapf(ErrSRSNotFound, "SRID %d", srid)
	}
	return item.(catalogEntry).srs, nil
}

// Each calls fn for every reference system in SRID order.
func (s *Snapshot) Each(fn func(*geoprojbase.SpatialReferenceSystem) bool) {
	if s.bt == nil {
		return
	}
	s.bt.Ascend(func(i btree.Item) bool {
		return fn(i.(catalogEntry).srs)
	})
}

// Release gives up the snapshot.
func (s *Snapshot) Release() {
	s.bt = nil
}
