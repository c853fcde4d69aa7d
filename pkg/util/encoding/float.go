// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package encoding implements the on-disk encodings of float64 values and of
// raw minimum bounding rectangles used by the R-tree costing functions.
package encoding

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
)

// Float64Size is the encoded size of a float64.
const Float64Size = 8

// MBRSegmentSize is the encoded size of one dimension of a raw MBR: a
// (min, max) pair of float64 values.
const MBRSegmentSize = 2 * Float64Size

// RawMBRByteOrder is the byte order raw MBRs are stored with.
var RawMBRByteOrder binary.ByteOrder = binary.LittleEndian

// EncodeFloat64 writes v into the first 8 bytes of b, preserving its exact
// bit pattern.
func EncodeFloat64(order binary.ByteOrder, b []byte, v float64) {
	order.PutUint64(b, math.Float64bits(v))
}

// DecodeFloat64 reads a float64 from the first 8 bytes of b.
func DecodeFloat64(order binary.ByteOrder, b []byte) float64 {
	return math.Float64frombits(order.Uint64(b))
}

// AppendFloat64 appends the encoding of v to b.
func AppendFloat64(order binary.ByteOrder, b []byte, v float64) []byte {
	var buf [Float64Size]byte
	EncodeFloat64(order, buf[:], v)
	return append(b, buf[:]...)
}

// EncodeRawMBR encodes the given coordinates, which must come in
// (min, max) pairs, one pair per dimension.
func EncodeRawMBR(order binary.ByteOrder, bounds ...float64) ([]byte, error) {
	if len(bounds)%2 != 0 {
		return nil, errors.Newf("raw MBR needs (min, max) pairs, got %d values", len(bounds))
	}
	b := make([]byte, 0, len(bounds)*Float64Size)
	for _, v := range bounds {
		b = AppendFloat64(order, b, v)
	}
	return b, nil
}

// DecodeRawMBR decodes the first length bytes of raw into (min, max) pairs.
func DecodeRawMBR(order binary.ByteOrder, raw []byte, length int) ([]float64, error) {
	if length < 0 || length%MBRSegmentSize != 0 {
		return nil, errors.Newf("raw MBR length %d is not a multiple of %d", length, MBRSegmentSize)
	}
	if len(raw) < length {
		return nil, errors.Newf("raw MBR of %d bytes is shorter than %d", len(raw), length)
	}
	bounds := make([]float64, length/Float64Size)
	for i := range bounds {
		bounds[i] = DecodeFloat64(order, raw[i*Float64Size:])
	}
	return bounds, nil
}

// MBRDimensions returns the number of dimensions encoded in length bytes.
func MBRDimensions(length int) int {
	return length / MBRSegmentSize
}

// StringToByteOrder returns the byte order of string.
func StringToByteOrder(s string) (binary.ByteOrder, error) {
	switch strings.ToLower(s) {
	case "ndr", "little", "little-endian":
		return binary.LittleEndian, nil
	case "xdr", "big", "big-endian":
		return binary.BigEndian, nil
	default:
		return nil, errors.Newf("unknown byte order %q", s)
	}
}
