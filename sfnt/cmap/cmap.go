// seehuhn.de/go/fontcore - a font parsing and SDF glyph-atlas library
// Copyright (C) 2026  The fontcore contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package cmap decodes "cmap" subtables in formats 0, 4 and 12, and
// selects the subtable to use for a font via the fixed platform/encoding
// preference list from the design spec.
package cmap

import "seehuhn.de/go/fontcore/internal/reader"

// GID is a glyph index. 0 always denotes .notdef / "no glyph".
type GID = uint16

// Subtable maps Unicode code points to glyph indices; 0 means "missing".
type Subtable interface {
	Lookup(code rune) GID
}

// decoders maps a subtable format number to its decode function.
var decoders = map[uint16]func([]byte) (Subtable, error){
	0:  decodeFormat0,
	4:  decodeFormat4,
	12: decodeFormat12,
}

// Decode parses a single cmap subtable given its format-tagged bytes
// (starting at the subtable's own format field).
func Decode(data []byte) (Subtable, error) {
	r := reader.New("cmap", data)
	format, err := r.U16()
	if err != nil {
		return nil, err
	}
	dec, ok := decoders[format]
	if !ok {
		return nil, unsupportedFormat(format)
	}
	return dec(data)
}

// encodingRecord is one (platformID, encodingID, offset) entry from the
// cmap index.
type encodingRecord struct {
	PlatformID uint16
	EncodingID uint16
	Offset     uint32
}

// preference ranks (platformID, encodingID) pairs; lower index is
// preferred. Pairs not listed are never selected. This list is fixed by
// the design spec and intentionally differs from the ad hoc preference
// order used elsewhere in the sfnt ecosystem.
var preference = []struct{ platform, encoding uint16 }{
	{0, 4},
	{0, 3},
	{3, 10},
	{3, 1},
	{3, 0},
}

func rank(platform, encoding uint16) int {
	for i, p := range preference {
		if p.platform == platform && p.encoding == encoding {
			return i
		}
	}
	return -1
}

// SelectAndDecode reads the cmap table index at the start of data,
// selects the best encoding record per the fixed preference list, and
// decodes its subtable. It returns (nil, nil), not an error, if no
// acceptable subtable is present. The subfont is not dropped: Load keeps
// it, and its GlyphIndex maps every code point to 0.
func SelectAndDecode(data []byte) (Subtable, error) {
	r := reader.New("cmap", data)
	if _, err := r.U16(); err != nil { // version, must be 0
		return nil, err
	}
	numTables, err := r.U16()
	if err != nil {
		return nil, err
	}

	var best encodingRecord
	bestRank := -1
	for i := 0; i < int(numTables); i++ {
		platformID, err := r.U16()
		if err != nil {
			return nil, err
		}
		encodingID, err := r.U16()
		if err != nil {
			return nil, err
		}
		offset, err := r.U32()
		if err != nil {
			return nil, err
		}
		rk := rank(platformID, encodingID)
		if rk < 0 {
			continue
		}
		if bestRank < 0 || rk < bestRank {
			bestRank = rk
			best = encodingRecord{PlatformID: platformID, EncodingID: encodingID, Offset: offset}
		}
	}
	if bestRank < 0 {
		return nil, nil
	}
	if int(best.Offset) >= len(data) {
		return nil, nil
	}
	return Decode(data[best.Offset:])
}
