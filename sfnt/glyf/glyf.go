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

// Package glyf decodes TrueType "glyf" outlines: simple glyphs directly,
// compound glyphs by recursive reference to other glyphs with an affine
// transform per component.
package glyf

import (
	"seehuhn.de/go/fontcore/internal/errcode"
	"seehuhn.de/go/fontcore/internal/reader"
	"seehuhn.de/go/fontcore/outline"
)

// maxCompositeDepth bounds recursive composite-glyph resolution so a
// malformed font with a reference cycle cannot loop forever.
const maxCompositeDepth = 16

// Table holds the decoded "loca" offsets and the raw "glyf" table bytes,
// and resolves glyph indices to outline.Glyph values (metrics are
// attached separately from "hmtx" by the caller).
type Table struct {
	data []byte
	loca []uint32
}

// ParseLoca decodes the "loca" table. Short-format offsets are stored
// pre-halved in the file and must be multiplied by 2.
func ParseLoca(data []byte, numGlyphs int, longFormat bool) ([]uint32, error) {
	n := numGlyphs + 1
	r := reader.New("loca", data)
	offsets := make([]uint32, n)
	for i := 0; i < n; i++ {
		if longFormat {
			v, err := r.U32()
			if err != nil {
				return nil, err
			}
			offsets[i] = v
		} else {
			v, err := r.U16()
			if err != nil {
				return nil, err
			}
			offsets[i] = uint32(v) * 2
		}
	}
	return offsets, nil
}

// NewTable pairs the raw "glyf" table with its "loca" offsets.
func NewTable(glyfData []byte, loca []uint32) *Table {
	return &Table{data: glyfData, loca: loca}
}

// NumGlyphs returns the number of glyphs loca describes.
func (t *Table) NumGlyphs() int {
	if len(t.loca) == 0 {
		return 0
	}
	return len(t.loca) - 1
}

func (t *Table) glyphBytes(gid int) ([]byte, error) {
	if gid < 0 || gid+1 >= len(t.loca) {
		return nil, errcode.Malformedf("glyf", "glyph index %d out of range", gid)
	}
	start, end := t.loca[gid], t.loca[gid+1]
	if end < start || int(end) > len(t.data) {
		return nil, errcode.Malformedf("glyf", "invalid loca range for glyph %d", gid)
	}
	return t.data[start:end], nil
}

// Decode resolves gid to a fully-built outline, recursively expanding
// compound glyphs. The returned Glyph carries the contours and, for a
// compound glyph, its Components; it has no bounding box or size set.
// Advance/Offset.X from hmtx and em-space normalization are applied by
// the caller.
func (t *Table) Decode(gid int) (*outline.Glyph, error) {
	return t.decode(gid, 0)
}

func (t *Table) decode(gid int, depth int) (*outline.Glyph, error) {
	if depth > maxCompositeDepth {
		return nil, errcode.Malformedf("glyf", "composite glyph nesting too deep (possible cycle)")
	}

	data, err := t.glyphBytes(gid)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return &outline.Glyph{}, nil
	}

	r := reader.New("glyf", data)
	numContours, err := r.I16()
	if err != nil {
		return nil, err
	}
	// xMin, yMin, xMax, yMax: the spec computes the tight bounding box
	// by scanning emitted outline points instead of trusting this
	// header, so these four FWords are skipped rather than parsed.
	if err := r.Skip(8); err != nil {
		return nil, err
	}

	if numContours >= 0 {
		return decodeSimple(r, int(numContours))
	}
	return t.decodeCompound(r, depth)
}
