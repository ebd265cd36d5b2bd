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

package glyf

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/fontcore/fixed"
	"seehuhn.de/go/fontcore/outline"
)

func u16(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }
func i16(v int16) []byte  { return u16(uint16(v)) }
func u32(v uint32) []byte { return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)} }

// triangleGlyph builds a simple glyph with one on-curve-only triangle
// contour: (0,0) -> (100,0) -> (0,100).
func triangleGlyph() []byte {
	var b []byte
	b = append(b, i16(1)...)            // numContours
	b = append(b, 0, 0, 0, 0, 0, 0, 0, 0) // xMin,yMin,xMax,yMax (unused by the decoder)
	b = append(b, u16(2)...)            // endPtsOfContours[0]
	b = append(b, u16(0)...)            // instructionLength
	b = append(b, 0x37, 0x37, 0x27)     // flags: on-curve, short deltas
	b = append(b, 0x00, 0x64, 0x64)     // x deltas: 0, +100, -100
	b = append(b, 0x00, 0x00, 0x64)     // y deltas: 0, 0, +100
	return b
}

// compoundGlyph references glyph 0 twice, translated by two different
// offsets, with no scale (identity transform).
func compoundGlyph() []byte {
	var b []byte
	b = append(b, i16(-1)...)
	b = append(b, 0, 0, 0, 0, 0, 0, 0, 0)
	b = append(b, u16(compArgsAreWords|compArgsAreXYValues|compMoreComponents)...)
	b = append(b, u16(0)...) // glyphIndex
	b = append(b, i16(10)...)
	b = append(b, i16(20)...)
	b = append(b, u16(compArgsAreWords|compArgsAreXYValues)...)
	b = append(b, u16(0)...)
	b = append(b, i16(200)...)
	b = append(b, i16(5)...)
	return b
}

func buildTable(t *testing.T) *Table {
	t.Helper()
	g0 := triangleGlyph()
	g1 := compoundGlyph()

	var data []byte
	data = append(data, g0...)
	data = append(data, g1...)

	lengths := []uint32{0, uint32(len(g0)), uint32(len(g0) + len(g1))}
	var locaData []byte
	for _, off := range lengths {
		locaData = append(locaData, u32(off)...)
	}
	loca, err := ParseLoca(locaData, 2, true)
	if err != nil {
		t.Fatalf("ParseLoca: %v", err)
	}
	return NewTable(data, loca)
}

func translate(c outline.Contour, dx, dy float32) outline.Contour {
	out := make(outline.Contour, len(c))
	off := fixed.Vec2{X: dx, Y: dy}
	for i, seg := range c {
		out[i] = outline.Segment{
			Kind: seg.Kind,
			P1:   seg.P1.Add(off),
			P2:   seg.P2.Add(off),
		}
		if seg.Kind == outline.SegQuad {
			out[i].P3 = seg.P3.Add(off)
		}
	}
	return out
}

// TestCompoundGlyphMatchesTransformedComponents covers P4: a compound
// glyph's outline equals the concatenation of its components, each
// transformed by its own matrix and offset.
func TestCompoundGlyphMatchesTransformedComponents(t *testing.T) {
	table := buildTable(t)

	base, err := table.Decode(0)
	if err != nil {
		t.Fatalf("Decode(0): %v", err)
	}
	if len(base.Contours) != 1 {
		t.Fatalf("base glyph has %d contours, want 1", len(base.Contours))
	}

	compound, err := table.Decode(1)
	if err != nil {
		t.Fatalf("Decode(1): %v", err)
	}
	if len(compound.Components) != 2 {
		t.Fatalf("got %d components, want 2", len(compound.Components))
	}
	if len(compound.Contours) != 2 {
		t.Fatalf("got %d contours, want 2", len(compound.Contours))
	}

	want := []outline.Contour{
		translate(base.Contours[0], 10, 20),
		translate(base.Contours[0], 200, 5),
	}
	if diff := cmp.Diff(want, compound.Contours); diff != "" {
		t.Errorf("compound.Contours mismatch (-want +got):\n%s", diff)
	}

	for i, comp := range compound.Components {
		if comp.GlyphIndex != 0 {
			t.Errorf("component %d GlyphIndex = %d, want 0", i, comp.GlyphIndex)
		}
		if comp.Transform != fixed.Identity2x2 {
			t.Errorf("component %d Transform = %+v, want identity", i, comp.Transform)
		}
	}
	if compound.Components[0].Offset != (fixed.Vec2{X: 10, Y: 20}) {
		t.Errorf("component 0 Offset = %v, want (10,20)", compound.Components[0].Offset)
	}
	if compound.Components[1].Offset != (fixed.Vec2{X: 200, Y: 5}) {
		t.Errorf("component 1 Offset = %v, want (200,5)", compound.Components[1].Offset)
	}
}

// TestDecodeIsIdempotent covers the decode half of P3: requesting the
// same glyph index twice yields bitwise-identical contours, since
// Decode reads straight from the owned "glyf" bytes with no cached or
// mutated state in between calls.
func TestDecodeIsIdempotent(t *testing.T) {
	table := buildTable(t)

	for _, gid := range []int{0, 1} {
		a, err := table.Decode(gid)
		if err != nil {
			t.Fatalf("Decode(%d) #1: %v", gid, err)
		}
		b, err := table.Decode(gid)
		if err != nil {
			t.Fatalf("Decode(%d) #2: %v", gid, err)
		}
		if len(a.Contours) != len(b.Contours) {
			t.Fatalf("gid %d: contour count differs between calls: %d vs %d", gid, len(a.Contours), len(b.Contours))
		}
		for i := range a.Contours {
			if len(a.Contours[i]) != len(b.Contours[i]) {
				t.Fatalf("gid %d contour %d: segment count differs", gid, i)
			}
			for j := range a.Contours[i] {
				if a.Contours[i][j] != b.Contours[i][j] {
					t.Errorf("gid %d contour %d segment %d differs between calls: %+v vs %+v",
						gid, i, j, a.Contours[i][j], b.Contours[i][j])
				}
			}
		}
	}
}
