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

package fontcore

import (
	"math"
	"testing"

	"seehuhn.de/go/fontcore/atlas"
	"seehuhn.de/go/fontcore/fixed"
	"seehuhn.de/go/fontcore/outline"
	"seehuhn.de/go/fontcore/sfnt/cmap"
)

func lineGlyph(size fixed.Vec2) *outline.Glyph {
	return &outline.Glyph{
		Contours: []outline.Contour{{
			{Kind: outline.SegLine, P1: fixed.Vec2{}, P2: size},
		}},
		Size: size,
	}
}

func newTestBuilder() *Builder {
	return &Builder{
		pixelsPerEm: 16,
		distance:    0.02,
		byGID:       make(map[cmap.GID]int),
		slots:       []*outline.Glyph{nil},
		built:       []bool{false},
		packer:      atlas.NewPacker(),
	}
}

func (b *Builder) queueGlyph(gid cmap.GID, g *outline.Glyph) int {
	b.slots = append(b.slots, g)
	b.built = append(b.built, false)
	idx := len(b.slots) - 1
	b.byGID[gid] = idx
	b.queue = append(b.queue, gid)
	return idx
}

// TestBuildRescalesPreviouslyBuiltGlyphsOnGrowth is the atlas-growth
// rescale invariant: a glyph already placed and built must keep the
// same absolute atlas position and size once a later Build call grows
// the bounding square to fit additional glyphs.
func TestBuildRescalesPreviouslyBuiltGlyphsOnGrowth(t *testing.T) {
	b := newTestBuilder()

	small := lineGlyph(fixed.Vec2{X: 0.1, Y: 0.1})
	b.queueGlyph(1, small)
	if err := b.Build(); err != nil {
		t.Fatalf("first Build: %v", err)
	}
	firstBound := b.boundSquare
	if firstBound <= 0 {
		t.Fatalf("boundSquare after first Build = %v, want > 0", firstBound)
	}
	if !b.built[1] {
		t.Fatal("slot 1 should be marked built after the first Build call")
	}

	absPos := point2{float64(small.Pos.X) * firstBound, float64(small.Pos.Y) * firstBound}
	absSize := point2{float64(small.Size.X) * firstBound, float64(small.Size.Y) * firstBound}

	big := lineGlyph(fixed.Vec2{X: 5, Y: 5})
	b.queueGlyph(2, big)
	if err := b.Build(); err != nil {
		t.Fatalf("second Build: %v", err)
	}
	secondBound := b.boundSquare
	if secondBound <= firstBound {
		t.Fatalf("boundSquare did not grow: first=%v second=%v", firstBound, secondBound)
	}

	gotPos := point2{float64(small.Pos.X) * secondBound, float64(small.Pos.Y) * secondBound}
	gotSize := point2{float64(small.Size.X) * secondBound, float64(small.Size.Y) * secondBound}

	const tol = 1e-3
	if math.Abs(gotPos.x-absPos.x) > tol || math.Abs(gotPos.y-absPos.y) > tol {
		t.Errorf("absolute position drifted on growth: before=%v after=%v", absPos, gotPos)
	}
	if math.Abs(gotSize.x-absSize.x) > tol || math.Abs(gotSize.y-absSize.y) > tol {
		t.Errorf("absolute size drifted on growth: before=%v after=%v", absSize, gotSize)
	}
}

type point2 struct{ x, y float64 }

// TestBuildSkipsEmptyGlyphs covers that a queued glyph with no contours
// or components (space, or a decode failure's placeholder) is dropped
// before packing and never touches the atlas.
func TestBuildSkipsEmptyGlyphs(t *testing.T) {
	b := newTestBuilder()
	b.queueGlyph(1, &outline.Glyph{})
	if err := b.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if b.pixels != nil {
		t.Error("Build should not allocate an atlas when every queued glyph is empty")
	}
	if b.boundSquare != 0 {
		t.Errorf("boundSquare = %v, want 0 (no packing happened)", b.boundSquare)
	}
}

// TestBuildNoQueueIsNoOp covers that calling Build with nothing queued
// does not touch the packer or atlas state.
func TestBuildNoQueueIsNoOp(t *testing.T) {
	b := newTestBuilder()
	if err := b.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if b.pixels != nil {
		t.Error("Build with an empty queue should not allocate an atlas")
	}
}

// TestTightBBoxIgnoresQuadControlPoints covers that the bounding-box
// scan considers a quadratic segment's endpoint but not its control
// point, since the control point is not on the curve.
func TestTightBBoxIgnoresQuadControlPoints(t *testing.T) {
	contours := []outline.Contour{{
		{Kind: outline.SegLine, P1: fixed.Vec2{X: 0, Y: 0}, P2: fixed.Vec2{X: 1, Y: 0}},
		{Kind: outline.SegQuad, P1: fixed.Vec2{X: 1, Y: 0}, P2: fixed.Vec2{X: 5, Y: 5}, P3: fixed.Vec2{X: 1, Y: 1}},
	}}
	min, max, ok := tightBBox(contours)
	if !ok {
		t.Fatal("tightBBox should report ok for a non-empty contour list")
	}
	if max.Y != 1 {
		t.Errorf("max.Y = %v, want 1 (the far-out control point at y=5 must not count)", max.Y)
	}
	if min != (fixed.Vec2{X: 0, Y: 0}) || max.X != 1 {
		t.Errorf("bbox = [%v, %v], want min (0,0) and max.X 1", min, max)
	}
}

// TestTightBBoxEmptyContours covers the ok=false path for a glyph with
// no segments at all.
func TestTightBBoxEmptyContours(t *testing.T) {
	if _, _, ok := tightBBox(nil); ok {
		t.Error("tightBBox of no contours should report ok=false")
	}
}

// TestCopyAtlasPreservesContentOnGrowth covers that growing the atlas
// buffer keeps each row's bytes at the same (row, col) offset rather
// than letting the flattened byte stream drift once stride changes.
func TestCopyAtlasPreservesContentOnGrowth(t *testing.T) {
	srcStride := 2
	src := []byte{1, 2, 3, 4} // 2x2: row0={1,2} row1={3,4}
	dstStride := 4
	dst := make([]byte, dstStride*dstStride)
	copyAtlas(dst, dstStride, src, srcStride)

	if dst[0] != 1 || dst[1] != 2 {
		t.Errorf("row 0 = %v, want {1, 2, ...}", dst[0:2])
	}
	if dst[dstStride] != 3 || dst[dstStride+1] != 4 {
		t.Errorf("row 1 = %v, want {3, 4, ...}", dst[dstStride:dstStride+2])
	}
}
