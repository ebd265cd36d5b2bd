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

// Package outline is the unified glyph-outline representation fed by both
// the glyf and CFF back-ends: an ordered list of contours, each a
// sequence of line segments and quadratic curves.
package outline

import "seehuhn.de/go/fontcore/fixed"

// SegKind distinguishes a Line from a Quad segment.
type SegKind uint8

const (
	SegLine SegKind = iota
	SegQuad
)

// Segment is a line {P1,P2} or a quadratic curve {P1,P2,P3} (P2 is the
// control point); P3/Kind is unused for SegLine.
type Segment struct {
	Kind SegKind
	P1   fixed.Vec2
	P2   fixed.Vec2
	P3   fixed.Vec2
}

// Contour is a closed sequence of segments; the last segment's endpoint
// implicitly joins the first segment's start point.
type Contour []Segment

// Component references a previously-built glyph, instanced with an
// affine transform (composite glyf glyphs only).
type Component struct {
	GlyphIndex uint16
	Transform  fixed.Mat2x2
	Offset     fixed.Vec2
}

// Glyph is the fully-resolved, normalized glyph outline and metrics
// produced by the outline decoder.
type Glyph struct {
	Contours   []Contour
	Components []Component

	Advance fixed.Vec2 // horizontal advance, normalized to 0..1
	Offset  fixed.Vec2 // left side bearing / top bearing, normalized
	Size    fixed.Vec2 // bounding box dimensions, normalized
	Pos     fixed.Vec2 // assigned atlas coordinate; (0,0) until packed
}

// Empty reports whether the glyph has no visible contours.
func (g *Glyph) Empty() bool {
	return len(g.Contours) == 0 && len(g.Components) == 0
}

// Builder accumulates path-construction calls (as emitted by the glyf
// contour walk or the CFF Type-2 interpreter) into Contours. It plays the
// role the teacher's type2.Renderer interface plays for Type-2
// charstrings, generalized to also serve glyf's simple/compound decode.
type Builder struct {
	contours []Contour
	cur      Contour
	start    fixed.Vec2
	pt       fixed.Vec2
	open     bool
}

// MoveTo closes the current contour (if any points were emitted since the
// last move) and starts a new one at p.
func (b *Builder) MoveTo(p fixed.Vec2) {
	b.closeCurrent()
	b.start = p
	b.pt = p
	b.open = true
}

// LineTo appends a line segment from the current point to p.
func (b *Builder) LineTo(p fixed.Vec2) {
	if !b.open {
		b.MoveTo(b.pt)
	}
	b.cur = append(b.cur, Segment{Kind: SegLine, P1: b.pt, P2: p})
	b.pt = p
}

// QuadTo appends a quadratic curve from the current point through control
// point c to p.
func (b *Builder) QuadTo(c, p fixed.Vec2) {
	if !b.open {
		b.MoveTo(b.pt)
	}
	b.cur = append(b.cur, Segment{Kind: SegQuad, P1: b.pt, P2: c, P3: p})
	b.pt = p
}

// CubeTo appends a cubic Bézier from the current point through control
// points c1, c2 to p, simplified into two quadratics sharing the
// chord-midpoint tangent, per spec §4.D.2's post-processing rule.
func (b *Builder) CubeTo(c1, c2, p fixed.Vec2) {
	p0 := b.pt
	// Split the cubic at t=0.5 using de Casteljau, then collapse each
	// half into one quadratic whose control point is the half's own
	// control-point chord intersection.
	mid01 := lerp(p0, c1, 0.5)
	midCC := lerp(c1, c2, 0.5)
	mid12 := lerp(c2, p, 0.5)
	midA := lerp(mid01, midCC, 0.5)
	midB := lerp(midCC, mid12, 0.5)
	midPt := lerp(midA, midB, 0.5)

	// Each half's quadratic control point is the far end of its control
	// polygon's first leg, extrapolated through the subdivision midpoint.
	ctrl1 := extrapolate(p0, midA)
	ctrl2 := extrapolate(midPt, mid12)

	b.QuadTo(ctrl1, midPt)
	b.QuadTo(ctrl2, p)
}

func lerp(a, b fixed.Vec2, t float32) fixed.Vec2 {
	return fixed.Vec2{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// extrapolate returns the point on the line through a and b, positioned
// at b plus (b-a); used to recover a quadratic control point from the
// midpoint-subdivided cubic control polygon.
func extrapolate(a, b fixed.Vec2) fixed.Vec2 {
	return fixed.Vec2{
		X: 2*b.X - a.X,
		Y: 2*b.Y - a.Y,
	}
}

func (b *Builder) closeCurrent() {
	if b.open && len(b.cur) > 0 {
		if b.pt != b.start {
			b.cur = append(b.cur, Segment{Kind: SegLine, P1: b.pt, P2: b.start})
		}
		b.contours = append(b.contours, b.cur)
	}
	b.cur = nil
	b.open = false
}

// ClosePath is equivalent to calling MoveTo(CurrentPoint); it finishes the
// current contour with an implicit closing line back to its start point.
func (b *Builder) ClosePath() {
	b.closeCurrent()
}

// Contours finishes the path (closing any open contour) and returns the
// accumulated contours.
func (b *Builder) Contours() []Contour {
	b.closeCurrent()
	return b.contours
}

// CurrentPoint returns the current pen position.
func (b *Builder) CurrentPoint() fixed.Vec2 {
	return b.pt
}
