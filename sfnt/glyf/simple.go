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
	"seehuhn.de/go/fontcore/fixed"
	"seehuhn.de/go/fontcore/internal/reader"
	"seehuhn.de/go/fontcore/outline"
)

const (
	flagOnCurve    = 0x01
	flagXShort     = 0x02
	flagYShort     = 0x04
	flagRepeat     = 0x08
	flagXSameOrPos = 0x10
	flagYSameOrPos = 0x20
)

type glyfPoint struct {
	x, y    int32
	onCurve bool
}

// decodeSimple parses a simple glyph body: endPtsOfContours, an
// instruction block (skipped), flags with repeat compression, then
// packed x and y coordinate deltas.
func decodeSimple(r *reader.R, numContours int) (*outline.Glyph, error) {
	endPts := make([]uint16, numContours)
	for i := range endPts {
		v, err := r.U16()
		if err != nil {
			return nil, err
		}
		endPts[i] = v
	}

	numPoints := 0
	if numContours > 0 {
		numPoints = int(endPts[numContours-1]) + 1
	}

	instructionLength, err := r.U16()
	if err != nil {
		return nil, err
	}
	if err := r.Skip(int(instructionLength)); err != nil {
		return nil, err
	}

	flags := make([]byte, numPoints)
	for i := 0; i < numPoints; {
		f, err := r.U8()
		if err != nil {
			return nil, err
		}
		flags[i] = f
		i++
		if f&flagRepeat != 0 {
			repeat, err := r.U8()
			if err != nil {
				return nil, err
			}
			for j := byte(0); j < repeat && i < numPoints; j++ {
				flags[i] = f
				i++
			}
		}
	}

	xs, err := decodeCoords(r, flags, flagXShort, flagXSameOrPos)
	if err != nil {
		return nil, err
	}
	ys, err := decodeCoords(r, flags, flagYShort, flagYSameOrPos)
	if err != nil {
		return nil, err
	}

	points := make([]glyfPoint, numPoints)
	for i := range points {
		points[i] = glyfPoint{x: xs[i], y: ys[i], onCurve: flags[i]&flagOnCurve != 0}
	}

	var b outline.Builder
	start := 0
	for _, end := range endPts {
		contour := points[start : int(end)+1]
		emitContour(&b, contour)
		start = int(end) + 1
	}

	return &outline.Glyph{Contours: b.Contours()}, nil
}

// decodeCoords reads one axis of point deltas: a single byte with the
// given short flag, a same/positive bit selecting sign when short, else
// a signed i16 delta (or zero, when the same-or-positive bit is set
// without the short flag — "this coordinate repeats the previous one").
func decodeCoords(r *reader.R, flags []byte, shortBit, sameOrPosBit byte) ([]int32, error) {
	out := make([]int32, len(flags))
	var acc int32
	for i, f := range flags {
		switch {
		case f&shortBit != 0:
			v, err := r.U8()
			if err != nil {
				return nil, err
			}
			delta := int32(v)
			if f&sameOrPosBit == 0 {
				delta = -delta
			}
			acc += delta
		case f&sameOrPosBit != 0:
			// repeats the previous value; delta is zero
		default:
			v, err := r.I16()
			if err != nil {
				return nil, err
			}
			acc += int32(v)
		}
		out[i] = acc
	}
	return out, nil
}

// emitContour walks one contour's points cyclically, inserting implied
// on-curve points at the midpoint between two consecutive off-curve
// points, and emits the resulting lines and quadratic curves into b.
func emitContour(b *outline.Builder, pts []glyfPoint) {
	n := len(pts)
	if n == 0 {
		return
	}

	toVec := func(p glyfPoint) fixed.Vec2 {
		return fixed.Vec2{X: float32(p.x), Y: float32(p.y)}
	}
	mid := func(a, c fixed.Vec2) fixed.Vec2 {
		return fixed.Vec2{X: (a.X + c.X) / 2, Y: (a.Y + c.Y) / 2}
	}

	startIdx := 0
	var start fixed.Vec2
	found := false
	for i, p := range pts {
		if p.onCurve {
			startIdx = i
			start = toVec(p)
			found = true
			break
		}
	}
	if !found {
		// All points off-curve: synthesize a start at the midpoint of
		// the last and first points.
		start = mid(toVec(pts[n-1]), toVec(pts[0]))
		startIdx = 0
	}

	b.MoveTo(start)

	var pendingControl *fixed.Vec2
	step := func(p glyfPoint) {
		v := toVec(p)
		if p.onCurve {
			if pendingControl != nil {
				b.QuadTo(*pendingControl, v)
				pendingControl = nil
			} else {
				b.LineTo(v)
			}
			return
		}
		if pendingControl != nil {
			implied := mid(*pendingControl, v)
			b.QuadTo(*pendingControl, implied)
		}
		c := v
		pendingControl = &c
	}

	offset := startIdx
	if found {
		offset++
	}
	for k := 0; k < n; k++ {
		idx := (offset + k) % n
		if found && idx == startIdx {
			break
		}
		step(pts[idx])
	}

	if pendingControl != nil {
		b.QuadTo(*pendingControl, start)
	}
	b.ClosePath()
}
