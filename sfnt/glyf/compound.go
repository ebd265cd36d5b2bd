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
	"math"

	"seehuhn.de/go/fontcore/fixed"
	"seehuhn.de/go/fontcore/internal/reader"
	"seehuhn.de/go/fontcore/outline"
)

const (
	compArgsAreWords          = 0x0001
	compArgsAreXYValues       = 0x0002
	compRoundXYToGrid         = 0x0004
	compWeHaveAScale          = 0x0008
	compMoreComponents        = 0x0020
	compWeHaveXYScale         = 0x0040
	compWeHaveTwoByTwo        = 0x0080
	compScaledComponentOffset = 0x0800
)

// decodeCompound parses a compound glyph: a sequence of component
// records, each recursively resolving another glyph and instancing it
// with a 2x2 transform and an offset. The unified Glyph keeps both the
// expanded point data (for direct rendering) and the Components list
// (for the renderer to instance, per spec §3 and §4.D.1).
func (t *Table) decodeCompound(r *reader.R, depth int) (*outline.Glyph, error) {
	var b outline.Builder
	var components []outline.Component

	for {
		flags, err := r.U16()
		if err != nil {
			return nil, err
		}
		glyphIndex, err := r.U16()
		if err != nil {
			return nil, err
		}

		var arg1, arg2 int32
		if flags&compArgsAreWords != 0 {
			if flags&compArgsAreXYValues != 0 {
				v1, err := r.I16()
				if err != nil {
					return nil, err
				}
				v2, err := r.I16()
				if err != nil {
					return nil, err
				}
				arg1, arg2 = int32(v1), int32(v2)
			} else {
				v1, err := r.U16()
				if err != nil {
					return nil, err
				}
				v2, err := r.U16()
				if err != nil {
					return nil, err
				}
				arg1, arg2 = int32(v1), int32(v2)
			}
		} else {
			v1, err := r.U8()
			if err != nil {
				return nil, err
			}
			v2, err := r.U8()
			if err != nil {
				return nil, err
			}
			if flags&compArgsAreXYValues != 0 {
				arg1, arg2 = int32(int8(v1)), int32(int8(v2))
			} else {
				arg1, arg2 = int32(v1), int32(v2)
			}
		}

		m := fixed.Identity2x2
		switch {
		case flags&compWeHaveTwoByTwo != 0:
			a, err := r.F2Dot14()
			if err != nil {
				return nil, err
			}
			bb, err := r.F2Dot14()
			if err != nil {
				return nil, err
			}
			c, err := r.F2Dot14()
			if err != nil {
				return nil, err
			}
			d, err := r.F2Dot14()
			if err != nil {
				return nil, err
			}
			m = fixed.Mat2x2{A: float32(a.Float64()), B: float32(bb.Float64()), C: float32(c.Float64()), D: float32(d.Float64())}
		case flags&compWeHaveXYScale != 0:
			sx, err := r.F2Dot14()
			if err != nil {
				return nil, err
			}
			sy, err := r.F2Dot14()
			if err != nil {
				return nil, err
			}
			m = fixed.Mat2x2{A: float32(sx.Float64()), D: float32(sy.Float64())}
		case flags&compWeHaveAScale != 0:
			s, err := r.F2Dot14()
			if err != nil {
				return nil, err
			}
			m = fixed.Mat2x2{A: float32(s.Float64()), D: float32(s.Float64())}
		}

		var off fixed.Vec2
		if flags&compArgsAreXYValues != 0 {
			off = fixed.Vec2{X: float32(arg1), Y: float32(arg2)}
			if flags&compScaledComponentOffset != 0 {
				off = m.Apply(off)
			}
			if flags&compRoundXYToGrid != 0 {
				off = fixed.Vec2{X: float32(math.Round(float64(off.X))), Y: float32(math.Round(float64(off.Y)))}
			}
		}
		// Point-index args (ARGS_ARE_XY_VALUES clear) require matching
		// point anchors between the composite and its component, which
		// is not needed to render the common case; such components are
		// positioned at the origin with no offset.

		child, err := t.decode(int(glyphIndex), depth+1)
		if err != nil {
			return nil, err
		}

		components = append(components, outline.Component{
			GlyphIndex: glyphIndex,
			Transform:  m,
			Offset:     off,
		})

		for _, contour := range child.Contours {
			transformed := make(outline.Contour, len(contour))
			for i, seg := range contour {
				transformed[i] = outline.Segment{
					Kind: seg.Kind,
					P1:   m.Apply(seg.P1).Add(off),
					P2:   m.Apply(seg.P2).Add(off),
					P3:   m.Apply(seg.P3).Add(off),
				}
			}
			if len(transformed) > 0 {
				b.MoveTo(transformed[0].P1)
				for _, seg := range transformed {
					if seg.Kind == outline.SegLine {
						b.LineTo(seg.P2)
					} else {
						b.QuadTo(seg.P2, seg.P3)
					}
				}
				b.ClosePath()
			}
		}

		if flags&compMoreComponents == 0 {
			break
		}
	}

	g := &outline.Glyph{Contours: b.Contours(), Components: components}
	return g, nil
}
