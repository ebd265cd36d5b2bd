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

// Package sdf rasterizes a glyph outline into a signed-distance-field
// texture: for every pixel, a ray-cast winding test decides inside/
// outside, and a closest-point search over the outline's lines and
// quadratic curves gives the distance used to smoothly falloff across
// an edge band.
package sdf

import "math"

type point struct{ x, y float64 }

func sub(a, b point) point  { return point{a.x - b.x, a.y - b.y} }
func add(a, b point) point  { return point{a.x + b.x, a.y + b.y} }
func scale(a point, s float64) point { return point{a.x * s, a.y * s} }
func dot(a, b point) float64 { return a.x*b.x + a.y*b.y }
func absSqr(a point) float64 { return a.x*a.x + a.y*a.y }

// line is a straight outline segment from P1 to P2.
type line struct{ p1, p2 point }

// curve is a quadratic Bezier outline segment, P2 the control point.
type curve struct{ p1, p2, p3 point }

func signToWinding(d float64) int {
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	default:
		return 0
	}
}

// intersection returns this line's contribution to the winding number
// of a horizontal ray cast rightward from p.
func (l line) intersection(p point) int {
	if l.p2.x == l.p1.x {
		if l.p2.x >= p.x {
			if p.y >= l.p1.y && p.y < l.p2.y {
				return 1
			} else if p.y >= l.p2.y && p.y < l.p1.y {
				return -1
			}
		}
		return 0
	}

	a := l.p2.y - l.p1.y
	if a == 0 {
		return 0
	}
	b := -l.p1.y + p.y
	t := b / a
	if a > 0 {
		if t >= 0 && t < 1 {
			x := (l.p2.x-l.p1.x)*t + l.p1.x
			if x >= p.x {
				return 1
			}
		}
	} else {
		if t > 0 && t <= 1 {
			x := (l.p2.x-l.p1.x)*t + l.p1.x
			if x >= p.x {
				return -1
			}
		}
	}
	return 0
}

// distSquared returns the squared distance from p to the closest point
// on the segment, never exceeding upperBound (an early-out bound).
func (l line) distSquared(p point, upperBound float64) float64 {
	d := sub(l.p2, l.p1)
	lenSq := absSqr(d)
	var t float64
	if lenSq > 0 {
		t = dot(sub(p, l.p1), d) / lenSq
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	closest := add(l.p1, scale(d, t))
	dist := absSqr(sub(p, closest))
	if dist < upperBound {
		return dist
	}
	return upperBound
}

func bezierDerivativeSign(t, p1, p2, p3 float64) int {
	return signToWinding((1-t)*(p2-p1) + t*(p3-p2))
}

// intersection returns this curve's contribution to the winding number
// of a horizontal ray cast rightward from p, by solving the quadratic
// B(t).y = p.y for real roots in [0,1) and checking which cross to the
// right of p.x.
func (c curve) intersection(p point) int {
	if p.x > math.Max(math.Max(c.p1.x, c.p2.x), c.p3.x) {
		return 0
	}

	a := c.p3.y - 2*c.p2.y + c.p1.y
	if a == 0 {
		return line{c.p1, c.p3}.intersection(p)
	}
	b := 2 * (c.p2.y - c.p1.y)
	cc := c.p1.y - p.y
	disc := b*b - 4*a*cc
	if disc < 0 {
		return 0
	}
	sq := math.Sqrt(disc)
	a2 := 2 * a
	t1 := (-b + sq) / a2
	t2 := (-b - sq) / a2

	ax := c.p3.x - 2*c.p2.x + c.p1.x
	bx := 2 * (c.p2.x - c.p1.x)
	cx := c.p1.x

	var t1InRange, t2InRange bool
	if c.p1.y < c.p3.y {
		t1InRange = t1 >= 0 && t1 < 1
		t2InRange = t2 >= 0 && t2 < 1
	} else {
		t1InRange = t1 > 0 && t1 <= 1
		t2InRange = t2 > 0 && t2 <= 1
	}

	winding := 0
	if t1InRange {
		x := ax*t1*t1 + bx*t1 + cx
		if x >= p.x {
			winding += bezierDerivativeSign(t1, c.p1.y, c.p2.y, c.p3.y)
		}
	}
	if t2InRange {
		x := ax*t2*t2 + bx*t2 + cx
		if x >= p.x {
			winding += bezierDerivativeSign(t2, c.p1.y, c.p2.y, c.p3.y)
		}
	}
	return winding
}

// distSquared returns the squared distance from p to the closest point
// on the curve, by finding the real roots of the cubic
// dot(B(t)-p, B'(t)) = 0 and evaluating B at each in-range root (plus
// the two endpoints), never exceeding upperBound.
func (c curve) distSquared(p point, upperBound float64) float64 {
	maxEdgeSq := math.Max(math.Max(absSqr(sub(c.p1, c.p2)), absSqr(sub(c.p2, c.p3))), absSqr(sub(c.p3, c.p1)))
	minCornerSq := math.Min(math.Min(absSqr(sub(c.p1, p)), absSqr(sub(c.p2, p))), absSqr(sub(c.p3, p)))
	if minCornerSq > upperBound+maxEdgeSq*0.25 {
		return upperBound
	}

	m := sub(c.p2, c.p1)
	n := sub(sub(c.p3, c.p2), m)
	o := sub(c.p1, p)

	a := absSqr(n)
	b := dot(m, n) * 3
	cc := absSqr(m)*2 + dot(o, n)
	d := dot(o, m)

	best := upperBound
	consider := func(t float64) {
		var q point
		switch {
		case t < 0:
			q = c.p1
		case t > 1:
			q = c.p3
		default:
			q = bezierPoint(c, t)
		}
		if dd := absSqr(sub(q, p)); dd < best {
			best = dd
		}
	}

	consider(0)
	consider(1)
	roots, n2 := solveCubic(a, b, cc, d)
	for i := 0; i < n2; i++ {
		consider(roots[i])
	}
	return best
}

func bezierPoint(c curve, t float64) point {
	u := 1 - t
	return point{
		x: u*u*c.p1.x + 2*u*t*c.p2.x + t*t*c.p3.x,
		y: u*u*c.p1.y + 2*u*t*c.p2.y + t*t*c.p3.y,
	}
}
