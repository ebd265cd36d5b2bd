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

package cff

import (
	"math"

	"seehuhn.de/go/fontcore/fixed"
	"seehuhn.de/go/fontcore/outline"
)

type t2op uint16

const (
	t2hstem      t2op = 0x0001
	t2vstem      t2op = 0x0003
	t2vmoveto    t2op = 0x0004
	t2rlineto    t2op = 0x0005
	t2hlineto    t2op = 0x0006
	t2vlineto    t2op = 0x0007
	t2rrcurveto  t2op = 0x0008
	t2callsubr   t2op = 0x000a
	t2return     t2op = 0x000b
	t2endchar    t2op = 0x000e
	t2hstemhm    t2op = 0x0012
	t2hintmask   t2op = 0x0013
	t2cntrmask   t2op = 0x0014
	t2rmoveto    t2op = 0x0015
	t2hmoveto    t2op = 0x0016
	t2vstemhm    t2op = 0x0017
	t2rcurveline t2op = 0x0018
	t2rlinecurve t2op = 0x0019
	t2vvcurveto  t2op = 0x001a
	t2hhcurveto  t2op = 0x001b
	t2callgsubr  t2op = 0x001d
	t2vhcurveto  t2op = 0x001e
	t2hvcurveto  t2op = 0x001f

	t2dotsection t2op = 0x0c00
	t2and        t2op = 0x0c03
	t2or         t2op = 0x0c04
	t2not        t2op = 0x0c05
	t2abs        t2op = 0x0c09
	t2add        t2op = 0x0c0a
	t2sub        t2op = 0x0c0b
	t2div        t2op = 0x0c0c
	t2neg        t2op = 0x0c0e
	t2eq         t2op = 0x0c0f
	t2drop       t2op = 0x0c12
	t2put        t2op = 0x0c14
	t2get        t2op = 0x0c15
	t2ifelse     t2op = 0x0c16
	t2random     t2op = 0x0c17
	t2mul        t2op = 0x0c18
	t2sqrt       t2op = 0x0c1a
	t2dup        t2op = 0x0c1b
	t2exch       t2op = 0x0c1c
	t2index      t2op = 0x0c1d
	t2roll       t2op = 0x0c1e
	t2hflex      t2op = 0x0c22
	t2flex       t2op = 0x0c23
	t2hflex1     t2op = 0x0c24
	t2flex1      t2op = 0x0c25
)

const maxCallDepth = 10

// t2decoder interprets a Type 2 charstring, feeding the resulting path
// into an outline.Builder and tracking the current absolute position
// (charstrings only ever encode relative deltas).
type t2decoder struct {
	b    outline.Builder
	x    float64
	y    float64
	open bool

	stack   []float64
	storage map[int]float64

	nStems int

	widthSet      bool
	width         int32
	nominalWidthX int32
	defaultWidthX int32

	localSubrs  index
	globalSubrs index

	depth int
}

func decodeCharstring(cs []byte, localSubrs, globalSubrs index, nominalWidthX, defaultWidthX int32) (*outline.Glyph, int32, error) {
	d := &t2decoder{
		storage:       make(map[int]float64),
		nominalWidthX: nominalWidthX,
		defaultWidthX: defaultWidthX,
		localSubrs:    localSubrs,
		globalSubrs:   globalSubrs,
	}
	done, err := d.run(cs)
	if err != nil {
		return nil, 0, err
	}
	if !done {
		return nil, 0, malformedf("CharString", "missing endchar")
	}
	if d.open {
		d.b.ClosePath()
	}
	if !d.widthSet {
		d.width = d.defaultWidthX
	}
	g := &outline.Glyph{Contours: d.b.Contours()}
	return g, d.width, nil
}

func (d *t2decoder) clear() { d.stack = d.stack[:0] }

func (d *t2decoder) setWidth(present bool) {
	if d.widthSet {
		return
	}
	if present && len(d.stack) > 0 {
		d.width = int32(d.stack[0]) + d.nominalWidthX
		d.stack = d.stack[1:]
	} else {
		d.width = d.defaultWidthX
	}
	d.widthSet = true
}

func (d *t2decoder) moveTo(dx, dy float64) {
	if d.open {
		d.b.ClosePath()
	}
	d.x += dx
	d.y += dy
	d.b.MoveTo(fixed.Vec2{X: float32(d.x), Y: float32(d.y)})
	d.open = true
}

func (d *t2decoder) lineTo(dx, dy float64) {
	d.x += dx
	d.y += dy
	d.b.LineTo(fixed.Vec2{X: float32(d.x), Y: float32(d.y)})
}

func (d *t2decoder) curveTo(dxa, dya, dxb, dyb, dxc, dyc float64) {
	x1, y1 := d.x+dxa, d.y+dya
	x2, y2 := x1+dxb, y1+dyb
	x3, y3 := x2+dxc, y2+dyc
	d.b.CubeTo(
		fixed.Vec2{X: float32(x1), Y: float32(y1)},
		fixed.Vec2{X: float32(x2), Y: float32(y2)},
		fixed.Vec2{X: float32(x3), Y: float32(y3)},
	)
	d.x, d.y = x3, y3
}

// run interprets body (and any subroutines it calls), returning
// done=true once an endchar operator is reached.
func (d *t2decoder) run(body []byte) (bool, error) {
	if d.depth > maxCallDepth {
		return false, malformedf("CharString", "subroutine call nesting too deep")
	}

	for len(body) > 0 {
		if len(d.stack) > 48 {
			return false, malformedf("CharString", "operand stack overflow")
		}

		b0 := body[0]
		switch {
		case b0 >= 32 && b0 <= 246:
			d.stack = append(d.stack, float64(int32(b0)-139))
			body = body[1:]
			continue
		case b0 >= 247 && b0 <= 250:
			if len(body) < 2 {
				return false, malformedf("CharString", "truncated operand")
			}
			d.stack = append(d.stack, float64(int32(b0)*256+int32(body[1])+(108-247*256)))
			body = body[2:]
			continue
		case b0 >= 251 && b0 <= 254:
			if len(body) < 2 {
				return false, malformedf("CharString", "truncated operand")
			}
			d.stack = append(d.stack, float64(-int32(b0)*256-int32(body[1])-(108-251*256)))
			body = body[2:]
			continue
		case b0 == 28:
			if len(body) < 3 {
				return false, malformedf("CharString", "truncated operand")
			}
			d.stack = append(d.stack, float64(int16(uint16(body[1])<<8+uint16(body[2]))))
			body = body[3:]
			continue
		case b0 == 255:
			if len(body) < 5 {
				return false, malformedf("CharString", "truncated operand")
			}
			v := int32(uint32(body[1])<<24 + uint32(body[2])<<16 + uint32(body[3])<<8 + uint32(body[4]))
			d.stack = append(d.stack, float64(v)/65536)
			body = body[5:]
			continue
		}

		op := t2op(b0)
		if b0 == 0x0c {
			if len(body) < 2 {
				return false, malformedf("CharString", "truncated escape operator")
			}
			op = op<<8 | t2op(body[1])
			body = body[2:]
		} else {
			body = body[1:]
		}

		st := d.stack

		switch op {
		case t2rmoveto:
			d.setWidth(len(st) > 2)
			st = d.stack
			if len(st) >= 2 {
				d.moveTo(st[0], st[1])
			}
			d.clear()

		case t2hmoveto:
			d.setWidth(len(st) > 1)
			st = d.stack
			if len(st) >= 1 {
				d.moveTo(st[0], 0)
			}
			d.clear()

		case t2vmoveto:
			d.setWidth(len(st) > 1)
			st = d.stack
			if len(st) >= 1 {
				d.moveTo(0, st[0])
			}
			d.clear()

		case t2rlineto:
			for len(st) >= 2 {
				d.lineTo(st[0], st[1])
				st = st[2:]
			}
			d.clear()

		case t2hlineto, t2vlineto:
			horiz := op == t2hlineto
			for len(st) > 0 {
				if horiz {
					d.lineTo(st[0], 0)
				} else {
					d.lineTo(0, st[0])
				}
				st = st[1:]
				horiz = !horiz
			}
			d.clear()

		case t2rrcurveto, t2rcurveline, t2rlinecurve:
			for op == t2rlinecurve && len(st) >= 8 {
				d.lineTo(st[0], st[1])
				st = st[2:]
			}
			for len(st) >= 6 {
				d.curveTo(st[0], st[1], st[2], st[3], st[4], st[5])
				st = st[6:]
			}
			if op == t2rcurveline && len(st) >= 2 {
				d.lineTo(st[0], st[1])
			}
			d.clear()

		case t2hhcurveto:
			var dy1 float64
			if len(st)%4 != 0 && len(st) > 0 {
				dy1, st = st[0], st[1:]
			}
			for len(st) >= 4 {
				d.curveTo(st[0], dy1, st[1], st[2], st[3], 0)
				st = st[4:]
				dy1 = 0
			}
			d.clear()

		case t2vvcurveto:
			var dx1 float64
			if len(st)%4 != 0 && len(st) > 0 {
				dx1, st = st[0], st[1:]
			}
			for len(st) >= 4 {
				d.curveTo(dx1, st[0], st[1], st[2], 0, st[3])
				st = st[4:]
				dx1 = 0
			}
			d.clear()

		case t2hvcurveto, t2vhcurveto:
			horiz := op == t2hvcurveto
			for len(st) >= 4 {
				var extra float64
				if len(st) == 5 {
					extra = st[4]
				}
				if horiz {
					d.curveTo(st[0], 0, st[1], st[2], extra, st[3])
				} else {
					d.curveTo(0, st[0], st[1], st[2], st[3], extra)
				}
				st = st[4:]
				horiz = !horiz
			}
			d.clear()

		case t2flex:
			if len(st) >= 13 {
				d.curveTo(st[0], st[1], st[2], st[3], st[4], st[5])
				d.curveTo(st[6], st[7], st[8], st[9], st[10], st[11])
			}
			d.clear()

		case t2flex1:
			if len(st) >= 11 {
				d.curveTo(st[0], st[1], st[2], st[3], st[4], st[5])
				dx := st[0] + st[2] + st[4] + st[6] + st[8]
				dy := st[1] + st[3] + st[5] + st[7] + st[9]
				extra := st[10]
				if math.Abs(dx) > math.Abs(dy) {
					d.curveTo(st[6], st[7], st[8], st[9], extra, 0)
				} else {
					d.curveTo(st[6], st[7], st[8], st[9], 0, extra)
				}
			}
			// flex1 always terminates the flex, even with too few operands.
			d.clear()

		case t2hflex:
			if len(st) >= 7 {
				d.curveTo(st[0], 0, st[1], st[2], st[3], 0)
				d.curveTo(st[4], 0, st[5], -st[2], st[6], 0)
			}
			d.clear()

		case t2hflex1:
			if len(st) >= 9 {
				d.curveTo(st[0], st[1], st[2], st[3], st[4], 0)
				dy := st[1] + st[3] + st[5] + st[7]
				d.curveTo(st[5], 0, st[6], st[7], st[8], -dy)
			}
			d.clear()

		case t2dotsection:
			d.clear()

		case t2hstem, t2vstem, t2hstemhm, t2vstemhm:
			d.setWidth(len(d.stack)%2 == 1)
			d.nStems += len(d.stack) / 2
			d.clear()

		case t2hintmask, t2cntrmask:
			d.setWidth(len(d.stack)%2 == 1)
			d.nStems += len(d.stack) / 2
			d.clear()
			k := (d.nStems + 7) / 8
			if k > len(body) {
				return false, malformedf("CharString", "truncated hint mask")
			}
			body = body[k:]

		case t2abs:
			if k := len(st) - 1; k >= 0 {
				if st[k] < 0 {
					st[k] = -st[k]
				}
			}
		case t2add:
			if k := len(st) - 2; k >= 0 {
				st[k] += st[k+1]
				d.stack = st[:k+1]
			}
		case t2sub:
			if k := len(st) - 2; k >= 0 {
				st[k] -= st[k+1]
				d.stack = st[:k+1]
			}
		case t2div:
			if k := len(st) - 2; k >= 0 {
				st[k] /= st[k+1]
				d.stack = st[:k+1]
			}
		case t2neg:
			if k := len(st) - 1; k >= 0 {
				st[k] = -st[k]
			}
		case t2random:
			d.stack = append(d.stack, 0.618)
		case t2mul:
			if k := len(st) - 2; k >= 0 {
				st[k] *= st[k+1]
				d.stack = st[:k+1]
			}
		case t2sqrt:
			if k := len(st) - 1; k >= 0 {
				st[k] = math.Sqrt(st[k])
			}
		case t2drop:
			if k := len(st) - 1; k >= 0 {
				d.stack = st[:k]
			}
		case t2exch:
			if k := len(st) - 2; k >= 0 {
				st[k], st[k+1] = st[k+1], st[k]
			}
		case t2index:
			if k := len(st) - 1; k >= 0 {
				idx := int(st[k])
				if idx < 0 {
					idx = 0
				}
				if k-idx-1 >= 0 {
					st[k] = st[k-idx-1]
				}
			}
		case t2roll:
			if k := len(st) - 2; k >= 0 {
				n := int(st[k])
				j := int(st[k+1])
				if n > 0 && n <= k+1 {
					rollSlots(st[k+1-n:k], j)
				}
				d.stack = st[:k]
			}
		case t2dup:
			if k := len(st) - 1; k >= 0 {
				d.stack = append(d.stack, st[k])
			}
		case t2put:
			if k := len(st) - 2; k >= 0 {
				m := int(st[k+1])
				if m >= 0 && m <= 32 {
					d.storage[m] = st[k]
				}
				d.stack = st[:k]
			}
		case t2get:
			if k := len(st) - 1; k >= 0 {
				m := int(st[k])
				st[k] = d.storage[m]
			}
		case t2and:
			if k := len(st) - 2; k >= 0 {
				var v float64
				if st[k] != 0 && st[k+1] != 0 {
					v = 1
				}
				d.stack = append(st[:k], v)
			}
		case t2or:
			if k := len(st) - 2; k >= 0 {
				var v float64
				if st[k] != 0 || st[k+1] != 0 {
					v = 1
				}
				d.stack = append(st[:k], v)
			}
		case t2not:
			if k := len(st) - 1; k >= 0 {
				if st[k] == 0 {
					st[k] = 1
				} else {
					st[k] = 0
				}
			}
		case t2eq:
			if k := len(st) - 2; k >= 0 {
				var v float64
				if st[k] == st[k+1] {
					v = 1
				}
				d.stack = append(st[:k], v)
			}
		case t2ifelse:
			if k := len(st) - 4; k >= 0 {
				var v float64
				if st[k+2] <= st[k+3] {
					v = st[k]
				} else {
					v = st[k+1]
				}
				d.stack = append(st[:k], v)
			}

		case t2callsubr, t2callgsubr:
			k := len(st) - 1
			if k < 0 {
				return false, malformedf("CharString", "operand stack underflow")
			}
			idx := int32(st[k])
			d.stack = st[:k]

			var subrBody []byte
			var ok bool
			if op == t2callsubr {
				subrBody, ok = lookupSubr(d.localSubrs, idx)
			} else {
				subrBody, ok = lookupSubr(d.globalSubrs, idx)
			}
			if !ok {
				return false, malformedf("CharString", "subroutine index out of range")
			}
			d.depth++
			done, err := d.run(subrBody)
			d.depth--
			if err != nil {
				return false, err
			}
			if done {
				return true, nil
			}

		case t2return:
			return false, nil

		case t2endchar:
			d.setWidth(len(d.stack) == 1 || len(d.stack) > 4)
			return true, nil

		default:
			return false, unsupportedf("CharString", "opcode 0x%x", uint16(op))
		}
	}
	return false, nil
}

func rollSlots(data []float64, j int) {
	n := len(data)
	if n == 0 {
		return
	}
	j %= n
	if j < 0 {
		j += n
	}
	tmp := make([]float64, j)
	copy(tmp, data[n-j:])
	copy(data[j:], data[:n-j])
	copy(data[:j], tmp)
}
