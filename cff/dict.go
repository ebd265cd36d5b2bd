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

import "strconv"

// dictOp identifies a Top/Private DICT operator. Two-byte (escape 12)
// operators are represented as 0x0c00|b1 so they occupy a disjoint range
// from the one-byte operators.
type dictOp uint16

const (
	opVersion     dictOp = 0
	opCharset     dictOp = 15
	opEncoding    dictOp = 16
	opCharStrings dictOp = 17
	opPrivate     dictOp = 18
	opSubrs       dictOp = 19
	opDefaultWidthX dictOp = 20
	opNominalWidthX dictOp = 21

	opROS             dictOp = 0x0c00 | 30
	opCIDCount        dictOp = 0x0c00 | 34
	opFDArray         dictOp = 0x0c00 | 36
	opFDSelect        dictOp = 0x0c00 | 37
	opFontMatrix      dictOp = 0x0c00 | 7
	opCharstringType  dictOp = 0x0c00 | 6
)

func (op dictOp) isString() bool {
	return op == opROS
}

// dict is a decoded Top/Private DICT: operator -> operand list. Operands
// are int32 or float64, matching the two-variant operand model of
// §4.D.2/§9 ("Integer(i32) | Real(f32)").
type dict map[dictOp][]interface{}

var errCorruptDict = malformedf("DICT", "corrupt DICT data")

// decodeDict parses a DICT's bytecode: a sequence of operand pushes
// terminated by an operator, per the operand encoding table in spec
// §4.D.2.
func decodeDict(buf []byte) (dict, error) {
	res := dict{}
	var stack []interface{}

	flush := func(op dictOp) {
		res[op] = stack
		stack = nil
	}

	for len(buf) > 0 {
		b0 := buf[0]
		switch {
		case b0 == 12:
			if len(buf) < 2 {
				return nil, errCorruptDict
			}
			flush(0x0c00 | dictOp(buf[1]))
			buf = buf[2:]
		case b0 <= 21:
			flush(dictOp(b0))
			buf = buf[1:]
		case b0 == 28:
			if len(buf) < 3 {
				return nil, errCorruptDict
			}
			stack = append(stack, int32(int16(uint16(buf[1])<<8+uint16(buf[2]))))
			buf = buf[3:]
		case b0 == 29:
			if len(buf) < 5 {
				return nil, errCorruptDict
			}
			stack = append(stack, int32(uint32(buf[1])<<24+uint32(buf[2])<<16+uint32(buf[3])<<8+uint32(buf[4])))
			buf = buf[5:]
		case b0 == 30:
			tmp, x, err := decodeFloat(buf[1:])
			if err != nil {
				return nil, err
			}
			stack = append(stack, x)
			buf = tmp
		case b0 >= 22 && b0 <= 27, b0 == 31:
			return nil, errCorruptDict
		case b0 <= 246:
			stack = append(stack, int32(b0)-139)
			buf = buf[1:]
		case b0 <= 250:
			if len(buf) < 2 {
				return nil, errCorruptDict
			}
			stack = append(stack, int32(b0)*256+int32(buf[1])+(108-247*256))
			buf = buf[2:]
		case b0 <= 254:
			if len(buf) < 2 {
				return nil, errCorruptDict
			}
			stack = append(stack, -int32(b0)*256-int32(buf[1])-(108-251*256))
			buf = buf[2:]
		default:
			return nil, errCorruptDict
		}
	}
	if len(stack) > 0 {
		return nil, errCorruptDict
	}
	return res, nil
}

// decodeFloat decodes a BCD real number (without its leading 0x1e byte).
func decodeFloat(buf []byte) ([]byte, float64, error) {
	var s []byte
	first := true
	var next byte
	for {
		var nibble byte
		if first {
			if len(buf) == 0 {
				return nil, 0, malformedf("DICT", "incomplete real number")
			}
			next, buf = buf[0], buf[1:]
			nibble = next >> 4
			next &= 15
			first = false
		} else {
			nibble = next
			first = true
		}

		switch nibble {
		case 0x0a:
			s = append(s, '.')
		case 0x0b:
			s = append(s, 'e')
		case 0x0c:
			s = append(s, 'e', '-')
		case 0x0d:
			return nil, 0, malformedf("DICT", "reserved real-number nibble")
		case 0x0e:
			s = append(s, '-')
		case 0x0f:
			x, err := strconv.ParseFloat(string(s), 64)
			switch {
			case x > 1e300:
				x = 1e300
			case x > -1e-300 && x < 1e-300:
				x = 0
			case x < -1e300:
				x = -1e300
			}
			return buf, x, err
		default:
			s = append(s, '0'+nibble)
		}
	}
}

func (d dict) getInt(op dictOp, defVal int32) int32 {
	if len(d[op]) != 1 {
		return defVal
	}
	x, ok := d[op][0].(int32)
	if !ok {
		return defVal
	}
	return x
}

func (d dict) getFloat(op dictOp, defVal float64) float64 {
	if len(d[op]) != 1 {
		return defVal
	}
	switch x := d[op][0].(type) {
	case int32:
		return float64(x)
	case float64:
		return x
	default:
		return defVal
	}
}

func (d dict) getPair(op dictOp) (a, b int32, ok bool) {
	xy := d[op]
	if len(xy) != 2 {
		return 0, 0, false
	}
	x, ok1 := xy[0].(int32)
	y, ok2 := xy[1].(int32)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return x, y, true
}

func (d dict) has(op dictOp) bool {
	_, ok := d[op]
	return ok
}
