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

import "testing"

// TestDecodeDictOperandEncodings covers the one-byte, two-byte,
// 28-prefixed, and 29-prefixed integer operand encodings, each paired
// with a one-byte operator.
func TestDecodeDictOperandEncodings(t *testing.T) {
	testCases := []struct {
		name string
		buf  []byte
		want int32
	}{
		{"one-byte zero", []byte{139, 0}, 0},
		{"one-byte min", []byte{32, 0}, -107},
		{"one-byte max", []byte{246, 0}, 107},
		{"two-byte positive", []byte{247, 0, 0}, 108},
		{"two-byte negative", []byte{251, 0, 0}, -108},
		{"28-prefixed int16", []byte{28, 0x01, 0x2c, 0}, 300},
		{"29-prefixed int32", []byte{29, 0x00, 0x01, 0x00, 0x00, 0}, 65536},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := decodeDict(tc.buf)
			if err != nil {
				t.Fatalf("decodeDict: %v", err)
			}
			got := d.getInt(opVersion, -1)
			if got != tc.want {
				t.Errorf("operand = %d, want %d", got, tc.want)
			}
		})
	}
}

// TestDecodeDictEscapeOperator covers the 12-prefixed two-byte operator
// range, used by opFDArray, opFDSelect, and similar escape-12 keys.
func TestDecodeDictEscapeOperator(t *testing.T) {
	buf := []byte{139, 12, 36} // push 0, then operator 12 36 (opFDArray)
	d, err := decodeDict(buf)
	if err != nil {
		t.Fatalf("decodeDict: %v", err)
	}
	if !d.has(opFDArray) {
		t.Fatalf("dict does not contain opFDArray")
	}
	if got := d.getInt(opFDArray, -1); got != 0 {
		t.Errorf("opFDArray operand = %d, want 0", got)
	}
}

// TestDecodeDictRealNumber covers the BCD real-number encoding
// (operator 30): -2.5 as the nibble sequence '-' '2' '.' '5' end.
func TestDecodeDictRealNumber(t *testing.T) {
	buf := []byte{30, 0xe2, 0xa5, 0xf0, byte(opEncoding)}
	d, err := decodeDict(buf)
	if err != nil {
		t.Fatalf("decodeDict: %v", err)
	}
	got := d.getFloat(opEncoding, 0)
	if got != -2.5 {
		t.Errorf("real operand = %v, want -2.5", got)
	}
}

// TestDecodeDictGetPair covers the two-operand accessor used for the
// Private (size, offset) entry, and its ok=false result for an absent
// operator.
func TestDecodeDictGetPair(t *testing.T) {
	buf := []byte{139, 140, 16} // push 0, push 1, operator 16 (opEncoding)
	d, err := decodeDict(buf)
	if err != nil {
		t.Fatalf("decodeDict: %v", err)
	}
	x, y, ok := d.getPair(opEncoding)
	if !ok || x != 0 || y != 1 {
		t.Fatalf("getPair = (%d, %d, %v), want (0, 1, true)", x, y, ok)
	}
	if _, _, ok := d.getPair(opVersion); ok {
		t.Errorf("getPair on an absent operator should report ok=false")
	}
}

// TestDecodeDictTruncatedIsCorrupt covers the trailing-operand error
// path: a DICT that ends mid-stack, with no operator to flush it.
func TestDecodeDictTruncatedIsCorrupt(t *testing.T) {
	if _, err := decodeDict([]byte{139}); err == nil {
		t.Fatal("decodeDict with a dangling operand should fail")
	}
}
