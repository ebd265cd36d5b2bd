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
	"testing"

	"seehuhn.de/go/fontcore/internal/reader"
)

func u16b(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }

// TestReadCharsetFormat0 covers the flat SID-per-glyph encoding, with
// the implicit .notdef entry prepended.
func TestReadCharsetFormat0(t *testing.T) {
	var data []byte
	data = append(data, 0) // format
	data = append(data, u16b(5)...)
	data = append(data, u16b(6)...)
	r := reader.New("charset", data)

	ids, err := readCharset(r, 3)
	if err != nil {
		t.Fatalf("readCharset: %v", err)
	}
	want := []int32{0, 5, 6}
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %d, want %d", i, ids[i], want[i])
		}
	}
}

// TestReadCharsetFormat1 covers the range-run encoding (8-bit run
// length), which must exhaust exactly numGlyphs-1 entries.
func TestReadCharsetFormat1(t *testing.T) {
	var data []byte
	data = append(data, 1) // format
	data = append(data, u16b(10)...)
	data = append(data, 2) // nLeft: 10,11,12
	r := reader.New("charset", data)

	ids, err := readCharset(r, 4)
	if err != nil {
		t.Fatalf("readCharset: %v", err)
	}
	want := []int32{0, 10, 11, 12}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %d, want %d", i, ids[i], want[i])
		}
	}
}

// TestReadCharsetFormat2 covers the range-run encoding with a 16-bit
// run length.
func TestReadCharsetFormat2(t *testing.T) {
	var data []byte
	data = append(data, 2) // format
	data = append(data, u16b(100)...)
	data = append(data, u16b(2)...) // nLeft: 100,101,102
	r := reader.New("charset", data)

	ids, err := readCharset(r, 4)
	if err != nil {
		t.Fatalf("readCharset: %v", err)
	}
	want := []int32{0, 100, 101, 102}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %d, want %d", i, ids[i], want[i])
		}
	}
}

// TestReadCharsetUnknownFormat covers the format-dispatch failure
// path.
func TestReadCharsetUnknownFormat(t *testing.T) {
	r := reader.New("charset", []byte{9})
	if _, err := readCharset(r, 2); err == nil {
		t.Fatal("readCharset with an unknown format should fail")
	}
}

// TestReadCharsetRejectsZeroGlyphs covers the degenerate numGlyphs<1
// guard.
func TestReadCharsetRejectsZeroGlyphs(t *testing.T) {
	r := reader.New("charset", []byte{0})
	if _, err := readCharset(r, 0); err == nil {
		t.Fatal("readCharset with numGlyphs=0 should fail")
	}
}
