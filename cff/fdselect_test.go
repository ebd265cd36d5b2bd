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

// TestReadFDSelectFormat0 covers the flat byte-per-glyph format.
func TestReadFDSelectFormat0(t *testing.T) {
	data := []byte{0, 0, 1, 1, 2}
	r := reader.New("FDSelect", data)
	fn, err := readFDSelect(r, 4, 3)
	if err != nil {
		t.Fatalf("readFDSelect: %v", err)
	}
	want := []int{0, 1, 1, 2}
	for gid, w := range want {
		if got := fn(gid); got != w {
			t.Errorf("fn(%d) = %d, want %d", gid, got, w)
		}
	}
}

// TestReadFDSelectFormat3 covers the sorted-range format, including the
// boundary right at a range end.
func TestReadFDSelectFormat3(t *testing.T) {
	var data []byte
	data = append(data, 3)
	data = append(data, u16b(2)...) // numRanges
	data = append(data, u16b(0)...)
	data = append(data, 0) // gids [0,5) -> fd 0
	data = append(data, u16b(5)...)
	data = append(data, 1) // gids [5,8) -> fd 1
	data = append(data, u16b(8)...) // sentinel == numGlyphs

	r := reader.New("FDSelect", data)
	fn, err := readFDSelect(r, 8, 2)
	if err != nil {
		t.Fatalf("readFDSelect: %v", err)
	}
	testCases := []struct {
		gid  int
		want int
	}{
		{0, 0}, {4, 0}, {5, 1}, {7, 1},
	}
	for _, tc := range testCases {
		if got := fn(tc.gid); got != tc.want {
			t.Errorf("fn(%d) = %d, want %d", tc.gid, got, tc.want)
		}
	}
}

// TestReadFDSelectFormat3SentinelMismatch covers the sentinel-matches-
// numGlyphs validation.
func TestReadFDSelectFormat3SentinelMismatch(t *testing.T) {
	var data []byte
	data = append(data, 3)
	data = append(data, u16b(1)...)
	data = append(data, u16b(0)...)
	data = append(data, 0)
	data = append(data, u16b(99)...) // wrong sentinel

	r := reader.New("FDSelect", data)
	if _, err := readFDSelect(r, 8, 1); err == nil {
		t.Fatal("readFDSelect with a mismatched sentinel should fail")
	}
}

// TestReadFDSelectFontDictIndexOutOfRange covers the numFD bounds
// check on each format-0 byte.
func TestReadFDSelectFontDictIndexOutOfRange(t *testing.T) {
	data := []byte{0, 5}
	r := reader.New("FDSelect", data)
	if _, err := readFDSelect(r, 1, 2); err == nil {
		t.Fatal("readFDSelect with an out-of-range font-dict index should fail")
	}
}
