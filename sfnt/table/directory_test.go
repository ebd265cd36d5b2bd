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

package table

import (
	"testing"

	"seehuhn.de/go/fontcore/internal/reader"
)

func u32be(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

// emptyOffsetTable encodes a minimal, valid OffsetTable with no table
// records: a scaler tag, numTables=0, and the 6 ignored layout bytes.
func emptyOffsetTable(scaler string) []byte {
	out := append([]byte{}, []byte(scaler)...)
	out = append(out, 0, 0)             // numTables = 0
	out = append(out, 0, 0, 0, 0, 0, 0) // searchRange, entrySelector, rangeShift
	return out
}

// TestTTCTwoSubfonts covers S1: a TTC file with numFonts=2 yields two
// subfonts in the parsed directory.
func TestTTCTwoSubfonts(t *testing.T) {
	const headerLen = 4 + 4 + 4 + 4 + 4 // sig, version, numFonts, 2 offsets
	const subfontLen = 4 + 2 + 6        // scaler tag, numTables, layout bytes

	off0 := headerLen
	off1 := headerLen + subfontLen

	var data []byte
	data = append(data, []byte("ttcf")...)
	data = append(data, u32be(0x00010000)...) // version
	data = append(data, u32be(2)...)           // numFonts
	data = append(data, u32be(uint32(off0))...)
	data = append(data, u32be(uint32(off1))...)
	data = append(data, emptyOffsetTable("\x00\x01\x00\x00")...)
	data = append(data, emptyOffsetTable("OTTO")...)

	dir, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(dir.Offsets) != 2 {
		t.Fatalf("got %d subfonts, want 2", len(dir.Offsets))
	}
	if dir.Offsets[1].ScalerType != reader.MakeTag("OTTO") {
		t.Errorf("second subfont scaler = %v, want OTTO", dir.Offsets[1].ScalerType)
	}
}

func TestPlainSfntSingleSubfont(t *testing.T) {
	data := append([]byte("\x00\x01\x00\x00"), emptyOffsetTable("\x00\x01\x00\x00")[4:]...)
	dir, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(dir.Offsets) != 1 {
		t.Fatalf("got %d subfonts, want 1", len(dir.Offsets))
	}
}

func TestUnknownSignatureRejected(t *testing.T) {
	_, err := Parse([]byte("bad!"))
	if err == nil {
		t.Error("Parse with an unrecognized signature should fail")
	}
}

// TestChecksum covers S6: the big-endian word-sum checksum, including
// wraparound on overflow.
func TestChecksum(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
		want uint32
	}{
		{"single word", []byte{0x00, 0x00, 0x00, 0x01}, 1},
		{"wraps on overflow", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x01}, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Checksum(tc.data); got != tc.want {
				t.Errorf("Checksum(% x) = %d, want %d", tc.data, got, tc.want)
			}
		})
	}
}
