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

package reader

import "testing"

// TestF2Dot14Decode covers S5: the three corner bit patterns decode to
// -1.0, +1.0 and 0.0.
func TestF2Dot14Decode(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
		want float64
	}{
		{"minus one", []byte{0b1100_0000, 0b0000_0000}, -1.0},
		{"plus one", []byte{0b0100_0000, 0b0000_0000}, 1.0},
		{"zero", []byte{0b0000_0000, 0b0000_0000}, 0.0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := New("test", tc.data)
			v, err := r.F2Dot14()
			if err != nil {
				t.Fatalf("F2Dot14: %v", err)
			}
			if got := v.Float64(); got != tc.want {
				t.Errorf("Float64() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestU16BigEndian(t *testing.T) {
	r := New("test", []byte{0x01, 0x02})
	v, err := r.U16()
	if err != nil {
		t.Fatalf("U16: %v", err)
	}
	if v != 0x0102 {
		t.Errorf("U16() = 0x%04x, want 0x0102", v)
	}
}

func TestSeekToOutOfRange(t *testing.T) {
	r := New("test", []byte{1, 2, 3})
	if err := r.SeekTo(4); err == nil {
		t.Error("SeekTo(4) on a 3-byte buffer should fail")
	}
	if err := r.SeekTo(3); err != nil {
		t.Errorf("SeekTo(3) (one past the last byte) should succeed: %v", err)
	}
}

func TestReadPastEndFails(t *testing.T) {
	r := New("test", []byte{1, 2})
	if _, err := r.U32(); err == nil {
		t.Error("U32 on a 2-byte buffer should fail")
	}
}

func TestTagRoundtrip(t *testing.T) {
	r := New("test", []byte("glyf"))
	tag, err := r.Tag()
	if err != nil {
		t.Fatalf("Tag: %v", err)
	}
	if tag != MakeTag("glyf") {
		t.Errorf("Tag() = %v, want glyf", tag)
	}
	if tag.String() != "glyf" {
		t.Errorf("String() = %q, want %q", tag.String(), "glyf")
	}
}
