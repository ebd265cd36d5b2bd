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

// Package maxp decodes the "maxp" table.
package maxp

import "seehuhn.de/go/fontcore/internal/reader"

// Info holds the glyph count from "maxp".
type Info struct {
	NumGlyphs int
}

// Parse decodes a "maxp" table. Both the TrueType (0x00010000, full) and
// CFF (0x00005000, version-only) variants are accepted.
func Parse(data []byte) (*Info, error) {
	r := reader.New("maxp", data)
	if _, err := r.U32(); err != nil { // version; both 0.5 and 1.0 give numGlyphs next
		return nil, err
	}
	numGlyphs, err := r.U16()
	if err != nil {
		return nil, err
	}
	return &Info{NumGlyphs: int(numGlyphs)}, nil
}
