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

package cmap

import "seehuhn.de/go/fontcore/internal/errcode"

// Format0 is a direct 256-byte code->glyph array.
type Format0 [256]byte

func decodeFormat0(data []byte) (Subtable, error) {
	if len(data) < 6+256 {
		return nil, errcode.Malformedf("cmap", "format 0 subtable too short")
	}
	var f Format0
	copy(f[:], data[6:6+256])
	return f, nil
}

// Lookup returns the glyph index for code, or 0 if code >= 256.
func (f Format0) Lookup(code rune) uint16 {
	if code < 0 || code >= 256 {
		return 0
	}
	return uint16(f[code])
}
