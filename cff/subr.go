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

// subrBias returns the bias added to a callsubr/callgsubr operand before
// it indexes into a Subrs/GlobalSubrs INDEX of the given length, per the
// Type 2 Charstring spec's three-tier threshold table.
func subrBias(numSubrs int) int32 {
	switch {
	case numSubrs < 1240:
		return 107
	case numSubrs < 33900:
		return 1131
	default:
		return 32768
	}
}

// lookupSubr resolves a biased subroutine index into a byte slice from
// subrs, returning ok=false if the index is out of range.
func lookupSubr(subrs index, idx int32) ([]byte, bool) {
	i := idx + subrBias(len(subrs))
	if i < 0 || int(i) >= len(subrs) {
		return nil, false
	}
	return subrs[i], true
}
