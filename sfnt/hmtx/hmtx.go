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

// Package hmtx decodes the "hmtx" table: per-glyph advance width and left
// side bearing.
package hmtx

import "seehuhn.de/go/fontcore/internal/reader"

// Info holds per-glyph horizontal metrics, indexed by glyph ID.
type Info struct {
	AdvanceWidth    []uint16
	LeftSideBearing []int16
}

// Parse decodes an "hmtx" table. numOfLongHorMetrics comes from "hhea",
// numGlyphs from "maxp"; glyphs beyond numOfLongHorMetrics repeat the
// last advance width and carry only a left side bearing.
func Parse(data []byte, numOfLongHorMetrics uint16, numGlyphs int) (*Info, error) {
	r := reader.New("hmtx", data)
	n := int(numOfLongHorMetrics)
	if n > numGlyphs {
		n = numGlyphs
	}

	info := &Info{
		AdvanceWidth:    make([]uint16, numGlyphs),
		LeftSideBearing: make([]int16, numGlyphs),
	}

	var lastWidth uint16
	for gid := 0; gid < numGlyphs; gid++ {
		if gid < n {
			w, err := r.U16()
			if err != nil {
				return nil, err
			}
			lastWidth = w
		}
		info.AdvanceWidth[gid] = lastWidth

		if gid < n || r.Remaining() >= 2 {
			lsb, err := r.I16()
			if err != nil {
				return nil, err
			}
			info.LeftSideBearing[gid] = lsb
		}
	}
	return info, nil
}

// GetAdvanceWidth returns the advance width of gid, in font design units.
func (info *Info) GetAdvanceWidth(gid int) uint16 {
	if gid < 0 || gid >= len(info.AdvanceWidth) {
		return 0
	}
	return info.AdvanceWidth[gid]
}

// GetLSB returns the left side bearing of gid, in font design units.
func (info *Info) GetLSB(gid int) int16 {
	if gid < 0 || gid >= len(info.LeftSideBearing) {
		return 0
	}
	return info.LeftSideBearing[gid]
}
