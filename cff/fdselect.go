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
	"sort"

	"seehuhn.de/go/fontcore/internal/reader"
)

// fdSelectFn maps a glyph ID to a font-dict index in the FDArray.
type fdSelectFn func(gid int) int

func readFDSelect(r *reader.R, numGlyphs, numFD int) (fdSelectFn, error) {
	format, err := r.U8()
	if err != nil {
		return nil, err
	}

	switch format {
	case 0:
		buf, err := r.Bytes(numGlyphs)
		if err != nil {
			return nil, err
		}
		for _, fd := range buf {
			if int(fd) >= numFD {
				return nil, malformedf("FDSelect", "font-dict index out of range")
			}
		}
		return func(gid int) int {
			if gid < 0 || gid >= len(buf) {
				return 0
			}
			return int(buf[gid])
		}, nil

	case 3:
		numRanges, err := r.U16()
		if err != nil {
			return nil, err
		}
		if numGlyphs > 0 && numRanges == 0 {
			return nil, malformedf("FDSelect", "no ranges in non-empty font")
		}

		ends := make([]int, 0, numRanges)
		fdIdx := make([]uint8, 0, numRanges)
		prev := -1
		for i := 0; i < int(numRanges); i++ {
			first, err := r.U16()
			if err != nil {
				return nil, err
			}
			if (i > 0 && int(first) <= prev) || (i == 0 && first != 0) {
				return nil, malformedf("FDSelect", "ranges out of order")
			}
			fd, err := r.U8()
			if err != nil {
				return nil, err
			}
			if int(fd) >= numFD {
				return nil, malformedf("FDSelect", "font-dict index out of range")
			}
			if i > 0 {
				ends = append(ends, int(first))
			}
			fdIdx = append(fdIdx, fd)
			prev = int(first)
		}
		sentinel, err := r.U16()
		if err != nil {
			return nil, err
		}
		if int(sentinel) != numGlyphs {
			return nil, malformedf("FDSelect", "sentinel does not match glyph count")
		}
		ends = append(ends, numGlyphs)

		return func(gid int) int {
			idx := sort.Search(len(ends), func(i int) bool { return gid < ends[i] })
			if idx >= len(fdIdx) {
				return 0
			}
			return int(fdIdx[idx])
		}, nil

	default:
		return nil, unsupportedf("FDSelect", "format %d", format)
	}
}
