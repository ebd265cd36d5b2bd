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

import "seehuhn.de/go/fontcore/internal/reader"

// readCharset decodes a CFF charset: a mapping from glyph index to
// string ID (SID), or to CID for CID-keyed fonts. The result includes
// a leading 0 for the implicit ".notdef" entry.
func readCharset(r *reader.R, numGlyphs int) ([]int32, error) {
	if numGlyphs < 1 {
		return nil, malformedf("charset", "invalid glyph count %d", numGlyphs)
	}

	format, err := r.U8()
	if err != nil {
		return nil, err
	}

	ids := make([]int32, 1, numGlyphs)

	switch format {
	case 0:
		for i := 0; i < numGlyphs-1; i++ {
			sid, err := r.U16()
			if err != nil {
				return nil, err
			}
			ids = append(ids, int32(sid))
		}

	case 1:
		for len(ids) < numGlyphs {
			first, err := r.U16()
			if err != nil {
				return nil, err
			}
			nLeft, err := r.U8()
			if err != nil {
				return nil, err
			}
			for i := int32(0); i <= int32(nLeft); i++ {
				if len(ids) >= numGlyphs {
					break
				}
				ids = append(ids, int32(first)+i)
			}
		}

	case 2:
		for len(ids) < numGlyphs {
			first, err := r.U16()
			if err != nil {
				return nil, err
			}
			nLeft, err := r.U16()
			if err != nil {
				return nil, err
			}
			for i := int32(0); i <= int32(nLeft); i++ {
				if len(ids) >= numGlyphs {
					break
				}
				ids = append(ids, int32(first)+i)
			}
		}

	default:
		return nil, unsupportedf("charset", "format %d", format)
	}

	if len(ids) != numGlyphs {
		return nil, malformedf("charset", "entry count mismatch")
	}
	return ids, nil
}
