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

// index is a CFF INDEX: an ordered sequence of binary blobs, each a view
// into the font's owned byte buffer.
type index [][]byte

// readIndex decodes one INDEX structure starting at r's current
// position, advancing r past it.
func readIndex(r *reader.R) (index, error) {
	count, err := r.U16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	offSize, err := r.U8()
	if err != nil {
		return nil, err
	}
	if offSize < 1 || offSize > 4 {
		return nil, unsupportedOffSize(offSize)
	}

	offsets := make([]uint32, count+1)
	for i := range offsets {
		b, err := r.Bytes(int(offSize))
		if err != nil {
			return nil, err
		}
		var v uint32
		for _, x := range b {
			v = v<<8 | uint32(x)
		}
		offsets[i] = v
	}

	bodyLen := int(offsets[count]) - 1
	if bodyLen < 0 {
		return nil, malformedf("INDEX", "negative data length")
	}
	body, err := r.Bytes(bodyLen)
	if err != nil {
		return nil, err
	}

	res := make(index, count)
	for i := 0; i < int(count); i++ {
		lo, hi := offsets[i]-1, offsets[i+1]-1
		if hi < lo || int(hi) > len(body) {
			return nil, malformedf("INDEX", "offset %d out of range", i)
		}
		res[i] = body[lo:hi]
	}
	return res, nil
}
