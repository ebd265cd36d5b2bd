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

import (
	"sort"

	"seehuhn.de/go/fontcore/internal/reader"
)

type group12 struct {
	startCharCode  uint32
	endCharCode    uint32
	startGlyphCode uint32
}

// Format12 is the sparse, segmented coverage mapping.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-12-segmented-coverage
type Format12 struct {
	groups []group12
}

func decodeFormat12(data []byte) (Subtable, error) {
	r := reader.New("cmap:12", data)
	if _, err := r.U16(); err != nil { // format
		return nil, err
	}
	if _, err := r.U16(); err != nil { // reserved
		return nil, err
	}
	if _, err := r.U32(); err != nil { // length
		return nil, err
	}
	if _, err := r.U32(); err != nil { // language
		return nil, err
	}
	numGroups, err := r.U32()
	if err != nil {
		return nil, err
	}

	f := &Format12{groups: make([]group12, numGroups)}
	for i := range f.groups {
		start, err := r.U32()
		if err != nil {
			return nil, err
		}
		end, err := r.U32()
		if err != nil {
			return nil, err
		}
		glyph, err := r.U32()
		if err != nil {
			return nil, err
		}
		f.groups[i] = group12{startCharCode: start, endCharCode: end, startGlyphCode: glyph}
	}
	return f, nil
}

// Lookup binary-searches the groups for the first one whose endCharCode
// is >= code, relying on the groups being sorted by startCharCode; with
// unsorted groups a covered code point can be reported as 0.
func (f *Format12) Lookup(code rune) uint16 {
	if code < 0 {
		return 0
	}
	c := uint32(code)
	i := sort.Search(len(f.groups), func(i int) bool { return f.groups[i].endCharCode >= c })
	if i == len(f.groups) {
		return 0
	}
	g := f.groups[i]
	if c < g.startCharCode || c > g.endCharCode {
		return 0
	}
	return uint16(g.startGlyphCode + (c - g.startCharCode))
}
