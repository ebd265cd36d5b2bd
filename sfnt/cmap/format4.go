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

	"seehuhn.de/go/fontcore/internal/errcode"
	"seehuhn.de/go/fontcore/internal/reader"
)

// Format4 is the segmented code->glyph mapping.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-4-segment-mapping-to-delta-values
type Format4 struct {
	endCode          []uint16
	startCode        []uint16
	idDelta          []int16
	idRangeOffset    []uint16
	idRangeOffsetPos []int // byte offset, within data, of each idRangeOffset[i]
	data             []byte
}

func decodeFormat4(data []byte) (Subtable, error) {
	r := reader.New("cmap:4", data)
	if _, err := r.U16(); err != nil { // format
		return nil, err
	}
	if _, err := r.U16(); err != nil { // length
		return nil, err
	}
	if _, err := r.U16(); err != nil { // language
		return nil, err
	}
	segCountX2, err := r.U16()
	if err != nil {
		return nil, err
	}
	if segCountX2%2 != 0 {
		return nil, errcode.Malformedf("cmap:4", "odd segCountX2 %d", segCountX2)
	}
	segCount := int(segCountX2 / 2)
	if err := r.Skip(6); err != nil { // searchRange, entrySelector, rangeShift
		return nil, err
	}

	f := &Format4{data: data}
	f.endCode = make([]uint16, segCount)
	for i := range f.endCode {
		v, err := r.U16()
		if err != nil {
			return nil, err
		}
		f.endCode[i] = v
	}
	if _, err := r.U16(); err != nil { // reservedPad
		return nil, err
	}
	f.startCode = make([]uint16, segCount)
	for i := range f.startCode {
		v, err := r.U16()
		if err != nil {
			return nil, err
		}
		f.startCode[i] = v
	}
	f.idDelta = make([]int16, segCount)
	for i := range f.idDelta {
		v, err := r.I16()
		if err != nil {
			return nil, err
		}
		f.idDelta[i] = v
	}
	f.idRangeOffset = make([]uint16, segCount)
	f.idRangeOffsetPos = make([]int, segCount)
	for i := range f.idRangeOffset {
		f.idRangeOffsetPos[i] = r.Pos
		v, err := r.U16()
		if err != nil {
			return nil, err
		}
		f.idRangeOffset[i] = v
	}

	return f, nil
}

// Lookup implements the classical format-4 dereference: a binary search
// for the first segment whose endCode is >= code, then either the direct
// idDelta formula or a glyphIdArray dereference via
// idRangeOffsetPos + idRangeOffset + 2*(code-startCode). All arithmetic
// is modulo 65536, realized here via uint16 wraparound.
func (f *Format4) Lookup(code rune) uint16 {
	if code < 0 || code > 0xFFFF {
		return 0
	}
	c := uint16(code)

	i := sort.Search(len(f.endCode), func(i int) bool { return f.endCode[i] >= c })
	if i == len(f.endCode) {
		return 0
	}
	if f.startCode[i] > c {
		return 0
	}

	if f.idRangeOffset[i] == 0 {
		return c + uint16(f.idDelta[i])
	}

	addr := f.idRangeOffsetPos[i] + int(f.idRangeOffset[i]) + 2*int(c-f.startCode[i])
	if addr < 0 || addr+1 >= len(f.data) {
		return 0
	}
	g := uint16(f.data[addr])<<8 | uint16(f.data[addr+1])
	if g == 0 {
		return 0
	}
	return g + uint16(f.idDelta[i])
}
