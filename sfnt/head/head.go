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

// Package head decodes the "head" table.
package head

import "seehuhn.de/go/fontcore/internal/reader"

// Info holds the fields of the "head" table needed downstream: the unit
// scale and which loca offset width glyf uses.
type Info struct {
	UnitsPerEm       uint16
	IndexToLocFormat int16 // 0: short (offset/2) entries, 1: long entries
	XMin, YMin       int16
	XMax, YMax       int16
}

// Parse decodes a "head" table.
func Parse(data []byte) (*Info, error) {
	r := reader.New("head", data)
	if _, err := r.Fixed(); err != nil { // version
		return nil, err
	}
	if _, err := r.Fixed(); err != nil { // fontRevision
		return nil, err
	}
	if err := r.Skip(4); err != nil { // checkSumAdjustment
		return nil, err
	}
	if err := r.Skip(4); err != nil { // magicNumber
		return nil, err
	}
	if err := r.Skip(2); err != nil { // flags
		return nil, err
	}
	unitsPerEm, err := r.U16()
	if err != nil {
		return nil, err
	}
	if err := r.Skip(8 + 8); err != nil { // created, modified (longDateTime x2)
		return nil, err
	}
	xMin, err := r.I16()
	if err != nil {
		return nil, err
	}
	yMin, err := r.I16()
	if err != nil {
		return nil, err
	}
	xMax, err := r.I16()
	if err != nil {
		return nil, err
	}
	yMax, err := r.I16()
	if err != nil {
		return nil, err
	}
	if err := r.Skip(2 + 2); err != nil { // macStyle, lowestRecPPEM
		return nil, err
	}
	if err := r.Skip(2); err != nil { // fontDirectionHint
		return nil, err
	}
	indexToLocFormat, err := r.I16()
	if err != nil {
		return nil, err
	}

	return &Info{
		UnitsPerEm:       unitsPerEm,
		IndexToLocFormat: indexToLocFormat,
		XMin:             xMin,
		YMin:             yMin,
		XMax:             xMax,
		YMax:             yMax,
	}, nil
}
