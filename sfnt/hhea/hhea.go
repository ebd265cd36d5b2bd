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

// Package hhea decodes the "hhea" table, the header hmtx needs to know
// how many long horizontal metric records are present.
package hhea

import "seehuhn.de/go/fontcore/internal/reader"

// Info holds the fields of "hhea" used downstream.
type Info struct {
	Ascent              int16
	Descent             int16
	LineGap             int16
	NumOfLongHorMetrics uint16
}

// Parse decodes an "hhea" table.
func Parse(data []byte) (*Info, error) {
	r := reader.New("hhea", data)
	if _, err := r.Fixed(); err != nil { // version
		return nil, err
	}
	ascent, err := r.I16()
	if err != nil {
		return nil, err
	}
	descent, err := r.I16()
	if err != nil {
		return nil, err
	}
	lineGap, err := r.I16()
	if err != nil {
		return nil, err
	}
	// advanceWidthMax, minLSB, minRSB, xMaxExtent, caretSlopeRise,
	// caretSlopeRun, caretOffset, 4 reserved int16, metricDataFormat
	if err := r.Skip(2 + 2 + 2 + 2 + 2 + 2 + 2 + 8 + 2); err != nil {
		return nil, err
	}
	numOfLongHorMetrics, err := r.U16()
	if err != nil {
		return nil, err
	}
	return &Info{
		Ascent:              ascent,
		Descent:             descent,
		LineGap:             lineGap,
		NumOfLongHorMetrics: numOfLongHorMetrics,
	}, nil
}
