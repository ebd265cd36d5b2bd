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
	"fmt"

	"seehuhn.de/go/fontcore/internal/errcode"
)

func malformedf(table, format string, a ...interface{}) error {
	return errcode.Malformedf(table, "%s", fmt.Sprintf(format, a...))
}

func unsupportedf(table, format string, a ...interface{}) error {
	return errcode.Unsupportedf(table, "%s", fmt.Sprintf(format, a...))
}

func unsupportedOffSize(n uint8) error {
	return unsupportedf("INDEX", "unknown offSize %d", n)
}

// errMultipleNames indicates a CFF Name INDEX with more than one entry,
// which per spec §7 is reported as UnsupportedCff rather than
// MalformedTable.
var errMultipleNames = errcode.New(errcode.UnsupportedCff, "Name INDEX", "more than one font name in CFF table")
