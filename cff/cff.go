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

// Package cff decodes the Compact Font Format: Name/Top DICT/String/
// GlobalSubr/CharStrings INDEX structures, the Private DICT and local
// Subrs (per font dict for CID-keyed fonts), and the Type 2 charstring
// bytecode that draws each glyph.
package cff

import (
	"seehuhn.de/go/fontcore/internal/reader"
	"seehuhn.de/go/fontcore/outline"
)

// fontDict holds the per-font-dict state needed to decode charstrings:
// its Private DICT's width defaults and local Subrs INDEX.
type fontDict struct {
	nominalWidthX int32
	defaultWidthX int32
	localSubrs    index
}

// Table is a decoded CFF table: the charstrings, global subroutines,
// and (for CID-keyed fonts) the per-glyph font-dict selection.
type Table struct {
	FontName  string
	IsCIDFont bool

	charStrings index
	globalSubrs index
	charset     []int32
	strings     *strings

	fdSelect fdSelectFn
	fontDict []*fontDict // len 1 for non-CID fonts
}

// Parse decodes a CFF table from data.
func Parse(data []byte) (*Table, error) {
	r := reader.New("CFF", data)

	hdr, err := r.U32()
	if err != nil {
		return nil, err
	}
	major := hdr >> 24
	hdrSize := (hdr >> 8) & 0xFF
	if major != 1 {
		return nil, unsupportedf("CFF", "major version %d", major)
	}
	if err := r.SeekTo(int(hdrSize)); err != nil {
		return nil, err
	}

	names, err := readIndex(r)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, malformedf("Name INDEX", "no font name")
	}
	if len(names) > 1 {
		return nil, errMultipleNames
	}

	topDicts, err := readIndex(r)
	if err != nil {
		return nil, err
	}
	if len(topDicts) != 1 {
		return nil, malformedf("Top DICT INDEX", "expected exactly one Top DICT")
	}
	top, err := decodeDict(topDicts[0])
	if err != nil {
		return nil, err
	}

	stringIdx, err := readIndex(r)
	if err != nil {
		return nil, err
	}

	globalSubrs, err := readIndex(r)
	if err != nil {
		return nil, err
	}

	t := &Table{
		FontName:    string(names[0]),
		IsCIDFont:   top.has(opROS),
		globalSubrs: globalSubrs,
		strings:     newStrings(stringIdx),
	}

	if ctype := top.getInt(opCharstringType, 2); ctype != 2 {
		return nil, unsupportedf("Top DICT", "charstring type %d", ctype)
	}

	charStringsOff := top.getInt(opCharStrings, 0)
	if charStringsOff <= 0 {
		return nil, malformedf("Top DICT", "missing CharStrings offset")
	}
	if err := r.SeekTo(int(charStringsOff)); err != nil {
		return nil, err
	}
	charStrings, err := readIndex(r)
	if err != nil {
		return nil, err
	}
	t.charStrings = charStrings
	numGlyphs := len(charStrings)

	if off := top.getInt(opCharset, 0); off > 2 {
		if err := r.SeekTo(int(off)); err != nil {
			return nil, err
		}
		charset, err := readCharset(r, numGlyphs)
		if err != nil {
			return nil, err
		}
		t.charset = charset
	}

	if t.IsCIDFont {
		fdArrayOff := top.getInt(opFDArray, 0)
		fdSelectOff := top.getInt(opFDSelect, 0)
		if fdArrayOff <= 0 || fdSelectOff <= 0 {
			return nil, malformedf("Top DICT", "CID font missing FDArray/FDSelect")
		}

		if err := r.SeekTo(int(fdArrayOff)); err != nil {
			return nil, err
		}
		fdDicts, err := readIndex(r)
		if err != nil {
			return nil, err
		}
		fds := make([]*fontDict, len(fdDicts))
		for i, buf := range fdDicts {
			d, err := decodeDict(buf)
			if err != nil {
				return nil, err
			}
			fd, err := readPrivate(data, d)
			if err != nil {
				return nil, err
			}
			fds[i] = fd
		}
		t.fontDict = fds

		if err := r.SeekTo(int(fdSelectOff)); err != nil {
			return nil, err
		}
		sel, err := readFDSelect(r, numGlyphs, len(fds))
		if err != nil {
			return nil, err
		}
		t.fdSelect = sel
	} else {
		fd, err := readPrivate(data, top)
		if err != nil {
			return nil, err
		}
		t.fontDict = []*fontDict{fd}
	}

	return t, nil
}

// readPrivate decodes the Private DICT referenced by top (a Top DICT or
// a CID font dict) and, if present, its local Subrs INDEX.
func readPrivate(data []byte, top dict) (*fontDict, error) {
	fd := &fontDict{}

	size, offset, ok := top.getPair(opPrivate)
	if !ok {
		return fd, nil
	}
	if offset < 0 || int(offset)+int(size) > len(data) {
		return nil, malformedf("Private DICT", "offset out of range")
	}

	priv, err := decodeDict(data[offset : offset+size])
	if err != nil {
		return nil, err
	}
	fd.nominalWidthX = priv.getInt(opNominalWidthX, 0)
	fd.defaultWidthX = priv.getInt(opDefaultWidthX, 0)

	if subrsOff := priv.getInt(opSubrs, 0); subrsOff > 0 {
		pos := int(offset) + int(subrsOff)
		if pos < 0 || pos > len(data) {
			return nil, malformedf("Private DICT", "Subrs offset out of range")
		}
		r := reader.New("Subrs", data[pos:])
		subrs, err := readIndex(r)
		if err != nil {
			return nil, err
		}
		fd.localSubrs = subrs
	}

	return fd, nil
}

// NumGlyphs returns the number of glyphs in the CharStrings INDEX.
func (t *Table) NumGlyphs() int { return len(t.charStrings) }

// Decode renders the outline and advance width for glyph gid.
func (t *Table) Decode(gid int) (*outline.Glyph, int32, error) {
	if gid < 0 || gid >= len(t.charStrings) {
		return nil, 0, malformedf("CharString", "glyph index %d out of range", gid)
	}

	fdIndex := 0
	if t.fdSelect != nil {
		fdIndex = t.fdSelect(gid)
	}
	if fdIndex < 0 || fdIndex >= len(t.fontDict) {
		return nil, 0, malformedf("CharString", "font-dict index out of range")
	}
	fd := t.fontDict[fdIndex]

	return decodeCharstring(t.charStrings[gid], fd.localSubrs, t.globalSubrs, fd.nominalWidthX, fd.defaultWidthX)
}

// GlyphName returns the PostScript name of gid, for non-CID fonts with
// a charset present.
func (t *Table) GlyphName(gid int) (string, bool) {
	if t.IsCIDFont || t.charset == nil || gid < 0 || gid >= len(t.charset) {
		return "", false
	}
	return t.strings.get(sid(t.charset[gid]))
}
