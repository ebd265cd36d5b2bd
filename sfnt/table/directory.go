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

// Package table parses the sfnt/TTC table directory: the outer container
// that enumerates a font file's subtables by tag, offset and length.
package table

import (
	"log/slog"

	"seehuhn.de/go/fontcore/internal/errcode"
	"seehuhn.de/go/fontcore/internal/reader"
)

var (
	versionTrueType = reader.MakeTag("\x00\x01\x00\x00")
	versionTrue     = reader.MakeTag("true")
	versionOTTO     = reader.MakeTag("OTTO")
	versionTyp1     = reader.MakeTag("typ1")
	versionTTC      = reader.MakeTag("ttcf")
)

// Record describes one table: its tag, stored checksum, and its byte
// range within the font file.
type Record struct {
	Tag      reader.Tag
	Checksum uint32
	Offset   uint32
	Length   uint32
}

// OffsetTable is the per-subfont table list (one per entry in a TTC, or a
// single one for a plain sfnt file).
type OffsetTable struct {
	ScalerType reader.Tag
	Records    []Record
}

// Find returns the record for tag, if present.
func (o *OffsetTable) Find(tag reader.Tag) (Record, bool) {
	for _, rec := range o.Records {
		if rec.Tag == tag {
			return rec, true
		}
	}
	return Record{}, false
}

// Has reports whether tag is present in this subfont's table list.
func (o *OffsetTable) Has(tag reader.Tag) bool {
	_, ok := o.Find(tag)
	return ok
}

// Directory is the parsed table directory of a font file: one or more
// subfonts (OffsetTables) sharing a single owned byte buffer.
type Directory struct {
	Data    []byte
	Offsets []OffsetTable
}

// numTablesSanityCap bounds numTables against corrupt files claiming an
// absurd table count; mirrors the defensive cap in sfnt readers that
// refuse to allocate unbounded slices from untrusted input.
const numTablesSanityCap = 280

// Parse reads the table directory from a complete font file image. data
// must remain valid and unmodified for the lifetime of the returned
// Directory and everything derived from it: table bytes are views into
// data, never copies.
func Parse(data []byte) (*Directory, error) {
	if len(data) < 4 {
		return nil, errcode.New(errcode.UnknownContainer, "", "file too short to contain a signature")
	}

	r := reader.New("", data)
	sig, err := r.Tag()
	if err != nil {
		return nil, err
	}

	var offsetPositions []int
	switch sig {
	case versionTrueType, versionTrue, versionOTTO, versionTyp1:
		offsetPositions = []int{0}
	case versionTTC:
		version, err := r.U32()
		if err != nil {
			return nil, err
		}
		if version != 0x00010000 && version != 0x00020000 {
			return nil, errcode.Unsupportedf("ttcf", "unsupported TTC version 0x%08x", version)
		}
		numFonts, err := r.U32()
		if err != nil {
			return nil, err
		}
		if numFonts == 0 || int(numFonts) > numTablesSanityCap {
			return nil, errcode.Malformedf("ttcf", "implausible numFonts %d", numFonts)
		}
		offsetPositions = make([]int, numFonts)
		for i := range offsetPositions {
			off, err := r.U32()
			if err != nil {
				return nil, err
			}
			offsetPositions[i] = int(off)
		}
		if version == 0x00020000 {
			// DSIG block: ulDsigTag, ulDsigLength, ulDsigOffset. Not
			// needed for glyph decoding; read past it for validation
			// only.
			if err := r.Skip(12); err != nil {
				return nil, err
			}
		}
	default:
		return nil, errcode.New(errcode.UnknownContainer, "", "unrecognized signature "+sig.String())
	}

	d := &Directory{Data: data}
	uniqueByOffset := make(map[uint32]Record)

	for _, pos := range offsetPositions {
		ot, err := parseOffsetTable(data, pos)
		if err != nil {
			return nil, err
		}
		d.Offsets = append(d.Offsets, ot)
		for _, rec := range ot.Records {
			uniqueByOffset[rec.Offset] = rec
		}
	}

	verifyChecksums(d, uniqueByOffset)

	return d, nil
}

func parseOffsetTable(data []byte, pos int) (OffsetTable, error) {
	r := reader.New("directory", data)
	if err := r.SeekTo(pos); err != nil {
		return OffsetTable{}, err
	}
	scalerType, err := r.Tag()
	if err != nil {
		return OffsetTable{}, err
	}
	numTables, err := r.U16()
	if err != nil {
		return OffsetTable{}, err
	}
	if int(numTables) > numTablesSanityCap {
		return OffsetTable{}, errcode.Malformedf("directory", "implausible numTables %d", numTables)
	}
	// searchRange, entrySelector, rangeShift: not needed for decoding.
	if err := r.Skip(6); err != nil {
		return OffsetTable{}, err
	}

	ot := OffsetTable{ScalerType: scalerType, Records: make([]Record, numTables)}
	for i := range ot.Records {
		tag, err := r.Tag()
		if err != nil {
			return OffsetTable{}, err
		}
		checksum, err := r.U32()
		if err != nil {
			return OffsetTable{}, err
		}
		offset, err := r.U32()
		if err != nil {
			return OffsetTable{}, err
		}
		length, err := r.U32()
		if err != nil {
			return OffsetTable{}, err
		}
		if int64(offset)+int64(length) > int64(len(data)) {
			return OffsetTable{}, errcode.Malformedf("directory", "table %s extends past end of file", tag)
		}
		ot.Records[i] = Record{Tag: tag, Checksum: checksum, Offset: offset, Length: length}
	}
	return ot, nil
}

// verifyChecksums checksums each unique table and logs a warning on
// mismatch; per spec §7, ChecksumMismatch is never fatal.
func verifyChecksums(d *Directory, uniqueByOffset map[uint32]Record) {
	headTag := reader.MakeTag("head")
	for _, rec := range uniqueByOffset {
		buf := d.Data[rec.Offset : rec.Offset+rec.Length]
		if rec.Tag == headTag && len(buf) >= 12 {
			// checkSumAdjustment lives at byte offset 8 in "head"; zero
			// it (in a copy, never the owned file buffer) for the
			// duration of the checksum computation.
			tmp := append([]byte(nil), buf...)
			tmp[8], tmp[9], tmp[10], tmp[11] = 0, 0, 0, 0
			buf = tmp
		}
		got := Checksum(buf)
		if got != rec.Checksum {
			slog.Warn("sfnt: checksum mismatch", "table", rec.Tag.String(), "want", rec.Checksum, "got", got)
		}
	}
}

// Checksum implements the sfnt table checksum algorithm: the big-endian
// uint32 sum over ceil(length/4) words, treating a short final word as
// zero-padded.
func Checksum(data []byte) uint32 {
	var sum uint32
	var buf [4]byte
	used := 0
	for _, b := range data {
		buf[used] = b
		used++
		if used == 4 {
			sum += uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
			used = 0
		}
	}
	if used != 0 {
		for i := used; i < 4; i++ {
			buf[i] = 0
		}
		sum += uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	}
	return sum
}
