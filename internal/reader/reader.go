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

// Package reader provides a bounds-checked, byte-slice-backed cursor for
// decoding big-endian sfnt and CFF primitives. Unlike an io.Reader, an R
// never mutates or copies the underlying font buffer; all methods return
// views into it.
package reader

import "seehuhn.de/go/fontcore/internal/errcode"

// R reads big-endian primitives from a byte slice, tracking a position.
// The table name is carried along only to annotate error messages.
type R struct {
	Data  []byte
	Pos   int
	Table string
}

// New returns a reader over data, starting at position 0.
func New(table string, data []byte) *R {
	return &R{Data: data, Table: table}
}

func (r *R) fail(format string, a ...interface{}) error {
	return errcode.Malformedf(r.Table, format, a...)
}

func (r *R) need(n int) error {
	if r.Pos < 0 || n < 0 || r.Pos+n > len(r.Data) {
		return r.fail("read past end of table at offset %d (need %d, have %d)", r.Pos, n, len(r.Data)-r.Pos)
	}
	return nil
}

// Bytes returns the next n bytes and advances the position past them;
// the caller must not retain the slice past further use of r, since it
// aliases the underlying buffer.
func (r *R) Bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.Data[r.Pos : r.Pos+n]
	r.Pos += n
	return b, nil
}

// U8 reads an unsigned 8-bit integer.
func (r *R) U8() (uint8, error) {
	b, err := r.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U16 reads a big-endian unsigned 16-bit integer.
func (r *R) U16() (uint16, error) {
	b, err := r.Bytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// I16 reads a big-endian signed 16-bit integer.
func (r *R) I16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

// U24 reads a big-endian unsigned 24-bit integer (an Offset24).
func (r *R) U24() (uint32, error) {
	b, err := r.Bytes(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}

// U32 reads a big-endian unsigned 32-bit integer.
func (r *R) U32() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// I32 reads a big-endian signed 32-bit integer.
func (r *R) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

// Tag reads a 4-byte table/font tag.
func (r *R) Tag() (Tag, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return Tag{}, err
	}
	return Tag{b[0], b[1], b[2], b[3]}, nil
}

// Fixed reads a 16.16 fixed-point version/scale number, the "i16.u16"
// layout used throughout sfnt.
func (r *R) Fixed() (Fixed, error) {
	maj, err := r.I16()
	if err != nil {
		return Fixed{}, err
	}
	min, err := r.U16()
	if err != nil {
		return Fixed{}, err
	}
	return Fixed{Major: maj, Minor: min}, nil
}

// F2Dot14 reads a signed 2.14 fixed-point number.
func (r *R) F2Dot14() (F2Dot14, error) {
	v, err := r.I16()
	return F2Dot14(v), err
}

// Skip advances the position by n bytes without returning them.
func (r *R) Skip(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.Pos += n
	return nil
}

// SeekTo moves the reading position to an absolute offset within Data.
func (r *R) SeekTo(pos int) error {
	if pos < 0 || pos > len(r.Data) {
		return r.fail("seek to %d out of range [0,%d]", pos, len(r.Data))
	}
	r.Pos = pos
	return nil
}

// Remaining returns the number of unread bytes.
func (r *R) Remaining() int {
	return len(r.Data) - r.Pos
}

// Tag is a 4-byte sfnt table or font identifier, compared byte-for-byte.
type Tag [4]byte

func MakeTag(s string) Tag {
	var t Tag
	copy(t[:], s)
	return t
}

func (t Tag) String() string {
	return string(t[:])
}

// Fixed is a 16.16 fixed-point number in the "i16.u16" layout sfnt uses
// for version and scale fields.
type Fixed struct {
	Major int16
	Minor uint16
}

func (f Fixed) Float64() float64 {
	return float64(f.Major) + float64(f.Minor)/65536
}

// F2Dot14 is a signed 2.14 fixed-point number, used for composite-glyph
// transform entries. The top two bits encode the integer part
// {0,+1,-2,-1} for bit patterns {00,01,10,11}; the bottom 14 bits are the
// fractional part divided by 16384. Reading the value as an int16 and
// dividing by 16384 yields exactly this mapping.
type F2Dot14 int16

func (f F2Dot14) Float64() float64 {
	return float64(f) / 16384
}
