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

// Package fontcore loads OpenType/TrueType/CFF font files, resolves
// Unicode code points to normalized glyph outlines and horizontal
// metrics, and packs the requested glyphs into a signed-distance-field
// texture atlas for GPU text rendering.
package fontcore

import (
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"math"
	"os"
	"runtime"

	"golang.org/x/text/unicode/norm"

	"seehuhn.de/go/fontcore/atlas"
	"seehuhn.de/go/fontcore/cff"
	"seehuhn.de/go/fontcore/fixed"
	"seehuhn.de/go/fontcore/internal/errcode"
	"seehuhn.de/go/fontcore/internal/reader"
	"seehuhn.de/go/fontcore/outline"
	"seehuhn.de/go/fontcore/sdf"
	"seehuhn.de/go/fontcore/sfnt/cmap"
	"seehuhn.de/go/fontcore/sfnt/glyf"
	"seehuhn.de/go/fontcore/sfnt/head"
	"seehuhn.de/go/fontcore/sfnt/hhea"
	"seehuhn.de/go/fontcore/sfnt/hmtx"
	"seehuhn.de/go/fontcore/sfnt/maxp"
	"seehuhn.de/go/fontcore/sfnt/table"
)

var (
	tagHead = reader.MakeTag("head")
	tagMaxp = reader.MakeTag("maxp")
	tagHhea = reader.MakeTag("hhea")
	tagHmtx = reader.MakeTag("hmtx")
	tagCmap = reader.MakeTag("cmap")
	tagLoca = reader.MakeTag("loca")
	tagGlyf = reader.MakeTag("glyf")
	tagCFF  = reader.MakeTag("CFF ")
)

// glyphSource is whichever outline backend a font uses: "glyf" or CFF.
// Its Decode result is in raw font design units; em-square
// normalization and hmtx metrics are applied by Font.decodeNormalized.
type glyphSource interface {
	NumGlyphs() int
	decode(gid int) (*outline.Glyph, error)
}

type glyfSource struct{ t *glyf.Table }

func (s glyfSource) NumGlyphs() int                       { return s.t.NumGlyphs() }
func (s glyfSource) decode(gid int) (*outline.Glyph, error) { return s.t.Decode(gid) }

type cffSource struct{ t *cff.Table }

func (s cffSource) NumGlyphs() int { return s.t.NumGlyphs() }
func (s cffSource) decode(gid int) (*outline.Glyph, error) {
	g, _, err := s.t.Decode(gid)
	return g, err
}

// Font is a parsed font file: its tables decoded enough to resolve a
// code point to a glyph index and a glyph index to a normalized,
// em-scaled outline.
type Font struct {
	data []byte

	unitsPerEm float64
	hmtx       *hmtx.Info
	cm         cmap.Subtable // nil if no usable subtable is present
	glyphs     glyphSource
	isCFF      bool
}

// LoadFile reads path and parses it as a font file.
func LoadFile(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errcode.New(errcode.FileNotFound, "", err.Error())
	}
	return Load(data)
}

// Load parses a complete sfnt or TTC font file image. Of a font
// collection, only the first subfont is used.
func Load(data []byte) (*Font, error) {
	dir, err := table.Parse(data)
	if err != nil {
		return nil, err
	}
	if len(dir.Offsets) == 0 {
		return nil, errcode.New(errcode.UnknownContainer, "", "table directory has no subfonts")
	}
	ot := dir.Offsets[0]

	headInfo, err := parseRequired(dir.Data, ot, tagHead, head.Parse)
	if err != nil {
		return nil, err
	}
	maxpInfo, err := parseRequired(dir.Data, ot, tagMaxp, maxp.Parse)
	if err != nil {
		return nil, err
	}
	hheaInfo, err := parseRequired(dir.Data, ot, tagHhea, hhea.Parse)
	if err != nil {
		return nil, err
	}

	var cm cmap.Subtable
	if rec, ok := ot.Find(tagCmap); ok {
		cm, err = cmap.SelectAndDecode(tableBytes(dir.Data, rec))
		if err != nil {
			return nil, err
		}
	}

	hmtxRec, ok := ot.Find(tagHmtx)
	if !ok {
		return nil, errcode.Malformedf("sfnt", "missing required table %q", "hmtx")
	}
	hmtxInfo, err := hmtx.Parse(tableBytes(dir.Data, hmtxRec), hheaInfo.NumOfLongHorMetrics, maxpInfo.NumGlyphs)
	if err != nil {
		return nil, err
	}

	f := &Font{
		data:       data,
		unitsPerEm: float64(headInfo.UnitsPerEm),
		hmtx:       hmtxInfo,
		cm:         cm,
	}

	if rec, ok := ot.Find(tagCFF); ok {
		t, err := cff.Parse(tableBytes(dir.Data, rec))
		if err != nil {
			return nil, err
		}
		f.glyphs = cffSource{t}
		f.isCFF = true
		return f, nil
	}

	glyfRec, ok := ot.Find(tagGlyf)
	if !ok {
		return nil, errcode.Unsupportedf("sfnt", "font has neither %q nor %q outlines", "glyf", "CFF ")
	}
	locaRec, ok := ot.Find(tagLoca)
	if !ok {
		return nil, errcode.Malformedf("sfnt", "missing required table %q", "loca")
	}
	loca, err := glyf.ParseLoca(tableBytes(dir.Data, locaRec), maxpInfo.NumGlyphs, headInfo.IndexToLocFormat != 0)
	if err != nil {
		return nil, err
	}
	f.glyphs = glyfSource{glyf.NewTable(tableBytes(dir.Data, glyfRec), loca)}
	return f, nil
}

func tableBytes(data []byte, rec table.Record) []byte {
	return data[rec.Offset : rec.Offset+rec.Length]
}

func parseRequired[T any](data []byte, ot table.OffsetTable, tag reader.Tag, parse func([]byte) (*T, error)) (*T, error) {
	rec, ok := ot.Find(tag)
	if !ok {
		return nil, errcode.Malformedf("sfnt", "missing required table %q", tag.String())
	}
	return parse(tableBytes(data, rec))
}

// GlyphIndex maps a single code point to a glyph index, or 0 if the
// font has no cmap subtable this library can use or the code point is
// unmapped.
func (f *Font) GlyphIndex(r rune) cmap.GID {
	if f.cm == nil {
		return 0
	}
	return f.cm.Lookup(r)
}

// GlyphIndicesForString NFC-normalizes s before resolving each of its
// runes to a glyph index, matching common text-shaping practice of
// normalizing before glyph lookup.
func (f *Font) GlyphIndicesForString(s string) []cmap.GID {
	normalized := norm.NFC.String(s)
	out := make([]cmap.GID, 0, len(normalized))
	for _, r := range normalized {
		out = append(out, f.GlyphIndex(r))
	}
	return out
}

// decodeNormalized resolves gid to an outline scaled to the em square
// (1 unit = 1 em), tight-bbox-translated to the origin, with Advance
// and Offset attached from hmtx. The legacy glyf-vs-CFF left-side-
// bearing discrepancy (an unresolved bug in the system this was
// modeled on) is reproduced exactly: glyf doubles the LSB contribution
// to Offset.X, CFF does not.
func (f *Font) decodeNormalized(gid cmap.GID) (*outline.Glyph, error) {
	if int(gid) >= f.glyphs.NumGlyphs() {
		return &outline.Glyph{}, nil
	}
	g, err := f.glyphs.decode(int(gid))
	if err != nil {
		return nil, err
	}
	if g == nil {
		g = &outline.Glyph{}
	}

	scale := float32(1 / f.unitsPerEm)
	for _, contour := range g.Contours {
		for i := range contour {
			contour[i].P1 = contour[i].P1.Scale(scale)
			contour[i].P2 = contour[i].P2.Scale(scale)
			contour[i].P3 = contour[i].P3.Scale(scale)
		}
	}

	min, max, ok := tightBBox(g.Contours)
	if !ok {
		min, max = fixed.Vec2{}, fixed.Vec2{}
	}
	for _, contour := range g.Contours {
		for i := range contour {
			contour[i].P1 = contour[i].P1.Sub(min)
			contour[i].P2 = contour[i].P2.Sub(min)
			contour[i].P3 = contour[i].P3.Sub(min)
		}
	}

	g.Size = max.Sub(min)
	g.Offset = min
	g.Advance = fixed.Vec2{X: float32(f.hmtx.GetAdvanceWidth(int(gid))) * scale}

	lsbFactor := float32(1)
	if !f.isCFF {
		lsbFactor = 2
	}
	g.Offset.X -= lsbFactor * float32(f.hmtx.GetLSB(int(gid))) * scale

	return g, nil
}

// tightBBox scans every line and curve endpoint (never a quadratic's
// control point) across all contours.
func tightBBox(contours []outline.Contour) (min, max fixed.Vec2, ok bool) {
	first := true
	consider := func(p fixed.Vec2) {
		if first {
			min, max = p, p
			first = false
			return
		}
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	for _, contour := range contours {
		for _, seg := range contour {
			consider(seg.P1)
			if seg.Kind == outline.SegQuad {
				consider(seg.P3)
			} else {
				consider(seg.P2)
			}
		}
	}
	return min, max, !first
}

// DefaultSDFDistance is the default falloff-band half-width, in em
// units, reserved as packing margin around every glyph and sampled by
// the rasterizer.
const DefaultSDFDistance = 0.12

// Builder assembles a texture atlas for a font: glyphs are requested by
// rune, queued, and rasterized into a shared SDF atlas on Build. Glyph
// IDs are dense and assigned in first-request order, slot 0 reserved
// for "not built".
type Builder struct {
	font        *Font
	pixelsPerEm float64
	distance    float64

	byGID map[cmap.GID]int
	slots []*outline.Glyph
	built []bool // parallels slots; true once a slot's Pos/Size/Offset hold a valid normalized atlas placement
	queue []cmap.GID

	packer      *atlas.Packer
	boundSquare float64
	resolution  int
	pixels      []byte
}

// NewBuilder returns a Builder that rasterizes f's glyphs at
// pixelsPerEm pixels per em, using the default SDF falloff distance.
func NewBuilder(f *Font, pixelsPerEm float64) *Builder {
	return &Builder{
		font:        f,
		pixelsPerEm: pixelsPerEm,
		distance:    DefaultSDFDistance,
		byGID:       make(map[cmap.GID]int),
		slots:       []*outline.Glyph{nil},
		built:       []bool{false},
		packer:      atlas.NewPacker(),
	}
}

// Glyph resolves r to a glyph, decoding and queuing it for the next
// Build call on first request. The returned value reflects whatever
// atlas placement was assigned as of the last Build call (Pos is the
// zero value before the glyph has ever been built).
func (b *Builder) Glyph(r rune) outline.Glyph {
	gid := b.font.GlyphIndex(r)
	idx, ok := b.byGID[gid]
	if !ok {
		g, err := b.font.decodeNormalized(gid)
		if err != nil {
			slog.Warn("fontcore: glyph decode failed, using empty glyph", "rune", r, "gid", gid, "error", err)
			g = &outline.Glyph{}
		}
		b.slots = append(b.slots, g)
		b.built = append(b.built, false)
		idx = len(b.slots) - 1
		b.byGID[gid] = idx
		b.queue = append(b.queue, gid)
	}
	return *b.slots[idx]
}

// AdvanceFor returns r's horizontal advance, in em units, decoding and
// queuing the glyph as Glyph would.
func (b *Builder) AdvanceFor(r rune) float32 {
	return b.Glyph(r).Advance.X
}

// Build packs every glyph queued since the last Build call into the
// atlas and rasterizes its SDF, fanning rasterization out across a
// worker pool sized from the detected hardware concurrency (fallback
// 8). Pos, Size and Offset are always normalized by the current
// boundSquare: if packing the new glyphs grows boundSquare, every
// already-built slot's Pos/Size/Offset is rescaled by
// oldBoundSquare/boundSquare first, so previously handed-out texture
// coordinates and vertex geometry stay valid against the new atlas.
func (b *Builder) Build() error {
	if len(b.queue) == 0 {
		return nil
	}

	items := make([]atlas.Item, 0, len(b.queue))
	for _, gid := range b.queue {
		idx := b.byGID[gid]
		g := b.slots[idx]
		if g.Empty() {
			continue
		}
		items = append(items, atlas.Item{Index: idx, Size: g.Size})
	}
	b.queue = b.queue[:0]

	if len(items) == 0 {
		return nil
	}

	oldBoundSquare := b.boundSquare
	placements, boundSquare := b.packer.Pack(items, b.distance)
	b.boundSquare = boundSquare

	if oldBoundSquare != 0 && boundSquare != oldBoundSquare {
		ratio := float32(oldBoundSquare / boundSquare)
		for idx, wasBuilt := range b.built {
			if !wasBuilt {
				continue
			}
			g := b.slots[idx]
			g.Pos = g.Pos.Scale(ratio)
			g.Size = g.Size.Scale(ratio)
			g.Offset = g.Offset.Scale(ratio)
		}
	}

	invBoundSquare := float32(1 / boundSquare)
	jobs := make([]sdf.Job, 0, len(placements))
	for _, pl := range placements {
		g := b.slots[pl.Index]
		jobs = append(jobs, sdf.Job{
			Glyph:   sdf.FromOutline(g),
			DstX:    int(math.Round(float64(pl.Pos.X) * boundSquare * b.pixelsPerEm)),
			DstY:    int(math.Round(float64(pl.Pos.Y) * boundSquare * b.pixelsPerEm)),
			W:       int(math.Ceil((float64(g.Size.X) + 2*b.distance) * b.pixelsPerEm)),
			H:       int(math.Ceil((float64(g.Size.Y) + 2*b.distance) * b.pixelsPerEm)),
			OriginX: -b.distance,
			OriginY: -b.distance,
			Scale:   b.pixelsPerEm,
		})

		g.Pos = pl.Pos
		g.Size = g.Size.Scale(invBoundSquare)
		g.Offset = g.Offset.Scale(invBoundSquare)
		b.built[pl.Index] = true
	}

	resolution := int(math.Ceil(b.pixelsPerEm * boundSquare))
	if resolution < 1 {
		resolution = 1
	}
	pixels := make([]byte, resolution*resolution)
	if len(b.pixels) > 0 {
		copyAtlas(pixels, resolution, b.pixels, b.resolution)
	}

	numWorkers := runtime.NumCPU()
	if numWorkers < 1 {
		numWorkers = 8
	}
	sdf.RenderAll(pixels, resolution, jobs, sdf.Params{Distance: b.distance}, numWorkers)

	b.pixels = pixels
	b.resolution = resolution
	return nil
}

// copyAtlas copies the old pixels into a newly (re)allocated, larger
// atlas buffer at the same row and column offsets: a glyph's pixel
// position does not change when the atlas grows, only its normalized
// coordinates do. Build then renders only the newly placed glyphs.
func copyAtlas(dst []byte, dstStride int, src []byte, srcStride int) {
	rows := srcStride
	if rows > dstStride {
		rows = dstStride
	}
	n := len(src) / srcStride
	for row := 0; row < n && row < dstStride; row++ {
		copy(dst[row*dstStride:row*dstStride+rows], src[row*srcStride:row*srcStride+rows])
	}
}

// WritePNG writes the current atlas contents as a single-channel PNG,
// for debugging; it is not part of the GPU-facing rendering path.
func (b *Builder) WritePNG(w io.Writer) error {
	if b.pixels == nil {
		return errors.New("fontcore: atlas is empty, call Build first")
	}
	img := &image.Gray{
		Pix:    b.pixels,
		Stride: b.resolution,
		Rect:   image.Rect(0, 0, b.resolution, b.resolution),
	}
	return png.Encode(w, img)
}

// Occupancy returns the fraction of the packer's bounding rectangle
// (the extent of all placed glyph rectangles) that they actually cover.
func (b *Builder) Occupancy() float64 {
	return b.packer.Occupancy()
}

// Atlas returns a read-only view of the current SDF texture, or nil
// before the first successful Build call.
func (b *Builder) Atlas() *image.Gray {
	if b.pixels == nil {
		return nil
	}
	return &image.Gray{
		Pix:    b.pixels,
		Stride: b.resolution,
		Rect:   image.Rect(0, 0, b.resolution, b.resolution),
	}
}

// PixelsPerEm returns the scale this builder rasterizes at.
func (b *Builder) PixelsPerEm() float64 {
	return b.pixelsPerEm
}
