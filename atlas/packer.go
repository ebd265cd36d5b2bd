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

// Package atlas packs a set of glyph bitmaps into a single square
// texture using a corner-tracking bin-packer: each placed box exposes
// new candidate corners on its top and right edges, and a new glyph is
// placed at the first corner whose box does not overlap anything
// already packed.
package atlas

import (
	"math"
	"sort"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/fontcore/fixed"
)

// cornerEpsilon nudges a newly exposed corner past the edge of the box
// that created it, so floating-point box-intersection tests at the
// shared edge don't spuriously reject the next glyph.
const cornerEpsilon = 0.002

// box is an axis-aligned placement candidate in atlas space.
type box struct {
	min, max fixed.Vec2
}

func boxesIntersect(a, b box) bool {
	return a.min.X <= b.max.X && a.max.X >= b.min.X &&
		a.min.Y <= b.max.Y && a.max.Y >= b.min.Y
}

// Item is one glyph's bitmap size, in atlas-space units, to be packed.
type Item struct {
	Index int
	Size  fixed.Vec2
}

// Placement is where Item.Index ended up in the atlas, normalized by
// the bound square Pack returned alongside it so Pos lands in [0,1)
// and is directly usable as a texture coordinate.
type Placement struct {
	Index int
	Pos   fixed.Vec2
}

// Packer accumulates placements across repeated Pack calls, so an
// atlas can grow incrementally as new glyphs are requested.
type Packer struct {
	boxes    []box
	corners  []fixed.Vec2
	bounding fixed.Vec2
	area     float64
}

// NewPacker returns an empty packer, ready to receive Pack calls.
func NewPacker() *Packer {
	return &Packer{corners: []fixed.Vec2{{X: 0, Y: 0}}}
}

// insertCorner keeps corners sorted by ascending distance-from-origin
// (max(x,y)), with ties ordered by ascending squared distance, so the
// packer always tries the corner nearest the origin first.
func (p *Packer) insertCorner(c fixed.Vec2) {
	dist := math.Max(float64(c.X), float64(c.Y))
	pos := len(p.corners)
	for i, existing := range p.corners {
		dist2 := math.Max(float64(existing.X), float64(existing.Y))
		if dist == dist2 {
			if absSqr(c) > absSqr(existing) {
				continue
			}
		}
		if dist <= dist2 {
			pos = i
			break
		}
	}
	p.corners = append(p.corners, fixed.Vec2{})
	copy(p.corners[pos+1:], p.corners[pos:])
	p.corners[pos] = c
}

func absSqr(v fixed.Vec2) float64 {
	return float64(v.X)*float64(v.X) + float64(v.Y)*float64(v.Y)
}

func (p *Packer) purgeCorners(b box) {
	kept := p.corners[:0]
	for _, c := range p.corners {
		if c.X >= b.min.X-cornerEpsilon && c.X <= b.max.X+cornerEpsilon &&
			c.Y >= b.min.Y-cornerEpsilon && c.Y <= b.max.Y+cornerEpsilon {
			continue
		}
		kept = append(kept, c)
	}
	p.corners = kept
}

// Pack places items into the atlas, largest-first, and returns their
// placements along with the side length of the (square) bounding
// region now required. Each returned Placement.Pos is normalized by
// that bound square, landing in [0,1) so it can be used directly as a
// texture coordinate; the caller is responsible for re-normalizing any
// placements it kept from earlier Pack calls, since a later call can
// grow the bound square out from under them. margin is added to every
// box on every side, to leave room for the SDF falloff band around
// each glyph's ink.
func (p *Packer) Pack(items []Item, margin float64) ([]Placement, float64) {
	sorted := slices.Clone(items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Size.X != sorted[j].Size.X {
			return sorted[i].Size.X > sorted[j].Size.X
		}
		return sorted[i].Size.Y > sorted[j].Size.Y
	})

	placements := make([]Placement, 0, len(sorted))

	for _, it := range sorted {
		w := float64(it.Size.X) + 2*margin
		h := float64(it.Size.Y) + 2*margin

		for i := 0; i < len(p.corners); i++ {
			origin := p.corners[i]
			b := box{
				min: origin,
				max: fixed.Vec2{X: origin.X + float32(w), Y: origin.Y + float32(h)},
			}

			collides := false
			for _, existing := range p.boxes {
				if boxesIntersect(b, existing) {
					collides = true
					break
				}
			}
			if collides {
				continue
			}

			placements = append(placements, Placement{Index: it.Index, Pos: origin})
			p.area += w * h
			p.boxes = append(p.boxes, b)
			p.purgeCorners(b)

			if b.max.X > p.bounding.X {
				p.bounding.X = b.max.X
			}
			if b.max.Y > p.bounding.Y {
				p.bounding.Y = b.max.Y
			}

			grown := box{min: b.min, max: fixed.Vec2{X: b.max.X + cornerEpsilon, Y: b.max.Y + cornerEpsilon}}
			p.insertCorner(fixed.Vec2{X: grown.max.X, Y: grown.min.Y})
			p.insertCorner(fixed.Vec2{X: grown.min.X, Y: grown.max.Y})
			break
		}
	}

	side := math.Max(float64(p.bounding.X), float64(p.bounding.Y))
	if side < 1 {
		side = 1
	}
	// round up to the nearest 1/64, matching the granularity the
	// rendering pass quantizes the final texture resolution to.
	boundSquare := math.Ceil(side*64) / 64

	inv := float32(1 / boundSquare)
	for i := range placements {
		placements[i].Pos = placements[i].Pos.Scale(inv)
	}

	return placements, boundSquare
}

// Occupancy returns the fraction of the current bounding rectangle
// (the extent of all placed boxes) that packed glyph boxes actually
// cover.
func (p *Packer) Occupancy() float64 {
	total := p.bounding.X * p.bounding.Y
	if total == 0 {
		return 0
	}
	return p.area / float64(total)
}
