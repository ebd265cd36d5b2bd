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

package sdf

import (
	"math"
	"runtime"
	"sync"

	"seehuhn.de/go/fontcore/outline"
)

// Glyph is a glyph outline flattened into the lines/curves this
// package's winding and distance tests operate on, in em-square units
// (the unit square a font's glyphs are normalized to).
type Glyph struct {
	lines  []line
	curves []curve
}

// FromOutline converts a decoded glyph's contours into the segment
// lists the rasterizer tests against.
func FromOutline(g *outline.Glyph) *Glyph {
	sg := &Glyph{}
	for _, contour := range g.Contours {
		for _, seg := range contour {
			p1 := point{float64(seg.P1.X), float64(seg.P1.Y)}
			p2 := point{float64(seg.P2.X), float64(seg.P2.Y)}
			if seg.Kind == outline.SegLine {
				sg.lines = append(sg.lines, line{p1, p2})
			} else {
				p3 := point{float64(seg.P3.X), float64(seg.P3.Y)}
				sg.curves = append(sg.curves, curve{p1, p2, p3})
			}
		}
	}
	return sg
}

// Inside reports whether p is inside the glyph's fill, via a
// nonzero-winding-rule ray cast.
func (g *Glyph) Inside(x, y float64) bool {
	p := point{x, y}
	winding := 0
	for _, l := range g.lines {
		winding += l.intersection(p)
	}
	for _, c := range g.curves {
		winding += c.intersection(p)
	}
	return winding != 0
}

// MinDistance returns the distance from p to the nearest point on the
// glyph's outline, never exceeding startingDist (an early-out bound
// the caller may carry over from a neighboring pixel).
func (g *Glyph) MinDistance(x, y, startingDist float64) float64 {
	best := startingDist * startingDist
	p := point{x, y}
	for _, l := range g.lines {
		best = l.distSquared(p, best)
	}
	for _, c := range g.curves {
		best = c.distSquared(p, best)
	}
	if best < 0 {
		best = 0
	}
	return math.Sqrt(best)
}

// Params configures how a glyph's signed-distance band is sampled into
// pixel values.
type Params struct {
	// Distance is the half-width of the falloff band, in em-square
	// units, mapped onto the full 0..255 output range.
	Distance float64
}

// Job is one glyph's placement in the output atlas: a W-by-H pixel box
// at (DstX,DstY) in the atlas, sampling glyph space starting at
// (OriginX,OriginY) with Scale pixels per em-square unit.
type Job struct {
	Glyph   *Glyph
	DstX    int
	DstY    int
	W, H    int
	OriginX float64
	OriginY float64
	Scale   float64
}

// render fills the job's box in atlas (stride bytes per row) with the
// glyph's SDF, one byte per pixel: 0 is fully outside the falloff
// band, 255 fully inside, 127 exactly on the edge. Row 0 samples the
// top of the box in glyph space: glyph y grows upward, atlas rows
// downward.
func render(atlas []byte, stride int, j Job, p Params) {
	for row := 0; row < j.H; row++ {
		py := j.OriginY + float64(j.H-1-row)/j.Scale
		prevDist := p.Distance
		dstRow := (j.DstY + row) * stride + j.DstX
		for col := 0; col < j.W; col++ {
			px := j.OriginX + float64(col)/j.Scale

			dist := j.Glyph.MinDistance(px, py, prevDist)
			prevDist = dist + 1/j.Scale // assume the worst change possible between adjacent pixels

			var v float64
			if j.Glyph.Inside(px, py) {
				if dist < p.Distance {
					v = (1 + dist/p.Distance) * 0.5
				} else {
					v = 1
				}
			} else {
				if dist < p.Distance {
					v = (1 - dist/p.Distance) * 0.5
				} else {
					v = 0
				}
			}

			atlas[dstRow+col] = byte(v * 255)
		}
	}
}

// RenderAll rasterizes every job into atlas (stride bytes per row),
// splitting the work across a pool of goroutines striped by job index,
// the way a CPU-bound render pass is parallelized across a fixed
// worker count.
func RenderAll(atlas []byte, stride int, jobs []Job, p Params, numWorkers int) {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	if numWorkers > len(jobs) {
		numWorkers = len(jobs)
	}
	if numWorkers <= 1 {
		for _, j := range jobs {
			render(atlas, stride, j, p)
		}
		return
	}

	var wg sync.WaitGroup
	for worker := 0; worker < numWorkers; worker++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := id; i < len(jobs); i += numWorkers {
				render(atlas, stride, jobs[i], p)
			}
		}(worker)
	}
	wg.Wait()
}
