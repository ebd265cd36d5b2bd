// Command fontcore-dump loads a font file, builds a signed-distance-field
// atlas for a sample string, and writes both the raw atlas texture and a
// rendered text preview as PNG files, for inspecting a font-core decode
// without a GPU renderer.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"unicode/utf8"

	"golang.org/x/image/draw"

	"seehuhn.de/go/fontcore"
)

func main() {
	text := flag.String("text", "Hello, fontcore!", "sample text to render")
	bakePPEM := flag.Float64("ppem", 48, "pixels per em to rasterize the SDF atlas at")
	displayPPEM := flag.Float64("display-ppem", 32, "pixels per em to scale glyphs to in the preview image")
	atlasFile := flag.String("atlas", "atlas.png", "path to write the raw SDF atlas texture")
	previewFile := flag.String("preview", "preview.png", "path to write the rendered text preview")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [options] font-file\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := fontcore.LoadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading font: %v\n", err)
		os.Exit(1)
	}

	b := fontcore.NewBuilder(f, *bakePPEM)
	gids := f.GlyphIndicesForString(*text)
	for _, r := range *text {
		b.Glyph(r)
	}
	if err := b.Build(); err != nil {
		fmt.Fprintf(os.Stderr, "Error building atlas: %v\n", err)
		os.Exit(1)
	}
	distinct := make(map[uint16]bool)
	for _, gid := range gids {
		distinct[gid] = true
	}
	fmt.Printf("packed %d distinct glyphs (%d code points), %.1f%% atlas occupancy\n",
		len(distinct), utf8.RuneCountInString(*text), b.Occupancy()*100)

	if err := writePNGFile(*atlasFile, b.Atlas()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing atlas: %v\n", err)
		os.Exit(1)
	}

	preview := renderPreview(b, *text, *displayPPEM)
	if err := writePNGFile(*previewFile, preview); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing preview: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s and %s\n", *atlasFile, *previewFile)
}

// renderPreview lays the requested text out left to right at
// displayPPEM, scaling each glyph's baked SDF cell from the atlas's
// own pixelsPerEm down (or up) to displayPPEM with x/image/draw's
// Catmull-Rom scaler — exercising the same resampling path a GPU shader's
// mipmapped SDF lookup stands in for, but on the CPU for a quick
// visual sanity check of the atlas contents.
func renderPreview(b *fontcore.Builder, text string, displayPPEM float64) *image.Gray {
	atlas := b.Atlas()
	margin := fontcore.DefaultSDFDistance
	bakePPEM := b.PixelsPerEm()

	penX := 2
	height := int(displayPPEM*2) + 4
	width := 2
	for _, r := range text {
		width += int(b.AdvanceFor(r)*float32(displayPPEM)) + 1
	}

	canvas := image.NewGray(image.Rect(0, 0, width, height))

	baseline := height - 4
	for _, r := range text {
		g := b.Glyph(r)
		if !g.Empty() {
			// Pos, Size and Offset are normalized by the atlas's bound
			// square, which the atlas spans at bakePPEM pixels per em.
			bs := float32(float64(atlas.Bounds().Dx()) / bakePPEM)
			pos, size, off := g.Pos.Scale(bs), g.Size.Scale(bs), g.Offset.Scale(bs)
			srcRect := image.Rect(
				int(pos.X*float32(bakePPEM)),
				int(pos.Y*float32(bakePPEM)),
				int(pos.X*float32(bakePPEM))+int((float64(size.X)+2*margin)*bakePPEM),
				int(pos.Y*float32(bakePPEM))+int((float64(size.Y)+2*margin)*bakePPEM),
			)
			scaledW := int((float64(size.X) + 2*margin) * displayPPEM)
			scaledH := int((float64(size.Y) + 2*margin) * displayPPEM)
			dstX := penX + int((float64(off.X)-margin)*displayPPEM)
			dstY := baseline - scaledH - int((float64(off.Y)-margin)*displayPPEM)
			dstRect := image.Rect(dstX, dstY, dstX+scaledW, dstY+scaledH)

			draw.CatmullRom.Scale(canvas, dstRect, atlas, srcRect, draw.Over, nil)
		}
		penX += int(b.AdvanceFor(r) * float32(displayPPEM))
	}

	return canvas
}

func writePNGFile(path string, img image.Image) error {
	if img == nil {
		img = image.NewGray(image.Rect(0, 0, 1, 1))
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return png.Encode(out, img)
}
