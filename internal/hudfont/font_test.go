package hudfont

import (
	"image/color"
	"testing"

	"tinygo.org/x/tinyfont"
)

type pixelGrid struct {
	w, h int16
	set  map[[2]int16]bool
}

func newPixelGrid(w, h int16) *pixelGrid {
	return &pixelGrid{w: w, h: h, set: map[[2]int16]bool{}}
}

func (g *pixelGrid) Size() (x, y int16)                { return g.w, g.h }
func (g *pixelGrid) SetPixel(x, y int16, c color.RGBA) { g.set[[2]int16{x, y}] = true }
func (g *pixelGrid) Display() error                    { return nil }

func TestGlyphTableShapes(t *testing.T) {
	for r, rows := range glyphs {
		for i, row := range rows {
			if len(row) != glyphW {
				t.Errorf("glyph %q row %d has width %d", r, i, len(row))
			}
		}
	}
}

func TestDrawCharSitsOnBaseline(t *testing.T) {
	g := newPixelGrid(16, 16)
	tinyfont.DrawChar(g, Font, 0, 6, 'L', color.RGBA{A: 0xFF})

	// 'L' is a full-height left bar plus a full-width bottom row.
	for y := int16(0); y < 7; y++ {
		if !g.set[[2]int16{0, y}] {
			t.Fatalf("missing left bar pixel at y=%d", y)
		}
	}
	for x := int16(0); x < 5; x++ {
		if !g.set[[2]int16{x, 6}] {
			t.Fatalf("missing bottom pixel at x=%d", x)
		}
	}
	if len(g.set) != 11 {
		t.Fatalf("expected 11 pixels, got %d", len(g.set))
	}
	if g.set[[2]int16{0, 7}] {
		t.Fatal("glyph drew below the baseline")
	}
}

func TestLowercaseMapsToUppercase(t *testing.T) {
	if lookup('q') != glyphs['Q'] {
		t.Fatal("lowercase should share the uppercase glyph")
	}
	if lookup('€') != &missing {
		t.Fatal("unknown rune should use the missing glyph")
	}
}

func TestLineWidth(t *testing.T) {
	_, w := tinyfont.LineWidth(Font, "FPS 60")
	if w != uint32(6*advance) {
		t.Fatalf("expected width %d, got %d", 6*advance, w)
	}
}
