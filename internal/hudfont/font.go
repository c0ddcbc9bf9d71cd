// Package hudfont is a 5x7 uppercase bitmap font for on-screen status text.
//
// It implements tinyfont.Fonter. Lowercase letters render as uppercase and
// runes without a glyph render as a hollow box.
package hudfont

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

const (
	glyphW   = 5
	glyphH   = 7
	advance  = 6
	yAdvance = 8
)

// Font is the shared HUD font. Concurrent use is not safe due to glyph reuse.
var Font tinyfont.Fonter = &font5x7{}

type font5x7 struct {
	g glyph
}

type glyph struct {
	r    rune
	rows *[glyphH]string
}

func (g *glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	if g.rows == nil {
		return
	}
	// y is the baseline; the glyph occupies the glyphH rows above it.
	top := y - glyphH + 1
	for row, bits := range g.rows {
		for col := 0; col < glyphW && col < len(bits); col++ {
			if bits[col] != '#' {
				continue
			}
			display.SetPixel(x+int16(col), top+int16(row), c)
		}
	}
}

func (g *glyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    glyphW,
		Height:   glyphH,
		XAdvance: advance,
		XOffset:  0,
		YOffset:  -(glyphH - 1),
	}
}

func (f *font5x7) GetYAdvance() uint8 { return yAdvance }

func (f *font5x7) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	f.g.rows = lookup(r)
	return &f.g
}

func lookup(r rune) *[glyphH]string {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	if rows, ok := glyphs[r]; ok {
		return rows
	}
	return &missing
}

// Height is the line height in pixels.
func Height() int16 { return yAdvance }

// Width is the advance of one character in pixels.
func Width() int16 { return advance }
