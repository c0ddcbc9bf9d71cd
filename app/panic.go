package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"wavefield/hal"
	"wavefield/internal/hudfont"
	"wavefield/internal/kernel"
	"wavefield/internal/softgl"

	"tinygo.org/x/tinyfont"
)

var (
	panicBG = color.RGBA{R: 0x7F, G: 0x1D, B: 0x1D, A: 0xFF}
	panicFG = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// installPanicHandler logs the first task panic, paints it over the
// framebuffer and then hands it to record.
func installPanicHandler(h hal.HAL, record func(kernel.PanicInfo)) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString("panic: " + line)
			}
		}
		if disp := h.Display(); disp != nil {
			if fb := disp.Framebuffer(); fb != nil {
				drawPanic(fb, lines)
			}
		}
		if record != nil {
			record(info)
		}
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		fmt.Sprintf("task %d", info.TaskID),
		fmt.Sprintf("value %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack unavailable")
	}
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func drawPanic(fb hal.Framebuffer, lines []string) {
	if fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	fb.ClearRGB(panicBG.R, panicBG.G, panicBG.B)

	d := panicDisplay{fb: fb}
	lineH := hudfont.Height()
	cols := int16(fb.Width()) / hudfont.Width()
	if cols <= 0 || lineH <= 0 {
		_ = fb.Present()
		return
	}

	y := int16(2)
	maxH := int16(fb.Height())
	draw := func(s string) bool {
		if y+lineH > maxH {
			return false
		}
		tinyfont.WriteLine(d, hudfont.Font, 2, y+lineH-1, s, panicFG)
		y += lineH
		return true
	}

	draw("WAVEFIELD PANIC")
	for _, line := range lines {
		for len(line) > 0 {
			chunk, rest := takeRunes(line, cols)
			if !draw(chunk) {
				_ = fb.Present()
				return
			}
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

type panicDisplay struct {
	fb hal.Framebuffer
}

func (d panicDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) {
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := softgl.RGB565(c.R, c.G, c.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d panicDisplay) Display() error { return nil }

// takeRunes splits s after at most n runes.
func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	var i int
	for count := int16(0); i < len(s) && count < n; count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i], s[i:]
}
