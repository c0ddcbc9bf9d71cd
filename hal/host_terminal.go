package hal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TerminalConfig controls the terminal host runner.
type TerminalConfig struct {
	Hz int
}

// RunTerminal renders the framebuffer into the terminal with half-block cells
// (two pixels per cell) and forwards keys, mouse motion and focus loss.
func RunTerminal(ctx context.Context, opts Options, newApp func(HAL) func() error, cfg TerminalConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	h := newHost(opts.withDefaults())
	step := newApp(h)
	tv := &termView{screen: screen, h: h}

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	t := time.NewTicker(time.Second / time.Duration(cfg.Hz))
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !tv.handleEvent(ev) {
				return nil
			}
		case <-t.C:
			h.t.step(1)
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrExit) {
						return nil
					}
					return err
				}
			}
			tv.draw()
		}
	}
}

type termView struct {
	screen  tcell.Screen
	h       *hostHAL
	scratch []byte
}

// handleEvent forwards one terminal event to the HAL devices. It returns false
// when the user asked to quit with Ctrl-C.
func (v *termView) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		cols, rows := v.screen.Size()
		cx, cy := ev.Position()
		x, y, ok := v.cellToPixel(cx, cy, cols, rows)
		if !ok {
			v.h.ptr.leave()
			return true
		}
		v.h.ptr.sample(x, y, v.h.fb.width, v.h.fb.height)
	case *tcell.EventFocus:
		if !ev.Focused {
			v.h.ptr.leave()
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *termView) handleKey(ev *tcell.EventKey) bool {
	kbd := v.h.kbd
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		kbd.emitRune(ev.Rune())
		return true
	}

	code := KeyUnknown
	switch ev.Key() {
	case tcell.KeyUp:
		code = KeyUp
	case tcell.KeyDown:
		code = KeyDown
	case tcell.KeyLeft:
		code = KeyLeft
	case tcell.KeyRight:
		code = KeyRight
	case tcell.KeyEnter:
		code = KeyEnter
	case tcell.KeyEscape:
		code = KeyEscape
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		code = KeyBackspace
	case tcell.KeyTab:
		code = KeyTab
	default:
		return true
	}
	// Terminals report presses only; pair each with a release.
	kbd.emit(KeyEvent{Code: code, Press: true})
	kbd.emit(KeyEvent{Code: code, Press: false})
	return true
}

// cellToPixel maps a terminal cell to the framebuffer pixel under its top half.
func (v *termView) cellToPixel(cx, cy, cols, rows int) (x, y int, ok bool) {
	if cols <= 0 || rows <= 0 || cx < 0 || cy < 0 || cx >= cols || cy >= rows {
		return 0, 0, false
	}
	x = cx * v.h.fb.width / cols
	y = (cy * 2) * v.h.fb.height / (rows * 2)
	return x, y, true
}

// draw downsamples the presented frame onto the terminal grid: each cell shows
// two vertically stacked pixels as an upper half block.
func (v *termView) draw() {
	fb := v.h.fb
	if len(v.scratch) != len(fb.front) {
		v.scratch = make([]byte, len(fb.front))
	}
	fb.snapshotRGB565(v.scratch)

	cols, rows := v.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	for cy := 0; cy < rows; cy++ {
		yTop := (cy * 2) * fb.height / (rows * 2)
		yBot := (cy*2 + 1) * fb.height / (rows * 2)
		for cx := 0; cx < cols; cx++ {
			x := cx * fb.width / cols
			tr, tg, tb := fb.pixelAt(v.scratch, x, yTop)
			br, bg, bb := fb.pixelAt(v.scratch, x, yBot)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(tr), int32(tg), int32(tb))).
				Background(tcell.NewRGBColor(int32(br), int32(bg), int32(bb)))
			v.screen.SetContent(cx, cy, '▀', nil, style)
		}
	}
	v.screen.Show()
}
