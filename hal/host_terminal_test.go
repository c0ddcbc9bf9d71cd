package hal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newTestTermView(t *testing.T, cols, rows, w, h int) *termView {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(cols, rows)
	return &termView{screen: s, h: newHost(Options{Width: w, Height: h}.withDefaults())}
}

func TestTermViewDrawsHalfBlocks(t *testing.T) {
	tv := newTestTermView(t, 2, 1, 2, 2)
	fb := tv.h.fb
	fb.ClearRGB(0, 0, 0)
	// Top-left pixel white.
	p := rgb565(255, 255, 255)
	fb.back[0], fb.back[1] = byte(p), byte(p>>8)
	_ = fb.Present()

	tv.draw()

	r, _, style, _ := tv.screen.GetContent(0, 0)
	if r != '▀' {
		t.Fatalf("expected half block, got %q", r)
	}
	fg, bg, _ := style.Decompose()
	if fr, fgG, fb := fg.RGB(); fr != 255 || fgG != 255 || fb != 255 {
		t.Fatalf("top pixel should be white, got %d,%d,%d", fr, fgG, fb)
	}
	if br, _, _ := bg.RGB(); br != 0 {
		t.Fatalf("bottom pixel should be black, got r=%d", br)
	}
}

func TestTermViewMouseAndFocus(t *testing.T) {
	tv := newTestTermView(t, 10, 5, 100, 100)

	tv.handleEvent(tcell.NewEventMouse(5, 2, tcell.ButtonNone, tcell.ModNone))
	ev := <-tv.h.ptr.ch
	if ev.Leave || ev.X != 50 || ev.Y != 40 || ev.Width != 100 || ev.Height != 100 {
		t.Fatalf("unexpected pointer event %+v", ev)
	}

	tv.handleEvent(tcell.NewEventFocus(false))
	ev = <-tv.h.ptr.ch
	if !ev.Leave {
		t.Fatalf("focus loss should leave, got %+v", ev)
	}
}

func TestTermViewKeys(t *testing.T) {
	tv := newTestTermView(t, 10, 5, 100, 100)

	if !tv.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)) {
		t.Fatal("rune key should not quit")
	}
	if ev := <-tv.h.kbd.ch; ev.Rune != 'w' || !ev.Press {
		t.Fatalf("unexpected key %+v", ev)
	}

	tv.handleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	press, release := <-tv.h.kbd.ch, <-tv.h.kbd.ch
	if press.Code != KeyLeft || !press.Press || release.Code != KeyLeft || release.Press {
		t.Fatalf("unexpected arrow events %+v %+v", press, release)
	}

	if tv.handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Fatal("ctrl-c should quit")
	}
}
