package hal

import (
	"context"
	"log/slog"
	"strings"
)

// Options configures the host HAL.
type Options struct {
	Width  int
	Height int

	// Scale multiplies the window size; the framebuffer keeps its size.
	Scale int
	Title string

	// Log receives every line written through the HAL logger.
	Log *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 320
	}
	if o.Height <= 0 {
		o.Height = 240
	}
	if o.Scale <= 0 {
		o.Scale = 2
	}
	if o.Title == "" {
		o.Title = "wavefield"
	}
	if o.Log == nil {
		o.Log = slog.Default()
	}
	return o
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	ptr    *hostPointer
	t      *hostTime
}

func newHost(opts Options) *hostHAL {
	return &hostHAL{
		logger: &hostLogger{log: opts.Log},
		fb:     newHostFramebuffer(opts.Width, opts.Height),
		kbd:    newHostKeyboard(),
		ptr:    newHostPointer(),
		t:      newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }

// hostLogger forwards log lines to slog. A leading "component: " prefix becomes
// the component attribute; lines starting with "panic" or containing "error"
// are logged at error level.
type hostLogger struct {
	log *slog.Logger
}

func (l *hostLogger) WriteLineString(s string) {
	component, msg := splitComponent(s)
	level := slog.LevelInfo
	switch {
	case strings.HasPrefix(msg, "panic"), strings.Contains(msg, "error"):
		level = slog.LevelError
	case strings.HasPrefix(msg, "warn"):
		level = slog.LevelWarn
	}
	if component == "" {
		l.log.Log(context.Background(), level, msg)
		return
	}
	l.log.Log(context.Background(), level, msg, slog.String("component", component))
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.WriteLineString(string(b))
}

func splitComponent(s string) (component, msg string) {
	i := strings.Index(s, ": ")
	if i <= 0 || strings.ContainsAny(s[:i], " \t") {
		return "", s
	}
	return s[:i], s[i+2:]
}
