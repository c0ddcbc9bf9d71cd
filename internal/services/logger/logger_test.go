package logger

import (
	"sync"
	"testing"
	"time"

	clientlogger "wavefield/internal/client/logger"
	"wavefield/internal/kernel"
)

type memLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *memLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *memLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *memLogger) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

type sender struct {
	logCap kernel.Capability
}

func (s sender) Run(ctx *kernel.Context) {
	clientlogger.Logf(ctx, s.logCap, "test", "hello %d", 42)
	ctx.SendToCapResult(s.logCap, 999, []byte("ignored"), kernel.Capability{})
	_ = clientlogger.LogRetry(ctx, s.logCap, "test: done", 0)
}

func TestServiceWritesLogLines(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	mem := &memLogger{}

	k.AddTask(New(mem, ep.Restrict(kernel.RightRecv)))
	k.AddTask(sender{logCap: ep.Restrict(kernel.RightSend)})

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if got := mem.snapshot(); len(got) == 2 {
			if got[0] != "test: hello 42" || got[1] != "test: done" {
				t.Fatalf("unexpected lines %q", got)
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("expected two lines, got %q", mem.snapshot())
}
