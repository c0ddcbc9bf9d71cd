package proto

import "testing"

func TestPointerMovePayloadClamps(t *testing.T) {
	x, y, w, h, ok := DecodePointerMovePayload(PointerMovePayload(-4, 70000, 640, 480))
	if !ok {
		t.Fatal("decode failed")
	}
	if x != 0 || y != 0xFFFF || w != 640 || h != 480 {
		t.Fatalf("got (%d,%d) in %dx%d", x, y, w, h)
	}
	if _, _, _, _, ok := DecodePointerMovePayload([]byte{1, 2, 3}); ok {
		t.Fatal("short payload must not decode")
	}
}

func TestKeyPayload(t *testing.T) {
	code, press, r, ok := DecodeKeyPayload(KeyPayload(3, true, 'é'))
	if !ok || code != 3 || !press || r != 'é' {
		t.Fatalf("got code=%d press=%v rune=%q ok=%v", code, press, r, ok)
	}
	if _, press, _, _ := DecodeKeyPayload(KeyPayload(3, false, 0)); press {
		t.Fatal("release decoded as press")
	}
}

func TestAppControlPayload(t *testing.T) {
	if active, ok := DecodeAppControlPayload(AppControlPayload(true)); !ok || !active {
		t.Fatal("expected active")
	}
	if _, ok := DecodeAppControlPayload(nil); ok {
		t.Fatal("empty payload must not decode")
	}
}

func TestKindString(t *testing.T) {
	if MsgPointerLeave.String() != "pointer_leave" {
		t.Fatalf("got %q", MsgPointerLeave.String())
	}
	if Kind(999).String() != "unknown" {
		t.Fatal("unknown kind should stringify as unknown")
	}
}
