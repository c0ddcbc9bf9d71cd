package proto

import "encoding/binary"

// PointerMovePayload encodes a MsgPointerMove payload.
//
// Layout (little-endian):
//   - u16: x (viewport pixels)
//   - u16: y
//   - u16: viewport width
//   - u16: viewport height
//
// Coordinates are clamped into the u16 range.
func PointerMovePayload(x, y, w, h int) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint16(buf[0:2], clampU16(x))
	binary.LittleEndian.PutUint16(buf[2:4], clampU16(y))
	binary.LittleEndian.PutUint16(buf[4:6], clampU16(w))
	binary.LittleEndian.PutUint16(buf[6:8], clampU16(h))
	return buf
}

func DecodePointerMovePayload(b []byte) (x, y, w, h int, ok bool) {
	if len(b) != 8 {
		return 0, 0, 0, 0, false
	}
	x = int(binary.LittleEndian.Uint16(b[0:2]))
	y = int(binary.LittleEndian.Uint16(b[2:4]))
	w = int(binary.LittleEndian.Uint16(b[4:6]))
	h = int(binary.LittleEndian.Uint16(b[6:8]))
	return x, y, w, h, true
}

func clampU16(v int) uint16 {
	if v < 0 {
		return 0
	}
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}
