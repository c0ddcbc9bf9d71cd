package proto

// AppControlPayload encodes a run/pause command for a task.
//
//	b[0] == 0 => pause
//	b[0] != 0 => run
func AppControlPayload(active bool) []byte {
	if active {
		return []byte{1}
	}
	return []byte{0}
}

func DecodeAppControlPayload(b []byte) (active bool, ok bool) {
	if len(b) != 1 {
		return false, false
	}
	return b[0] != 0, true
}
