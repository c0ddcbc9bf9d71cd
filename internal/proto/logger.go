package proto

// LogLinePayload encodes a MsgLogLine payload.
//
// The payload is UTF-8 without a trailing newline. Delivery is best-effort.
func LogLinePayload(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
