package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgPointerMove
	MsgPointerLeave
	MsgKey
	MsgAppControl
	MsgAppShutdown
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgPointerMove:
		return "pointer_move"
	case MsgPointerLeave:
		return "pointer_leave"
	case MsgKey:
		return "key"
	case MsgAppControl:
		return "app_control"
	case MsgAppShutdown:
		return "app_shutdown"
	default:
		return "unknown"
	}
}
