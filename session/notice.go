package session

import "time"

// DefaultNoticeDuration is how long a notice is shown by default.
const DefaultNoticeDuration = 4 * time.Second

// NoticeKind is the severity of a notice.
type NoticeKind int8

const (
	Info NoticeKind = iota
	Success
	Warning
	Error
)

func (k NoticeKind) String() string {
	switch k {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Notice is a short message shown to the player until it expires.
type Notice struct {
	Message string
	Kind    NoticeKind
	Expires time.Time
}

// Active returns whether the notice should be shown at now.
func (n Notice) Active(now time.Time) bool {
	return n.Message != "" && now.Before(n.Expires)
}
