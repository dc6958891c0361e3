package model

// Role is the author of a conversation entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the conversation log.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Session is the persisted conversation document. Field order is the wire order.
type Session struct {
	Messages []Message `json:"messages"`
	State    State     `json:"state"`
}

// NewSession returns an empty session with a non-nil log and state.
func NewSession() Session {
	return Session{
		Messages: []Message{},
		State:    State{},
	}
}

// Normalize replaces nil collections so the document always encodes as
// {"messages":[],"state":{}}.
func (s *Session) Normalize() {
	if s.Messages == nil {
		s.Messages = []Message{}
	}
	if s.State == nil {
		s.State = State{}
	}
}

// Append adds an entry to the log.
func (s *Session) Append(role Role, content string) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
}

// Window returns a copy of the last n log entries.
func (s Session) Window(n int) []Message {
	start := 0
	if n >= 0 && len(s.Messages) > n {
		start = len(s.Messages) - n
	}
	out := make([]Message, len(s.Messages)-start)
	copy(out, s.Messages[start:])
	return out
}

// Clone returns a copy that shares no mutable collections with s.
func (s Session) Clone() Session {
	out := Session{
		Messages: make([]Message, len(s.Messages)),
		State:    s.State.Clone(),
	}
	copy(out.Messages, s.Messages)
	return out
}
