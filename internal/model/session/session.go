package session

import "time"

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Valid reports whether the sender is one of the two known values.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderBot
}

// Message is a single turn in a session transcript. Messages are immutable
// once appended; slice order is the conversation order.
type Message struct {
	ID     string    `json:"id,omitempty"`
	Sender Sender    `json:"sender"`
	Time   time.Time `json:"time"`
	Text   string    `json:"message"`
}

// Session is a persisted conversation keyed by a client-supplied identifier.
type Session struct {
	SessionID    string    `json:"sessionID"`
	Title        string    `json:"title"`
	Conversation []Message `json:"conversation"`
}

// LastMessage returns the newest message, the trigger text for the next
// model turn.
func (s Session) LastMessage() (Message, bool) {
	if len(s.Conversation) == 0 {
		return Message{}, false
	}
	return s.Conversation[len(s.Conversation)-1], true
}
