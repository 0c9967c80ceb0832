package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Sender identifies who produced a conversation turn.
//
// SenderPending is a transient UI-only placeholder shown while a reply is in
// flight. It is never written to the history store.
type Sender int

const (
	SenderUser Sender = iota
	SenderAgent
	SenderPending
)

// String returns the wire/storage form of the sender.
func (s Sender) String() string {
	switch s {
	case SenderUser:
		return "user"
	case SenderAgent:
		return "agent"
	case SenderPending:
		return "pending"
	default:
		return fmt.Sprintf("sender(%d)", int(s))
	}
}

// ParseSender converts a stored sender string back into a Sender.
func ParseSender(s string) (Sender, error) {
	switch s {
	case "user":
		return SenderUser, nil
	case "agent":
		return SenderAgent, nil
	case "pending":
		return SenderPending, nil
	default:
		return 0, fmt.Errorf("unknown sender %q", s)
	}
}

// MarshalJSON encodes the sender as its string form.
func (s Sender) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a sender from its string form.
func (s *Sender) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseSender(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Turn is one message unit in a conversation, attributed to a sender.
// Position in the history slice is the temporal order; At is informational.
type Turn struct {
	Sender Sender    `json:"sender"`
	Text   string    `json:"text"`
	At     time.Time `json:"at,omitempty"`

	// Transient marks a rendered-but-not-persisted turn, such as the error
	// message shown when a dispatch fails. Transient turns are filtered out
	// of every history store write, like pending placeholders.
	Transient bool `json:"-"`
}

// NewUserTurn creates a user turn with the current timestamp.
func NewUserTurn(text string) Turn {
	return Turn{Sender: SenderUser, Text: text, At: time.Now().UTC()}
}

// NewAgentTurn creates an agent turn with the current timestamp.
func NewAgentTurn(text string) Turn {
	return Turn{Sender: SenderAgent, Text: text, At: time.Now().UTC()}
}

// NewPendingTurn creates the transient placeholder rendered while a reply
// is in flight.
func NewPendingTurn() Turn {
	return Turn{Sender: SenderPending, At: time.Now().UTC()}
}

// NewErrorTurn creates an agent-sender turn carrying a failure message.
// It is rendered but never persisted.
func NewErrorTurn(text string) Turn {
	return Turn{Sender: SenderAgent, Text: text, At: time.Now().UTC(), Transient: true}
}

// Persistable reports whether the turn may be written to the history store.
func (t Turn) Persistable() bool {
	return !t.Transient && (t.Sender == SenderUser || t.Sender == SenderAgent)
}

// CaptureRequest is the ephemeral value assembled for one chat submission.
// PageContext is empty when no context is available or inclusion is disabled.
type CaptureRequest struct {
	RawText     string
	PageContext string
}
