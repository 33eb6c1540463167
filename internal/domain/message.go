package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type MessageStatus string

const (
	MessageStatusSent MessageStatus = "SENT"
	MessageStatusRead MessageStatus = "READ"
)

// Message is append-only. The only mutation is SENT -> READ.
type Message struct {
	ID          uuid.UUID     `json:"id"`
	RoomID      uuid.UUID     `json:"room_id"`
	Sender      Sender        `json:"-"`
	Subject     *string       `json:"subject,omitempty"`
	Content     string        `json:"content"`
	Attachments []string      `json:"attachments"`
	Status      MessageStatus `json:"status"`
	SentAt      time.Time     `json:"sent_at"`
	ReadAt      *time.Time    `json:"read_at,omitempty"`
}

type messageAlias Message

type messageJSON struct {
	messageAlias
	senderJSON
}

func (m Message) MarshalJSON() ([]byte, error) {
	if m.Attachments == nil {
		m.Attachments = []string{}
	}
	return json.Marshal(messageJSON{messageAlias: messageAlias(m), senderJSON: marshalSender(m.Sender)})
}

func (m *Message) UnmarshalJSON(data []byte) error {
	var raw messageAlias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	sender, err := unmarshalSender(data)
	if err != nil {
		return err
	}
	*m = Message(raw)
	m.Sender = sender
	return nil
}

// SubjectText returns the subject or "" when absent.
func (m *Message) SubjectText() string {
	if m.Subject == nil {
		return ""
	}
	return *m.Subject
}

// IsUnreadFor reports whether the viewer still has to read this message.
func (m *Message) IsUnreadFor(viewer ActorType) bool {
	return m.Sender != nil && m.Sender.Type() == viewer.Counterpart() && m.Status != MessageStatusRead
}

// SendMessageInput is what a participant submits.
type SendMessageInput struct {
	RoomID      uuid.UUID
	Sender      Sender
	Subject     *string
	Content     string
	Attachments []string
}
