package notify

import (
	"encoding/json"
	"time"
)

// Kind labels what a queued notification is about.
type Kind string

const (
	KindReminder Kind = "reminder"
	KindReceipt  Kind = "receipt"
	KindForecast Kind = "forecast"
	KindPrize    Kind = "prize"
)

// Message is the envelope queued for the delivery worker: the rendered text
// plus the subscriber's phone number. The worker decides the transport.
type Message struct {
	Kind      Kind      `json:"kind"`
	Phone     string    `json:"phone"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMessage(kind Kind, phone, text string) *Message {
	return &Message{Kind: kind, Phone: phone, Text: text, Timestamp: time.Now()}
}

func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MessageFromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
