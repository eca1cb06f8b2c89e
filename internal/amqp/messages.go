package amqp

import (
	"encoding/json"
	"time"
)

// DaySavedMessage announces that a day record was written. Consumers fetch
// the full record through the API if they need it; the message stays small.
type DaySavedMessage struct {
	Date        string    `json:"date"`
	FilledSlots int       `json:"filledSlots"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewDaySavedMessage(date string, filledSlots int) *DaySavedMessage {
	return &DaySavedMessage{
		Date:        date,
		FilledSlots: filledSlots,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *DaySavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DaySavedMessageFromJSON creates a message from JSON bytes.
func DaySavedMessageFromJSON(data []byte) (*DaySavedMessage, error) {
	var msg DaySavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
