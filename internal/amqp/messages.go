package amqp

import (
	"encoding/json"
	"time"

	"megraja/internal/ledger"
)

// LedgerEventMessage is the wire form of a ledger change event. It is
// deliberately small: consumers reload whatever state they need from
// storage instead of trusting message payloads.
type LedgerEventMessage struct {
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEventMessage(event ledger.Event) *LedgerEventMessage {
	return &LedgerEventMessage{
		Entity:    event.Entity,
		Action:    event.Action,
		ID:        event.ID,
		Timestamp: time.Now(),
	}
}

func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
