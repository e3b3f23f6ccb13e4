package amqp

import (
	"encoding/json"
	"time"
)

// Event names carried by LedgerEventMessage.
const (
	EventExpensesCreated = "expenses.created"
	EventExpensesDeleted = "expenses.deleted"
	EventLedgerReset     = "ledger.reset"
)

// LedgerEventMessage notifies consumers that the ledger changed. It carries
// only ids; a consumer interested in row contents reads them back from the
// ledger.
type LedgerEventMessage struct {
	Event     string    `json:"event"`
	IDs       []int64   `json:"ids,omitempty"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpensesCreatedMessage(ids []int64) *LedgerEventMessage {
	return &LedgerEventMessage{
		Event:     EventExpensesCreated,
		IDs:       ids,
		Count:     len(ids),
		Timestamp: time.Now(),
	}
}

func NewExpensesDeletedMessage(ids []int64) *LedgerEventMessage {
	return &LedgerEventMessage{
		Event:     EventExpensesDeleted,
		IDs:       ids,
		Count:     len(ids),
		Timestamp: time.Now(),
	}
}

func NewLedgerResetMessage() *LedgerEventMessage {
	return &LedgerEventMessage{
		Event:     EventLedgerReset,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON creates a message from JSON bytes.
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
