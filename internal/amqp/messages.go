package amqp

import (
	"encoding/json"
	"time"
)

// LedgerEventMessage describes one ledger mutation. It carries only the
// operation and the transaction ID; consumers that need the full record read
// it from their own store.
type LedgerEventMessage struct {
	Op            string    `json:"op"`
	TransactionID int64     `json:"transaction_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewLedgerEventMessage creates an event stamped with the current time.
func NewLedgerEventMessage(op string, transactionID int64) *LedgerEventMessage {
	return &LedgerEventMessage{
		Op:            op,
		TransactionID: transactionID,
		Timestamp:     time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON decodes a message from JSON bytes.
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
