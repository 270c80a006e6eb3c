package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"ledger/internal/core"
)

// TransactionRecordedMessage announces a newly stored transaction to
// downstream reporting consumers.
type TransactionRecordedMessage struct {
	ID        string    `json:"transaction_id"`
	Type      string    `json:"type"`
	Amount    string    `json:"amount"`
	Date      string    `json:"transaction_date"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransactionRecordedMessage builds the message for t. The amount is sent
// as a fixed two-digit string so consumers never see float rounding.
func NewTransactionRecordedMessage(t core.Transaction) *TransactionRecordedMessage {
	return &TransactionRecordedMessage{
		ID:        t.ID,
		Type:      t.Type.String(),
		Amount:    core.FormatAmount(t.Amount),
		Date:      t.Date.String(),
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionRecordedMessageFromJSON creates a message from JSON bytes
func TransactionRecordedMessageFromJSON(data []byte) (*TransactionRecordedMessage, error) {
	var msg TransactionRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.ID == "" {
		return nil, fmt.Errorf("message has no transaction_id")
	}
	return &msg, nil
}
