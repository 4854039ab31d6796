package events

import (
	"encoding/json"
	"time"
)

// Event types carried in ExpenseEvent.Type.
const (
	TypeExpenseCreated = "expense.created"
	TypeExpenseDeleted = "expense.deleted"
)

// ExpenseEvent is a lightweight change notification. Consumers needing the
// full record fetch it from the ledger by ID.
type ExpenseEvent struct {
	Type      string    `json:"type"`
	ExpenseID int64     `json:"expense_id"`
	Users     []string  `json:"users,omitempty"`
	Amount    string    `json:"amount,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseEvent creates an event stamped with the current time.
func NewExpenseEvent(eventType string, expenseID int64, users []string, amount string) ExpenseEvent {
	return ExpenseEvent{
		Type:      eventType,
		ExpenseID: expenseID,
		Users:     users,
		Amount:    amount,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ExpenseEventFromJSON decodes an event from JSON bytes.
func ExpenseEventFromJSON(data []byte) (ExpenseEvent, error) {
	var event ExpenseEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return ExpenseEvent{}, err
	}
	return event, nil
}
