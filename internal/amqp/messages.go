package amqp

import (
	"encoding/json"
	"time"
)

// ExpenseEvent is the lifecycle message the API publishes on every expense
// write. It carries only the id and action; the worker fetches the current
// row from the database, so a stale message never exports stale data.
type ExpenseEvent struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseEvent(id int64, action string) *ExpenseEvent {
	return &ExpenseEvent{
		ID:        id,
		Action:    action,
		Timestamp: time.Now(),
	}
}

func (m *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var msg ExpenseEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
