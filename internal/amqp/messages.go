package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"argentvault/internal/core"
)

type EventType string

const (
	EventBudgetSaved   EventType = "budget.saved"
	EventBudgetDeleted EventType = "budget.deleted"
)

// BudgetEvent announces a change to the budget collection. Saved events
// carry the whole snapshot so consumers never need to open the database.
type BudgetEvent struct {
	Type      EventType            `json:"type"`
	ID        int64                `json:"id"`
	Snapshot  *core.BudgetSnapshot `json:"snapshot,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
}

func NewBudgetSavedEvent(s core.BudgetSnapshot) *BudgetEvent {
	return &BudgetEvent{
		Type:      EventBudgetSaved,
		ID:        s.ID,
		Snapshot:  &s,
		Timestamp: time.Now().UTC(),
	}
}

func NewBudgetDeletedEvent(id int64) *BudgetEvent {
	return &BudgetEvent{
		Type:      EventBudgetDeleted,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

func (m *BudgetEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BudgetEventFromJSON decodes and sanity-checks an event body.
func BudgetEventFromJSON(data []byte) (*BudgetEvent, error) {
	var msg BudgetEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	switch msg.Type {
	case EventBudgetSaved:
		if msg.Snapshot == nil {
			return nil, errors.New("saved event without snapshot")
		}
	case EventBudgetDeleted:
	default:
		return nil, fmt.Errorf("unknown event type %q", msg.Type)
	}
	if msg.ID == 0 {
		return nil, errors.New("event without budget id")
	}
	return &msg, nil
}
