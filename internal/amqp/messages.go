package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType identifies what happened to a catch.
type EventType string

const (
	CatchCreated EventType = "catch.created"
	CatchDeleted EventType = "catch.deleted"
)

// CatchEvent is the message published after a catch is stored or removed.
// It carries only the id; consumers read the record from the store.
type CatchEvent struct {
	Type      EventType `json:"type"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewCatchEvent(t EventType, id int64) *CatchEvent {
	return &CatchEvent{
		Type:      t,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (e *CatchEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// CatchEventFromJSON decodes and checks a message body.
func CatchEventFromJSON(data []byte) (*CatchEvent, error) {
	var e CatchEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	switch e.Type {
	case CatchCreated, CatchDeleted:
	default:
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}
	if e.ID <= 0 {
		return nil, fmt.Errorf("invalid catch id %d", e.ID)
	}
	return &e, nil
}
