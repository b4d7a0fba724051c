package domain

import "time"

const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// ChangeEvent is published after every successful write to a collection.
type ChangeEvent struct {
	Type      string    `json:"type"`
	Resource  string    `json:"resource"`
	ID        string    `json:"id"`
	Status    string    `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e ChangeEvent) Known() bool {
	switch e.Type {
	case EventCreated, EventUpdated, EventDeleted:
		return true
	}
	return false
}
