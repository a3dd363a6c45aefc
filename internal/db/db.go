package db

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Store is the key-value settings store plus a small usage event log.
// Every preference or counter is one entry keyed by a fixed name.
type Store interface {
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string) error
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, name string) error

	AppendEvent(ctx context.Context, ev Event) error
	ListEvents(ctx context.Context, since time.Time, limit int) ([]Event, error)

	Close() error
}

// EventType tags an entry of the usage log.
type EventType string

const (
	EventAct     EventType = "act"
	EventHelp    EventType = "help"
	EventSession EventType = "session"
	EventReview  EventType = "review"
	EventReset   EventType = "reset"
)

// Event is one usage log record.
type Event struct {
	Time   time.Time `json:"time"`
	Type   EventType `json:"type"`
	Name   string    `json:"name"`
	Detail string    `json:"detail,omitempty"`
}

var ErrNotFound = errors.New("not found")

// Open returns a Store based on a URL: mem:// for an in-memory store,
// sqlite://path or a bare filesystem path for SQLite.
func Open(ctx context.Context, url string) (Store, error) {
	url = strings.TrimSpace(url)
	switch {
	case url == "mem://" || url == "mem":
		return newMemStore(), nil
	case strings.HasPrefix(url, "sqlite://"):
		return openSQLite(ctx, strings.TrimPrefix(url, "sqlite://"))
	default:
		return openSQLite(ctx, url)
	}
}
