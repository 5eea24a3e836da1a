package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ProfileEventType string

const (
	ProfileEventCompanyLinked  ProfileEventType = "company.linked"
	ProfileEventLinkingSkipped ProfileEventType = "company.linking_skipped"
	ProfileEventPrefsSaved     ProfileEventType = "preferences.saved"
)

type ProfileEvent struct {
	EventID    uuid.UUID        `json:"event_id"`
	EventType  ProfileEventType `json:"event_type"`
	UserID     uuid.UUID        `json:"user_id"`
	OccurredAt time.Time        `json:"occurred_at"`
	Data       map[string]any   `json:"data,omitempty"`
}

type EventPublisher interface {
	PublishProfileEvent(ctx context.Context, evt ProfileEvent) error
}

// ProfileEventStore keeps the setup audit trail written by the worker.
type ProfileEventStore interface {
	Append(ctx context.Context, evt ProfileEvent) error
}
