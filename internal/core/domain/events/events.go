// Package events defines the lifecycle event envelope published to downstream
// consumers after every successful state transition. Events are emitted only
// after the authoritative state change is durably committed, never before:
// readers of the event stream never observe a lifecycle event for a state
// that was not actually committed, at the cost of delivery itself being
// best-effort.
package events

import (
	"time"

	"freightmatch/internal/core/domain/model/kernel"
)

// Producer identifies this service in the event metadata.
const Producer = "freightmatch"

// Version is the envelope schema version.
const Version = "1.0"

// Event categories group related lifecycle events.
const (
	CategoryMatch          = "match"
	CategoryReservation    = "reservation"
	CategoryRecommendation = "recommendation"
)

// Match lifecycle event types, one per successful transition.
const (
	TypeMatchCreated     = "match-created"
	TypeMatchRecommended = "match-recommended"
	TypeMatchReserved    = "match-reserved"
	TypeMatchAccepted    = "match-accepted"
	TypeMatchDeclined    = "match-declined"
	TypeMatchExpired     = "match-expired"
	TypeMatchCancelled   = "match-cancelled"
)

// Relay segment lifecycle event types. Segment events carry the parent
// match id as their correlation id so a relay's events stay in one partition.
const (
	TypeSegmentAccepted = "segment-accepted"
	TypeSegmentDeclined = "segment-declined"
	TypeSegmentExpired  = "segment-expired"
)

// Reservation lifecycle event types.
const (
	TypeReservationCreated   = "reservation-created"
	TypeReservationConverted = "reservation-converted"
	TypeReservationCancelled = "reservation-cancelled"
	TypeReservationExpired   = "reservation-expired"
)

// Recommendation lifecycle event types.
const (
	TypeRecommendationCreated  = "recommendation-created"
	TypeRecommendationViewed   = "recommendation-viewed"
	TypeRecommendationAccepted = "recommendation-accepted"
	TypeRecommendationDeclined = "recommendation-declined"
	TypeRecommendationExpired  = "recommendation-expired"
)

// Metadata is the envelope header carried by every event.
type Metadata struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Version       string    `json:"version"`
	Timestamp     time.Time `json:"timestamp"`
	Producer      string    `json:"producer"`
	CorrelationID string    `json:"correlation_id"`
	Category      string    `json:"category"`
}

// Event is a type-tagged lifecycle notification. The payload is a flat
// map of the fields downstream consumers need; its shape is part of the
// published contract per event type.
type Event struct {
	Metadata Metadata       `json:"metadata"`
	Payload  map[string]any `json:"payload"`
}

// New builds an event envelope. The correlation id ties together all events
// emitted by one logical operation; by convention it is the id of the
// aggregate the operation started from.
func New(eventType string, category string, correlationID kernel.UUID, payload map[string]any) Event {
	return Event{
		Metadata: Metadata{
			ID:            kernel.NewUUID().String(),
			Type:          eventType,
			Version:       Version,
			Timestamp:     time.Now().UTC(),
			Producer:      Producer,
			CorrelationID: correlationID.String(),
			Category:      category,
		},
		Payload: payload,
	}
}

// Key returns the partition key for the event: the correlation id, so all
// events for one aggregate land on the same partition in order.
func (e Event) Key() string {
	return e.Metadata.CorrelationID
}
