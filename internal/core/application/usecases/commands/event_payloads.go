package commands

import (
	"context"

	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/core/domain/model/recommendation"
	"freightmatch/internal/core/domain/model/reservation"
	"freightmatch/internal/core/ports"
)

// Event payloads are flat maps of the fields downstream consumers need.
// Publishing happens only after the transaction is committed; the publisher
// itself is fire-and-forget, so these helpers never return an error.

func publishMatchEvent(ctx context.Context, publisher ports.EventPublisher, eventType string, m *match.Match) {
	payload := map[string]any{
		"match_id":      m.ID().String(),
		"load_id":       m.LoadID().String(),
		"kind":          m.Kind().String(),
		"status":        m.Status().String(),
		"score":         m.Score(),
		"proposed_rate": m.ProposedRate(),
	}
	if !m.DriverID().IsZero() {
		payload["driver_id"] = m.DriverID().String()
	}
	if !m.VehicleID().IsZero() {
		payload["vehicle_id"] = m.VehicleID().String()
	}
	if rate := m.AcceptedRate(); rate != nil {
		payload["accepted_rate"] = *rate
	}
	if until := m.ReservedUntil(); until != nil {
		payload["reserved_until"] = *until
	}
	if reason := m.DeclineReason(); reason != "" {
		payload["decline_reason"] = reason
	}

	publisher.Publish(ctx, events.New(eventType, events.CategoryMatch, m.ID(), payload))
}

func publishSegmentEvent(ctx context.Context, publisher ports.EventPublisher, eventType string, m *match.Match, seg match.Segment) {
	payload := map[string]any{
		"match_id":      m.ID().String(),
		"load_id":       m.LoadID().String(),
		"segment_index": seg.Index(),
		"driver_id":     seg.DriverID().String(),
		"origin":        seg.Origin(),
		"destination":   seg.Destination(),
		"rate":          seg.Rate(),
		"status":        seg.Status().String(),
	}

	publisher.Publish(ctx, events.New(eventType, events.CategoryMatch, m.ID(), payload))
}

func publishReservationEvent(ctx context.Context, publisher ports.EventPublisher, eventType string, r *reservation.Reservation) {
	payload := map[string]any{
		"reservation_id": r.ID().String(),
		"match_id":       r.MatchID().String(),
		"driver_id":      r.DriverID().String(),
		"load_id":        r.LoadID().String(),
		"status":         r.Status().String(),
		"expires_at":     r.ExpiresAt(),
	}
	if reason, ok := r.Metadata()[reservation.CancelReasonKey]; ok {
		payload["cancel_reason"] = reason
	}

	publisher.Publish(ctx, events.New(eventType, events.CategoryReservation, r.ID(), payload))
}

func publishRecommendationEvent(ctx context.Context, publisher ports.EventPublisher, eventType string, r *recommendation.Recommendation) {
	payload := map[string]any{
		"recommendation_id": r.ID().String(),
		"match_id":          r.MatchID().String(),
		"load_id":           r.LoadID().String(),
		"driver_id":         r.DriverID().String(),
		"status":            r.Status().String(),
		"proposed_rate":     r.ProposedRate(),
		"expires_at":        r.ExpiresAt(),
	}
	if reason := r.DeclineReason(); reason != "" {
		payload["decline_reason"] = reason
	}

	publisher.Publish(ctx, events.New(eventType, events.CategoryRecommendation, r.ID(), payload))
}
