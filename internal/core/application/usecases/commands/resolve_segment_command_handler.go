package commands

import (
	"context"

	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/core/ports"
)

// ResolveSegmentCommandHandler records a segment driver's answer on a relay
// match. Resolving a segment can settle the relay itself: once every segment
// is accepted the relay becomes Accepted, and any declined or expired segment
// collapses it to Cancelled, since a load cannot travel a partial chain.
type ResolveSegmentCommandHandler struct {
	uowFactory MatchUoWFactory
	publisher  ports.EventPublisher
}

// NewResolveSegmentCommandHandler creates a handler for relay segment resolution.
func NewResolveSegmentCommandHandler(
	uowFactory MatchUoWFactory,
	publisher ports.EventPublisher,
) ResolveSegmentCommandHandler {
	return ResolveSegmentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the segment resolution.
// Returns a Conflict for non-relay matches and for segments already settled,
// and NotFound when the segment index does not exist on the relay.
func (h *ResolveSegmentCommandHandler) Handle(ctx context.Context, cmd ResolveSegmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	matchRepo := uow.MatchRepository()

	m, err := matchRepo.Get(ctx, cmd.MatchID())
	if err != nil {
		return err
	}

	prior := m.Status()

	switch cmd.Outcome() {
	case match.Declined:
		err = m.DeclineSegment(cmd.SegmentIndex())
	case match.Expired:
		err = m.ExpireSegment(cmd.SegmentIndex())
	default:
		err = m.AcceptSegment(cmd.SegmentIndex())
	}
	if err != nil {
		return err
	}

	if err = matchRepo.UpdateFrom(ctx, m, prior); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishSegmentEvent(ctx, h.publisher, segmentEventType(cmd.Outcome()), m, m.Segments()[cmd.SegmentIndex()])
	switch {
	case prior != match.Accepted && m.Status() == match.Accepted:
		publishMatchEvent(ctx, h.publisher, events.TypeMatchAccepted, m)
	case prior != match.Cancelled && m.Status() == match.Cancelled:
		publishMatchEvent(ctx, h.publisher, events.TypeMatchCancelled, m)
	}

	return nil
}

func segmentEventType(outcome match.Status) string {
	switch outcome {
	case match.Declined:
		return events.TypeSegmentDeclined
	case match.Expired:
		return events.TypeSegmentExpired
	default:
		return events.TypeSegmentAccepted
	}
}
