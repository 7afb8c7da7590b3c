package match

import (
	"errors"
	"fmt"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/errs"
)

// ErrSegmentIsNotConstructed is returned when a Segment was not created via
// the NewSegment constructor.
var ErrSegmentIsNotConstructed = errors.New("Segment must be created via NewSegment constructor")

// Segment is one driver leg of a relay match. A relay splits one load across
// an ordered sequence of segments; each segment carries its own driver, route
// endpoints, rate, and a status drawn from the match status enum.
//
// Segment order is contiguous from 0; the parent Match validates contiguity
// when the relay is constructed.
type Segment struct {
	index       int
	driverID    kernel.UUID
	origin      string
	destination string
	rate        float64
	status      Status

	isConstructed bool
}

// NewSegment creates a relay segment in Pending status.
func NewSegment(index int, driverID kernel.UUID, origin string, destination string, rate float64) (Segment, error) {
	s := Segment{
		index:         index,
		status:        Pending,
		isConstructed: true,
	}

	if index < 0 {
		return Segment{}, errs.NewValueIsInvalidErrorWithCause("segment index is invalid",
			fmt.Errorf("%d is negative", index))
	}
	if driverID.IsZero() {
		return Segment{}, errs.NewValueIsRequiredError("segment driverId")
	}
	if origin == "" {
		return Segment{}, errs.NewValueIsRequiredError("segment origin")
	}
	if destination == "" {
		return Segment{}, errs.NewValueIsRequiredError("segment destination")
	}
	if rate < 0 {
		return Segment{}, errs.NewValueIsOutOfRangeError("segment rate", rate, 0, maxRate)
	}

	s.driverID = driverID
	s.origin = origin
	s.destination = destination
	s.rate = rate
	return s, nil
}

// RestoreSegment reconstructs a segment from persistence.
func RestoreSegment(index int, driverID kernel.UUID, origin string, destination string, rate float64, status Status) (Segment, error) {
	if err := status.Validate(); err != nil {
		return Segment{}, err
	}

	return Segment{
		index:         index,
		driverID:      driverID,
		origin:        origin,
		destination:   destination,
		rate:          rate,
		status:        status,
		isConstructed: true,
	}, nil
}

// Validate ensures the segment was created via NewSegment or RestoreSegment.
func (s Segment) Validate() error {
	if !s.isConstructed {
		return ErrSegmentIsNotConstructed
	}
	return nil
}

// Index returns the segment's position in the relay, starting at 0.
func (s Segment) Index() int { return s.index }

// DriverID returns the driver assigned to this leg.
func (s Segment) DriverID() kernel.UUID { return s.driverID }

// Origin returns the pickup endpoint of this leg.
func (s Segment) Origin() string { return s.origin }

// Destination returns the drop-off endpoint of this leg.
func (s Segment) Destination() string { return s.destination }

// Rate returns the per-segment rate.
func (s Segment) Rate() float64 { return s.rate }

// Status returns the segment's current status.
func (s Segment) Status() Status { return s.status }

// AcceptSegment records segment driver commitment on a relay match and applies
// the roll-up policy: once every segment is Accepted the relay itself becomes
// Accepted.
func (m *Match) AcceptSegment(index int) error {
	return m.transitionSegment(index, Accepted)
}

// DeclineSegment records a segment driver's refusal on a relay match. Any
// segment reaching a failure state collapses the whole relay to Cancelled:
// a load cannot travel a partial relay chain.
func (m *Match) DeclineSegment(index int) error {
	return m.transitionSegment(index, Declined)
}

// ExpireSegment times out a single relay segment, collapsing the relay the
// same way a declined segment does.
func (m *Match) ExpireSegment(index int) error {
	return m.transitionSegment(index, Expired)
}

func (m *Match) transitionSegment(index int, to Status) error {
	if m.kind != KindRelay {
		return errs.NewConflictError("match", "segments exist only on relay matches")
	}
	if index < 0 || index >= len(m.segments) {
		return errs.NewObjectNotFoundError("segment", index)
	}

	seg := &m.segments[index]
	if seg.status.IsTerminal() {
		return errs.NewConflictError("segment",
			fmt.Sprintf("segment %d is already %s", index, seg.status))
	}

	seg.status = to
	m.applySegmentRollup()
	m.touch()
	return nil
}

// applySegmentRollup derives the relay-level status from the segment statuses:
// all segments Accepted makes the relay Accepted; any segment in a failure
// state (Declined, Expired, Cancelled) makes the relay Cancelled; otherwise
// the relay keeps its current coordinating status.
func (m *Match) applySegmentRollup() {
	if m.status.IsTerminal() {
		return
	}

	allAccepted := len(m.segments) > 0
	for _, s := range m.segments {
		switch s.status {
		case Declined, Expired, Cancelled:
			m.status = Cancelled
			m.reservedUntil = nil
			return
		case Accepted:
			// keep scanning
		default:
			allAccepted = false
		}
	}

	if allAccepted {
		m.status = Accepted
		m.reservedUntil = nil
		// a relay is accepted at the sum of its segment rates
		rate := m.proposedRate
		m.acceptedRate = &rate
	}
}

func (m *Match) setSegments(segments []Segment) error {
	if len(segments) < 2 {
		return errs.NewValueIsInvalidError("a relay match requires at least two segments")
	}

	for i, s := range segments {
		if err := s.Validate(); err != nil {
			return err
		}
		if s.index != i {
			return errs.NewValueIsInvalidErrorWithCause("segment order is invalid",
				fmt.Errorf("segment at position %d has index %d; indexes must be contiguous from 0", i, s.index))
		}
	}

	m.segments = append([]Segment(nil), segments...)
	return nil
}
