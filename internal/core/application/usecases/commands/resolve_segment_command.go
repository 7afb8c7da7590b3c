package commands

import (
	"errors"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/pkg/errs"
	"freightmatch/internal/pkg/guard"
)

var ErrResolveSegmentCommandIsNotConstructed = errors.New(
	"ResolveSegmentCommand must be created via one of its constructors",
)

// ResolveSegmentCommand settles one leg of a relay match: the segment driver
// accepts, declines, or times out. Segment outcomes feed the relay roll-up,
// so resolving a segment can settle the whole relay.
type ResolveSegmentCommand struct { //nolint:recvcheck //using for validation
	matchID      kernel.UUID
	segmentIndex int
	outcome      match.Status

	guard guard.ConstructorGuard
}

// NewAcceptSegmentCommand creates a command recording the segment driver's
// commitment. Once every segment is accepted the relay itself is accepted.
func NewAcceptSegmentCommand(matchID kernel.UUID, segmentIndex int) (ResolveSegmentCommand, error) {
	return newResolveSegmentCommand(matchID, segmentIndex, match.Accepted)
}

// NewDeclineSegmentCommand creates a command recording the segment driver's
// refusal, which collapses the relay to cancelled.
func NewDeclineSegmentCommand(matchID kernel.UUID, segmentIndex int) (ResolveSegmentCommand, error) {
	return newResolveSegmentCommand(matchID, segmentIndex, match.Declined)
}

// NewExpireSegmentCommand creates a command timing out the segment's offer,
// which collapses the relay the same way a decline does.
func NewExpireSegmentCommand(matchID kernel.UUID, segmentIndex int) (ResolveSegmentCommand, error) {
	return newResolveSegmentCommand(matchID, segmentIndex, match.Expired)
}

func newResolveSegmentCommand(
	matchID kernel.UUID,
	segmentIndex int,
	outcome match.Status,
) (ResolveSegmentCommand, error) {
	if err := matchID.Validate(); err != nil {
		return ResolveSegmentCommand{}, err
	}
	if segmentIndex < 0 {
		return ResolveSegmentCommand{}, errs.NewValueIsInvalidError("segmentIndex")
	}

	return ResolveSegmentCommand{
		matchID:      matchID,
		segmentIndex: segmentIndex,
		outcome:      outcome,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through a constructor.
func (c ResolveSegmentCommand) Validate() error {
	return c.guard.Validate(ErrResolveSegmentCommandIsNotConstructed)
}

// MatchID returns the identifier of the relay match.
func (c ResolveSegmentCommand) MatchID() kernel.UUID {
	return c.matchID
}

// SegmentIndex returns the position of the segment being resolved.
func (c ResolveSegmentCommand) SegmentIndex() int {
	return c.segmentIndex
}

// Outcome returns the terminal segment status being recorded.
func (c ResolveSegmentCommand) Outcome() match.Status {
	return c.outcome
}
