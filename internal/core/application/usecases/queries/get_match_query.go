package queries

import (
	"errors"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/guard"
)

var (
	ErrGetMatchQueryIsNotConstructed = errors.New(
		"GetMatchQuery must be created via NewGetMatchQuery constructor",
	)
)

// GetMatchQuery retrieves a single match by its identifier, segments included.
//
// Example:
//
//	query, err := NewGetMatchQuery(matchID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetMatchQueryHandler(db)
//
//	m, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get match: %w", err)
//	}
//	fmt.Printf("Match %s is %s\n", m.ID, m.Status)
type GetMatchQuery struct {
	guard   guard.ConstructorGuard
	matchID kernel.UUID
}

// NewGetMatchQuery creates a query for a single match.
func NewGetMatchQuery(matchID kernel.UUID) (GetMatchQuery, error) {
	if err := matchID.Validate(); err != nil {
		return GetMatchQuery{}, err
	}

	return GetMatchQuery{
		guard:   guard.NewConstructorGuard(),
		matchID: matchID,
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMatchQuery) Validate() error {
	return q.guard.Validate(ErrGetMatchQueryIsNotConstructed)
}

// MatchID returns the identifier of the match to retrieve.
func (q GetMatchQuery) MatchID() kernel.UUID {
	return q.matchID
}

// MatchResponse represents match information for read-side consumers.
type MatchResponse struct {
	ID            kernel.UUID
	LoadID        kernel.UUID
	DriverID      kernel.UUID
	VehicleID     kernel.UUID
	Kind          string
	Status        string
	Score         float64
	ProposedRate  float64
	AcceptedRate  *float64
	ReservedUntil *time.Time
	DeclineReason string
	Segments      []SegmentResponse
	CreatedAt     time.Time
}

// SegmentResponse represents one relay segment of a match.
type SegmentResponse struct {
	Index       int
	DriverID    kernel.UUID
	Origin      string
	Destination string
	Rate        float64
	Status      string
}
