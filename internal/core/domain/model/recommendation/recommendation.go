package recommendation

import (
	"errors"
	"fmt"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/errs"
)

// ErrRecommendationIsNotConstructed is returned when a Recommendation was not
// created through the NewRecommendation factory method.
var ErrRecommendationIsNotConstructed = errors.New("Recommendation must be created via NewRecommendation constructor")

// DefaultTTL is applied when the caller does not specify an expiration.
const DefaultTTL = 24 * time.Hour

// LoadSummary carries the display fields a driver sees alongside an offer.
// These are denormalized copies; the load itself is owned elsewhere.
type LoadSummary struct {
	Origin        string
	Destination   string
	EquipmentType string
	WeightLbs     float64
}

// Recommendation is a time-bounded offer of a match to a driver. It copies
// the score and rate from the match at creation time so the offer a driver
// saw is retained even if the match is later re-scored.
type Recommendation struct {
	id       kernel.UUID
	matchID  kernel.UUID
	loadID   kernel.UUID
	driverID kernel.UUID

	score        float64
	scoreFactors map[string]float64
	proposedRate float64

	loadSummary LoadSummary

	emptyMiles      float64
	loadedMiles     float64
	deadheadPercent float64

	status        Status
	declineReason string
	expiresAt     time.Time
	viewedAt      *time.Time
	createdAt     time.Time

	isConstructed bool
}

// NewRecommendation creates an active offer of a match to a driver.
// A non-positive ttl falls back to DefaultTTL. Deadhead percentage is derived
// from the supplied empty and loaded miles.
func NewRecommendation(
	id kernel.UUID,
	matchID kernel.UUID,
	loadID kernel.UUID,
	driverID kernel.UUID,
	score float64,
	scoreFactors map[string]float64,
	proposedRate float64,
	loadSummary LoadSummary,
	emptyMiles float64,
	loadedMiles float64,
	ttl time.Duration,
) (*Recommendation, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	r := &Recommendation{
		status:        Active,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}
	r.expiresAt = r.createdAt.Add(ttl)

	if err := errors.Join(
		r.setID(id),
		r.setMatchID(matchID),
		r.setLoadID(loadID),
		r.setDriverID(driverID),
		r.setMiles(emptyMiles, loadedMiles),
	); err != nil {
		return nil, err
	}

	r.score = score
	r.scoreFactors = copyFactors(scoreFactors)
	r.proposedRate = proposedRate
	r.loadSummary = loadSummary

	return r, nil
}

// RestoreRecommendation reconstructs a recommendation from persistence.
func RestoreRecommendation(
	id kernel.UUID,
	matchID kernel.UUID,
	loadID kernel.UUID,
	driverID kernel.UUID,
	score float64,
	scoreFactors map[string]float64,
	proposedRate float64,
	loadSummary LoadSummary,
	emptyMiles float64,
	loadedMiles float64,
	deadheadPercent float64,
	status Status,
	declineReason string,
	expiresAt time.Time,
	viewedAt *time.Time,
	createdAt time.Time,
) (*Recommendation, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Recommendation{
		id:              id,
		matchID:         matchID,
		loadID:          loadID,
		driverID:        driverID,
		score:           score,
		scoreFactors:    copyFactors(scoreFactors),
		proposedRate:    proposedRate,
		loadSummary:     loadSummary,
		emptyMiles:      emptyMiles,
		loadedMiles:     loadedMiles,
		deadheadPercent: deadheadPercent,
		status:          status,
		declineReason:   declineReason,
		expiresAt:       expiresAt,
		viewedAt:        viewedAt,
		createdAt:       createdAt,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Recommendation instance was properly constructed.
func (r *Recommendation) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecommendationIsNotConstructed
	}
	return nil
}

// ID returns the recommendation's unique identifier.
func (r *Recommendation) ID() kernel.UUID { return r.id }

// MatchID returns the offered match's identifier.
func (r *Recommendation) MatchID() kernel.UUID { return r.matchID }

// LoadID returns the referenced load's identifier.
func (r *Recommendation) LoadID() kernel.UUID { return r.loadID }

// DriverID returns the driver the offer is shown to.
func (r *Recommendation) DriverID() kernel.UUID { return r.driverID }

// Score returns the efficiency score copied from the match.
func (r *Recommendation) Score() float64 { return r.score }

// ScoreFactors returns a copy of the weighted score sub-factors.
func (r *Recommendation) ScoreFactors() map[string]float64 {
	return copyFactors(r.scoreFactors)
}

// ProposedRate returns the rate shown with the offer.
func (r *Recommendation) ProposedRate() float64 { return r.proposedRate }

// LoadSummary returns the display fields shown with the offer.
func (r *Recommendation) LoadSummary() LoadSummary { return r.loadSummary }

// EmptyMiles returns the deadhead distance to the load's origin.
func (r *Recommendation) EmptyMiles() float64 { return r.emptyMiles }

// LoadedMiles returns the loaded distance of the haul.
func (r *Recommendation) LoadedMiles() float64 { return r.loadedMiles }

// DeadheadPercent returns the share of total miles driven empty.
func (r *Recommendation) DeadheadPercent() float64 { return r.deadheadPercent }

// Status returns the recommendation's current status.
func (r *Recommendation) Status() Status { return r.status }

// DeclineReason returns the recorded decline reason, if any.
func (r *Recommendation) DeclineReason() string { return r.declineReason }

// ExpiresAt returns the moment the offer lapses.
func (r *Recommendation) ExpiresAt() time.Time { return r.expiresAt }

// ViewedAt returns when the driver first saw the offer, or nil.
func (r *Recommendation) ViewedAt() *time.Time { return r.viewedAt }

// CreatedAt returns the creation timestamp.
func (r *Recommendation) CreatedAt() time.Time { return r.createdAt }

// IsOutstanding reports whether the offer is still awaiting a driver decision
// (Active or Viewed).
func (r *Recommendation) IsOutstanding() bool {
	return r.status == Active || r.status == Viewed
}

// MarkViewed records that the driver has seen the offer. Marking an
// already-viewed recommendation is a no-op; marking a terminal one is a
// conflict.
func (r *Recommendation) MarkViewed(at time.Time) error {
	if r.status == Viewed {
		return nil
	}
	if r.status != Active {
		return conflict(r.status, Viewed)
	}

	r.status = Viewed
	viewed := at.UTC()
	r.viewedAt = &viewed
	return nil
}

// MarkAccepted records the driver's acceptance. Allowed from Active or Viewed.
func (r *Recommendation) MarkAccepted() error {
	if !r.IsOutstanding() {
		return conflict(r.status, Accepted)
	}
	r.status = Accepted
	return nil
}

// MarkDeclined records the driver's refusal with an optional reason.
// Allowed from Active or Viewed.
func (r *Recommendation) MarkDeclined(reason string) error {
	if !r.IsOutstanding() {
		return conflict(r.status, Declined)
	}
	r.status = Declined
	r.declineReason = reason
	return nil
}

// MarkExpired times the offer out. Expiring an already-expired recommendation
// is a no-op; expiring from Accepted or Declined is a conflict.
func (r *Recommendation) MarkExpired() error {
	if r.status == Expired {
		return nil
	}
	if !r.IsOutstanding() {
		return conflict(r.status, Expired)
	}
	r.status = Expired
	return nil
}

func conflict(from Status, to Status) error {
	return errs.NewConflictError(
		"recommendationStatus",
		fmt.Sprintf("cannot transition recommendation from %s to %s", from, to),
	)
}

func (r *Recommendation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Recommendation) setMatchID(id kernel.UUID) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("matchId")
	}
	r.matchID = id
	return nil
}

func (r *Recommendation) setLoadID(id kernel.UUID) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("loadId")
	}
	r.loadID = id
	return nil
}

func (r *Recommendation) setDriverID(id kernel.UUID) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("driverId")
	}
	r.driverID = id
	return nil
}

func (r *Recommendation) setMiles(empty float64, loaded float64) error {
	if empty < 0 {
		return errs.NewValueIsOutOfRangeError("emptyMiles", empty, 0, maxMiles)
	}
	if loaded < 0 {
		return errs.NewValueIsOutOfRangeError("loadedMiles", loaded, 0, maxMiles)
	}

	r.emptyMiles = empty
	r.loadedMiles = loaded
	if total := empty + loaded; total > 0 {
		r.deadheadPercent = empty / total * 100
	}
	return nil
}

const maxMiles = 100_000

func copyFactors(factors map[string]float64) map[string]float64 {
	if factors == nil {
		return nil
	}
	out := make(map[string]float64, len(factors))
	for k, v := range factors {
		out[k] = v
	}
	return out
}
