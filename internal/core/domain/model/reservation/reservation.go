package reservation

import (
	"errors"
	"fmt"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/errs"
)

// ErrReservationIsNotConstructed is returned when a Reservation instance was
// not created through the NewReservation factory method.
var ErrReservationIsNotConstructed = errors.New("Reservation must be created via NewReservation constructor")

// CancelReasonKey is the metadata key under which a cancellation reason is stored.
const CancelReasonKey = "cancel_reason"

// Reservation is a time-bounded exclusive hold a driver places on a match
// before accepting it. While a reservation is active and unexpired, no other
// reservation may exist for the same match, the same driver, or the same load.
type Reservation struct {
	id       kernel.UUID
	matchID  kernel.UUID
	driverID kernel.UUID
	loadID   kernel.UUID

	status    Status
	createdAt time.Time
	expiresAt time.Time

	// metadata carries free-form annotations such as the cancellation reason.
	metadata map[string]string

	isConstructed bool
}

// NewReservation creates an active reservation expiring at the given time.
// All references are required and the expiry must be after the creation time.
func NewReservation(
	id kernel.UUID,
	matchID kernel.UUID,
	driverID kernel.UUID,
	loadID kernel.UUID,
	expiresAt time.Time,
) (*Reservation, error) {
	r := &Reservation{
		status:        Active,
		createdAt:     time.Now().UTC(),
		metadata:      make(map[string]string),
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setMatchID(matchID),
		r.setDriverID(driverID),
		r.setLoadID(loadID),
		r.setExpiresAt(expiresAt),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreReservation reconstructs a reservation from persistence.
func RestoreReservation(
	id kernel.UUID,
	matchID kernel.UUID,
	driverID kernel.UUID,
	loadID kernel.UUID,
	status Status,
	createdAt time.Time,
	expiresAt time.Time,
	metadata map[string]string,
) (*Reservation, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	if metadata == nil {
		metadata = make(map[string]string)
	}

	return &Reservation{
		id:            id,
		matchID:       matchID,
		driverID:      driverID,
		loadID:        loadID,
		status:        status,
		createdAt:     createdAt,
		expiresAt:     expiresAt,
		metadata:      metadata,
		isConstructed: true,
	}, nil
}

// Validate ensures the Reservation instance was properly constructed.
func (r *Reservation) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReservationIsNotConstructed
	}
	return nil
}

// ID returns the reservation's unique identifier.
func (r *Reservation) ID() kernel.UUID { return r.id }

// MatchID returns the held match's identifier.
func (r *Reservation) MatchID() kernel.UUID { return r.matchID }

// DriverID returns the holding driver's identifier.
func (r *Reservation) DriverID() kernel.UUID { return r.driverID }

// LoadID returns the held load's identifier.
func (r *Reservation) LoadID() kernel.UUID { return r.loadID }

// Status returns the reservation's current status.
func (r *Reservation) Status() Status { return r.status }

// CreatedAt returns the creation timestamp.
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }

// ExpiresAt returns the moment the hold lapses.
func (r *Reservation) ExpiresAt() time.Time { return r.expiresAt }

// Metadata returns a copy of the reservation's annotations.
func (r *Reservation) Metadata() map[string]string {
	out := make(map[string]string, len(r.metadata))
	for k, v := range r.metadata {
		out[k] = v
	}
	return out
}

// IsActiveAt reports whether the reservation is live at the given instant:
// status Active and expiry still in the future.
func (r *Reservation) IsActiveAt(now time.Time) bool {
	return r.status == Active && r.expiresAt.After(now)
}

// Convert marks the hold as turned into an acceptance.
// Allowed only while the reservation is Active.
func (r *Reservation) Convert() error {
	if r.status != Active {
		return conflict(r.status, Converted)
	}
	r.status = Converted
	return nil
}

// Cancel releases the hold, recording the reason in the metadata.
// Allowed only while the reservation is Active.
func (r *Reservation) Cancel(reason string) error {
	if r.status != Active {
		return conflict(r.status, Cancelled)
	}
	r.status = Cancelled
	if reason != "" {
		r.metadata[CancelReasonKey] = reason
	}
	return nil
}

// Expire times the hold out. Expiring an already-expired reservation is a
// no-op; expiring from any other terminal status is a conflict. The no-op
// keeps concurrent sweepers benign: only the first conditional write wins,
// later ones observe the same terminal state.
func (r *Reservation) Expire() error {
	if r.status == Expired {
		return nil
	}
	if r.status != Active {
		return conflict(r.status, Expired)
	}
	r.status = Expired
	return nil
}

func conflict(from Status, to Status) error {
	return errs.NewConflictError(
		"reservationStatus",
		fmt.Sprintf("cannot transition reservation from %s to %s", from, to),
	)
}

func (r *Reservation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Reservation) setMatchID(id kernel.UUID) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("matchId")
	}
	r.matchID = id
	return nil
}

func (r *Reservation) setDriverID(id kernel.UUID) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("driverId")
	}
	r.driverID = id
	return nil
}

func (r *Reservation) setLoadID(id kernel.UUID) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("loadId")
	}
	r.loadID = id
	return nil
}

func (r *Reservation) setExpiresAt(expiresAt time.Time) error {
	if !expiresAt.After(r.createdAt) {
		return errs.NewValueIsInvalidErrorWithCause("expiresAt is invalid",
			fmt.Errorf("expiry %s is not after creation %s", expiresAt, r.createdAt))
	}
	r.expiresAt = expiresAt.UTC()
	return nil
}
