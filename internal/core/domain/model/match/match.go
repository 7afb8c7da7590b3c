package match

import (
	"errors"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/errs"
)

// ErrMatchIsNotConstructed is returned when a Match instance was not created
// through the NewMatch/NewRelayMatch factory methods. This ensures all matches
// are properly validated.
var ErrMatchIsNotConstructed = errors.New("Match must be created via NewMatch or NewRelayMatch constructor")

// Match represents a candidate or confirmed pairing of one load with one
// driver/vehicle. It is the aggregate root that manages the match lifecycle
// from optimizer proposal through reservation to acceptance or one of the
// failure outcomes.
//
// Match maintains these invariants:
//   - exactly one status at a time, drawn from the defined set
//   - acceptedRate is nil unless the status is Accepted
//   - reservedUntil is nil unless the status is Reserved
//   - decline reason/notes are recorded only when the match is declined
//   - a relay match carries contiguously indexed segments; other kinds carry none
//
// Matches are never physically deleted; terminal states are retained for audit.
type Match struct {
	id        kernel.UUID
	loadID    kernel.UUID
	driverID  kernel.UUID
	vehicleID kernel.UUID

	kind   Kind
	status Status

	// score and its weighted sub-factors are produced by the optimization
	// engine and consumed here as opaque inputs.
	score        float64
	scoreFactors map[string]float64

	proposedRate  float64
	acceptedRate  *float64
	reservedUntil *time.Time

	declineReason string
	declineNotes  string

	segments []Segment

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewMatch creates a new direct or hub-exchange Match in Pending status.
// The load, driver, and vehicle references are required; the score and
// proposed rate must not be negative.
func NewMatch(
	id kernel.UUID,
	loadID kernel.UUID,
	driverID kernel.UUID,
	vehicleID kernel.UUID,
	kind Kind,
	score float64,
	scoreFactors map[string]float64,
	proposedRate float64,
) (*Match, error) {
	m := &Match{
		status:        Pending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}
	m.updatedAt = m.createdAt

	if kind == KindRelay {
		return nil, errs.NewValueIsInvalidError("relay matches must be created via NewRelayMatch")
	}

	if err := errors.Join(
		m.setID(id),
		m.setLoadID(loadID),
		m.setDriverID(driverID),
		m.setVehicleID(vehicleID),
		m.setKind(kind),
		m.setScore(score, scoreFactors),
		m.setProposedRate(proposedRate),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// NewRelayMatch creates a new relay Match in Pending status from an ordered
// sequence of driver segments. Segment indexes must be contiguous from 0.
// Relay matches carry no top-level driver or vehicle reference; each segment
// names its own driver.
func NewRelayMatch(
	id kernel.UUID,
	loadID kernel.UUID,
	score float64,
	scoreFactors map[string]float64,
	segments []Segment,
) (*Match, error) {
	m := &Match{
		kind:          KindRelay,
		status:        Pending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}
	m.updatedAt = m.createdAt

	if err := errors.Join(
		m.setID(id),
		m.setLoadID(loadID),
		m.setScore(score, scoreFactors),
		m.setSegments(segments),
	); err != nil {
		return nil, err
	}

	for _, s := range m.segments {
		m.proposedRate += s.Rate()
	}

	return m, nil
}

// RestoreMatch reconstructs a Match from persistence. It does not re-run the
// construction-time validation beyond the status and kind enums; the stored
// record is assumed to have been valid when written.
func RestoreMatch(
	id kernel.UUID,
	loadID kernel.UUID,
	driverID kernel.UUID,
	vehicleID kernel.UUID,
	kind Kind,
	status Status,
	score float64,
	scoreFactors map[string]float64,
	proposedRate float64,
	acceptedRate *float64,
	reservedUntil *time.Time,
	declineReason string,
	declineNotes string,
	segments []Segment,
	createdAt time.Time,
	updatedAt time.Time,
) (*Match, error) {
	if err := errors.Join(id.Validate(), kind.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Match{
		id:            id,
		loadID:        loadID,
		driverID:      driverID,
		vehicleID:     vehicleID,
		kind:          kind,
		status:        status,
		score:         score,
		scoreFactors:  copyFactors(scoreFactors),
		proposedRate:  proposedRate,
		acceptedRate:  acceptedRate,
		reservedUntil: reservedUntil,
		declineReason: declineReason,
		declineNotes:  declineNotes,
		segments:      append([]Segment(nil), segments...),
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Match instance was properly constructed.
// Returns ErrMatchIsNotConstructed otherwise.
func (m *Match) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMatchIsNotConstructed
	}
	return nil
}

// IsEqual compares two matches by their unique identifiers.
func (m *Match) IsEqual(other *Match) bool {
	return other != nil && m.id.IsEqual(other.id)
}

// ID returns the match's unique identifier.
func (m *Match) ID() kernel.UUID {
	return m.id
}

// LoadID returns the referenced load's identifier.
func (m *Match) LoadID() kernel.UUID {
	return m.loadID
}

// DriverID returns the referenced driver's identifier.
// For relay matches this is the zero UUID; drivers live on the segments.
func (m *Match) DriverID() kernel.UUID {
	return m.driverID
}

// VehicleID returns the referenced vehicle's identifier.
func (m *Match) VehicleID() kernel.UUID {
	return m.vehicleID
}

// Kind returns the match kind.
func (m *Match) Kind() Kind {
	return m.kind
}

// Status returns the current status of the match.
func (m *Match) Status() Status {
	return m.status
}

// Score returns the efficiency score supplied by the optimizer.
func (m *Match) Score() float64 {
	return m.score
}

// ScoreFactors returns a copy of the weighted score sub-factors.
func (m *Match) ScoreFactors() map[string]float64 {
	return copyFactors(m.scoreFactors)
}

// ProposedRate returns the rate proposed to the driver.
func (m *Match) ProposedRate() float64 {
	return m.proposedRate
}

// AcceptedRate returns the rate the driver accepted at.
// Returns nil unless the match is Accepted.
func (m *Match) AcceptedRate() *float64 {
	return m.acceptedRate
}

// ReservedUntil returns the reservation deadline.
// Returns nil unless the match is Reserved.
func (m *Match) ReservedUntil() *time.Time {
	return m.reservedUntil
}

// DeclineReason returns the recorded decline reason, if any.
func (m *Match) DeclineReason() string {
	return m.declineReason
}

// DeclineNotes returns the recorded decline notes, if any.
func (m *Match) DeclineNotes() string {
	return m.declineNotes
}

// Segments returns a copy of the relay segments.
// Empty for non-relay matches.
func (m *Match) Segments() []Segment {
	return append([]Segment(nil), m.segments...)
}

// CreatedAt returns the creation timestamp.
func (m *Match) CreatedAt() time.Time {
	return m.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (m *Match) UpdatedAt() time.Time {
	return m.updatedAt
}

// Recommend marks the match as offered to a driver.
func (m *Match) Recommend() error {
	newStatus, err := m.status.Recommend()
	if err != nil {
		return err
	}

	m.status = newStatus
	m.touch()
	return nil
}

// Reserve marks the match as exclusively held until the given deadline.
// The deadline must lie in the future.
func (m *Match) Reserve(until time.Time) error {
	newStatus, err := m.status.Reserve()
	if err != nil {
		return err
	}

	if !until.After(time.Now().UTC()) {
		return errs.NewValueIsInvalidError("reservation deadline must be in the future")
	}

	m.status = newStatus
	deadline := until.UTC()
	m.reservedUntil = &deadline
	m.touch()
	return nil
}

// Accept records the driver's commitment at the given rate and converts the
// match to Accepted. Allowed only from Reserved; the reservation deadline is
// cleared as part of the transition.
func (m *Match) Accept(rate float64) error {
	newStatus, err := m.status.Accept()
	if err != nil {
		return err
	}

	if rate < 0 {
		return errs.NewValueIsOutOfRangeError("acceptedRate", rate, 0, maxRate)
	}

	m.status = newStatus
	m.acceptedRate = &rate
	m.reservedUntil = nil
	m.touch()
	return nil
}

// Decline records the driver's refusal with the supplied reason and notes.
// Allowed only from Recommended or Reserved.
func (m *Match) Decline(reason string, notes string) error {
	newStatus, err := m.status.Decline()
	if err != nil {
		return err
	}

	if reason == "" {
		return errs.NewValueIsRequiredError("declineReason")
	}

	m.status = newStatus
	m.declineReason = reason
	m.declineNotes = notes
	m.reservedUntil = nil
	m.touch()
	return nil
}

// Expire closes the match after its recommendation or reservation timed out.
func (m *Match) Expire() error {
	newStatus, err := m.status.Expire()
	if err != nil {
		return err
	}

	m.status = newStatus
	m.reservedUntil = nil
	m.touch()
	return nil
}

// Cancel withdraws the match from any non-terminal state.
func (m *Match) Cancel() error {
	newStatus, err := m.status.Cancel()
	if err != nil {
		return err
	}

	m.status = newStatus
	m.reservedUntil = nil
	m.touch()
	return nil
}

// UpdateProposedRate changes the proposed rate of a match that has not yet
// reached a terminal state.
func (m *Match) UpdateProposedRate(rate float64) error {
	if m.status.IsTerminal() {
		return errs.NewConflictError("match", "cannot update a match in a terminal state")
	}
	if err := m.setProposedRate(rate); err != nil {
		return err
	}
	m.touch()
	return nil
}

// UpdateScore replaces the efficiency score and its sub-factors on a match
// that has not yet reached a terminal state.
func (m *Match) UpdateScore(score float64, factors map[string]float64) error {
	if m.status.IsTerminal() {
		return errs.NewConflictError("match", "cannot update a match in a terminal state")
	}
	if err := m.setScore(score, factors); err != nil {
		return err
	}
	m.touch()
	return nil
}

func (m *Match) touch() {
	m.updatedAt = time.Now().UTC()
}

const maxRate = 1_000_000

func (m *Match) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Match) setLoadID(id kernel.UUID) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("loadId")
	}
	m.loadID = id
	return nil
}

func (m *Match) setDriverID(id kernel.UUID) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("driverId")
	}
	m.driverID = id
	return nil
}

func (m *Match) setVehicleID(id kernel.UUID) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("vehicleId")
	}
	m.vehicleID = id
	return nil
}

func (m *Match) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	m.kind = kind
	return nil
}

func (m *Match) setScore(score float64, factors map[string]float64) error {
	if score < 0 {
		return errs.NewValueIsOutOfRangeError("score", score, 0, maxRate)
	}
	m.score = score
	m.scoreFactors = copyFactors(factors)
	return nil
}

func (m *Match) setProposedRate(rate float64) error {
	if rate < 0 {
		return errs.NewValueIsOutOfRangeError("proposedRate", rate, 0, maxRate)
	}
	m.proposedRate = rate
	return nil
}

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
