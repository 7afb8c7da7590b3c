package match

import (
	"fmt"

	"freightmatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a match.
// It implements a state machine with defined transitions to ensure
// matches follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Recommended ──> Reserved ──> Accepted
//	                 │              │
//	                 ├──> Declined <┤
//	                 └──> Expired  <┘
//	any non-terminal ──> Cancelled
//
// Accepted, Declined, Expired, and Cancelled are terminal: the downstream
// load-execution lifecycle is owned by other services.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when a match is created from
	// optimizer output. It has not yet been offered to a driver.
	Pending

	// Recommended indicates the match has been offered to a driver
	// as a recommendation, without any exclusivity.
	Recommended

	// Reserved indicates a driver holds an exclusive, time-bounded
	// reservation on the match.
	Reserved

	// Accepted indicates the driver committed to the match and the
	// reservation was converted. Terminal.
	Accepted

	// Declined indicates the driver turned the match down. Terminal.
	Declined

	// Expired indicates the recommendation or reservation timed out
	// before the driver acted. Terminal.
	Expired

	// Cancelled indicates the match was withdrawn while still in a
	// non-terminal state. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "Unknown",
		Pending:     "Pending",
		Recommended: "Recommended",
		Reserved:    "Reserved",
		Accepted:    "Accepted",
		Declined:    "Declined",
		Expired:     "Expired",
		Cancelled:   "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:     "Pending",
		Recommended: "Recommended",
		Reserved:    "Reserved",
		Accepted:    "Accepted",
		Declined:    "Declined",
		Expired:     "Expired",
		Cancelled:   "Cancelled",
	}
}

// StatusFromString parses a status from its string representation.
func StatusFromString(str string) (Status, error) {
	for s, name := range getValidStatusStrings() {
		if name == str {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", str))
}

// Validate checks if the Status value is a member of the defined set.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements the fmt.Stringer interface and is safe to call
// on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case Accepted, Declined, Expired, Cancelled:
		return true
	default:
		return false
	}
}

// Recommend transitions the status to Recommended.
//
// Valid transitions:
//   - Pending -> Recommended
//
// Returns (0, Conflict) if the transition is not allowed from the current status.
func (s Status) Recommend() (Status, error) {
	if s != Pending {
		return 0, transitionConflict(s, Recommended)
	}
	return Recommended, nil
}

// Reserve transitions the status to Reserved.
//
// Valid transitions:
//   - Recommended -> Reserved
//
// Returns (0, Conflict) if the transition is not allowed from the current status.
func (s Status) Reserve() (Status, error) {
	if s != Recommended {
		return 0, transitionConflict(s, Reserved)
	}
	return Reserved, nil
}

// Accept transitions the status to Accepted.
//
// Valid transitions:
//   - Reserved -> Accepted (reservation converted)
//
// Returns (0, Conflict) if the transition is not allowed from the current status.
func (s Status) Accept() (Status, error) {
	if s != Reserved {
		return 0, transitionConflict(s, Accepted)
	}
	return Accepted, nil
}

// Decline transitions the status to Declined.
//
// Valid transitions:
//   - Recommended -> Declined
//   - Reserved -> Declined
//
// Returns (0, Conflict) if the transition is not allowed from the current status.
func (s Status) Decline() (Status, error) {
	if s != Recommended && s != Reserved {
		return 0, transitionConflict(s, Declined)
	}
	return Declined, nil
}

// Expire transitions the status to Expired.
//
// Valid transitions:
//   - Recommended -> Expired (recommendation timeout)
//   - Reserved -> Expired (reservation timeout)
//
// Returns (0, Conflict) if the transition is not allowed from the current status.
func (s Status) Expire() (Status, error) {
	if s != Recommended && s != Reserved {
		return 0, transitionConflict(s, Expired)
	}
	return Expired, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid from any non-terminal status.
// Returns (0, Conflict) if the current status is terminal or invalid.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, transitionConflict(s, Cancelled)
	}
	return Cancelled, nil
}

func transitionConflict(from Status, to Status) error {
	return errs.NewConflictError(
		"matchStatus",
		fmt.Sprintf("cannot transition match from %s to %s", from, to),
	)
}
