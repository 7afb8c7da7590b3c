package reservation

import (
	"fmt"

	"freightmatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a reservation.
//
// State transitions:
//
//	Active ──> Converted   (driver accepted the match)
//	Active ──> Cancelled   (released before acceptance)
//	Active ──> Expired     (TTL elapsed)
//
// All three outcomes are terminal; a reservation is never reopened.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Active is the only live status: the hold is in force until its expiry.
	Active

	// Converted indicates the hold was turned into an acceptance. Terminal.
	Converted

	// Cancelled indicates the hold was explicitly released. Terminal.
	Cancelled

	// Expired indicates the hold timed out. Terminal.
	Expired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Active:    "Active",
		Converted: "Converted",
		Cancelled: "Cancelled",
		Expired:   "Expired",
	}
}

// Validate checks if the Status value is a member of the defined set.
func (s Status) Validate() error {
	switch s {
	case Active, Converted, Cancelled, Expired:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid reservation status", s))
	}
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case Converted, Cancelled, Expired:
		return true
	default:
		return false
	}
}
