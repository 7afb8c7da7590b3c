package recommendation

import (
	"fmt"

	"freightmatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a recommendation.
//
// State transitions:
//
//	Active ──> Viewed ──> Accepted
//	   │          │  └──> Declined
//	   │          └─────> Expired
//	   ├──> Accepted / Declined (a driver may act without the app
//	   │                         reporting a view first)
//	   └──> Expired
//
// Accepted, Declined, and Expired are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Active is the initial status: the offer is live and unseen.
	Active

	// Viewed indicates the driver has seen the offer. Non-terminal.
	Viewed

	// Accepted indicates the driver acted on the offer. Terminal.
	Accepted

	// Declined indicates the driver turned the offer down. Terminal.
	Declined

	// Expired indicates the offer timed out. Terminal.
	Expired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Active:   "Active",
		Viewed:   "Viewed",
		Accepted: "Accepted",
		Declined: "Declined",
		Expired:  "Expired",
	}
}

// StatusFromString parses a status from its string representation.
func StatusFromString(str string) (Status, error) {
	for s, name := range getStatusStrings() {
		if s != Unknown && name == str {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid recommendation status", str))
}

// Validate checks if the Status value is a member of the defined set.
func (s Status) Validate() error {
	switch s {
	case Active, Viewed, Accepted, Declined, Expired:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid recommendation status", s))
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
	case Accepted, Declined, Expired:
		return true
	default:
		return false
	}
}
