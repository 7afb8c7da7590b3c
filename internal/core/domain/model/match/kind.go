package match

import (
	"fmt"

	"freightmatch/internal/pkg/errs"
)

// Kind distinguishes the match variants the optimizer can propose.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindDirect pairs one load with one driver end to end.
	KindDirect

	// KindRelay splits one load across an ordered sequence of driver segments.
	KindRelay

	// KindHubExchange hands the load over at a fixed exchange hub.
	KindHubExchange
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown:     "unknown",
		KindDirect:      "direct",
		KindRelay:       "relay",
		KindHubExchange: "hub_exchange",
	}
}

// KindFromString parses a kind from its wire representation.
func KindFromString(s string) (Kind, error) {
	for k, str := range getKindStrings() {
		if k != KindUnknown && str == s {
			return k, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%q is not a valid match kind", s))
}

// Validate checks if the Kind value is a member of the defined set.
func (k Kind) Validate() error {
	switch k {
	case KindDirect, KindRelay, KindHubExchange:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%d is not a valid match kind", k))
	}
}

// String returns the wire representation of the kind.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}
