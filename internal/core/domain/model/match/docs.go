// Package match provides domain entities and business logic for pairing freight
// loads with drivers. It implements the Match aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Match: The aggregate root that manages match identity, scoring, rates, and lifecycle
//   - Status: A state machine that enforces valid match status transitions
//   - Kind: The match variant (direct, relay, hub exchange)
//   - Segment: One driver leg of a relay match
//
// Key business rules:
//   - A match references exactly one load and, unless it is a relay, one driver and vehicle
//   - Status follows a defined workflow: Pending -> Recommended -> Reserved -> Accepted,
//     with Declined, Expired, and Cancelled as alternative terminal outcomes
//   - The accepted rate is recorded only when the match is accepted
//   - The reservation deadline is set only while the match is reserved
//   - Matches are never deleted; terminal states are retained for audit
package match
