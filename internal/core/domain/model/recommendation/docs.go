// Package recommendation provides the Recommendation aggregate: a
// time-bounded, non-exclusive offer of a match shown to a driver. Unlike a
// reservation, the same load may be recommended to many drivers in parallel;
// exclusivity only begins once one of them reserves.
//
// Key business rules:
//   - Every recommendation carries an expiry (default 24 hours when the
//     caller does not specify one)
//   - Status moves monotonically toward a terminal state (Accepted,
//     Declined, Expired); Viewed is the only non-terminal intermediate
//     state and is reachable only from Active
//   - Marking an already-viewed recommendation as viewed is a no-op;
//     any transition out of a terminal status is a conflict
package recommendation
