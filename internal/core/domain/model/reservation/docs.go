// Package reservation provides the Reservation aggregate: an exclusive,
// time-bounded hold linking one match, one driver, and one load.
//
// Key business rules:
//   - At most one active, unexpired reservation may exist per match, per
//     driver, and per load at any instant (enforced together with the
//     persistence layer's conflict queries)
//   - The expiry time is strictly after the creation time
//   - A reservation transitions exactly once from Active to one of the
//     terminal statuses (Converted, Cancelled, Expired) and is never reopened
//   - Expiring an already-expired reservation is a no-op; every other
//     transition out of a terminal status is a conflict
package reservation
