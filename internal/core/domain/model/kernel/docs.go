// Package kernel provides the shared domain primitives of the dispatch service.
//
// The package includes:
//   - UUID: a validated identifier value object backed by google/uuid
//   - Identity: the (user id, email) pair used for authorization checks and
//     as the real-time subscription key
//   - Coordinates: an optional geographic point resolved from a free-text destination
//
// Values are immutable and safe for concurrent use.
package kernel
