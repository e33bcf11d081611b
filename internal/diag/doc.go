// Package diag defines the diagnostic model used by the attribute layer.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for failures that are
//     recoverable by the caller (checked attribute factories, decode hooks).
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// Programming errors (bad downcasts, mismatched bit widths, out-of-bounds
// construction) never go through this package; they panic at the call site.
//
// Package diag performs no formatting, IO, or CLI integration. Rendering
// lives with the tools that consume a Bag.
package diag
