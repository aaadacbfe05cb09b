// Package diagnostic provides structured errors, warnings and notes for the
// type-mapping scan and build.
//
// Key capabilities:
//   - Missing, invalid and colliding label reports
//   - Unresolvable or unsupported marked types
//   - Notes on candidates dropped by the exclude filter
//   - A single error value that unwraps to the label package sentinels
package diagnostic
