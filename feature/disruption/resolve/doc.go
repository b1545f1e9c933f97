// Package resolve reads the segment and competitor associations currently stored for
// an (industry, organization) pair. Both reads are single set-based joins; an empty
// result is an empty slice.
package resolve
