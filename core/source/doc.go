// Package source discovers the event files an extraction run consumes.
//
// Two implementations of Source exist:
//   - FileSource globs the local filesystem (doublestar syntax, `**` recurses).
//   - ObjectSource lists an S3-compatible bucket through core/storage and filters keys
//     with the same pattern syntax.
//
// Both return names sorted lexicographically; an extraction run processes files in
// exactly that order.
package source
