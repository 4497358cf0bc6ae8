// Copyright (c) 2026 Vidora. All rights reserved.

// Package timestamp generates and compares the fixed-width UTC timestamps
// stored on every Vidora document.
//
// # Format
//
// Timestamps are RFC 3339 in UTC with second precision ("2026-08-30T12:04:05Z").
// Because the format is fixed-width and zero-padded, lexicographic comparison
// of two stored timestamps equals chronological comparison. The ranking
// engine's "recent" sort depends on this property.
package timestamp

import "time"

// Layout is the storage format for document timestamps.
const Layout = "2006-01-02T15:04:05Z"

// Now returns the current UTC time in the storage format.
func Now() string {
	return time.Now().UTC().Format(Layout)
}

// Parse converts a stored timestamp back into a [time.Time].
func Parse(value string) (time.Time, error) {
	return time.Parse(Layout, value)
}

// Before reports whether timestamp a is chronologically before b.
//
// Both values must be in the storage format; the comparison is plain string
// ordering, which is valid only because the format is fixed-width.
func Before(a, b string) bool {
	return a < b
}
