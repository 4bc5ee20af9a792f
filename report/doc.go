// Package report wraps diff results in a versioned, timestamped envelope for
// downstream persistence.
//
// The canonicalization core never writes files; it produces the payload and
// leaves storage to its callers. A Report is that payload: a diff result
// plus the identifying metadata (report ID, schema version, generation time)
// a persistence layer needs to index it.
package report
