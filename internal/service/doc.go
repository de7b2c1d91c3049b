// Package service implements the helper's use cases on top of the snapshot
// store and the optional remote collaborators.
//
// Every mutation re-reads the session's whole collection, applies the change
// and writes the whole collection back. Remote collaborators are optional:
// a nil dependency either degrades to a local fallback or reports
// ErrFeatureDisabled.
package service
