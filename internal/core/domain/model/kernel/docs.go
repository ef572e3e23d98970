// Package kernel holds the value objects shared by every aggregate of the
// dispatch domain: UUID identifiers and geographic Locations.
//
// Both types are immutable and their zero values are invalid; callers must
// use the constructors, which validate input and return errs package errors.
package kernel
