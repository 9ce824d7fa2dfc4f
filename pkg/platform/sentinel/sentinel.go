// Package sentinel holds infrastructure-level errors shared by every store.
//
// Stores return these, optionally wrapped, and services translate them into
// domain errors or domain answers: an unknown vessel is "not registered", an
// unknown location has an empty port state. Input validation never uses
// sentinels; it goes through pkg/domain-errors.
package sentinel

import "errors"

// ErrNotFound means the store holds no record under the requested key.
var ErrNotFound = errors.New("not found")
