// Package domainerrors carries coded errors from services to transports.
//
// Services return *Error values so handlers can map failures to a stable
// wire code without inspecting message text. Store-level facts live in
// pkg/platform/sentinel and are translated into coded errors by services.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code is a stable, transport-agnostic error classification.
type Code string

const (
	CodeValidation         Code = "validation_error"
	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal_error"
	CodeInvariantViolation Code = "invariant_violation"

	// CodeVesselNotRegistered is returned when a reading references a vessel
	// with no directory entry.
	CodeVesselNotRegistered Code = "vessel_not_registered"
	// CodeAlertWriteFailed is returned when the mandatory alert for a
	// non-compliant reading could not be written. The reading is rolled back.
	CodeAlertWriteFailed Code = "alert_write_failed"
)

// Error is a coded domain error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// Is is shorthand for HasCode.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost code in the chain, or CodeInternal for
// uncoded errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the outermost domain message, or "" for uncoded errors.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
