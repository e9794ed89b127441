package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Field    string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

// Error returns Msg as-is; messages carry the field name themselves.
func (e ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// Required is the error for a missing or empty mandatory field.
func Required(field string) ValidationError {
	return ValidationError{Field: field, Msg: field + " is required"}
}

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// MalformedInputError means the request body could not be decoded at all.
type MalformedInputError struct {
	Err error
}

func (e MalformedInputError) Error() string { return "Invalid JSON" }

func (e MalformedInputError) Unwrap() error { return e.Err }

// UpstreamError wraps failures of third-party APIs (mail, contacts).
type UpstreamError struct {
	Service string
	Msg     string
	Err     error
}

func (e UpstreamError) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Service == "" {
		return "upstream error: " + msg
	}
	return fmt.Sprintf("%s: %s", e.Service, msg)
}

func (e UpstreamError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsMalformedInput(err error) bool {
	var target MalformedInputError
	return errors.As(err, &target)
}

func IsUpstream(err error) bool {
	var target UpstreamError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

// FieldOf returns the request field an error points at, if any.
func FieldOf(err error) string {
	var v ValidationError
	if errors.As(err, &v) {
		return v.Field
	}
	var nf NotFoundError
	if errors.As(err, &nf) {
		return nf.Field
	}
	return ""
}
