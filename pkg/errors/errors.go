package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeUnauthorized  Code = "UNAUTHORIZED"
	CodeForbidden     Code = "FORBIDDEN"
	CodeNotFound      Code = "NOT_FOUND"
	CodeConflict      Code = "CONFLICT"
	CodeStateConflict Code = "STATE_CONFLICT"
	CodeRateLimit     Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal      Code = "INTERNAL_ERROR"
	CodeDependency    Code = "DEPENDENCY_ERROR"
)

// Metadata describes how a code is presented to clients. ExposeMessage
// means the error's own message is safe to show in place of PublicMessage.
type Metadata struct {
	HTTPStatus     int
	PublicMessage  string
	ExposeMessage  bool
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation:    {http.StatusBadRequest, "Please check the highlighted fields.", true, true},
	CodeUnauthorized:  {http.StatusUnauthorized, "Please log in to continue.", true, false},
	CodeForbidden:     {http.StatusForbidden, "You do not have access to that page.", true, false},
	CodeNotFound:      {http.StatusNotFound, "We could not find that page.", true, false},
	CodeConflict:      {http.StatusConflict, "That already exists.", true, true},
	CodeStateConflict: {http.StatusUnprocessableEntity, "That change is not allowed right now.", true, true},
	CodeRateLimit:     {http.StatusTooManyRequests, "Too many attempts. Please wait and try again.", true, true},
	CodeInternal:      {http.StatusInternalServerError, "Something went wrong on our side.", false, false},
	CodeDependency:    {http.StatusServiceUnavailable, "The service is temporarily unavailable.", false, true},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// IsCode reports whether the outermost typed error in err's chain has code.
func IsCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.code == code
}

// FieldErrors maps a form field to its user-facing message.
type FieldErrors map[string]string

// Validation builds a validation error for a single form field.
func Validation(field, message string) *Error {
	return New(CodeValidation, message).WithDetails(FieldErrors{field: message})
}

// NotFound builds a not-found error naming the missing resource.
func NotFound(resource string) *Error {
	return New(CodeNotFound, resource+" not found")
}

// FieldConflict builds a conflict error pinned to a form field.
func FieldConflict(field, message string) *Error {
	return New(CodeConflict, message).WithDetails(FieldErrors{field: message})
}

// Transition builds the error for a disallowed status change.
func Transition(entity string, from, to any) *Error {
	return New(CodeStateConflict, fmt.Sprintf("%s cannot move from %v to %v", entity, from, to))
}
