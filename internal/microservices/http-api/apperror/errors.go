// Package apperror defines the error kinds the HTTP API reports and how
// each kind maps onto a status code and response envelope.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	Unauthorized
	Forbidden
	NotFound
	Conflict
	TooManyRequests
	Upstream
)

// InternalMessage is the only message clients see for unrecognised failures.
const InternalMessage = "Internal Server Error"

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case TooManyRequests:
		return "too_many_requests"
	case Upstream:
		return "upstream"
	default:
		return "internal"
	}
}

// StatusCode maps a kind to its HTTP status. Conflicts are reported as 400
// to keep the contract the frontend already handles.
func (k Kind) StatusCode() int {
	switch k {
	case Validation, Conflict:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case TooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure carrying a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind, so errors.Is(err, &Error{Kind: NotFound}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewValidation(message string) *Error   { return New(Validation, message) }
func NewUnauthorized(message string) *Error { return New(Unauthorized, message) }
func NewForbidden(message string) *Error    { return New(Forbidden, message) }
func NewNotFound(message string) *Error     { return New(NotFound, message) }
func NewConflict(message string) *Error     { return New(Conflict, message) }

func NewUpstream(message string, err error) *Error {
	return Wrap(Upstream, message, err)
}

// KindOf reports the kind of the first *Error in err's chain, Internal otherwise.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// Response is the JSON envelope every error response uses.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ToResponse builds the envelope for err. Internal failures never leak detail.
func ToResponse(err error) (int, Response) {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Kind == Internal {
		return http.StatusInternalServerError, Response{
			Status:  "error",
			Message: InternalMessage,
			Code:    http.StatusInternalServerError,
		}
	}

	code := appErr.Kind.StatusCode()
	status := "error"
	if code < http.StatusInternalServerError {
		status = "fail"
	}
	return code, Response{Status: status, Message: appErr.Message, Code: code}
}
