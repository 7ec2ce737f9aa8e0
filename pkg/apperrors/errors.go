package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"
)

// Kind is the stable category exposed to callers. Workflow methods return
// business kinds before any write happens; infrastructure failures always
// mean the whole transaction rolled back and the command may be retried.
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindAlreadyDeleted Kind = "already_deleted"
	KindValidation     Kind = "validation_failed"
	KindInfrastructure Kind = "infrastructure_failure"
)

type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func AlreadyDeleted(format string, args ...any) *Error {
	return &Error{Kind: KindAlreadyDeleted, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Infrastructure wraps an entity-store failure. The cause stays available
// for logs via Unwrap but is never rendered into client-facing messages.
func Infrastructure(message string, cause error) *Error {
	return &Error{Kind: KindInfrastructure, Message: message, cause: cause}
}

// KindOf extracts the kind, defaulting to infrastructure for untyped errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInfrastructure
}

// Message returns the client-safe message for err. Untyped errors collapse
// to a generic message so entity-store details never leak.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindAlreadyDeleted:
		return http.StatusGone
	case KindValidation:
		return http.StatusBadRequest
	case KindInfrastructure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WrapDBError translates Postgres constraint violations into business kinds.
// 23505 is a unique violation, 23503 a foreign key violation.
func WrapDBError(message string, err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return Infrastructure(message, err)
	}

	switch pqErr.Code {
	case "23505":
		return Conflict("%s: value already registered", message)
	case "23503":
		return Conflict("%s: value is referenced by another resource", message)
	default:
		return Infrastructure(message, err)
	}
}
