// Package apperr classifies failures into the categories the UI reacts to:
// missing credentials, network trouble, bad input and server-reported
// business failures.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthenticated
	KindNetwork
	KindTimeout
	KindNotFound
	KindValidation
	KindBusiness
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindBusiness:
		return "business"
	default:
		return "unknown"
	}
}

// Error is a classified failure. Message is the text suitable for an alert,
// Status the HTTP status seen on the wire (0 when no response arrived).
type Error struct {
	Kind    Kind
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

var ErrUnauthenticated = &Error{Kind: KindUnauthenticated, Message: "Please sign in again to continue."}

func Unauthenticated() error {
	return ErrUnauthenticated
}

func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func Business(status int, message string) error {
	return &Error{Kind: KindBusiness, Status: status, Message: message}
}

func Network(err error) error {
	return &Error{Kind: KindNetwork, Err: err}
}

func Timeout(err error) error {
	return &Error{Kind: KindTimeout, Err: err}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Status: 404, Message: message}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// CodeNotSent marks a network failure that happened before the request
// left the process, such as a refused dial or a failed DNS lookup.
const CodeNotSent = "not_sent"

// Unreachable is a network failure where the server never saw the request.
func Unreachable(err error) error {
	return &Error{Kind: KindNetwork, Code: CodeNotSent, Err: err}
}

// Transient reports whether resending the same request is safe and could
// succeed. Only failures that provably never reached the server qualify:
// after a timeout or a 5xx the server may already have acted on it.
func Transient(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == KindNetwork && e.Code == CodeNotSent
}

const (
	genericMessage  = "Something went wrong. Please try again."
	networkMessage  = "Unable to reach the server. Please check your connection and try again."
	timeoutMessage  = "The request timed out. Please try again."
	notFoundMessage = "The service is unavailable right now. Please try again later."
)

// UserMessage maps err to the alert text shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return genericMessage
	}
	switch e.Kind {
	case KindTimeout:
		return timeoutMessage
	case KindNetwork:
		return networkMessage
	case KindNotFound:
		if e.Message != "" {
			return e.Message
		}
		return notFoundMessage
	default:
		if e.Message != "" {
			return e.Message
		}
		return genericMessage
	}
}

// HTTPStatus picks the status the local surface answers with for err.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnauthenticated:
		return 401
	case KindValidation:
		return 400
	case KindNetwork, KindNotFound:
		return 502
	case KindTimeout:
		return 504
	case KindBusiness:
		return 422
	default:
		return 500
	}
}
