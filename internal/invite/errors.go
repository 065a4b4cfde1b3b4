package invite

import (
	"errors"
	"fmt"
)

// Kind classifies service errors for translation into responses.
type Kind int

const (
	// KindInternal is any error without a more specific kind.
	KindInternal Kind = iota
	// KindAuth means the authorization code exchange or profile fetch failed.
	KindAuth
	// KindUnauthenticated means no token is stored for the requesting user.
	KindUnauthenticated
	// KindProvider means the calendar provider rejected or failed the request.
	KindProvider
	// KindMail means at least one invitation could not be sent.
	KindMail
	// KindInvalidRequest means the request could not be decoded.
	KindInvalidRequest
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindProvider:
		return "provider"
	case KindMail:
		return "mail"
	case KindInvalidRequest:
		return "invalid_request"
	default:
		return "internal"
	}
}

// Error is a classified service error.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds an *Error.
func E(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
