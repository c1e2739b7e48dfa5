package services

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindBadRequest      Kind = "bad_request"
	KindConflict        Kind = "conflict"
)

// ServiceError is an error meant to reach the API caller as is.
type ServiceError struct {
	Kind    Kind
	Message string
}

func (e ServiceError) Error() string {
	return e.Message
}

func (e ServiceError) Status() int {
	switch e.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func ErrNotFound(msg string) error {
	return ServiceError{Kind: KindNotFound, Message: msg}
}

func ErrBadRequest(msg string) error {
	return ServiceError{Kind: KindBadRequest, Message: msg}
}

func ErrForbidden(msg string) error {
	return ServiceError{Kind: KindForbidden, Message: msg}
}

func ErrUnauthorized(msg string) error {
	return ServiceError{Kind: KindUnauthenticated, Message: msg}
}

func ErrConflict(msg string) error {
	return ServiceError{Kind: KindConflict, Message: msg}
}

// KindOf returns the kind of a ServiceError anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var serr ServiceError
	if errors.As(err, &serr) {
		return serr.Kind, true
	}
	return "", false
}

func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s -> %w", msg, err)
}
