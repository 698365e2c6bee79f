// Package common defines shared constants and sentinel errors used across
// client and server layers of the seller admin backend. Callers should use
// errors.Is to match these values and KindOf to classify an arbitrary error.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrVersionConflict = errors.New("version conflict")
	ErrStore           = errors.New("store error")

	// Service-level errors.
	ErrorInternal       = errors.New("internal error")
	ErrInvalidRole      = errors.New("invalid role")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrInvalidReference = errors.New("invalid reference")
	ErrMalformedRequest = errors.New("malformed request")

	// Auth errors (invalid, malformed or missing token).
	ErrorUnauthorized = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
)

// Kind is the stable category of a failure. The same kind always maps to the
// same status code at the transport boundary.
type Kind int

const (
	KindNone Kind = iota
	KindInvalidRole
	KindNotAuthorized
	KindInvalidPassword
	KindInvalidReference
	KindMalformedRequest
	KindNotFound
	KindAlreadyExists
	KindUnauthenticated
	KindStoreError
	KindInternalError
)

var kindCodes = map[Kind]string{
	KindNone:             "OK",
	KindInvalidRole:      "INVALID_ROLE",
	KindNotAuthorized:    "NOT_AUTHORIZED",
	KindInvalidPassword:  "INVALID_PASSWORD",
	KindInvalidReference: "INVALID_REFERENCE",
	KindMalformedRequest: "MALFORMED_REQUEST",
	KindNotFound:         "NOT_FOUND",
	KindAlreadyExists:    "ALREADY_EXISTS",
	KindUnauthenticated:  "UNAUTHENTICATED",
	KindStoreError:       "STORE_ERROR",
	KindInternalError:    "INTERNAL_ERROR",
}

// String returns the stable text code of the kind, e.g. "NOT_AUTHORIZED".
func (k Kind) String() string {
	if s, ok := kindCodes[k]; ok {
		return s
	}
	return kindCodes[KindInternalError]
}

// ParseKind is the inverse of Kind.String. Unknown codes parse as KindInternalError.
func ParseKind(code string) Kind {
	for k, s := range kindCodes {
		if s == code {
			return k
		}
	}
	return KindInternalError
}

// Sentinel returns the sentinel error that represents the kind.
func (k Kind) Sentinel() error {
	switch k {
	case KindNone:
		return nil
	case KindInvalidRole:
		return ErrInvalidRole
	case KindNotAuthorized:
		return ErrNotAuthorized
	case KindInvalidPassword:
		return ErrInvalidPassword
	case KindInvalidReference:
		return ErrInvalidReference
	case KindMalformedRequest:
		return ErrMalformedRequest
	case KindNotFound:
		return ErrorNotFound
	case KindAlreadyExists:
		return ErrAlreadyExists
	case KindUnauthenticated:
		return ErrorUnauthorized
	case KindStoreError:
		return ErrStore
	default:
		return ErrorInternal
	}
}

// KindOf classifies err. Errors that match no sentinel are internal errors.
// A lost compare-and-set is reported as a store error: the caller may retry.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidRole):
		return KindInvalidRole
	case errors.Is(err, ErrNotAuthorized):
		return KindNotAuthorized
	case errors.Is(err, ErrInvalidPassword):
		return KindInvalidPassword
	case errors.Is(err, ErrInvalidReference):
		return KindInvalidReference
	case errors.Is(err, ErrMalformedRequest):
		return KindMalformedRequest
	case errors.Is(err, ErrorNotFound):
		return KindNotFound
	case errors.Is(err, ErrAlreadyExists):
		return KindAlreadyExists
	case errors.Is(err, ErrorUnauthorized), errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired):
		return KindUnauthenticated
	case errors.Is(err, ErrStore), errors.Is(err, ErrVersionConflict):
		return KindStoreError
	default:
		return KindInternalError
	}
}

// StoreFailure converts an error returned by a repository into a service
// error. Classified repository errors pass through; anything else is a
// persistence failure wrapped with ErrStore.
func StoreFailure(err error) error {
	if err == nil {
		return nil
	}
	switch KindOf(err) {
	case KindNotFound, KindAlreadyExists, KindStoreError:
		return err
	}
	return fmt.Errorf("%w: %w", ErrStore, err)
}

// Malformed wraps a validation failure as ErrMalformedRequest.
func Malformed(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrMalformedRequest, err)
}
