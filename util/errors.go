package util

import (
	"errors"
	"net/http"
)

// Kind classifies a domain failure so the response layer can map it
// without inspecting messages.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindActorNotFound
	KindForbidden
	KindNotFound
	KindDuplicateBillingID
	KindDuplicateOpID
	KindUnknownScanType
	KindInvalidSchedule
	KindConstraintViolation
	KindGatewayDegraded
)

var kindNames = map[Kind]string{
	KindInternal:            "Internal",
	KindInvalid:             "Invalid",
	KindActorNotFound:       "ActorNotFound",
	KindForbidden:           "Forbidden",
	KindNotFound:            "NotFound",
	KindDuplicateBillingID:  "DuplicateBillingId",
	KindDuplicateOpID:       "DuplicateOpId",
	KindUnknownScanType:     "UnknownScanType",
	KindInvalidSchedule:     "InvalidSchedule",
	KindConstraintViolation: "ConstraintViolation",
	KindGatewayDegraded:     "GatewayDegraded",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// HTTPStatus is the transport status reported for a failure of this kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalid, KindUnknownScanType, KindInvalidSchedule:
		return http.StatusBadRequest
	case KindActorNotFound:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicateBillingID, KindDuplicateOpID:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// AppError is an expected domain failure. Its message is safe to show to
// the client.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewError(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func WrapError(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind carried by err, or KindInternal for anything that
// is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
