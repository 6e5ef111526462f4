package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindAsset
	KindInternal
)

// AppError carries an error kind so the HTTP layer can pick a status code
// without inspecting lower-level driver errors.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func Validation(message string, err error) *AppError {
	return New(KindValidation, message, err)
}

func NotFound(message string, err error) *AppError {
	return New(KindNotFound, message, err)
}

func Conflict(message string, err error) *AppError {
	return New(KindConflict, message, err)
}

func Asset(message string, err error) *AppError {
	return New(KindAsset, message, err)
}

func Internal(message string, err error) *AppError {
	return New(KindInternal, message, err)
}

func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

func IsNotFound(err error) bool {
	return IsKind(err, KindNotFound)
}

// HTTPStatus maps an error to the status code of the JSON error response.
// Unrecognized errors fall through to 500.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}

	switch appErr.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for an error, hiding internal
// detail for errors that did not come from this package.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
