package errors

import (
	"errors"
	"net/http"
)

// MapError converts a technical error into a user-friendly AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	technicalMessage := err.Error()

	switch {
	case errors.Is(err, ErrCityRequired):
		return NewAppError(technicalMessage, MsgCityRequired, ErrCodeCityRequired, http.StatusBadRequest, err)
	case errors.Is(err, ErrCityNotFound):
		return NewAppError(technicalMessage, MsgCityNotFound, ErrCodeCityNotFound, http.StatusNotFound, err)
	case errors.Is(err, ErrInvalidPriceRange):
		return NewAppError(technicalMessage, MsgInvalidParameters, ErrCodeInvalidParameters, http.StatusBadRequest, err)
	case errors.Is(err, ErrStreamingUnsupported):
		return NewAppError(technicalMessage, MsgFetchFailed, ErrCodeFetchFailed, http.StatusInternalServerError, err)
	default:
		return NewAppError(technicalMessage, MsgInternalError, ErrCodeInternal, http.StatusInternalServerError, err)
	}
}

// FetchFailed wraps a project production failure.
func FetchFailed(err error) *AppError {
	return NewAppError("project source failed: "+err.Error(), MsgFetchFailed, ErrCodeFetchFailed, http.StatusInternalServerError, err)
}
