package errs

import (
	"net/http"
)

// NewNotFoundError creates a 404 Not Found HTTPError whose detail is message.
//
// code overrides the default "NOT_FOUND" code when non-nil.
func NewNotFoundError(message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusNotFound,
		Detail:  message,
	}
}

// NewValidationError creates a 422 Unprocessable Entity HTTPError
// carrying every violation collected for the request.
func NewValidationError(violations Violations) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusUnprocessableEntity)),
		Message: violations.Error(),
		Status:  http.StatusUnprocessableEntity,
		Detail:  violations,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError() *HTTPError {
	return NewStatusError(http.StatusTooManyRequests)
}

// NewStatusError creates an HTTPError whose detail is the standard
// status text, e.g. 405 -> "Method Not Allowed".
func NewStatusError(status int) *HTTPError {
	text := http.StatusText(status)
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(text),
		Message: text,
		Status:  status,
		Detail:  text,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The detail is the generic status text, never the underlying error.
func NewInternalServerError() *HTTPError {
	return NewStatusError(http.StatusInternalServerError)
}

// NewInternalServerErrorWithCode is NewInternalServerError with a custom
// code and log message, used when the cause has been classified.
func NewInternalServerErrorWithCode(code, message string) *HTTPError {
	e := NewInternalServerError()
	e.Code = code
	e.Message = message
	return e
}
