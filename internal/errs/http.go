package errs

import (
	"fmt"
	"strings"
)

// Location prefixes used in Violation.Loc.
const (
	LocPath = "path"
	LocBody = "body"
)

// Violation represents one field-level validation failure.
// Example:
//
//	{ "loc": ["body", "url"], "msg": "field required", "type": "value_error.missing" }
type Violation struct {
	// Loc is the location of the offending value: the source
	// ("path" or "body") followed by the field name or byte offset.
	Loc []any `json:"loc"`

	// Msg is the human-readable error message.
	Msg string `json:"msg"`

	// Type is a machine-readable kind, e.g. "value_error.url.scheme".
	Type string `json:"type"`

	// Ctx carries optional context such as allowed values or limits.
	Ctx map[string]any `json:"ctx,omitempty"`
}

// Source returns the first element of Loc ("path" or "body").
func (v Violation) Source() string {
	if len(v.Loc) == 0 {
		return ""
	}
	s, _ := v.Loc[0].(string)
	return s
}

// Key renders Loc as a dotted string, e.g. "body.url".
func (v Violation) Key() string {
	parts := make([]string, 0, len(v.Loc))
	for _, p := range v.Loc {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ".")
}

// Violations is an ordered list of violations for a single request.
type Violations []Violation

func (v Violations) Error() string {
	keys := make([]string, 0, len(v))
	for _, violation := range v {
		keys = append(keys, violation.Key()+": "+violation.Msg)
	}
	return "validation failed: " + strings.Join(keys, "; ")
}

// Response is the JSON body written for every error response.
type Response struct {
	Detail any `json:"detail"`
}

// HTTPError is the main custom error type for API responses.
//
// Only Detail reaches the client. Code and Message are kept for logs
// and tracing so the client never sees internal error text.
type HTTPError struct {
	// Code is a machine-friendly error code (e.g. "NOT_FOUND").
	Code string `json:"-"`

	// Message is a log-friendly description.
	Message string `json:"-"`

	// Status is the HTTP status code.
	Status int `json:"-"`

	// Detail is the client-facing payload: a string or Violations.
	Detail any `json:"detail"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. Code and Status are
// not compared.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// Violations returns the validation violations carried by the error,
// or nil when Detail is not a violation list.
func (e *HTTPError) Violations() Violations {
	v, _ := e.Detail.(Violations)
	return v
}

// Response returns the body that should be written for this error.
func (e *HTTPError) Response() Response {
	return Response{Detail: e.Detail}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
