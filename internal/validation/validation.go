// Package validation contains the logic for validating
// request data.
//
// It binds path parameters and JSON bodies into typed request structs,
// enforces the rules declared in their `validate` struct tags with the
// `validator` library, and turns every failure into an errs.Violation
// so the client receives all problems of a request in one response.
package validation

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/deppfellow/url-summarizer/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with validator tags (`validate:"required,gt=0"`)
// - Implement Validate() error that calls validation.Struct(req)
type Validatable interface {
	Validate() error
}

// PathBindable is implemented by requests that read path parameters.
// BindPath registers each parameter on the binder; conversion failures
// are collected by the binder and reported as violations.
type PathBindable interface {
	BindPath(b *echo.ValueBinder)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Field names are reported as "<source>.<name>" so a FieldError
	// carries its own location.
	v.RegisterTagNameFunc(fieldLocation)

	mustRegister(v, tagURLSchemePresent, hasURLScheme)
	mustRegister(v, tagURLScheme, allowedURLScheme)
	mustRegister(v, tagURLHost, hasURLHost)

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

func fieldLocation(fld reflect.StructField) string {
	if name := fld.Tag.Get("param"); name != "" {
		return errs.LocPath + "." + name
	}

	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		name = fld.Name
	}
	return errs.LocBody + "." + name
}

// Struct runs struct-tag validation on s.
func Struct(s any) error {
	return validate.Struct(s)
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. Path parameters are bound through PathBindable, if implemented.
//  2. For POST, PUT and PATCH the JSON body is decoded into payload.
//     An empty body counts as "{}" and Content-Type is not required.
//  3. payload.Validate() applies the struct-tag rules.
//
// Violations from all three steps are merged (one per location, path
// before body) and returned as a single 422 *errs.HTTPError. When the
// body is not valid JSON only the path fields are checked in step 3.
func BindAndValidate(c echo.Context, payload Validatable) error {
	var violations errs.Violations

	if p, ok := payload.(PathBindable); ok {
		violations = append(violations, bindPath(c, p)...)
	}

	bodyDecoded := true
	if hasBody(c.Request().Method) {
		bodyViolations, ok, err := bindBody(c, payload)
		if err != nil {
			return err
		}
		bodyDecoded = ok
		violations = append(violations, bodyViolations...)
	}

	if err := payload.Validate(); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("failed to validate request: %w", err)
		}

		seen := make(map[string]bool, len(violations))
		for _, v := range violations {
			seen[v.Key()] = true
		}

		for _, fe := range validationErrors {
			v := violationFromFieldError(fe)
			// A body that failed to decode has no meaningful fields.
			if !bodyDecoded && v.Source() != errs.LocPath {
				continue
			}
			if seen[v.Key()] {
				continue
			}
			seen[v.Key()] = true
			violations = append(violations, v)
		}
	}

	if len(violations) > 0 {
		return errs.NewValidationError(sortViolations(violations))
	}

	return nil
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

func bindPath(c echo.Context, p PathBindable) errs.Violations {
	b := echo.PathParamsBinder(c)
	p.BindPath(b)

	var violations errs.Violations
	for _, err := range b.BindErrors() {
		var bindingErr *echo.BindingError
		if !errors.As(err, &bindingErr) {
			continue
		}
		violations = append(violations, errs.Violation{
			Loc:  []any{errs.LocPath, bindingErr.Field},
			Msg:  "value is not a valid integer",
			Type: "type_error.integer",
		})
	}
	return violations
}

// bindBody decodes the JSON body into payload. ok is false when the body
// is not a single JSON object, in which case body fields must not be
// validated. err is set only for transport failures such as an
// exceeded body limit, which keep their own status.
func bindBody(c echo.Context, payload any) (violations errs.Violations, ok bool, err error) {
	req := c.Request()
	if req.Body == nil || req.ContentLength == 0 {
		return nil, true, nil
	}

	dec := json.NewDecoder(req.Body)
	err = dec.Decode(payload)
	if errors.Is(err, io.EOF) {
		return nil, true, nil
	}
	if err == nil {
		// Only whitespace may follow the object.
		end := dec.InputOffset()
		_, err = dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, true, nil
		}
		if !isHTTPError(err) {
			return errs.Violations{jsonDecodeViolation(end, "Extra data")}, false, nil
		}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return nil, false, httpErr
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return errs.Violations{jsonDecodeViolation(syntaxErr.Offset, syntaxErr.Error())}, false, nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		// A body that is not an object has no fields to check.
		return errs.Violations{violationFromTypeError(typeErr)}, typeErr.Field != "", nil
	}

	return errs.Violations{{
		Loc:  []any{errs.LocBody},
		Msg:  "Invalid JSON body",
		Type: "value_error.jsondecode",
	}}, false, nil
}

func isHTTPError(err error) bool {
	var httpErr *echo.HTTPError
	return errors.As(err, &httpErr)
}

func jsonDecodeViolation(pos int64, msg string) errs.Violation {
	return errs.Violation{
		Loc:  []any{errs.LocBody, pos},
		Msg:  "Invalid JSON body",
		Type: "value_error.jsondecode",
		Ctx: map[string]any{
			"msg": msg,
			"pos": pos,
		},
	}
}

func violationFromTypeError(e *json.UnmarshalTypeError) errs.Violation {
	if e.Field == "" {
		return errs.Violation{
			Loc:  []any{errs.LocBody},
			Msg:  "value is not a valid dict",
			Type: "type_error.dict",
		}
	}

	loc := []any{errs.LocBody, e.Field}
	kind := e.Type.Kind()
	if kind == reflect.Pointer {
		kind = e.Type.Elem().Kind()
	}

	switch kind {
	case reflect.String:
		return errs.Violation{Loc: loc, Msg: "str type expected", Type: "type_error.str"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return errs.Violation{Loc: loc, Msg: "value is not a valid integer", Type: "type_error.integer"}
	default:
		return errs.Violation{Loc: loc, Msg: fmt.Sprintf("%s type expected", kind), Type: "type_error"}
	}
}

// violationFromFieldError converts one validator.FieldError into a Violation.
func violationFromFieldError(fe validator.FieldError) errs.Violation {
	loc := location(fe.Field())

	switch fe.Tag() {
	case "required":
		return errs.Violation{Loc: loc, Msg: "field required", Type: "value_error.missing"}

	case "gt":
		return errs.Violation{
			Loc:  loc,
			Msg:  fmt.Sprintf("ensure this value is greater than %s", fe.Param()),
			Type: "value_error.number.not_gt",
			Ctx:  map[string]any{"limit_value": numericParam(fe.Param())},
		}

	case "min":
		// min tag means:
		// - for strings: minimum length
		// - for numbers: minimum value
		if fe.Kind() == reflect.String {
			return errs.Violation{
				Loc:  loc,
				Msg:  fmt.Sprintf("ensure this value has at least %s characters", fe.Param()),
				Type: "value_error.any_str.min_length",
				Ctx:  map[string]any{"limit_value": numericParam(fe.Param())},
			}
		}
		return errs.Violation{
			Loc:  loc,
			Msg:  fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param()),
			Type: "value_error.number.not_ge",
			Ctx:  map[string]any{"limit_value": numericParam(fe.Param())},
		}

	case "max":
		if fe.Kind() == reflect.String {
			return errs.Violation{
				Loc:  loc,
				Msg:  fmt.Sprintf("ensure this value has at most %s characters", fe.Param()),
				Type: "value_error.any_str.max_length",
				Ctx:  map[string]any{"limit_value": numericParam(fe.Param())},
			}
		}
		return errs.Violation{
			Loc:  loc,
			Msg:  fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param()),
			Type: "value_error.number.not_le",
			Ctx:  map[string]any{"limit_value": numericParam(fe.Param())},
		}

	case tagURLSchemePresent:
		return errs.Violation{Loc: loc, Msg: "invalid or missing URL scheme", Type: "value_error.url.scheme"}

	case tagURLScheme:
		return errs.Violation{
			Loc:  loc,
			Msg:  "URL scheme not permitted",
			Type: "value_error.url.scheme",
			Ctx:  map[string]any{"allowed_schemes": strings.Fields(fe.Param())},
		}

	case tagURLHost:
		return errs.Violation{Loc: loc, Msg: "URL host invalid", Type: "value_error.url.host"}

	default:
		msg := fe.Tag()
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s:%s", fe.Tag(), fe.Param())
		}
		return errs.Violation{Loc: loc, Msg: "invalid value: " + msg, Type: "value_error." + fe.Tag()}
	}
}

// location splits a "<source>.<name>" field name into a Loc slice.
func location(field string) []any {
	source, name, found := strings.Cut(field, ".")
	if !found {
		return []any{errs.LocBody, field}
	}
	return []any{source, name}
}

func numericParam(param string) any {
	if n, err := strconv.ParseInt(param, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(param, 64); err == nil {
		return f
	}
	return param
}

var sourceOrder = map[string]int{
	errs.LocPath: 0,
	errs.LocBody: 1,
}

func sortViolations(v errs.Violations) errs.Violations {
	sort.SliceStable(v, func(i, j int) bool {
		return sourceOrder[v[i].Source()] < sourceOrder[v[j].Source()]
	})
	return v
}
