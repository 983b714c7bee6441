package validation

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	tagURLSchemePresent = "url_scheme_present"
	tagURLScheme        = "url_scheme"
	tagURLHost          = "url_host"
)

// schemeRegex matches a leading "<scheme>://".
var schemeRegex = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9+\-.]*)://`)

// URLScheme returns the lower-cased scheme of raw, or "" if raw does not
// start with "<scheme>://".
func URLScheme(raw string) string {
	m := schemeRegex.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

func hasURLScheme(fl validator.FieldLevel) bool {
	return URLScheme(fl.Field().String()) != ""
}

// allowedURLScheme checks the scheme against the space separated list
// in the tag parameter, e.g. `url_scheme=http https`.
func allowedURLScheme(fl validator.FieldLevel) bool {
	scheme := URLScheme(fl.Field().String())
	for _, allowed := range strings.Fields(fl.Param()) {
		if scheme == allowed {
			return true
		}
	}
	return false
}

func hasURLHost(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return u.Hostname() != ""
}

// TrimSpace trims surrounding whitespace from *s in place. A nil s is
// left alone so a missing field stays missing.
func TrimSpace(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
