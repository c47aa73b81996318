package app

import (
	"regexp"
	"strings"
)

// RedactionToken replaces credential values in anything that gets logged.
const RedactionToken = "XXX"

// Redactor scrubs credential material from logged URLs and error text.
// The query-parameter patterns are compiled once at construction; the
// methods are safe for concurrent use.
type Redactor struct {
	patterns []*regexp.Regexp
	repls    []string
	secrets  []string
}

// NewRedactor builds a Redactor that masks the value of each named query
// parameter and removes each literal secret from free text. Empty secrets
// are ignored.
func NewRedactor(params, secrets []string) *Redactor {
	r := &Redactor{}
	for _, p := range params {
		r.patterns = append(r.patterns, regexp.MustCompile(regexp.QuoteMeta(p)+`=[^&]*`))
		r.repls = append(r.repls, p+"="+RedactionToken)
	}
	for _, s := range secrets {
		if s != "" {
			r.secrets = append(r.secrets, s)
		}
	}
	return r
}

// URL replaces the value of each configured query parameter with the
// redaction token. The input does not need to be a parseable URL; the
// replacement is textual so partially built strings are safe too.
func (r *Redactor) URL(rawURL string) string {
	for i, re := range r.patterns {
		rawURL = re.ReplaceAllString(rawURL, r.repls[i])
	}
	return rawURL
}

// Text removes literal secret values from free text, such as an error
// message echoing a response body.
func (r *Redactor) Text(s string) string {
	for _, secret := range r.secrets {
		s = strings.ReplaceAll(s, secret, RedactionToken)
	}
	return s
}
