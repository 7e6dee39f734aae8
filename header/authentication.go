package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
)

// Authentication is a credentials or challenge value:
// a scheme optionally followed by a token68 blob or an auth-param list.
// Authorization and Proxy-Authorization hold one, WWW-Authenticate and
// Proxy-Authenticate hold a list.
type Authentication struct {
	Scheme    string
	Parameter string
}

// NewAuthentication creates a validated Authentication.
func NewAuthentication(scheme, parameter string) (Authentication, error) {
	auth := Authentication{Scheme: scheme, Parameter: parameter}
	if !auth.IsValid() {
		return Authentication{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid authentication %q", auth.String()))
	}
	return auth, nil
}

// ParseAuthentication parses an authentication value from s,
// e.g. `Digest realm="example", nonce="abc"`.
func ParseAuthentication(s string) (Authentication, error) {
	return errtrace.Wrap2(parseValue("authentication", s, scanAuthentication))
}

// TryParseAuthentication is like [ParseAuthentication] but reports failure with a flag.
func TryParseAuthentication(s string) (Authentication, bool) { return parseOne(s, scanAuthentication) }

// Params parses the parameter as a comma-separated auth-param list.
// It reports false for token68 parameters.
func (auth Authentication) Params() (Params, bool) {
	if auth.Parameter == "" {
		return nil, true
	}
	ps, n, ok := scanNameValueList(auth.Parameter, 0, ',', nil)
	if !ok || n != len(auth.Parameter) {
		return nil, false
	}
	for _, p := range ps {
		if p.Value == "" {
			return nil, false
		}
	}
	return ps, true
}

func (auth Authentication) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(auth.Scheme) //nolint:errcheck
	if auth.Parameter != "" {
		cw.Fprint(" ", auth.Parameter) //nolint:errcheck
	}
	return errtrace.Wrap2(cw.Result())
}

func (auth Authentication) Render(opts *RenderOptions) string { return renderString(auth, opts) }

func (auth Authentication) String() string { return auth.Render(nil) }

func (auth Authentication) Format(f fmt.State, verb rune) {
	type hideMethods Authentication
	type Authentication hideMethods
	formatValue(f, verb, auth.String(), Authentication(auth))
}

func (auth Authentication) Equal(val any) bool {
	var other Authentication
	switch v := val.(type) {
	case Authentication:
		other = v
	case *Authentication:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return equalFold(auth.Scheme, other.Scheme) && auth.Parameter == other.Parameter
}

func (auth Authentication) IsValid() bool {
	if !grammar.IsToken(auth.Scheme) {
		return false
	}
	if auth.Parameter == "" {
		return true
	}
	v, ok := parseOne(auth.String(), scanAuthentication)
	return ok && v.Parameter == auth.Parameter
}

func (auth Authentication) IsZero() bool { return auth.Scheme == "" && auth.Parameter == "" }

func (auth Authentication) Clone() Authentication { return auth }

func (auth Authentication) MarshalText() ([]byte, error) { return []byte(auth.String()), nil }

func (auth *Authentication) UnmarshalText(data []byte) error {
	return errtrace.Wrap(unmarshalText(auth, "authentication", data, scanAuthentication))
}

func scanAuthentication(s string, start int) (Authentication, int, bool) {
	n, ok := grammar.TokenLength(s, start)
	if !ok {
		return Authentication{}, 0, false
	}
	auth := Authentication{Scheme: s[start : start+n]}
	cur := start + n
	ws := grammar.WhitespaceLength(s, cur)
	cur += ws
	if cur == len(s) || s[cur] == ',' {
		return auth, cur - start, true
	}
	if ws == 0 {
		return Authentication{}, 0, false
	}

	paramStart, paramEnd := cur, cur
	if !skipAuthBlob(s, &cur, &paramEnd) {
		return Authentication{}, 0, false
	}
	if cur < len(s) && !authParamsEnd(s, &cur, &paramEnd) {
		return Authentication{}, 0, false
	}
	auth.Parameter = s[paramStart : paramEnd+1]
	return auth, cur - start, true
}

// skipAuthBlob skips the first list element of the parameter, either token68 or
// the first auth-param. It stops at the next ',' and sets end to the last non-space char.
func skipAuthBlob(s string, cur, end *int) bool {
	for *cur < len(s) && s[*cur] != ',' {
		if s[*cur] == '"' {
			n, res := grammar.QuotedStringLength(s, *cur)
			if res != grammar.Parsed {
				return false
			}
			*cur += n
			*end = *cur - 1
			continue
		}
		if ws := grammar.WhitespaceLength(s, *cur); ws > 0 {
			*cur += ws
			continue
		}
		*end = *cur
		*cur++
	}
	return true
}

// authParamsEnd extends the parameter over following "name=value" list elements.
// It stops before an element that starts another scheme, leaving cur at its ','.
func authParamsEnd(s string, cur, end *int) bool {
	pos := *cur
	for pos < len(s) && s[pos] == ',' {
		next, _ := nextNonEmptyIndex(s, pos, true)
		if next == len(s) {
			return true
		}

		n, ok := grammar.TokenLength(s, next)
		if !ok {
			return false
		}
		next += n
		next += grammar.WhitespaceLength(s, next)
		if next == len(s) || s[next] != '=' {
			// another scheme
			return true
		}
		next++
		next += grammar.WhitespaceLength(s, next)
		n, ok = valueLength(s, next)
		if !ok {
			return false
		}
		next += n
		*end = next - 1
		next += grammar.WhitespaceLength(s, next)
		*cur = next
		pos = next
	}
	return true
}
