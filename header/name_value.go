package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
)

// NameValue is a "token [= (token | quoted-string)]" pair.
// It is used as a parameter of other values and as the Pragma header element.
// A quoted Value keeps its quotes.
type NameValue struct {
	Name  string
	Value string
}

// NewNameValue creates a validated NameValue.
func NewNameValue(name, value string) (NameValue, error) {
	nv := NameValue{Name: name, Value: value}
	if !nv.IsValid() {
		return NameValue{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid name-value %q=%q", name, value))
	}
	return nv, nil
}

// ParseNameValue parses a name-value pair from s.
func ParseNameValue(s string) (NameValue, error) {
	return errtrace.Wrap2(parseValue("name-value", s, scanNameValue))
}

// TryParseNameValue is like [ParseNameValue] but reports failure with a flag.
func TryParseNameValue(s string) (NameValue, bool) { return parseOne(s, scanNameValue) }

func (nv NameValue) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(nv.Name) //nolint:errcheck
	if nv.Value != "" {
		cw.WriteString("=")      //nolint:errcheck
		cw.WriteString(nv.Value) //nolint:errcheck
	}
	return errtrace.Wrap2(cw.Result())
}

func (nv NameValue) Render(opts *RenderOptions) string { return renderString(nv, opts) }

func (nv NameValue) String() string { return nv.Render(nil) }

func (nv NameValue) Format(f fmt.State, verb rune) {
	type hideMethods NameValue
	type NameValue hideMethods
	formatValue(f, verb, nv.String(), NameValue(nv))
}

// Equal compares names case-insensitively,
// quoted values are compared exactly and token values case-insensitively.
func (nv NameValue) Equal(val any) bool {
	var other NameValue
	switch v := val.(type) {
	case NameValue:
		other = v
	case *NameValue:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	if !equalFold(nv.Name, other.Name) {
		return false
	}
	switch {
	case nv.Value == "":
		return other.Value == ""
	case nv.Value[0] == '"':
		return nv.Value == other.Value
	default:
		return equalFold(nv.Value, other.Value)
	}
}

func (nv NameValue) IsValid() bool {
	return grammar.IsToken(nv.Name) && (nv.Value == "" || isTokenOrQuoted(nv.Value))
}

func (nv NameValue) IsZero() bool { return nv.Name == "" && nv.Value == "" }

func (nv NameValue) Clone() NameValue { return nv }

func (nv NameValue) MarshalText() ([]byte, error) { return []byte(nv.String()), nil }

func (nv *NameValue) UnmarshalText(data []byte) error {
	return errtrace.Wrap(unmarshalText(nv, "name-value", data, scanNameValue))
}

// Unquoted returns the value with quotes removed and quoted-pairs resolved.
func (nv NameValue) Unquoted() string { return grammar.Unquote(nv.Value) }

func scanNameValue(s string, start int) (NameValue, int, bool) {
	n, ok := grammar.TokenLength(s, start)
	if !ok {
		return NameValue{}, 0, false
	}
	nv := NameValue{Name: s[start : start+n]}
	cur := start + n
	cur += grammar.WhitespaceLength(s, cur)
	if cur == len(s) || s[cur] != '=' {
		return nv, cur - start, true
	}

	cur++
	cur += grammar.WhitespaceLength(s, cur)
	n, ok = valueLength(s, cur)
	if !ok {
		return NameValue{}, 0, false
	}
	nv.Value = s[cur : cur+n]
	cur += n
	cur += grammar.WhitespaceLength(s, cur)
	return nv, cur - start, true
}

// valueLength returns the length of the token or quoted-string at s[start:].
func valueLength(s string, start int) (int, bool) {
	if n, ok := grammar.TokenLength(s, start); ok {
		return n, true
	}
	if n, res := grammar.QuotedStringLength(s, start); res == grammar.Parsed {
		return n, true
	}
	return 0, false
}

// scanNameValueList scans "nv *(delim nv)" at s[start:] appending pairs to dst.
func scanNameValueList(s string, start int, delim byte, dst Params) (Params, int, bool) {
	cur := start + grammar.WhitespaceLength(s, start)
	for {
		nv, n, ok := scanNameValue(s, cur)
		if !ok {
			return dst, 0, false
		}
		dst = append(dst, nv)
		cur += n
		cur += grammar.WhitespaceLength(s, cur)
		if cur == len(s) || s[cur] != delim {
			return dst, cur - start, true
		}
		cur++
		cur += grammar.WhitespaceLength(s, cur)
	}
}

// scanParams scans an optional ";" parameter list at s[start:].
// It returns nil params and zero length when there is no ';' at start.
func scanParams(s string, start int) (Params, int, bool) {
	if start >= len(s) || s[start] != ';' {
		return nil, 0, true
	}
	ps, n, ok := scanNameValueList(s, start+1, ';', nil)
	if !ok {
		return nil, 0, false
	}
	return ps, n + 1, true
}

// NameValueWithParams is a name-value pair followed by parameters (Expect header element).
type NameValueWithParams struct {
	NameValue
	Params Params
}

// NewNameValueWithParams creates a validated NameValueWithParams.
func NewNameValueWithParams(name, value string, params Params) (NameValueWithParams, error) {
	nvp := NameValueWithParams{NameValue: NameValue{Name: name, Value: value}, Params: params}
	if !nvp.IsValid() {
		return NameValueWithParams{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid name-value %q=%q", name, value))
	}
	return nvp, nil
}

// ParseNameValueWithParams parses a name-value pair with parameters from s.
func ParseNameValueWithParams(s string) (NameValueWithParams, error) {
	return errtrace.Wrap2(parseValue("name-value", s, scanNameValueWithParams))
}

// TryParseNameValueWithParams is like [ParseNameValueWithParams] but reports failure with a flag.
func TryParseNameValueWithParams(s string) (NameValueWithParams, bool) {
	return parseOne(s, scanNameValueWithParams)
}

func (nvp NameValueWithParams) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(nvp.NameValue.RenderTo(w, opts)) })
	cw.Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(nvp.Params.RenderTo(w, opts)) })
	return errtrace.Wrap2(cw.Result())
}

func (nvp NameValueWithParams) Render(opts *RenderOptions) string { return renderString(nvp, opts) }

func (nvp NameValueWithParams) String() string { return nvp.Render(nil) }

func (nvp NameValueWithParams) Format(f fmt.State, verb rune) {
	type hideMethods NameValueWithParams
	type NameValueWithParams hideMethods
	formatValue(f, verb, nvp.String(), NameValueWithParams(nvp))
}

func (nvp NameValueWithParams) Equal(val any) bool {
	var other NameValueWithParams
	switch v := val.(type) {
	case NameValueWithParams:
		other = v
	case *NameValueWithParams:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return nvp.NameValue.Equal(other.NameValue) && nvp.Params.Equal(other.Params)
}

func (nvp NameValueWithParams) IsValid() bool { return nvp.NameValue.IsValid() && nvp.Params.IsValid() }

func (nvp NameValueWithParams) IsZero() bool { return nvp.NameValue.IsZero() && len(nvp.Params) == 0 }

func (nvp NameValueWithParams) Clone() NameValueWithParams {
	nvp.Params = nvp.Params.Clone()
	return nvp
}

func (nvp NameValueWithParams) MarshalText() ([]byte, error) { return []byte(nvp.String()), nil }

func (nvp *NameValueWithParams) UnmarshalText(data []byte) error {
	return errtrace.Wrap(unmarshalText(nvp, "name-value", data, scanNameValueWithParams))
}

func scanNameValueWithParams(s string, start int) (NameValueWithParams, int, bool) {
	nv, n, ok := scanNameValue(s, start)
	if !ok {
		return NameValueWithParams{}, 0, false
	}
	cur := start + n
	ps, n, ok := scanParams(s, cur)
	if !ok {
		return NameValueWithParams{}, 0, false
	}
	return NameValueWithParams{NameValue: nv, Params: ps}, cur + n - start, true
}
