package header

import (
	"fmt"
	"io"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
)

// MediaType holds media type information (Content-Type value, Accept element).
// Accept elements carry their quality as the "q" parameter.
type MediaType struct {
	Type    string
	Subtype string
	Params  Params
}

// NewMediaType creates a validated MediaType from "type/subtype" name.
func NewMediaType(name string, params Params) (MediaType, error) {
	typ, sub, ok := strings.Cut(name, "/")
	mt := MediaType{Type: typ, Subtype: sub, Params: params}
	if !ok || !mt.IsValid() {
		return MediaType{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid media type %q", name))
	}
	return mt, nil
}

// ParseMediaType parses a media type with parameters from s, e.g. "text/html; charset=utf-8".
func ParseMediaType(s string) (MediaType, error) {
	return errtrace.Wrap2(parseValue("media type", s, scanMediaType))
}

// TryParseMediaType is like [ParseMediaType] but reports failure with a flag.
func TryParseMediaType(s string) (MediaType, bool) { return parseOne(s, scanMediaType) }

// Name returns the "type/subtype" part.
func (mt MediaType) Name() string { return mt.Type + "/" + mt.Subtype }

// CharSet returns the unquoted value of the "charset" parameter.
func (mt MediaType) CharSet() string {
	v, _ := mt.Params.Get("charset")
	return grammar.Unquote(v)
}

// SetCharSet sets the "charset" parameter, an empty charset deletes it.
func (mt MediaType) SetCharSet(charset string) (MediaType, error) {
	mt.Params = mt.Params.Clone()
	if charset == "" {
		mt.Params = mt.Params.Del("charset")
		return mt, nil
	}
	if !isTokenOrQuoted(charset) {
		return mt, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid charset %q", charset))
	}
	mt.Params = mt.Params.Set("charset", charset)
	return mt, nil
}

// Quality returns the value of the "q" parameter.
func (mt MediaType) Quality() (float64, bool) { return mt.Params.Quality() }

// SetQuality sets the "q" parameter, q must be in range [0, 1].
func (mt MediaType) SetQuality(q float64) (MediaType, error) {
	ps, err := mt.Params.Clone().SetQuality(q)
	if err != nil {
		return mt, errtrace.Wrap(err)
	}
	mt.Params = ps
	return mt, nil
}

func (mt MediaType) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(mt.Type, "/", mt.Subtype) //nolint:errcheck
	cw.Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(mt.Params.RenderTo(w, opts)) })
	return errtrace.Wrap2(cw.Result())
}

func (mt MediaType) Render(opts *RenderOptions) string { return renderString(mt, opts) }

func (mt MediaType) String() string { return mt.Render(nil) }

func (mt MediaType) Format(f fmt.State, verb rune) {
	type hideMethods MediaType
	type MediaType hideMethods
	formatValue(f, verb, mt.String(), MediaType(mt))
}

func (mt MediaType) Equal(val any) bool {
	var other MediaType
	switch v := val.(type) {
	case MediaType:
		other = v
	case *MediaType:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return equalFold(mt.Type, other.Type) &&
		equalFold(mt.Subtype, other.Subtype) &&
		mt.Params.Equal(other.Params)
}

func (mt MediaType) IsValid() bool {
	return grammar.IsToken(mt.Type) && grammar.IsToken(mt.Subtype) && mt.Params.IsValid()
}

func (mt MediaType) IsZero() bool {
	return mt.Type == "" && mt.Subtype == "" && len(mt.Params) == 0
}

func (mt MediaType) Clone() MediaType {
	mt.Params = mt.Params.Clone()
	return mt
}

func (mt MediaType) MarshalText() ([]byte, error) { return []byte(mt.String()), nil }

func (mt *MediaType) UnmarshalText(data []byte) error {
	return errtrace.Wrap(unmarshalText(mt, "media type", data, scanMediaType))
}

func scanMediaType(s string, start int) (MediaType, int, bool) {
	typ, sub, n, ok := scanMediaTypeName(s, start)
	if !ok {
		return MediaType{}, 0, false
	}
	mt := MediaType{Type: typ, Subtype: sub}
	cur := start + n
	cur += grammar.WhitespaceLength(s, cur)

	ps, n, ok := scanParams(s, cur)
	if !ok {
		return MediaType{}, 0, false
	}
	mt.Params = ps
	return mt, cur + n - start, true
}

// scanMediaTypeName scans "token *LWS / *LWS token" at s[start:].
func scanMediaTypeName(s string, start int) (typ, sub string, n int, ok bool) {
	tn, ok := grammar.TokenLength(s, start)
	if !ok {
		return "", "", 0, false
	}
	cur := start + tn
	cur += grammar.WhitespaceLength(s, cur)
	if cur >= len(s) || s[cur] != '/' {
		return "", "", 0, false
	}
	cur++
	cur += grammar.WhitespaceLength(s, cur)
	sn, ok := grammar.TokenLength(s, cur)
	if !ok {
		return "", "", 0, false
	}
	return s[start : start+tn], s[cur : cur+sn], cur + sn - start, true
}
