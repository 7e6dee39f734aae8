package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
)

// StringWithQuality is a token with an optional quality factor
// (Accept-Charset, Accept-Encoding, Accept-Language elements).
type StringWithQuality struct {
	Value   string
	Quality *float64
}

// NewStringWithQuality creates a validated StringWithQuality.
// A nil quality means the "q" parameter is absent.
func NewStringWithQuality(value string, quality *float64) (StringWithQuality, error) {
	if !grammar.IsToken(value) {
		return StringWithQuality{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid token %q", value))
	}
	sq := StringWithQuality{Value: value}
	if quality != nil {
		if !isValidQuality(*quality) {
			return StringWithQuality{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("quality %v out of range [0, 1]", *quality))
		}
		sq.Quality = Ptr(roundQuality(*quality))
	}
	return sq, nil
}

// ParseStringWithQuality parses a token with optional quality from s, e.g. "gzip;q=0.8".
func ParseStringWithQuality(s string) (StringWithQuality, error) {
	return errtrace.Wrap2(parseValue("string with quality", s, scanStringWithQuality))
}

// TryParseStringWithQuality is like [ParseStringWithQuality] but reports failure with a flag.
func TryParseStringWithQuality(s string) (StringWithQuality, bool) {
	return parseOne(s, scanStringWithQuality)
}

func (sq StringWithQuality) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(sq.Value) //nolint:errcheck
	if sq.Quality != nil {
		cw.Fprint(opts.ParamSep(), qParam, "=", FormatQuality(*sq.Quality)) //nolint:errcheck
	}
	return errtrace.Wrap2(cw.Result())
}

func (sq StringWithQuality) Render(opts *RenderOptions) string { return renderString(sq, opts) }

func (sq StringWithQuality) String() string { return sq.Render(nil) }

func (sq StringWithQuality) Format(f fmt.State, verb rune) {
	type hideMethods StringWithQuality
	type StringWithQuality hideMethods
	formatValue(f, verb, sq.String(), StringWithQuality(sq))
}

func (sq StringWithQuality) Equal(val any) bool {
	var other StringWithQuality
	switch v := val.(type) {
	case StringWithQuality:
		other = v
	case *StringWithQuality:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return equalFold(sq.Value, other.Value) && equalQuality(sq.Quality, other.Quality)
}

func equalQuality(q1, q2 *float64) bool {
	if q1 == nil || q2 == nil {
		return q1 == nil && q2 == nil
	}
	return *q1 == *q2
}

func (sq StringWithQuality) IsValid() bool {
	return grammar.IsToken(sq.Value) && (sq.Quality == nil || isValidQuality(*sq.Quality))
}

func (sq StringWithQuality) IsZero() bool { return sq.Value == "" && sq.Quality == nil }

func (sq StringWithQuality) Clone() StringWithQuality {
	if sq.Quality != nil {
		sq.Quality = Ptr(*sq.Quality)
	}
	return sq
}

func (sq StringWithQuality) MarshalText() ([]byte, error) { return []byte(sq.String()), nil }

func (sq *StringWithQuality) UnmarshalText(data []byte) error {
	return errtrace.Wrap(unmarshalText(sq, "string with quality", data, scanStringWithQuality))
}

func scanStringWithQuality(s string, start int) (StringWithQuality, int, bool) {
	n, ok := grammar.TokenLength(s, start)
	if !ok {
		return StringWithQuality{}, 0, false
	}
	sq := StringWithQuality{Value: s[start : start+n]}
	cur := start + n
	cur += grammar.WhitespaceLength(s, cur)
	if cur == len(s) || s[cur] != ';' {
		return sq, cur - start, true
	}

	cur++
	cur += grammar.WhitespaceLength(s, cur)
	q, n, ok := scanQuality(s, cur)
	if !ok {
		return StringWithQuality{}, 0, false
	}
	sq.Quality = &q
	return sq, cur + n - start, true
}

// scanQuality scans "q = qvalue" with trailing whitespace at s[start:].
func scanQuality(s string, start int) (float64, int, bool) {
	cur := start
	if cur == len(s) || (s[cur] != 'q' && s[cur] != 'Q') {
		return 0, 0, false
	}
	cur++
	cur += grammar.WhitespaceLength(s, cur)
	if cur == len(s) || s[cur] != '=' {
		return 0, 0, false
	}
	cur++
	cur += grammar.WhitespaceLength(s, cur)

	n, ok := grammar.NumberLength(s, cur, true)
	if !ok {
		return 0, 0, false
	}
	q, ok := parseQuality(s[cur : cur+n])
	if !ok {
		return 0, 0, false
	}
	cur += n
	cur += grammar.WhitespaceLength(s, cur)
	return q, cur - start, true
}
