package header

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
)

// ContentRange is the Content-Range header value.
// From and To are both present or both absent. A nil Length means "*".
type ContentRange struct {
	Unit   string
	From   *int64
	To     *int64
	Length *int64
}

// NewContentRange creates a validated "bytes" ContentRange.
func NewContentRange(from, to, length *int64) (ContentRange, error) {
	cr := ContentRange{Unit: "bytes", From: from, To: to, Length: length}
	if !cr.IsValid() {
		return ContentRange{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid content range %q", cr.String()))
	}
	return cr, nil
}

// ParseContentRange parses a Content-Range header value from s, e.g. "bytes 0-499/1234".
func ParseContentRange(s string) (ContentRange, error) {
	return errtrace.Wrap2(parseValue("content range", s, scanContentRange))
}

// TryParseContentRange is like [ParseContentRange] but reports failure with a flag.
func TryParseContentRange(s string) (ContentRange, bool) { return parseOne(s, scanContentRange) }

// HasRange reports whether the range part is known.
func (cr ContentRange) HasRange() bool { return cr.From != nil && cr.To != nil }

// HasLength reports whether the complete length is known.
func (cr ContentRange) HasLength() bool { return cr.Length != nil }

func (cr ContentRange) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(cr.Unit, " ") //nolint:errcheck
	if cr.HasRange() {
		cw.Fprint(*cr.From, "-", *cr.To) //nolint:errcheck
	} else {
		cw.WriteString("*") //nolint:errcheck
	}
	cw.WriteString("/") //nolint:errcheck
	if cr.HasLength() {
		cw.WriteString(strconv.FormatInt(*cr.Length, 10)) //nolint:errcheck
	} else {
		cw.WriteString("*") //nolint:errcheck
	}
	return errtrace.Wrap2(cw.Result())
}

func (cr ContentRange) Render(opts *RenderOptions) string { return renderString(cr, opts) }

func (cr ContentRange) String() string { return cr.Render(nil) }

func (cr ContentRange) Format(f fmt.State, verb rune) {
	type hideMethods ContentRange
	type ContentRange hideMethods
	formatValue(f, verb, cr.String(), ContentRange(cr))
}

func (cr ContentRange) Equal(val any) bool {
	var other ContentRange
	switch v := val.(type) {
	case ContentRange:
		other = v
	case *ContentRange:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return equalFold(cr.Unit, other.Unit) &&
		equalInt64Ptr(cr.From, other.From) &&
		equalInt64Ptr(cr.To, other.To) &&
		equalInt64Ptr(cr.Length, other.Length)
}

func (cr ContentRange) IsValid() bool {
	if !grammar.IsToken(cr.Unit) || (cr.From == nil) != (cr.To == nil) {
		return false
	}
	if cr.HasRange() && (*cr.From < 0 || *cr.From > *cr.To) {
		return false
	}
	if cr.HasLength() && (*cr.Length < 0 || (cr.HasRange() && *cr.To >= *cr.Length)) {
		return false
	}
	return true
}

func (cr ContentRange) IsZero() bool {
	return cr.Unit == "" && cr.From == nil && cr.To == nil && cr.Length == nil
}

func (cr ContentRange) Clone() ContentRange {
	for _, p := range []**int64{&cr.From, &cr.To, &cr.Length} {
		if *p != nil {
			*p = Ptr(**p)
		}
	}
	return cr
}

func (cr ContentRange) MarshalText() ([]byte, error) { return []byte(cr.String()), nil }

func (cr *ContentRange) UnmarshalText(data []byte) error {
	return errtrace.Wrap(unmarshalText(cr, "content range", data, scanContentRange))
}

func scanContentRange(s string, start int) (ContentRange, int, bool) {
	n, ok := grammar.TokenLength(s, start)
	if !ok {
		return ContentRange{}, 0, false
	}
	cr := ContentRange{Unit: s[start : start+n]}
	cur := start + n
	ws := grammar.WhitespaceLength(s, cur)
	if ws == 0 {
		return ContentRange{}, 0, false
	}
	cur += ws
	if cur == len(s) {
		return ContentRange{}, 0, false
	}

	if s[cur] == '*' {
		cur++
	} else {
		from, n, ok := scanInt64(s, cur)
		if !ok {
			return ContentRange{}, 0, false
		}
		cur += n
		cur += grammar.WhitespaceLength(s, cur)
		if cur == len(s) || s[cur] != '-' {
			return ContentRange{}, 0, false
		}
		cur++
		cur += grammar.WhitespaceLength(s, cur)
		to, n, ok := scanInt64(s, cur)
		if !ok {
			return ContentRange{}, 0, false
		}
		cur += n
		if from > to {
			return ContentRange{}, 0, false
		}
		cr.From, cr.To = &from, &to
	}
	cur += grammar.WhitespaceLength(s, cur)
	if cur == len(s) || s[cur] != '/' {
		return ContentRange{}, 0, false
	}
	cur++
	cur += grammar.WhitespaceLength(s, cur)
	if cur == len(s) {
		return ContentRange{}, 0, false
	}

	if s[cur] == '*' {
		cur++
	} else {
		length, n, ok := scanInt64(s, cur)
		if !ok {
			return ContentRange{}, 0, false
		}
		cur += n
		if cr.HasRange() && *cr.To >= length {
			return ContentRange{}, 0, false
		}
		cr.Length = &length
	}
	cur += grammar.WhitespaceLength(s, cur)
	return cr, cur - start, true
}

// scanInt64 scans a non-negative decimal int64 without trailing whitespace.
func scanInt64(s string, start int) (int64, int, bool) {
	n, ok := grammar.NumberLength(s, start, false)
	if !ok || n > maxInt64Digits {
		return 0, 0, false
	}
	v, err := strconv.ParseInt(s[start:start+n], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return v, n, true
}

// scanInt32 scans a non-negative decimal int32 without trailing whitespace.
func scanInt32(s string, start int) (int32, int, bool) {
	n, ok := grammar.NumberLength(s, start, false)
	if !ok || n > maxInt32Digits {
		return 0, 0, false
	}
	v, err := strconv.ParseInt(s[start:start+n], 10, 32)
	if err != nil {
		return 0, 0, false
	}
	return int32(v), n, true
}
