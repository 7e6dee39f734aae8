package header

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"net/textproto"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/types"
	"github.com/ghettovoice/httphdr/internal/util"
)

// RenderOptions contains options for rendering header values.
type RenderOptions = types.RenderOptions

// Value is the method set shared by all structured header values.
type Value interface {
	types.Renderer
	types.ValidFlag
	types.Equalable
	fmt.Stringer
}

const (
	// ErrMalformedInput is returned by the Parse functions when the input
	// is not exactly one valid instance of the value.
	ErrMalformedInput = grammar.ErrMalformedInput
	// ErrInvalidArgument is returned by the New constructors and setters
	// when the arguments violate the value grammar or constraints.
	ErrInvalidArgument = errorutil.ErrInvalidArgument
	// ErrSingleValue is returned when a second value is added to a header
	// that holds at most one value.
	ErrSingleValue errorutil.Error = "header does not support multiple values"
)

func newMalformedError(what, s string) error {
	return errorutil.NewWrapperError(ErrMalformedInput, "invalid %s %q", what, util.Ellipsis(s, 64)) //errtrace:skip
}

// Name represents an HTTP header name.
type Name string

// ToCanonic converts the Name to its canonical form.
func (n Name) ToCanonic() Name { return CanonicName(n) }

// IsValid checks whether the Name is syntactically valid.
func (n Name) IsValid() bool { return grammar.IsToken(n) }

// Equal compares this Name with another for equality.
func (n Name) Equal(val any) bool {
	var other Name
	switch v := val.(type) {
	case Name:
		other = v
	case *Name:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return CanonicName(n) == CanonicName(other)
}

var hdrNames = map[string]Name{
	"Content-Md5":      "Content-MD5",
	"Etag":             "ETag",
	"Te":               "TE",
	"Www-Authenticate": "WWW-Authenticate",
}

// CanonicName converts name to the canonical form.
// The canonicalization converts the first letter and any letter following a hyphen to upper case;
// the rest are converted to lowercase. For example, the canonical name for "accept-encoding" is "Accept-Encoding".
// A few names keep their registered spelling: "etag" converts to "ETag", "te" to "TE".
func CanonicName[T ~string](name T) Name {
	s := strings.TrimSpace(string(name))
	if n, ok := hdrNames[s]; ok {
		return n
	}

	s = textproto.CanonicalMIMEHeaderKey(s)
	if n, ok := hdrNames[s]; ok {
		return n
	}
	return Name(s)
}

// Ptr returns a pointer to v.
// It is a shorthand for optional fields, e.g. RangeItem{From: header.Ptr[int64](0)}.
func Ptr[T any](v T) *T { return &v }

type renderer interface {
	RenderTo(w io.Writer, opts *RenderOptions) (int, error)
}

func renderString(r renderer, opts *RenderOptions) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	r.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

func formatValue(f fmt.State, verb rune, s string, raw any) {
	switch verb {
	case 's':
		fmt.Fprint(f, s)
	case 'q':
		fmt.Fprint(f, strconv.Quote(s))
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, s)
			return
		}
		fmt.Fprintf(f, fmt.FormatString(f, verb), raw)
	}
}

// parseValue runs the strict single value parse of s with scan.
// It fails if s holds anything besides exactly one value.
func parseValue[T any](what, s string, scan ScanFunc[T]) (T, error) {
	v, ok := parseOne(s, scan)
	if !ok {
		var zero T
		return zero, errtrace.Wrap(newMalformedError(what, s))
	}
	return v, nil
}

func parseOne[T any](s string, scan ScanFunc[T]) (T, bool) {
	var zero T
	v, has, next, ok := parseListValue(s, 0, false, scan)
	if !ok || !has || next != len(s) {
		return zero, false
	}
	return v, true
}

// unmarshalText parses data into v, an empty input resets v to the zero value.
func unmarshalText[T any](v *T, what string, data []byte, scan ScanFunc[T]) error {
	if len(data) == 0 {
		var zero T
		*v = zero
		return nil
	}
	val, err := parseValue(what, string(data), scan)
	if err != nil {
		var zero T
		*v = zero
		return errtrace.Wrap(err)
	}
	*v = val
	return nil
}

func equalFold(a, b string) bool { return util.EqFold(a, b) }

// isTokenOrQuoted reports whether s is a token or a quoted-string.
func isTokenOrQuoted(s string) bool { return grammar.IsToken(s) || grammar.IsQuoted(s) }
