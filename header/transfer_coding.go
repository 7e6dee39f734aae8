package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
)

// TransferCoding is a transfer coding with parameters (Transfer-Encoding, TE elements).
// TE elements carry their quality as the "q" parameter.
type TransferCoding struct {
	Value  string
	Params Params
}

// NewTransferCoding creates a validated TransferCoding.
func NewTransferCoding(value string, params Params) (TransferCoding, error) {
	tc := TransferCoding{Value: value, Params: params}
	if !tc.IsValid() {
		return TransferCoding{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid transfer coding %q", value))
	}
	return tc, nil
}

// ParseTransferCoding parses a transfer coding from s, e.g. "gzip; q=0.5".
func ParseTransferCoding(s string) (TransferCoding, error) {
	return errtrace.Wrap2(parseValue("transfer coding", s, scanTransferCoding))
}

// TryParseTransferCoding is like [ParseTransferCoding] but reports failure with a flag.
func TryParseTransferCoding(s string) (TransferCoding, bool) { return parseOne(s, scanTransferCoding) }

// Quality returns the value of the "q" parameter.
func (tc TransferCoding) Quality() (float64, bool) { return tc.Params.Quality() }

// SetQuality sets the "q" parameter, q must be in range [0, 1].
func (tc TransferCoding) SetQuality(q float64) (TransferCoding, error) {
	ps, err := tc.Params.Clone().SetQuality(q)
	if err != nil {
		return tc, errtrace.Wrap(err)
	}
	tc.Params = ps
	return tc, nil
}

func (tc TransferCoding) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(tc.Value) //nolint:errcheck
	cw.Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(tc.Params.RenderTo(w, opts)) })
	return errtrace.Wrap2(cw.Result())
}

func (tc TransferCoding) Render(opts *RenderOptions) string { return renderString(tc, opts) }

func (tc TransferCoding) String() string { return tc.Render(nil) }

func (tc TransferCoding) Format(f fmt.State, verb rune) {
	type hideMethods TransferCoding
	type TransferCoding hideMethods
	formatValue(f, verb, tc.String(), TransferCoding(tc))
}

func (tc TransferCoding) Equal(val any) bool {
	var other TransferCoding
	switch v := val.(type) {
	case TransferCoding:
		other = v
	case *TransferCoding:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return equalFold(tc.Value, other.Value) && tc.Params.Equal(other.Params)
}

func (tc TransferCoding) IsValid() bool { return grammar.IsToken(tc.Value) && tc.Params.IsValid() }

func (tc TransferCoding) IsZero() bool { return tc.Value == "" && len(tc.Params) == 0 }

func (tc TransferCoding) Clone() TransferCoding {
	tc.Params = tc.Params.Clone()
	return tc
}

func (tc TransferCoding) MarshalText() ([]byte, error) { return []byte(tc.String()), nil }

func (tc *TransferCoding) UnmarshalText(data []byte) error {
	return errtrace.Wrap(unmarshalText(tc, "transfer coding", data, scanTransferCoding))
}

func scanTransferCoding(s string, start int) (TransferCoding, int, bool) {
	n, ok := grammar.TokenLength(s, start)
	if !ok {
		return TransferCoding{}, 0, false
	}
	tc := TransferCoding{Value: s[start : start+n]}
	cur := start + n
	cur += grammar.WhitespaceLength(s, cur)

	ps, n, ok := scanParams(s, cur)
	if !ok {
		return TransferCoding{}, 0, false
	}
	tc.Params = ps
	return tc, cur + n - start, true
}
