package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
)

// Via is a Via header element: "[protocol-name/]protocol-version received-by [comment]".
// Comment keeps its parentheses.
type Via struct {
	ProtoName    string
	ProtoVersion string
	ReceivedBy   string
	Comment      string
}

// NewVia creates a validated Via.
func NewVia(protoName, protoVersion, receivedBy, comment string) (Via, error) {
	via := Via{ProtoName: protoName, ProtoVersion: protoVersion, ReceivedBy: receivedBy, Comment: comment}
	if !via.IsValid() {
		return Via{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid via %q", via.String()))
	}
	return via, nil
}

// ParseVia parses a Via header element from s, e.g. "1.1 proxy.example.com (Squid/4.1)".
func ParseVia(s string) (Via, error) {
	return errtrace.Wrap2(parseValue("via", s, scanVia))
}

// TryParseVia is like [ParseVia] but reports failure with a flag.
func TryParseVia(s string) (Via, bool) { return parseOne(s, scanVia) }

func (via Via) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	if via.ProtoName != "" {
		cw.Fprint(via.ProtoName, "/") //nolint:errcheck
	}
	cw.Fprint(via.ProtoVersion, " ", via.ReceivedBy) //nolint:errcheck
	if via.Comment != "" {
		cw.Fprint(" ", via.Comment) //nolint:errcheck
	}
	return errtrace.Wrap2(cw.Result())
}

func (via Via) Render(opts *RenderOptions) string { return renderString(via, opts) }

func (via Via) String() string { return via.Render(nil) }

func (via Via) Format(f fmt.State, verb rune) {
	type hideMethods Via
	type Via hideMethods
	formatValue(f, verb, via.String(), Via(via))
}

func (via Via) Equal(val any) bool {
	var other Via
	switch v := val.(type) {
	case Via:
		other = v
	case *Via:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return equalFold(via.ProtoName, other.ProtoName) &&
		equalFold(via.ProtoVersion, other.ProtoVersion) &&
		equalFold(via.ReceivedBy, other.ReceivedBy) &&
		via.Comment == other.Comment
}

func (via Via) IsValid() bool {
	n, ok := grammar.HostLength(via.ReceivedBy, 0, true)
	return (via.ProtoName == "" || grammar.IsToken(via.ProtoName)) &&
		grammar.IsToken(via.ProtoVersion) &&
		ok && n == len(via.ReceivedBy) &&
		(via.Comment == "" || grammar.IsComment(via.Comment))
}

func (via Via) IsZero() bool {
	return via.ProtoName == "" && via.ProtoVersion == "" && via.ReceivedBy == "" && via.Comment == ""
}

func (via Via) Clone() Via { return via }

func (via Via) MarshalText() ([]byte, error) { return []byte(via.String()), nil }

func (via *Via) UnmarshalText(data []byte) error {
	return errtrace.Wrap(unmarshalText(via, "via", data, scanVia))
}

func scanVia(s string, start int) (Via, int, bool) {
	if start >= len(s) {
		return Via{}, 0, false
	}

	var via Via
	cur, ok := scanViaProtocol(s, start, &via)
	if !ok || cur == len(s) {
		return Via{}, 0, false
	}

	n, ok := grammar.HostLength(s, cur, true)
	if !ok {
		return Via{}, 0, false
	}
	via.ReceivedBy = s[cur : cur+n]
	cur += n
	cur += grammar.WhitespaceLength(s, cur)

	if cur < len(s) && s[cur] == '(' {
		n, res := grammar.CommentLength(s, cur)
		if res != grammar.Parsed {
			return Via{}, 0, false
		}
		via.Comment = s[cur : cur+n]
		cur += n
		cur += grammar.WhitespaceLength(s, cur)
	}
	return via, cur - start, true
}

// scanViaProtocol scans "[name/]version" followed by required whitespace
// and returns the index after it.
func scanViaProtocol(s string, start int, via *Via) (int, bool) {
	n, ok := grammar.TokenLength(s, start)
	if !ok {
		return 0, false
	}
	cur := start + n
	ws := grammar.WhitespaceLength(s, cur)
	cur += ws
	if cur == len(s) {
		return 0, false
	}

	if s[cur] == '/' {
		via.ProtoName = s[start : start+n]
		cur++
		cur += grammar.WhitespaceLength(s, cur)
		vn, ok := grammar.TokenLength(s, cur)
		if !ok {
			return 0, false
		}
		via.ProtoVersion = s[cur : cur+vn]
		cur += vn
		ws = grammar.WhitespaceLength(s, cur)
		cur += ws
	} else {
		via.ProtoVersion = s[start : start+n]
	}
	if ws == 0 {
		return 0, false
	}
	return cur, true
}
