package header

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
)

// Warning is a Warning header element: "code agent text [date]".
// Text keeps its quotes.
type Warning struct {
	Code  int
	Agent string
	Text  string
	Date  time.Time
}

// NewWarning creates a validated Warning. A zero date is omitted,
// others are truncated to seconds.
func NewWarning(code int, agent, text string, date time.Time) (Warning, error) {
	wrn := Warning{Code: code, Agent: agent, Text: text}
	if !date.IsZero() {
		wrn.Date = date.UTC().Truncate(time.Second)
	}
	if !wrn.IsValid() {
		return Warning{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid warning %d %q %q", code, agent, text))
	}
	return wrn, nil
}

// ParseWarning parses a Warning header element from s,
// e.g. `110 proxy.example.com "Response is stale"`.
func ParseWarning(s string) (Warning, error) {
	return errtrace.Wrap2(parseValue("warning", s, scanWarning))
}

// TryParseWarning is like [ParseWarning] but reports failure with a flag.
func TryParseWarning(s string) (Warning, bool) { return parseOne(s, scanWarning) }

func (wrn Warning) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	fmt.Fprintf(cw, "%03d %s %s", wrn.Code, wrn.Agent, wrn.Text) //nolint:errcheck
	if !wrn.Date.IsZero() {
		cw.Fprint(` "`, grammar.FormatDate(wrn.Date), `"`) //nolint:errcheck
	}
	return errtrace.Wrap2(cw.Result())
}

func (wrn Warning) Render(opts *RenderOptions) string { return renderString(wrn, opts) }

func (wrn Warning) String() string { return wrn.Render(nil) }

func (wrn Warning) Format(f fmt.State, verb rune) {
	type hideMethods Warning
	type Warning hideMethods
	formatValue(f, verb, wrn.String(), Warning(wrn))
}

func (wrn Warning) Equal(val any) bool {
	var other Warning
	switch v := val.(type) {
	case Warning:
		other = v
	case *Warning:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return wrn.Code == other.Code &&
		equalFold(wrn.Agent, other.Agent) &&
		wrn.Text == other.Text &&
		wrn.Date.Equal(other.Date)
}

func (wrn Warning) IsValid() bool {
	n, ok := grammar.HostLength(wrn.Agent, 0, true)
	return wrn.Code >= 0 && wrn.Code <= 999 &&
		ok && n == len(wrn.Agent) &&
		grammar.IsQuoted(wrn.Text)
}

func (wrn Warning) IsZero() bool {
	return wrn.Code == 0 && wrn.Agent == "" && wrn.Text == "" && wrn.Date.IsZero()
}

func (wrn Warning) Clone() Warning { return wrn }

func (wrn Warning) MarshalText() ([]byte, error) { return []byte(wrn.String()), nil }

func (wrn *Warning) UnmarshalText(data []byte) error {
	return errtrace.Wrap(unmarshalText(wrn, "warning", data, scanWarning))
}

func scanWarning(s string, start int) (Warning, int, bool) {
	if start >= len(s) {
		return Warning{}, 0, false
	}

	var wrn Warning
	cur := start

	// code: up to 3 digits followed by whitespace
	n, ok := grammar.NumberLength(s, cur, false)
	if !ok || n > 3 {
		return Warning{}, 0, false
	}
	wrn.Code, _ = strconv.Atoi(s[cur : cur+n])
	cur += n
	ws := grammar.WhitespaceLength(s, cur)
	cur += ws
	if ws == 0 || cur == len(s) {
		return Warning{}, 0, false
	}

	// agent: host or pseudonym followed by whitespace
	n, ok = grammar.HostLength(s, cur, true)
	if !ok {
		return Warning{}, 0, false
	}
	wrn.Agent = s[cur : cur+n]
	cur += n
	ws = grammar.WhitespaceLength(s, cur)
	cur += ws
	if ws == 0 || cur == len(s) {
		return Warning{}, 0, false
	}

	n, res := grammar.QuotedStringLength(s, cur)
	if res != grammar.Parsed {
		return Warning{}, 0, false
	}
	wrn.Text = s[cur : cur+n]
	cur += n

	// optional quoted date separated by whitespace
	ws = grammar.WhitespaceLength(s, cur)
	cur += ws
	if cur < len(s) && s[cur] == '"' {
		if ws == 0 {
			return Warning{}, 0, false
		}
		cur++
		end := strings.IndexByte(s[cur:], '"')
		if end <= 0 {
			return Warning{}, 0, false
		}
		date, ok := grammar.ParseDate(s[cur : cur+end])
		if !ok {
			return Warning{}, 0, false
		}
		wrn.Date = date
		cur += end + 1
		cur += grammar.WhitespaceLength(s, cur)
	}
	return wrn, cur - start, true
}
