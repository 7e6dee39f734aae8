// Package grammar implements the lexical rules of RFC 2616 Section 2.2 used by
// HTTP header field values.
//
// Every scanner works over a string and a start index and reports how many bytes
// it consumed. Scanners never panic on out of range indexes and never return a
// truncated length: the match is either complete or reported as absent.
package grammar

//go:generate go tool errtrace -w .

import (
	"strings"

	"github.com/ghettovoice/httphdr/internal/util"
)

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrEmptyInput     Error = "empty input"
	ErrMalformedInput Error = "malformed input"
)

// Result is the outcome of scanning a delimited expression
// such as a quoted-string or a comment.
type Result int

const (
	// NotParsed means the input does not start with the expression delimiter.
	NotParsed Result = iota
	// Parsed means a complete expression was scanned.
	Parsed
	// Invalid means the expression is started but malformed or unterminated.
	Invalid
)

func (r Result) String() string {
	switch r {
	case NotParsed:
		return "not parsed"
	case Parsed:
		return "parsed"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

const maxNestedCount = 5

var tchar [256]bool

func init() {
	const tchars = "!#$%&'*+-.^_`|~" +
		"0123456789" +
		"abcdefghijklmnopqrstuvwxyz" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	for i := range len(tchars) {
		tchar[tchars[i]] = true
	}
}

// IsTokenChar reports whether c may appear in a token.
func IsTokenChar(c byte) bool { return tchar[c] }

func isCtl(c byte) bool { return c < 0x20 || c == 0x7f }

// TokenLength returns the length of the longest run of token characters at s[start:].
func TokenLength(s string, start int) (int, bool) {
	if start < 0 || start >= len(s) {
		return 0, false
	}
	i := start
	for i < len(s) && tchar[s[i]] {
		i++
	}
	return i - start, i > start
}

// WhitespaceLength returns the length of linear whitespace at s[start:].
// Obsolete line folding (CRLF followed by SP or HTAB) counts as whitespace.
// The result may be zero.
func WhitespaceLength(s string, start int) int {
	if start < 0 {
		return 0
	}
	i := start
	for i < len(s) {
		switch c := s[i]; c {
		case ' ', '\t':
			i++
			continue
		case '\r':
			if i+2 < len(s) && s[i+1] == '\n' && (s[i+2] == ' ' || s[i+2] == '\t') {
				i += 3
				continue
			}
		}
		break
	}
	return i - start
}

// NumberLength returns the length of the decimal number at s[start:].
// When allowDecimal is set, a single decimal point is accepted.
func NumberLength(s string, start int, allowDecimal bool) (int, bool) {
	if start < 0 || start >= len(s) {
		return 0, false
	}
	i := start
	dot := false
	for i < len(s) {
		c := s[i]
		switch {
		case util.IsDigit(c):
			i++
			continue
		case allowDecimal && c == '.' && !dot:
			dot = true
			i++
			continue
		}
		break
	}
	return i - start, i > start
}

// QuotedStringLength scans a quoted-string at s[start:], including both quotes.
func QuotedStringLength(s string, start int) (int, Result) {
	return expressionLength(s, start, '"', '"', false, 0)
}

// CommentLength scans a comment at s[start:], including the outer parentheses.
// Comments may be nested up to 5 levels.
func CommentLength(s string, start int) (int, Result) {
	return expressionLength(s, start, '(', ')', true, 0)
}

func expressionLength(s string, start int, openCh, closeCh byte, nesting bool, depth int) (int, Result) {
	if start < 0 || start >= len(s) || s[start] != openCh {
		return 0, NotParsed
	}

	i := start + 1
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\\':
			// quoted-pair = "\" CHAR
			if i+1 >= len(s) || s[i+1] > 0x7f {
				return 0, Invalid
			}
			i += 2
		case c == closeCh:
			return i - start + 1, Parsed
		case nesting && c == openCh:
			if depth+1 > maxNestedCount {
				return 0, Invalid
			}
			n, res := expressionLength(s, i, openCh, closeCh, nesting, depth+1)
			if res != Parsed {
				return 0, Invalid
			}
			i += n
		case c == '\r':
			n := WhitespaceLength(s, i)
			if n == 0 {
				return 0, Invalid
			}
			i += n
		case isCtl(c) && c != '\t':
			return 0, Invalid
		default:
			i++
		}
	}
	return 0, Invalid
}

// IsToken reports whether the whole s is a token.
func IsToken[T ~string](s T) bool {
	n, ok := TokenLength(string(s), 0)
	return ok && n == len(s)
}

// IsQuoted reports whether the whole s is a quoted-string.
func IsQuoted[T ~string](s T) bool {
	n, res := QuotedStringLength(string(s), 0)
	return res == Parsed && n == len(s)
}

// IsComment reports whether the whole s is a comment.
func IsComment[T ~string](s T) bool {
	n, res := CommentLength(string(s), 0)
	return res == Parsed && n == len(s)
}

// Quote wraps s in double quotes escaping quotes and backslashes.
func Quote(s string) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.WriteByte('"')
	for i := range len(s) {
		if c := s[i]; c == '"' || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte('"')
	return sb.String()
}

// Unquote removes the surrounding quotes from a quoted-string and resolves quoted-pairs.
// If s is not a quoted-string, it is returned as is.
func Unquote(s string) string {
	if !IsQuoted(s) {
		return s
	}

	s = s[1 : len(s)-1]
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
