package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
)

const anyTag = "*"

// EntityTag is either the wildcard "*" or an opaque quoted tag with optional weakness.
// Tag keeps the surrounding quotes.
type EntityTag struct {
	Tag  string
	Weak bool
}

// AnyEntityTag returns the wildcard entity tag "*".
func AnyEntityTag() EntityTag { return EntityTag{Tag: anyTag} }

// NewEntityTag creates a validated EntityTag, tag must be a quoted-string.
func NewEntityTag(tag string, weak bool) (EntityTag, error) {
	if !grammar.IsQuoted(tag) {
		return EntityTag{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("entity tag %q is not a quoted string", tag))
	}
	return EntityTag{Tag: tag, Weak: weak}, nil
}

// ParseEntityTag parses an entity tag from s, e.g. `W/"abc"` or "*".
func ParseEntityTag(s string) (EntityTag, error) {
	return errtrace.Wrap2(parseValue("entity tag", s, scanEntityTag))
}

// TryParseEntityTag is like [ParseEntityTag] but reports failure with a flag.
func TryParseEntityTag(s string) (EntityTag, bool) { return parseOne(s, scanEntityTag) }

// IsAny reports whether the tag is the wildcard "*".
func (et EntityTag) IsAny() bool { return et.Tag == anyTag }

func (et EntityTag) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	if et.Weak && !et.IsAny() {
		cw.WriteString("W/") //nolint:errcheck
	}
	cw.WriteString(et.Tag) //nolint:errcheck
	return errtrace.Wrap2(cw.Result())
}

func (et EntityTag) Render(opts *RenderOptions) string { return renderString(et, opts) }

func (et EntityTag) String() string { return et.Render(nil) }

func (et EntityTag) Format(f fmt.State, verb rune) {
	type hideMethods EntityTag
	type EntityTag hideMethods
	formatValue(f, verb, et.String(), EntityTag(et))
}

func (et EntityTag) Equal(val any) bool {
	var other EntityTag
	switch v := val.(type) {
	case EntityTag:
		other = v
	case *EntityTag:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	if et.IsAny() || other.IsAny() {
		return et.IsAny() && other.IsAny()
	}
	return et.Weak == other.Weak && et.Tag == other.Tag
}

func (et EntityTag) IsValid() bool { return et.IsAny() || grammar.IsQuoted(et.Tag) }

func (et EntityTag) IsZero() bool { return et.Tag == "" && !et.Weak }

func (et EntityTag) Clone() EntityTag { return et }

func (et EntityTag) MarshalText() ([]byte, error) { return []byte(et.String()), nil }

func (et *EntityTag) UnmarshalText(data []byte) error {
	return errtrace.Wrap(unmarshalText(et, "entity tag", data, scanEntityTag))
}

func scanEntityTag(s string, start int) (EntityTag, int, bool) {
	if start >= len(s) {
		return EntityTag{}, 0, false
	}

	var et EntityTag
	cur := start
	if s[cur] == '*' {
		et.Tag = anyTag
		cur++
	} else {
		if c := s[cur]; c == 'W' || c == 'w' {
			cur++
			// "W/" must be followed by at least an empty quoted-string
			if cur+2 >= len(s) || s[cur] != '/' {
				return EntityTag{}, 0, false
			}
			et.Weak = true
			cur++
			cur += grammar.WhitespaceLength(s, cur)
		}

		n, res := grammar.QuotedStringLength(s, cur)
		if res != grammar.Parsed {
			return EntityTag{}, 0, false
		}
		et.Tag = s[cur : cur+n]
		cur += n
	}
	cur += grammar.WhitespaceLength(s, cur)
	return et, cur - start, true
}

// scanSingleEntityTag is the ETag header scanner, the wildcard is not allowed there.
func scanSingleEntityTag(s string, start int) (EntityTag, int, bool) {
	et, n, ok := scanEntityTag(s, start)
	if !ok || et.IsAny() {
		return EntityTag{}, 0, false
	}
	return et, n, true
}
