package header

import (
	"fmt"

	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/syncutil"
	"github.com/ghettovoice/httphdr/internal/types"
	"github.com/ghettovoice/httphdr/internal/util"
)

// ScanFunc scans a single value at s[start:].
// It returns the value, the number of consumed bytes including trailing whitespace,
// and false if there is no valid value at start.
type ScanFunc[T any] func(s string, start int) (T, int, bool)

// ValueParser is the untyped contract used by the header store to parse raw
// field values of one header.
type ValueParser interface {
	// Multi reports whether the header is a comma-separated list.
	Multi() bool
	// Separator returns the separator used to join rendered values.
	Separator() string
	// ParseValue parses the value at s[idx:].
	// storeValue is the value already kept by the store for the header, if any.
	// A nil val with ok set means a valid empty element.
	ParseValue(s string, storeValue any, idx int) (val any, next int, ok bool)
	// Equal compares two parsed values.
	Equal(a, b any) bool
	// Render renders a parsed value.
	Render(v any) string
}

// ListParser is a [ValueParser] built over a per-value [ScanFunc].
// It handles list splitting, whitespace and trailing separator checks
// uniformly for every value type.
type ListParser[T any] struct {
	multi  bool
	sep    string
	scan   ScanFunc[T]
	equal  func(a, b T) bool
	render func(v T) string
}

// NewListParser creates a parser for a single value header or,
// when multi is set, a comma-separated list header.
func NewListParser[T any](multi bool, scan ScanFunc[T]) *ListParser[T] {
	return &ListParser[T]{
		multi:  multi,
		sep:    ", ",
		scan:   scan,
		equal:  func(a, b T) bool { return types.IsEqual(a, b) },
		render: func(v T) string { return fmt.Sprint(v) },
	}
}

// WithSeparator returns a copy of the parser that joins rendered values with sep.
func (p *ListParser[T]) WithSeparator(sep string) *ListParser[T] {
	p2 := *p
	p2.sep = sep
	return &p2
}

// WithEqual returns a copy of the parser that compares values with fn.
func (p *ListParser[T]) WithEqual(fn func(a, b T) bool) *ListParser[T] {
	p2 := *p
	p2.equal = fn
	return &p2
}

// WithRender returns a copy of the parser that renders values with fn.
func (p *ListParser[T]) WithRender(fn func(v T) string) *ListParser[T] {
	p2 := *p
	p2.render = fn
	return &p2
}

func (p *ListParser[T]) Multi() bool { return p.multi }

func (p *ListParser[T]) Separator() string { return p.sep }

func (p *ListParser[T]) ParseValue(s string, _ any, idx int) (any, int, bool) {
	v, has, next, ok := parseListValue(s, idx, p.multi, p.scan)
	if !ok {
		return nil, idx, false
	}
	if !has {
		return nil, next, true
	}
	return v, next, true
}

func (p *ListParser[T]) Equal(a, b any) bool {
	va, ok1 := a.(T)
	vb, ok2 := b.(T)
	return ok1 && ok2 && p.equal(va, vb)
}

func (p *ListParser[T]) Render(v any) string {
	if tv, ok := v.(T); ok {
		return p.render(tv)
	}
	return fmt.Sprint(v)
}

// ParseOne parses s as exactly one value.
func (p *ListParser[T]) ParseOne(s string) (T, bool) { return parseOne(s, p.scan) }

// ParseAll parses every element of s.
// Empty list elements are skipped. Any malformed element fails the whole input.
func (p *ListParser[T]) ParseAll(s string) ([]T, bool) {
	if !p.multi {
		v, ok := p.ParseOne(s)
		if !ok {
			return nil, false
		}
		return []T{v}, true
	}

	var vals []T
	for idx := 0; idx < len(s); {
		v, has, next, ok := parseListValue(s, idx, true, p.scan)
		if !ok {
			return nil, false
		}
		if has {
			vals = append(vals, v)
		}
		idx = next
	}
	return vals, true
}

// parseListValue parses one element of a header value starting at idx.
// has is false when a multi value header has only empty elements left.
func parseListValue[T any](s string, idx int, multi bool, scan ScanFunc[T]) (val T, has bool, next int, ok bool) {
	if idx >= len(s) {
		return val, false, idx, multi
	}

	cur, sepFound := nextNonEmptyIndex(s, idx, multi)
	if sepFound && !multi {
		return val, false, idx, false
	}
	if cur == len(s) {
		if !multi {
			return val, false, idx, false
		}
		return val, false, cur, true
	}

	v, n, scanned := scan(s, cur)
	if !scanned || n == 0 {
		return val, false, idx, false
	}
	cur += n

	cur, sepFound = nextNonEmptyIndex(s, cur, multi)
	if (sepFound && !multi) || (!sepFound && cur < len(s)) {
		return val, false, idx, false
	}
	return v, true, cur, true
}

// nextNonEmptyIndex skips whitespace and at most one list separator at s[start:].
// With skipEmpty set it also skips any following empty list elements.
func nextNonEmptyIndex(s string, start int, skipEmpty bool) (int, bool) {
	cur := start + grammar.WhitespaceLength(s, start)
	if cur == len(s) || s[cur] != ',' {
		return cur, false
	}

	cur++
	cur += grammar.WhitespaceLength(s, cur)
	if skipEmpty {
		for cur < len(s) && s[cur] == ',' {
			cur++
			cur += grammar.WhitespaceLength(s, cur)
		}
	}
	return cur, true
}

// productParser parses whitespace separated product-info lists (User-Agent, Server).
type productParser struct{}

func (productParser) Multi() bool { return true }

func (productParser) Separator() string { return " " }

func (productParser) ParseValue(s string, _ any, idx int) (any, int, bool) {
	if idx >= len(s) {
		return nil, idx, false
	}
	cur := idx + grammar.WhitespaceLength(s, idx)
	if cur == len(s) {
		return nil, idx, false
	}

	v, n, ok := scanProductInfo(s, cur)
	if !ok {
		return nil, idx, false
	}
	cur += n
	if cur < len(s) {
		// values must be separated by whitespace
		if c := s[cur-1]; c != ' ' && c != '\t' {
			return nil, idx, false
		}
	}
	return v, cur, true
}

func (productParser) Equal(a, b any) bool { return types.IsEqual(a, b) }

func (productParser) Render(v any) string { return fmt.Sprint(v) }

// remainderParser parses the whole rest of the input as one value (dates, URIs, base64).
type remainderParser[T any] struct {
	parse  func(s string) (T, bool)
	equal  func(a, b T) bool
	render func(v T) string
}

func (remainderParser[T]) Multi() bool { return false }

func (remainderParser[T]) Separator() string { return ", " }

func (p remainderParser[T]) ParseValue(s string, _ any, idx int) (any, int, bool) {
	if idx >= len(s) {
		return nil, idx, false
	}
	v, ok := p.parse(s[idx:])
	if !ok {
		return nil, idx, false
	}
	return v, len(s), true
}

func (p remainderParser[T]) Equal(a, b any) bool {
	va, ok1 := a.(T)
	vb, ok2 := b.(T)
	return ok1 && ok2 && p.equal(va, vb)
}

func (p remainderParser[T]) Render(v any) string {
	if tv, ok := v.(T); ok {
		return p.render(tv)
	}
	return fmt.Sprint(v)
}

var customParsers syncutil.RWMap[Name, ValueParser]

// RegisterParser registers a value parser for an extension header.
// Parsers of the standard headers can not be replaced.
func RegisterParser(name string, parser ValueParser) {
	customParsers.Set(CanonicName(name), parser)
}

// UnregisterParser unregisters a previously registered extension header parser.
func UnregisterParser(name string) {
	customParsers.Del(CanonicName(name))
}

// Parser returns the value parser for the header with the given name.
func Parser(name string) (ValueParser, bool) {
	return parserFor(CanonicName(name))
}

func parserFor(name Name) (ValueParser, bool) {
	if p, ok := knownParsers[name]; ok {
		return p, true
	}
	if p, ok := customParsers.Get(name); ok && p != nil {
		return p, true
	}
	return nil, false
}

func tokenEqual(a, b string) bool { return util.EqFold(a, b) }
