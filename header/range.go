package header

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
)

const (
	maxInt32Digits = 10
	maxInt64Digits = 19
)

// Range is the Range header value: a unit and a list of byte ranges.
type Range struct {
	Unit  string
	Items []RangeItem
}

// NewRange creates a validated Range. An empty unit defaults to "bytes".
func NewRange(unit string, items ...RangeItem) (Range, error) {
	if unit == "" {
		unit = "bytes"
	}
	rng := Range{Unit: unit, Items: items}
	if !rng.IsValid() {
		return Range{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid range %q", rng.String()))
	}
	return rng, nil
}

// ParseRange parses a Range header value from s, e.g. "bytes=0-499,-500".
func ParseRange(s string) (Range, error) {
	return errtrace.Wrap2(parseValue("range", s, scanRange))
}

// TryParseRange is like [ParseRange] but reports failure with a flag.
func TryParseRange(s string) (Range, bool) { return parseOne(s, scanRange) }

func (rng Range) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(rng.Unit, "=") //nolint:errcheck
	for i, item := range rng.Items {
		cw.Sep(i, opts.ListSep()).WriteString(item.String()) //nolint:errcheck
	}
	return errtrace.Wrap2(cw.Result())
}

func (rng Range) Render(opts *RenderOptions) string { return renderString(rng, opts) }

func (rng Range) String() string { return rng.Render(nil) }

func (rng Range) Format(f fmt.State, verb rune) {
	type hideMethods Range
	type Range hideMethods
	formatValue(f, verb, rng.String(), Range(rng))
}

// Equal compares units case-insensitively and items regardless of order.
func (rng Range) Equal(val any) bool {
	var other Range
	switch v := val.(type) {
	case Range:
		other = v
	case *Range:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return equalFold(rng.Unit, other.Unit) &&
		equalCollections(rng.Items, other.Items, func(a, b RangeItem) bool { return a.Equal(b) })
}

func (rng Range) IsValid() bool {
	return grammar.IsToken(rng.Unit) &&
		len(rng.Items) > 0 &&
		!slices.ContainsFunc(rng.Items, func(item RangeItem) bool { return !item.IsValid() })
}

func (rng Range) IsZero() bool { return rng.Unit == "" && len(rng.Items) == 0 }

func (rng Range) Clone() Range {
	if rng.Items != nil {
		items := make([]RangeItem, len(rng.Items))
		for i := range rng.Items {
			items[i] = rng.Items[i].Clone()
		}
		rng.Items = items
	}
	return rng
}

func (rng Range) MarshalText() ([]byte, error) { return []byte(rng.String()), nil }

func (rng *Range) UnmarshalText(data []byte) error {
	return errtrace.Wrap(unmarshalText(rng, "range", data, scanRange))
}

func scanRange(s string, start int) (Range, int, bool) {
	n, ok := grammar.TokenLength(s, start)
	if !ok {
		return Range{}, 0, false
	}
	rng := Range{Unit: s[start : start+n]}
	cur := start + n
	cur += grammar.WhitespaceLength(s, cur)
	if cur == len(s) || s[cur] != '=' {
		return Range{}, 0, false
	}
	cur++
	cur += grammar.WhitespaceLength(s, cur)

	items, n, ok := scanRangeItemList(s, cur)
	if !ok {
		return Range{}, 0, false
	}
	rng.Items = items
	return rng, cur + n - start, true
}

// scanRangeItemList scans a comma-separated list of range items up to the end of s.
func scanRangeItemList(s string, start int) ([]RangeItem, int, bool) {
	cur, _ := nextNonEmptyIndex(s, start, true)
	if cur == len(s) {
		return nil, 0, false
	}

	var items []RangeItem
	for {
		item, n, ok := scanRangeItem(s, cur)
		if !ok {
			return nil, 0, false
		}
		items = append(items, item)
		cur += n

		var sepFound bool
		cur, sepFound = nextNonEmptyIndex(s, cur, true)
		if cur < len(s) && !sepFound {
			return nil, 0, false
		}
		if cur == len(s) {
			return items, cur - start, true
		}
	}
}

// RangeItem is a single byte range, at least one bound is present.
// A nil From means a suffix range "-500", a nil To an open range "500-".
type RangeItem struct {
	From *int64
	To   *int64
}

// NewRangeItem creates a validated RangeItem.
func NewRangeItem(from, to *int64) (RangeItem, error) {
	item := RangeItem{From: from, To: to}
	if !item.IsValid() {
		return RangeItem{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid range item %q", item.String()))
	}
	return item, nil
}

func (item RangeItem) String() string {
	var s string
	if item.From != nil {
		s = strconv.FormatInt(*item.From, 10)
	}
	s += "-"
	if item.To != nil {
		s += strconv.FormatInt(*item.To, 10)
	}
	return s
}

func (item RangeItem) Format(f fmt.State, verb rune) {
	type hideMethods RangeItem
	type RangeItem hideMethods
	formatValue(f, verb, item.String(), RangeItem(item))
}

func (item RangeItem) Equal(val any) bool {
	var other RangeItem
	switch v := val.(type) {
	case RangeItem:
		other = v
	case *RangeItem:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return equalInt64Ptr(item.From, other.From) && equalInt64Ptr(item.To, other.To)
}

func equalInt64Ptr(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (item RangeItem) IsValid() bool {
	switch {
	case item.From == nil && item.To == nil:
		return false
	case item.From != nil && *item.From < 0, item.To != nil && *item.To < 0:
		return false
	case item.From != nil && item.To != nil:
		return *item.From <= *item.To
	default:
		return true
	}
}

func (item RangeItem) Clone() RangeItem {
	if item.From != nil {
		item.From = Ptr(*item.From)
	}
	if item.To != nil {
		item.To = Ptr(*item.To)
	}
	return item
}

func scanRangeItem(s string, start int) (RangeItem, int, bool) {
	if start >= len(s) {
		return RangeItem{}, 0, false
	}

	cur := start
	fromStart := cur
	fromLen, _ := grammar.NumberLength(s, cur, false)
	if fromLen > maxInt64Digits {
		return RangeItem{}, 0, false
	}
	cur += fromLen
	cur += grammar.WhitespaceLength(s, cur)
	if cur == len(s) || s[cur] != '-' {
		return RangeItem{}, 0, false
	}
	cur++
	cur += grammar.WhitespaceLength(s, cur)

	toStart := cur
	var toLen int
	if cur < len(s) {
		toLen, _ = grammar.NumberLength(s, cur, false)
		if toLen > maxInt64Digits {
			return RangeItem{}, 0, false
		}
		cur += toLen
		cur += grammar.WhitespaceLength(s, cur)
	}
	if fromLen == 0 && toLen == 0 {
		return RangeItem{}, 0, false
	}

	var item RangeItem
	if fromLen > 0 {
		v, err := strconv.ParseInt(s[fromStart:fromStart+fromLen], 10, 64)
		if err != nil {
			return RangeItem{}, 0, false
		}
		item.From = &v
	}
	if toLen > 0 {
		v, err := strconv.ParseInt(s[toStart:toStart+toLen], 10, 64)
		if err != nil {
			return RangeItem{}, 0, false
		}
		item.To = &v
	}
	if item.From != nil && item.To != nil && *item.From > *item.To {
		return RangeItem{}, 0, false
	}
	return item, cur - start, true
}
