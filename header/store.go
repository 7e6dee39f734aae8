package header

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/url"
	"reflect"
	"slices"
	"strings"

	"braces.dev/errtrace"
	"github.com/benbjohnson/clock"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/ioutil"
	"github.com/ghettovoice/httphdr/internal/log"
	"github.com/ghettovoice/httphdr/internal/types"
)

//go:generate go tool mockgen -destination=../internal/testutil/storemock/mock_store.go -package=storemock github.com/ghettovoice/httphdr/header Store

// Store is the untyped name-keyed storage of parsed header values.
// Typed collections and accessors work on top of it.
type Store interface {
	// ParsedValues returns all parsed values of the header in insertion order.
	ParsedValues(name Name) []any
	// ParsedValue returns the first parsed value of the header or nil.
	ParsedValue(name Name) any
	// SetParsedValue replaces all values of the header with v.
	SetParsedValue(name Name, v any)
	// SetOrRemoveParsedValue is like SetParsedValue, but removes the header when v is nil,
	// an empty string or a value reporting IsZero.
	SetOrRemoveParsedValue(name Name, v any)
	// AddParsedValue appends v to the header values.
	AddParsedValue(name Name, v any)
	// RemoveParsedValue removes the first value equal to v and reports whether it was found.
	RemoveParsedValue(name Name, v any) bool
	// ContainsParsedValue reports whether the header has a value equal to v.
	ContainsParsedValue(name Name, v any) bool
	// ParseAndAddValue parses raw and appends the parsed values.
	ParseAndAddValue(name Name, raw string) error
	// ClearValues removes all values of the header.
	ClearValues(name Name)
}

// StoreOptions configures a [Headers] store.
// Zero fields take the defaults.
type StoreOptions struct {
	// Logger receives debug records about dropped raw values.
	// Default is a noop logger.
	Logger *slog.Logger
	// Clock is used to compute relative moments, e.g. in [Headers.RetryAt].
	// Default is the real clock.
	Clock clock.Clock
}

func (o *StoreOptions) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Noop
	}
	return o.Logger
}

func (o *StoreOptions) clock() clock.Clock {
	if o == nil || o.Clock == nil {
		return clock.New()
	}
	return o.Clock
}

type entry struct {
	name    Name
	raw     []string
	parsed  []any
	invalid []string
}

func (e *entry) isEmpty() bool { return len(e.raw) == 0 && len(e.parsed) == 0 && len(e.invalid) == 0 }

func (e *entry) clone() *entry {
	e2 := &entry{
		name:    e.name,
		raw:     slices.Clone(e.raw),
		invalid: slices.Clone(e.invalid),
	}
	if e.parsed != nil {
		e2.parsed = make([]any, len(e.parsed))
		for i, v := range e.parsed {
			e2.parsed[i] = cloneValue(v)
		}
	}
	return e2
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case []byte:
		return slices.Clone(v)
	case *url.URL:
		if v == nil {
			return v
		}
		u := *v
		return &u
	}
	if c := reflect.ValueOf(v).MethodByName("Clone"); c.IsValid() && c.Type().NumIn() == 0 && c.Type().NumOut() == 1 {
		return c.Call(nil)[0].Interface()
	}
	return v
}

// Headers is an insertion ordered header store.
// Raw values added without validation are parsed on first access, values that fail
// to parse are kept as is for rendering.
//
// Headers is not safe for concurrent mutation.
type Headers struct {
	entries []*entry
	log     *slog.Logger
	clock   clock.Clock
}

var _ Store = (*Headers)(nil)

// NewHeaders creates an empty store. opts may be nil.
func NewHeaders(opts *StoreOptions) *Headers {
	return &Headers{
		log:   opts.logger(),
		clock: opts.clock(),
	}
}

func (h *Headers) logger() *slog.Logger {
	if h.log == nil {
		return log.Noop
	}
	return h.log
}

func (h *Headers) now() clock.Clock {
	if h.clock == nil {
		return clock.New()
	}
	return h.clock
}

func (h *Headers) find(name Name) (int, *entry) {
	name = CanonicName(name)
	for i, e := range h.entries {
		if e.name == name {
			return i, e
		}
	}
	return -1, nil
}

func (h *Headers) getOrCreate(name Name) *entry {
	if _, e := h.find(name); e != nil {
		return e
	}
	e := &entry{name: CanonicName(name)}
	h.entries = append(h.entries, e)
	return e
}

func (h *Headers) drop(name Name) bool {
	i, e := h.find(name)
	if e == nil {
		return false
	}
	h.entries = slices.Delete(h.entries, i, i+1)
	return true
}

// resolve parses pending raw values of the entry.
func (h *Headers) resolve(e *entry) {
	if len(e.raw) == 0 {
		return
	}
	raw := e.raw
	e.raw = nil
	for _, s := range raw {
		if err := h.parseInto(e, s); err != nil {
			e.invalid = append(e.invalid, s)
			h.logger().LogAttrs(context.Background(), slog.LevelDebug, "drop invalid header value",
				slog.String("header", string(e.name)),
				slog.Any("value", log.StringValue(s)),
				slog.Any("error", err),
				slog.Bool("malformed", errorutil.IsGrammarErr(err)),
			)
		}
	}
}

// parseInto parses s and appends the result to the entry, nothing is added on failure.
func (h *Headers) parseInto(e *entry, s string) error {
	p, ok := parserFor(e.name)
	if !ok {
		if strings.ContainsAny(s, "\r\n") {
			return errtrace.Wrap(newMalformedError(string(e.name), s))
		}
		e.parsed = append(e.parsed, strings.TrimSpace(s))
		return nil
	}

	var storeValue any
	if len(e.parsed) > 0 {
		storeValue = e.parsed[0]
	}

	var vals []any
	for idx := 0; ; {
		v, next, ok := p.ParseValue(s, storeValue, idx)
		if !ok {
			return errtrace.Wrap(newMalformedError(string(e.name), s))
		}
		if v != nil {
			vals = append(vals, v)
		}
		if !p.Multi() || next >= len(s) || next <= idx {
			break
		}
		idx = next
	}
	if len(vals) == 0 {
		if p.Multi() {
			return nil
		}
		return errtrace.Wrap(newMalformedError(string(e.name), s))
	}
	if !p.Multi() && len(e.parsed)+len(vals) > 1 {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrSingleValue, "header %s", e.name))
	}
	e.parsed = append(e.parsed, vals...)
	return nil
}

func (h *Headers) equal(name Name, a, b any) bool {
	if p, ok := parserFor(name); ok {
		return p.Equal(a, b)
	}
	if s1, ok := a.(string); ok {
		s2, ok := b.(string)
		return ok && s1 == s2
	}
	return types.IsEqual(a, b)
}

func (h *Headers) ParsedValues(name Name) []any {
	_, e := h.find(name)
	if e == nil {
		return nil
	}
	h.resolve(e)
	return slices.Clone(e.parsed)
}

func (h *Headers) ParsedValue(name Name) any {
	_, e := h.find(name)
	if e == nil {
		return nil
	}
	h.resolve(e)
	if len(e.parsed) == 0 {
		return nil
	}
	return e.parsed[0]
}

func (h *Headers) SetParsedValue(name Name, v any) {
	e := h.getOrCreate(name)
	e.raw, e.invalid = nil, nil
	e.parsed = []any{v}
}

func (h *Headers) SetOrRemoveParsedValue(name Name, v any) {
	if isNilOrZero(v) {
		h.drop(name)
		return
	}
	h.SetParsedValue(name, v)
}

func isNilOrZero(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return true
		}
	}
	switch v := v.(type) {
	case string:
		return v == ""
	case interface{ IsZero() bool }:
		return v.IsZero()
	}
	return false
}

func (h *Headers) AddParsedValue(name Name, v any) {
	e := h.getOrCreate(name)
	h.resolve(e)
	e.parsed = append(e.parsed, v)
}

func (h *Headers) RemoveParsedValue(name Name, v any) bool {
	i, e := h.find(name)
	if e == nil {
		return false
	}
	h.resolve(e)
	j := slices.IndexFunc(e.parsed, func(pv any) bool { return h.equal(e.name, pv, v) })
	if j < 0 {
		return false
	}
	e.parsed = slices.Delete(e.parsed, j, j+1)
	if e.isEmpty() {
		h.entries = slices.Delete(h.entries, i, i+1)
	}
	return true
}

func (h *Headers) ContainsParsedValue(name Name, v any) bool {
	_, e := h.find(name)
	if e == nil {
		return false
	}
	h.resolve(e)
	return slices.ContainsFunc(e.parsed, func(pv any) bool { return h.equal(e.name, pv, v) })
}

func (h *Headers) ParseAndAddValue(name Name, raw string) error {
	if !name.IsValid() {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid header name %q", name))
	}
	e := h.getOrCreate(name)
	h.resolve(e)
	if err := h.parseInto(e, raw); err != nil {
		if e.isEmpty() {
			h.drop(name)
		}
		return errtrace.Wrap(err)
	}
	return nil
}

func (h *Headers) ClearValues(name Name) { h.drop(name) }

// Add parses value and appends it to the header values.
func (h *Headers) Add(name Name, value string) error {
	return errtrace.Wrap(h.ParseAndAddValue(name, value))
}

// AddWithoutValidation appends value as is, it is parsed on first access.
func (h *Headers) AddWithoutValidation(name Name, value string) error {
	if !name.IsValid() {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid header name %q", name))
	}
	e := h.getOrCreate(name)
	e.raw = append(e.raw, value)
	return nil
}

// Set replaces all header values with the parsed value.
// The header is left untouched on error.
func (h *Headers) Set(name Name, value string) error {
	tmp := NewHeaders(nil)
	if err := tmp.ParseAndAddValue(name, value); err != nil {
		return errtrace.Wrap(err)
	}
	_, src := tmp.find(name)
	e := h.getOrCreate(name)
	e.raw, e.invalid = nil, nil
	e.parsed = src.parsed
	return nil
}

// Remove removes the header and reports whether it was present.
func (h *Headers) Remove(name Name) bool { return h.drop(name) }

// Contains reports whether the header is present.
func (h *Headers) Contains(name Name) bool {
	_, e := h.find(name)
	return e != nil
}

// Names returns header names in insertion order.
func (h *Headers) Names() []Name {
	names := make([]Name, len(h.entries))
	for i, e := range h.entries {
		names[i] = e.name
	}
	return names
}

// Len returns the number of distinct headers.
func (h *Headers) Len() int { return len(h.entries) }

// Values returns the rendered header values, invalid raw values follow the parsed ones.
func (h *Headers) Values(name Name) []string {
	_, e := h.find(name)
	if e == nil {
		return nil
	}
	return h.values(e, nil)
}

func (h *Headers) values(e *entry, opts *RenderOptions) []string {
	h.resolve(e)
	p, hasParser := parserFor(e.name)
	vals := make([]string, 0, len(e.parsed)+len(e.invalid))
	for _, v := range e.parsed {
		if r, ok := v.(types.Renderer); ok && opts != nil {
			vals = append(vals, r.Render(opts))
			continue
		}
		if hasParser {
			vals = append(vals, p.Render(v))
		} else {
			vals = append(vals, renderAny(v))
		}
	}
	return append(vals, e.invalid...)
}

func renderAny(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case types.Renderer:
		return v.Render(nil)
	}
	return fmt.Sprint(v)
}

// Get returns all header values joined with the header list separator.
func (h *Headers) Get(name Name) string {
	_, e := h.find(name)
	if e == nil {
		return ""
	}
	return strings.Join(h.values(e, nil), separator(e.name))
}

func separator(name Name) string {
	if p, ok := parserFor(name); ok {
		return p.Separator()
	}
	return ", "
}

// All iterates over headers in insertion order.
func (h *Headers) All() iter.Seq2[Name, []string] {
	return func(yield func(Name, []string) bool) {
		for _, e := range slices.Clone(h.entries) {
			if !yield(e.name, h.values(e, nil)) {
				return
			}
		}
	}
}

// AddHeaders copies the headers of src that are not present in h.
// Parsed values are cloned, pending raw values stay raw.
func (h *Headers) AddHeaders(src *Headers) {
	if src == nil {
		return
	}
	for _, e := range src.entries {
		if h.Contains(e.name) {
			continue
		}
		h.entries = append(h.entries, e.clone())
	}
}

// Clone returns a deep copy of the store.
func (h *Headers) Clone() *Headers {
	if h == nil {
		return nil
	}
	h2 := &Headers{log: h.log, clock: h.clock}
	h2.entries = make([]*entry, len(h.entries))
	for i, e := range h.entries {
		h2.entries[i] = e.clone()
	}
	return h2
}

// RenderTo writes headers in "Name: value CRLF" form.
func (h *Headers) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for _, e := range h.entries {
		sep := separator(e.name)
		if sep == ", " {
			sep = opts.ListSep()
		}
		cw.Fprint(e.name, ": ", strings.Join(h.values(e, opts), sep), "\r\n") //nolint:errcheck
	}
	return errtrace.Wrap2(cw.Result())
}

func (h *Headers) Render(opts *RenderOptions) string { return renderString(h, opts) }

func (h *Headers) String() string {
	if h == nil {
		return ""
	}
	return h.Render(nil)
}
