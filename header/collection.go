package header

import (
	"fmt"
	"iter"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/util"
)

// Collection is a typed ordered view of one header in a [Store].
//
// A collection created with [NewSpecialCollection] exposes one canonical value as a flag,
// e.g. "close" in Connection. The flag has no storage of its own, it is set
// exactly when the value is in the header.
type Collection[T any] struct {
	store    Store
	name     Name
	validate func(v T) error
	special  *T
}

// NewCollection creates a collection bound to the header of store.
// validate checks each added value, nil accepts everything.
func NewCollection[T any](store Store, name Name, validate func(v T) error) *Collection[T] {
	return &Collection[T]{
		store:    store,
		name:     CanonicName(name),
		validate: validate,
	}
}

// NewSpecialCollection is like [NewCollection] and additionally treats special as a flag value.
func NewSpecialCollection[T any](store Store, name Name, validate func(v T) error, special T) *Collection[T] {
	c := NewCollection(store, name, validate)
	c.special = &special
	return c
}

// Name returns the header name.
func (c *Collection[T]) Name() Name { return c.name }

// Add validates v and appends it to the header.
func (c *Collection[T]) Add(v T) error {
	if c.validate != nil {
		if err := c.validate(v); err != nil {
			return errtrace.Wrap(err)
		}
	}
	c.store.AddParsedValue(c.name, v)
	return nil
}

// ParseAdd parses raw and appends the parsed values to the header.
func (c *Collection[T]) ParseAdd(raw string) error {
	return errtrace.Wrap(c.store.ParseAndAddValue(c.name, raw))
}

// TryParseAdd is like [Collection.ParseAdd] but reports failure with a flag.
func (c *Collection[T]) TryParseAdd(raw string) bool {
	return c.store.ParseAndAddValue(c.name, raw) == nil
}

// Remove removes the first value equal to v.
func (c *Collection[T]) Remove(v T) bool { return c.store.RemoveParsedValue(c.name, v) }

// Contains reports whether the header has a value equal to v.
func (c *Collection[T]) Contains(v T) bool { return c.store.ContainsParsedValue(c.name, v) }

// Clear removes the header.
func (c *Collection[T]) Clear() { c.store.ClearValues(c.name) }

// Len returns the number of values.
func (c *Collection[T]) Len() int { return len(c.Values()) }

// All iterates over values in insertion order.
func (c *Collection[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range c.store.ParsedValues(c.name) {
			tv, ok := v.(T)
			if !ok {
				continue
			}
			if !yield(tv) {
				return
			}
		}
	}
}

// Values returns a copy of the values.
func (c *Collection[T]) Values() []T {
	var vals []T
	for v := range c.All() {
		vals = append(vals, v)
	}
	return vals
}

// String renders the values as a header field value.
func (c *Collection[T]) String() string {
	p, hasParser := parserFor(c.name)
	sep := ", "
	if hasParser {
		sep = p.Separator()
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	i := 0
	for v := range c.All() {
		if i > 0 {
			sb.WriteString(sep)
		}
		if hasParser {
			sb.WriteString(p.Render(v))
		} else {
			fmt.Fprint(sb, v)
		}
		i++
	}
	return sb.String()
}

// IsSpecialValueSet reports whether the special value is in the header.
// It is always false for collections without a special value.
func (c *Collection[T]) IsSpecialValueSet() bool {
	return c.special != nil && c.Contains(*c.special)
}

// SetSpecialValue adds the special value unless it is already present.
func (c *Collection[T]) SetSpecialValue() {
	if c.special == nil || c.Contains(*c.special) {
		return
	}
	c.store.AddParsedValue(c.name, *c.special)
}

// RemoveSpecialValue removes every instance of the special value.
func (c *Collection[T]) RemoveSpecialValue() {
	if c.special == nil {
		return
	}
	for c.store.RemoveParsedValue(c.name, *c.special) {
	}
}
