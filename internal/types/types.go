// Package types contains method-set interfaces shared by the header value types.
package types

import (
	"io"

	"github.com/google/go-cmp/cmp"
)

// Renderer is an interface that is used to render a type to a string or a writer.
type Renderer interface {
	// Render renders the type to a string with the given options.
	Render(opts *RenderOptions) string
	// RenderTo renders the type to a writer with the given options.
	RenderTo(w io.Writer, opts *RenderOptions) (int, error)
}

// RenderOptions is a struct that is used to pass options to rendering methods.
type RenderOptions struct {
	// Compact renders list and parameter separators without the optional whitespace,
	// e.g. "a,b" and "text/plain;q=0.5".
	Compact bool `json:"compact,omitempty"`
}

// ListSep returns the separator between elements of a comma-separated list.
func (opts *RenderOptions) ListSep() string {
	if opts != nil && opts.Compact {
		return ","
	}
	return ", "
}

// ParamSep returns the separator placed before each parameter.
func (opts *RenderOptions) ParamSep() string {
	if opts != nil && opts.Compact {
		return ";"
	}
	return "; "
}

type ValidFlag interface {
	IsValid() bool
}

// IsValid returns true if the value has method `IsValid() bool` and it returns true.
func IsValid(v any) bool {
	vv, ok := v.(ValidFlag)
	return ok && vv.IsValid()
}

type Equalable interface {
	Equal(val any) bool
}

// IsEqual returns true if the values are equal.
// Values implementing [Equalable] decide themselves, anything else is compared with [cmp.Equal].
func IsEqual(v1, v2 any) bool {
	if v, ok := v1.(Equalable); ok {
		return v.Equal(v2)
	}
	return cmp.Equal(v1, v2)
}
