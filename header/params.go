package header

import (
	"io"
	"math"
	"slices"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
	"github.com/ghettovoice/httphdr/internal/util"
)

// Params is an ordered list of parameters.
// Duplicates are allowed, lookups take the first match.
type Params []NameValue

// Get returns the value of the first parameter with the given name.
func (ps Params) Get(name string) (string, bool) {
	if i := ps.index(name); i >= 0 {
		return ps[i].Value, true
	}
	return "", false
}

// Has checks whether a parameter with the given name is in the list.
func (ps Params) Has(name string) bool { return ps.index(name) >= 0 }

func (ps Params) index(name string) int {
	return slices.IndexFunc(ps, func(nv NameValue) bool { return util.EqFold(nv.Name, name) })
}

// Set replaces the value of the first parameter with the given name or appends a new one.
func (ps Params) Set(name, value string) Params {
	if i := ps.index(name); i >= 0 {
		ps[i].Value = value
		return ps
	}
	return append(ps, NameValue{Name: name, Value: value})
}

// Add appends a parameter.
func (ps Params) Add(name, value string) Params {
	return append(ps, NameValue{Name: name, Value: value})
}

// Del deletes all parameters with the given name.
func (ps Params) Del(name string) Params {
	return slices.DeleteFunc(ps, func(nv NameValue) bool { return util.EqFold(nv.Name, name) })
}

// Clone returns a copy of the list.
func (ps Params) Clone() Params { return slices.Clone(ps) }

// Equal compares lists as unordered collections with duplicates.
func (ps Params) Equal(val any) bool {
	var other Params
	switch v := val.(type) {
	case Params:
		other = v
	case *Params:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return equalCollections(ps, other, func(a, b NameValue) bool { return a.Equal(b) })
}

// IsValid checks that every parameter is a valid name-value pair.
func (ps Params) IsValid() bool {
	return !slices.ContainsFunc(ps, func(nv NameValue) bool { return !nv.IsValid() })
}

// RenderTo writes the list in the "; name=value" form.
func (ps Params) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if len(ps) == 0 {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for _, nv := range ps {
		cw.WriteString(opts.ParamSep()) //nolint:errcheck
		cw.Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(nv.RenderTo(w, opts)) })
	}
	return errtrace.Wrap2(cw.Result())
}

func (ps Params) Render(opts *RenderOptions) string { return renderString(ps, opts) }

func (ps Params) String() string { return ps.Render(nil) }

// equalCollections reports whether a and b hold the same elements
// regardless of order, counting duplicates.
func equalCollections[E any](a, b []E, eq func(a, b E) bool) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}

	used := make([]bool, len(b))
loop:
	for _, x := range a {
		for j, y := range b {
			if !used[j] && eq(x, y) {
				used[j] = true
				continue loop
			}
		}
		return false
	}
	return true
}

const qParam = "q"

// Quality returns the value of the "q" parameter.
// A missing, malformed or out of range value is reported as absent.
func (ps Params) Quality() (float64, bool) {
	v, ok := ps.Get(qParam)
	if !ok {
		return 0, false
	}
	return parseQuality(v)
}

// SetQuality sets the "q" parameter, q must be in range [0, 1].
func (ps Params) SetQuality(q float64) (Params, error) {
	if !isValidQuality(q) {
		return ps, errtrace.Wrap(errorutil.NewInvalidArgumentError("quality %v out of range [0, 1]", q))
	}
	return ps.Set(qParam, FormatQuality(q)), nil
}

// DelQuality deletes the "q" parameter.
func (ps Params) DelQuality() Params { return ps.Del(qParam) }

// FormatQuality renders q with at most three decimals, e.g. "1", "0.8", "0.125".
func FormatQuality(q float64) string {
	return strconv.FormatFloat(roundQuality(q), 'f', -1, 64)
}

// roundQuality rounds q to the three decimals a qvalue can carry.
func roundQuality(q float64) float64 { return math.Round(q*1000) / 1000 }

func isValidQuality(q float64) bool { return q >= 0 && q <= 1 }

func parseQuality(s string) (float64, bool) {
	n, ok := grammar.NumberLength(s, 0, true)
	if !ok || n != len(s) {
		return 0, false
	}
	q, err := strconv.ParseFloat(s, 64)
	if err != nil || !isValidQuality(q) {
		return 0, false
	}
	return q, true
}
