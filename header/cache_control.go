package header

import (
	"fmt"
	"io"
	"slices"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
	"github.com/ghettovoice/httphdr/internal/util"
)

// CacheControl is the Cache-Control header value (RFC 2616 Section 14.9).
// Unknown directives are kept in Extensions.
type CacheControl struct {
	NoCache         bool
	NoCacheHeaders  []string
	NoStore         bool
	MaxAge          *time.Duration
	SharedMaxAge    *time.Duration
	MaxStale        bool
	MaxStaleLimit   *time.Duration
	MinFresh        *time.Duration
	NoTransform     bool
	OnlyIfCached    bool
	Public          bool
	Private         bool
	PrivateHeaders  []string
	MustRevalidate  bool
	ProxyRevalidate bool
	Extensions      Params
}

// ParseCacheControl parses a Cache-Control header value from s, e.g. "no-cache, max-age=120".
func ParseCacheControl(s string) (*CacheControl, error) {
	cc, ok := TryParseCacheControl(s)
	if !ok {
		return nil, errtrace.Wrap(newMalformedError("cache control", s))
	}
	return cc, nil
}

// TryParseCacheControl is like [ParseCacheControl] but reports failure with a flag.
func TryParseCacheControl(s string) (*CacheControl, bool) {
	cc := new(CacheControl)
	if n, ok := scanCacheControl(s, 0, cc); !ok || n != len(s) {
		return nil, false
	}
	return cc, true
}

func (cc *CacheControl) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if cc == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	var i int
	sep := func() *ioutil.CountingWriter {
		cw.Sep(i, opts.ListSep())
		i++
		return cw
	}
	flag := func(set bool, name string) {
		if set {
			sep().WriteString(name) //nolint:errcheck
		}
	}
	seconds := func(d *time.Duration, name string) {
		if d != nil {
			sep().Fprint(name, "=", int64(*d/time.Second)) //nolint:errcheck
		}
	}
	tokens := func(set bool, name string, hdrs []string) {
		if !set {
			return
		}
		sep().WriteString(name) //nolint:errcheck
		if len(hdrs) > 0 {
			cw.WriteString(`="`) //nolint:errcheck
			for j, h := range hdrs {
				cw.Sep(j, opts.ListSep()).WriteString(h) //nolint:errcheck
			}
			cw.WriteString(`"`) //nolint:errcheck
		}
	}

	flag(cc.NoStore, "no-store")
	flag(cc.NoTransform, "no-transform")
	flag(cc.OnlyIfCached, "only-if-cached")
	flag(cc.Public, "public")
	flag(cc.MustRevalidate, "must-revalidate")
	flag(cc.ProxyRevalidate, "proxy-revalidate")
	tokens(cc.NoCache, "no-cache", cc.NoCacheHeaders)
	seconds(cc.MaxAge, "max-age")
	seconds(cc.SharedMaxAge, "s-maxage")
	if cc.MaxStale {
		sep().WriteString("max-stale") //nolint:errcheck
		if cc.MaxStaleLimit != nil {
			cw.Fprint("=", int64(*cc.MaxStaleLimit/time.Second)) //nolint:errcheck
		}
	}
	seconds(cc.MinFresh, "min-fresh")
	tokens(cc.Private, "private", cc.PrivateHeaders)
	for _, ext := range cc.Extensions {
		sep().Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(ext.RenderTo(w, opts)) })
	}
	return errtrace.Wrap2(cw.Result())
}

func (cc *CacheControl) Render(opts *RenderOptions) string {
	if cc == nil {
		return ""
	}
	return renderString(cc, opts)
}

func (cc *CacheControl) String() string { return cc.Render(nil) }

func (cc *CacheControl) Format(f fmt.State, verb rune) {
	type hideMethods CacheControl
	type CacheControl hideMethods
	formatValue(f, verb, cc.String(), (*CacheControl)(cc))
}

func (cc *CacheControl) Equal(val any) bool {
	var other *CacheControl
	switch v := val.(type) {
	case CacheControl:
		other = &v
	case *CacheControl:
		other = v
	default:
		return false
	}
	if cc == nil || other == nil {
		return cc == nil && other == nil
	}

	return cc.NoCache == other.NoCache &&
		cc.NoStore == other.NoStore &&
		equalDurationPtr(cc.MaxAge, other.MaxAge) &&
		equalDurationPtr(cc.SharedMaxAge, other.SharedMaxAge) &&
		cc.MaxStale == other.MaxStale &&
		equalDurationPtr(cc.MaxStaleLimit, other.MaxStaleLimit) &&
		equalDurationPtr(cc.MinFresh, other.MinFresh) &&
		cc.NoTransform == other.NoTransform &&
		cc.OnlyIfCached == other.OnlyIfCached &&
		cc.Public == other.Public &&
		cc.Private == other.Private &&
		cc.MustRevalidate == other.MustRevalidate &&
		cc.ProxyRevalidate == other.ProxyRevalidate &&
		equalCollections(cc.NoCacheHeaders, other.NoCacheHeaders, tokenEqual) &&
		equalCollections(cc.PrivateHeaders, other.PrivateHeaders, tokenEqual) &&
		cc.Extensions.Equal(other.Extensions)
}

func equalDurationPtr(a, b *time.Duration) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (cc *CacheControl) IsValid() bool {
	if cc == nil {
		return false
	}
	for _, d := range []*time.Duration{cc.MaxAge, cc.SharedMaxAge, cc.MaxStaleLimit, cc.MinFresh} {
		if d != nil && (*d < 0 || *d/time.Second > maxDeltaSeconds) {
			return false
		}
	}
	isTokens := func(hs []string) bool { return !slices.ContainsFunc(hs, func(h string) bool { return !grammar.IsToken(h) }) }
	return isTokens(cc.NoCacheHeaders) && isTokens(cc.PrivateHeaders) && cc.Extensions.IsValid()
}

func (cc *CacheControl) IsZero() bool { return cc == nil || cc.Equal(&CacheControl{}) }

func (cc *CacheControl) Clone() *CacheControl {
	if cc == nil {
		return nil
	}
	cc2 := *cc
	for _, p := range []**time.Duration{&cc2.MaxAge, &cc2.SharedMaxAge, &cc2.MaxStaleLimit, &cc2.MinFresh} {
		if *p != nil {
			*p = Ptr(**p)
		}
	}
	cc2.NoCacheHeaders = slices.Clone(cc.NoCacheHeaders)
	cc2.PrivateHeaders = slices.Clone(cc.PrivateHeaders)
	cc2.Extensions = cc.Extensions.Clone()
	return &cc2
}

func (cc *CacheControl) MarshalText() ([]byte, error) { return []byte(cc.String()), nil }

func (cc *CacheControl) UnmarshalText(data []byte) error {
	*cc = CacheControl{}
	if len(data) == 0 {
		return nil
	}
	v, err := ParseCacheControl(string(data))
	if err != nil {
		return errtrace.Wrap(err)
	}
	*cc = *v
	return nil
}

// merge adds directives of src to cc.
func (cc *CacheControl) merge(src *CacheControl) {
	cc.NoCache = cc.NoCache || src.NoCache
	cc.NoCacheHeaders = append(cc.NoCacheHeaders, src.NoCacheHeaders...)
	cc.NoStore = cc.NoStore || src.NoStore
	cc.MaxStale = cc.MaxStale || src.MaxStale
	cc.NoTransform = cc.NoTransform || src.NoTransform
	cc.OnlyIfCached = cc.OnlyIfCached || src.OnlyIfCached
	cc.Public = cc.Public || src.Public
	cc.Private = cc.Private || src.Private
	cc.PrivateHeaders = append(cc.PrivateHeaders, src.PrivateHeaders...)
	cc.MustRevalidate = cc.MustRevalidate || src.MustRevalidate
	cc.ProxyRevalidate = cc.ProxyRevalidate || src.ProxyRevalidate
	cc.Extensions = append(cc.Extensions, src.Extensions...)
	for _, d := range []struct{ dst, src **time.Duration }{
		{&cc.MaxAge, &src.MaxAge},
		{&cc.SharedMaxAge, &src.SharedMaxAge},
		{&cc.MaxStaleLimit, &src.MaxStaleLimit},
		{&cc.MinFresh, &src.MinFresh},
	} {
		if *d.src != nil {
			*d.dst = *d.src
		}
	}
}

// scanCacheControl scans the directive list up to the end of s into cc.
// On failure cc is left untouched.
func scanCacheControl(s string, start int, cc *CacheControl) (int, bool) {
	if start >= len(s) {
		return 0, false
	}

	var dirs []NameValue
	for cur := start; cur < len(s); {
		v, has, next, ok := parseListValue(s, cur, true, scanNameValue)
		if !ok {
			return 0, false
		}
		if has {
			dirs = append(dirs, v)
		}
		cur = next
	}
	if len(dirs) == 0 {
		return 0, false
	}

	var res CacheControl
	for _, dir := range dirs {
		if !res.setDirective(dir) {
			return 0, false
		}
	}
	cc.merge(&res)
	return len(s) - start, true
}

func (cc *CacheControl) setDirective(dir NameValue) bool {
	switch util.LCase(dir.Name) {
	case "no-cache":
		return setOptionalTokenList(dir, &cc.NoCache, &cc.NoCacheHeaders)
	case "no-store":
		return setTokenOnly(dir, &cc.NoStore)
	case "max-age":
		return setSeconds(dir, &cc.MaxAge)
	case "s-maxage":
		return setSeconds(dir, &cc.SharedMaxAge)
	case "max-stale":
		if dir.Value != "" && !setSeconds(dir, &cc.MaxStaleLimit) {
			return false
		}
		cc.MaxStale = true
		return true
	case "min-fresh":
		return setSeconds(dir, &cc.MinFresh)
	case "no-transform":
		return setTokenOnly(dir, &cc.NoTransform)
	case "only-if-cached":
		return setTokenOnly(dir, &cc.OnlyIfCached)
	case "public":
		return setTokenOnly(dir, &cc.Public)
	case "private":
		return setOptionalTokenList(dir, &cc.Private, &cc.PrivateHeaders)
	case "must-revalidate":
		return setTokenOnly(dir, &cc.MustRevalidate)
	case "proxy-revalidate":
		return setTokenOnly(dir, &cc.ProxyRevalidate)
	default:
		cc.Extensions = append(cc.Extensions, dir)
		return true
	}
}

func setTokenOnly(dir NameValue, flag *bool) bool {
	if dir.Value != "" {
		return false
	}
	*flag = true
	return true
}

func setSeconds(dir NameValue, dst **time.Duration) bool {
	if dir.Value == "" {
		return false
	}
	secs, n, ok := scanInt32(dir.Value, 0)
	if !ok || n != len(dir.Value) {
		return false
	}
	d := time.Duration(secs) * time.Second
	*dst = &d
	return true
}

// setOptionalTokenList handles directives like `no-cache` and `private="Set-Cookie, Via"`.
func setOptionalTokenList(dir NameValue, flag *bool, dst *[]string) bool {
	if dir.Value == "" {
		*flag = true
		return true
	}

	v := dir.Value
	if len(v) < 3 || v[0] != '"' || v[len(v)-1] != '"' {
		return false
	}

	var hdrs []string
	end := len(v) - 1
	for cur := 1; cur < end; {
		cur, _ = nextNonEmptyIndex(v, cur, true)
		if cur == end {
			break
		}
		n, ok := grammar.TokenLength(v, cur)
		if !ok {
			return false
		}
		hdrs = append(hdrs, v[cur:cur+n])
		cur += n
	}
	if len(hdrs) == 0 {
		return false
	}
	*flag = true
	*dst = append(*dst, hdrs...)
	return true
}

// cacheControlParser merges every Cache-Control line into one value kept by the store.
type cacheControlParser struct{}

func (cacheControlParser) Multi() bool { return true }

func (cacheControlParser) Separator() string { return ", " }

func (cacheControlParser) ParseValue(s string, storeValue any, idx int) (any, int, bool) {
	if idx >= len(s) {
		return nil, idx, true
	}

	if cc, ok := storeValue.(*CacheControl); ok && cc != nil {
		n, ok := scanCacheControl(s, idx, cc)
		if !ok {
			return nil, idx, false
		}
		return nil, idx + n, true
	}

	cc := new(CacheControl)
	n, ok := scanCacheControl(s, idx, cc)
	if !ok {
		return nil, idx, false
	}
	return cc, idx + n, true
}

func (cacheControlParser) Equal(a, b any) bool {
	cc, ok := a.(*CacheControl)
	return ok && cc.Equal(b)
}

func (cacheControlParser) Render(v any) string { return fmt.Sprint(v) }
