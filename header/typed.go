package header

import (
	"net/url"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/types"
)

// Special values of the flag collections.
const (
	connectionClose         = "close"
	transferEncodingChunked = "chunked"
	expectContinue          = "100-continue"
)

func validateValue[T any](v T) error {
	if !types.IsValid(v) {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid value %q", renderAny(v)))
	}
	return nil
}

func parsedValue[T any](h *Headers, name Name) (T, bool) {
	v, ok := h.ParsedValue(name).(T)
	return v, ok
}

// setValid replaces the header with v, a nil or zero v removes the header.
func (h *Headers) setValid(name Name, v any) error {
	if isNilOrZero(v) {
		h.drop(name)
		return nil
	}
	if !types.IsValid(v) {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid %s value %q", name, renderAny(v)))
	}
	h.SetParsedValue(name, v)
	return nil
}

func (h *Headers) setDate(name Name, t time.Time) {
	if t.IsZero() {
		h.drop(name)
		return
	}
	h.SetParsedValue(name, t.UTC().Truncate(time.Second))
}

func (h *Headers) setURI(name Name, u *url.URL) {
	if u == nil {
		h.drop(name)
		return
	}
	h.SetParsedValue(name, u)
}

func (h *Headers) tokens(name Name) *Collection[string] {
	return NewCollection(h, name, ValidateToken)
}

// Request headers.

// Accept returns the Accept media ranges.
func (h *Headers) Accept() *Collection[MediaType] {
	return NewCollection(h, HdrAccept, validateValue[MediaType])
}

// AcceptCharset returns the Accept-Charset values.
func (h *Headers) AcceptCharset() *Collection[StringWithQuality] {
	return NewCollection(h, HdrAcceptCharset, validateValue[StringWithQuality])
}

// AcceptEncoding returns the Accept-Encoding values.
func (h *Headers) AcceptEncoding() *Collection[StringWithQuality] {
	return NewCollection(h, HdrAcceptEncoding, validateValue[StringWithQuality])
}

// AcceptLanguage returns the Accept-Language values.
func (h *Headers) AcceptLanguage() *Collection[StringWithQuality] {
	return NewCollection(h, HdrAcceptLanguage, validateValue[StringWithQuality])
}

func (h *Headers) Authorization() (Authentication, bool) {
	return parsedValue[Authentication](h, HdrAuthorization)
}

func (h *Headers) SetAuthorization(auth Authentication) error {
	return errtrace.Wrap(h.setValid(HdrAuthorization, auth))
}

// Expect returns the Expect expectations.
func (h *Headers) Expect() *Collection[NameValueWithParams] {
	return NewSpecialCollection(h, HdrExpect, validateValue[NameValueWithParams],
		NameValueWithParams{NameValue: NameValue{Name: expectContinue}})
}

// ExpectContinue reports whether Expect holds "100-continue".
func (h *Headers) ExpectContinue() bool { return h.Expect().IsSpecialValueSet() }

// SetExpectContinue adds or removes "100-continue" in Expect.
func (h *Headers) SetExpectContinue(v bool) {
	if v {
		h.Expect().SetSpecialValue()
	} else {
		h.Expect().RemoveSpecialValue()
	}
}

func (h *Headers) From() (string, bool) { return parsedValue[string](h, HdrFrom) }

// SetFrom sets the From mailbox, an empty value removes the header.
func (h *Headers) SetFrom(mailbox string) error {
	if mailbox == "" {
		h.drop(HdrFrom)
		return nil
	}
	v, ok := parseMailbox(mailbox)
	if !ok {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid mailbox %q", mailbox))
	}
	h.SetParsedValue(HdrFrom, v)
	return nil
}

func (h *Headers) Host() (string, bool) { return parsedValue[string](h, HdrHost) }

// SetHost sets the Host value, an empty value removes the header.
func (h *Headers) SetHost(host string) error {
	if host == "" {
		h.drop(HdrHost)
		return nil
	}
	if n, ok := grammar.HostLength(host, 0, false); !ok || n != len(host) {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid host %q", host))
	}
	h.SetParsedValue(HdrHost, host)
	return nil
}

// IfMatch returns the If-Match entity tags.
func (h *Headers) IfMatch() *Collection[EntityTag] {
	return NewCollection(h, HdrIfMatch, validateValue[EntityTag])
}

// IfNoneMatch returns the If-None-Match entity tags.
func (h *Headers) IfNoneMatch() *Collection[EntityTag] {
	return NewCollection(h, HdrIfNoneMatch, validateValue[EntityTag])
}

func (h *Headers) IfModifiedSince() (time.Time, bool) {
	return parsedValue[time.Time](h, HdrIfModifiedSince)
}

func (h *Headers) SetIfModifiedSince(t time.Time) { h.setDate(HdrIfModifiedSince, t) }

func (h *Headers) IfUnmodifiedSince() (time.Time, bool) {
	return parsedValue[time.Time](h, HdrIfUnmodifiedSince)
}

func (h *Headers) SetIfUnmodifiedSince(t time.Time) { h.setDate(HdrIfUnmodifiedSince, t) }

func (h *Headers) IfRange() (RangeCondition, bool) {
	return parsedValue[RangeCondition](h, HdrIfRange)
}

func (h *Headers) SetIfRange(rc RangeCondition) error {
	return errtrace.Wrap(h.setValid(HdrIfRange, rc))
}

func (h *Headers) MaxForwards() (int32, bool) { return parsedValue[int32](h, HdrMaxForwards) }

// SetMaxForwards sets Max-Forwards, nil removes the header.
func (h *Headers) SetMaxForwards(v *int32) error {
	if v == nil {
		h.drop(HdrMaxForwards)
		return nil
	}
	if *v < 0 {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("negative max forwards %d", *v))
	}
	h.SetParsedValue(HdrMaxForwards, *v)
	return nil
}

func (h *Headers) ProxyAuthorization() (Authentication, bool) {
	return parsedValue[Authentication](h, HdrProxyAuthorization)
}

func (h *Headers) SetProxyAuthorization(auth Authentication) error {
	return errtrace.Wrap(h.setValid(HdrProxyAuthorization, auth))
}

func (h *Headers) Range() (Range, bool) { return parsedValue[Range](h, HdrRange) }

func (h *Headers) SetRange(rng Range) error { return errtrace.Wrap(h.setValid(HdrRange, rng)) }

func (h *Headers) Referer() (*url.URL, bool) { return parsedValue[*url.URL](h, HdrReferer) }

func (h *Headers) SetReferer(u *url.URL) { h.setURI(HdrReferer, u) }

// TE returns the TE transfer codings.
func (h *Headers) TE() *Collection[TransferCoding] {
	return NewCollection(h, HdrTE, validateValue[TransferCoding])
}

// UserAgent returns the User-Agent products and comments.
func (h *Headers) UserAgent() *Collection[ProductInfo] {
	return NewCollection(h, HdrUserAgent, validateValue[ProductInfo])
}

// Response headers.

// AcceptRanges returns the Accept-Ranges units.
func (h *Headers) AcceptRanges() *Collection[string] { return h.tokens(HdrAcceptRanges) }

func (h *Headers) Age() (time.Duration, bool) { return parsedValue[time.Duration](h, HdrAge) }

// SetAge sets Age truncated to seconds, nil removes the header.
func (h *Headers) SetAge(d *time.Duration) error {
	if d == nil {
		h.drop(HdrAge)
		return nil
	}
	if *d < 0 || *d/time.Second > maxDeltaSeconds {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("age %v out of range", *d))
	}
	h.SetParsedValue(HdrAge, d.Truncate(time.Second))
	return nil
}

func (h *Headers) ETag() (EntityTag, bool) { return parsedValue[EntityTag](h, HdrETag) }

// SetETag sets ETag, the wildcard tag is rejected.
func (h *Headers) SetETag(et EntityTag) error {
	if et.IsAny() {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("wildcard entity tag in ETag"))
	}
	return errtrace.Wrap(h.setValid(HdrETag, et))
}

func (h *Headers) Location() (*url.URL, bool) { return parsedValue[*url.URL](h, HdrLocation) }

func (h *Headers) SetLocation(u *url.URL) { h.setURI(HdrLocation, u) }

// ProxyAuthenticate returns the Proxy-Authenticate challenges.
func (h *Headers) ProxyAuthenticate() *Collection[Authentication] {
	return NewCollection(h, HdrProxyAuthenticate, validateValue[Authentication])
}

func (h *Headers) RetryAfter() (RetryCondition, bool) {
	return parsedValue[RetryCondition](h, HdrRetryAfter)
}

func (h *Headers) SetRetryAfter(rc RetryCondition) error {
	return errtrace.Wrap(h.setValid(HdrRetryAfter, rc))
}

// RetryAt returns the moment given by Retry-After.
// A delay counts from the Date header, or from the store clock when there is no Date.
func (h *Headers) RetryAt() (time.Time, bool) {
	rc, ok := h.RetryAfter()
	if !ok {
		return time.Time{}, false
	}
	base, ok := h.Date()
	if !ok {
		base = h.now().Now().UTC()
	}
	return rc.RetryAt(base), true
}

// Server returns the Server products and comments.
func (h *Headers) Server() *Collection[ProductInfo] {
	return NewCollection(h, HdrServer, validateValue[ProductInfo])
}

// Vary returns the Vary header names.
func (h *Headers) Vary() *Collection[string] { return h.tokens(HdrVary) }

// WWWAuthenticate returns the WWW-Authenticate challenges.
func (h *Headers) WWWAuthenticate() *Collection[Authentication] {
	return NewCollection(h, HdrWWWAuthenticate, validateValue[Authentication])
}

// General headers.

// CacheControl returns the merged Cache-Control directives.
// The value is shared with the store.
func (h *Headers) CacheControl() (*CacheControl, bool) {
	cc, ok := parsedValue[*CacheControl](h, HdrCacheControl)
	return cc, ok && cc != nil
}

// SetCacheControl replaces Cache-Control, nil or empty directives remove the header.
func (h *Headers) SetCacheControl(cc *CacheControl) error {
	return errtrace.Wrap(h.setValid(HdrCacheControl, cc))
}

// Connection returns the Connection options.
func (h *Headers) Connection() *Collection[string] {
	return NewSpecialCollection(h, HdrConnection, ValidateToken, connectionClose)
}

// ConnectionClose reports whether Connection holds "close".
func (h *Headers) ConnectionClose() bool { return h.Connection().IsSpecialValueSet() }

// SetConnectionClose adds or removes "close" in Connection.
func (h *Headers) SetConnectionClose(v bool) {
	if v {
		h.Connection().SetSpecialValue()
	} else {
		h.Connection().RemoveSpecialValue()
	}
}

func (h *Headers) Date() (time.Time, bool) { return parsedValue[time.Time](h, HdrDate) }

func (h *Headers) SetDate(t time.Time) { h.setDate(HdrDate, t) }

// Pragma returns the Pragma directives.
func (h *Headers) Pragma() *Collection[NameValue] {
	return NewCollection(h, HdrPragma, validateValue[NameValue])
}

// Trailer returns the Trailer header names.
func (h *Headers) Trailer() *Collection[string] { return h.tokens(HdrTrailer) }

// TransferEncoding returns the Transfer-Encoding codings.
func (h *Headers) TransferEncoding() *Collection[TransferCoding] {
	return NewSpecialCollection(h, HdrTransferEncoding, validateValue[TransferCoding],
		TransferCoding{Value: transferEncodingChunked})
}

// TransferEncodingChunked reports whether Transfer-Encoding holds "chunked".
func (h *Headers) TransferEncodingChunked() bool { return h.TransferEncoding().IsSpecialValueSet() }

// SetTransferEncodingChunked adds or removes "chunked" in Transfer-Encoding.
func (h *Headers) SetTransferEncodingChunked(v bool) {
	if v {
		h.TransferEncoding().SetSpecialValue()
	} else {
		h.TransferEncoding().RemoveSpecialValue()
	}
}

// Upgrade returns the Upgrade protocols.
func (h *Headers) Upgrade() *Collection[Product] {
	return NewCollection(h, HdrUpgrade, validateValue[Product])
}

// Via returns the Via hops.
func (h *Headers) Via() *Collection[Via] {
	return NewCollection(h, HdrVia, validateValue[Via])
}

// Warning returns the Warning values.
func (h *Headers) Warning() *Collection[Warning] {
	return NewCollection(h, HdrWarning, validateValue[Warning])
}

// Content headers.

// Allow returns the Allow methods.
func (h *Headers) Allow() *Collection[string] { return h.tokens(HdrAllow) }

func (h *Headers) ContentDisposition() (ContentDisposition, bool) {
	return parsedValue[ContentDisposition](h, HdrContentDisposition)
}

func (h *Headers) SetContentDisposition(cd ContentDisposition) error {
	return errtrace.Wrap(h.setValid(HdrContentDisposition, cd))
}

// ContentEncoding returns the Content-Encoding codings.
func (h *Headers) ContentEncoding() *Collection[string] { return h.tokens(HdrContentEncoding) }

// ContentLanguage returns the Content-Language tags.
func (h *Headers) ContentLanguage() *Collection[string] { return h.tokens(HdrContentLanguage) }

func (h *Headers) ContentLength() (int64, bool) { return parsedValue[int64](h, HdrContentLength) }

// SetContentLength sets Content-Length, nil removes the header.
func (h *Headers) SetContentLength(n *int64) error {
	if n == nil {
		h.drop(HdrContentLength)
		return nil
	}
	if *n < 0 {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("negative content length %d", *n))
	}
	h.SetParsedValue(HdrContentLength, *n)
	return nil
}

func (h *Headers) ContentLocation() (*url.URL, bool) {
	return parsedValue[*url.URL](h, HdrContentLocation)
}

func (h *Headers) SetContentLocation(u *url.URL) { h.setURI(HdrContentLocation, u) }

func (h *Headers) ContentMD5() ([]byte, bool) { return parsedValue[[]byte](h, HdrContentMD5) }

// SetContentMD5 sets Content-MD5, an empty digest removes the header.
func (h *Headers) SetContentMD5(digest []byte) {
	if len(digest) == 0 {
		h.drop(HdrContentMD5)
		return
	}
	h.SetParsedValue(HdrContentMD5, digest)
}

func (h *Headers) ContentRange() (ContentRange, bool) {
	return parsedValue[ContentRange](h, HdrContentRange)
}

func (h *Headers) SetContentRange(cr ContentRange) error {
	return errtrace.Wrap(h.setValid(HdrContentRange, cr))
}

func (h *Headers) ContentType() (MediaType, bool) { return parsedValue[MediaType](h, HdrContentType) }

func (h *Headers) SetContentType(mt MediaType) error {
	return errtrace.Wrap(h.setValid(HdrContentType, mt))
}

func (h *Headers) Expires() (time.Time, bool) { return parsedValue[time.Time](h, HdrExpires) }

func (h *Headers) SetExpires(t time.Time) { h.setDate(HdrExpires, t) }

func (h *Headers) LastModified() (time.Time, bool) {
	return parsedValue[time.Time](h, HdrLastModified)
}

func (h *Headers) SetLastModified(t time.Time) { h.setDate(HdrLastModified, t) }
