package header

import (
	"bytes"
	"encoding/base64"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/grammar"
)

// ParseDate parses an HTTP-date.
// RFC 1123 dates are expected, RFC 850 and asctime forms are accepted as well.
func ParseDate(s string) (time.Time, error) {
	t, ok := grammar.ParseDate(s)
	if !ok {
		return time.Time{}, errtrace.Wrap(newMalformedError("date", s))
	}
	return t, nil
}

// FormatDate renders t as an RFC 1123 date in GMT.
func FormatDate(t time.Time) string { return grammar.FormatDate(t) }

func scanToken(s string, start int) (string, int, bool) {
	n, ok := grammar.TokenLength(s, start)
	if !ok {
		return "", 0, false
	}
	cur := start + n
	cur += grammar.WhitespaceLength(s, cur)
	return s[start : start+n], cur - start, true
}

func scanHost(s string, start int) (string, int, bool) {
	n, ok := grammar.HostLength(s, start, false)
	if !ok {
		return "", 0, false
	}
	cur := start + n
	cur += grammar.WhitespaceLength(s, cur)
	return s[start : start+n], cur - start, true
}

func scanContentLength(s string, start int) (int64, int, bool) {
	v, n, ok := scanInt64(s, start)
	if !ok {
		return 0, 0, false
	}
	cur := start + n
	cur += grammar.WhitespaceLength(s, cur)
	return v, cur - start, true
}

func scanMaxForwards(s string, start int) (int32, int, bool) {
	v, n, ok := scanInt32(s, start)
	if !ok {
		return 0, 0, false
	}
	cur := start + n
	cur += grammar.WhitespaceLength(s, cur)
	return v, cur - start, true
}

func scanDeltaSeconds(s string, start int) (time.Duration, int, bool) {
	v, n, ok := scanInt32(s, start)
	if !ok {
		return 0, 0, false
	}
	cur := start + n
	cur += grammar.WhitespaceLength(s, cur)
	return time.Duration(v) * time.Second, cur - start, true
}

func formatDeltaSeconds(d time.Duration) string {
	return strconv.FormatInt(int64(d/time.Second), 10)
}

func parseURI(s string) (*url.URL, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return nil, false
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, false
	}
	return u, true
}

func equalURI(a, b *url.URL) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}

func renderURI(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}

func parseBase64(s string) ([]byte, bool) {
	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, false
	}
	return b, true
}

func parseMailbox(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "\r\n") {
		return "", false
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return "", false
	}
	return s, true
}

func parseDate(s string) (time.Time, bool) { return grammar.ParseDate(s) }

func equalTime(a, b time.Time) bool { return a.Equal(b) }

// ValidateToken checks that v is a token, it is the item validator of token list collections.
func ValidateToken(v string) error {
	if !grammar.IsToken(v) {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid token %q", v))
	}
	return nil
}

var (
	tokenListParser = NewListParser(true, scanToken).WithEqual(tokenEqual).
			WithRender(func(v string) string { return v })
	dateParser = remainderParser[time.Time]{
		parse:  parseDate,
		equal:  equalTime,
		render: grammar.FormatDate,
	}
	uriParser = remainderParser[*url.URL]{
		parse:  parseURI,
		equal:  equalURI,
		render: renderURI,
	}
	base64Parser = remainderParser[[]byte]{
		parse:  parseBase64,
		equal:  bytes.Equal,
		render: base64.StdEncoding.EncodeToString,
	}
	mailboxParser = remainderParser[string]{
		parse:  parseMailbox,
		equal:  func(a, b string) bool { return a == b },
		render: func(v string) string { return v },
	}
	hostParser = NewListParser(false, scanHost).WithEqual(tokenEqual).
			WithRender(func(v string) string { return v })
	int64Parser = NewListParser(false, scanContentLength).
			WithRender(func(v int64) string { return strconv.FormatInt(v, 10) })
	int32Parser = NewListParser(false, scanMaxForwards).
			WithRender(func(v int32) string { return strconv.FormatInt(int64(v), 10) })
	deltaSecondsParser = NewListParser(false, scanDeltaSeconds).WithRender(formatDeltaSeconds)

	mediaTypeParser          = NewListParser(false, scanMediaType)
	mediaTypeListParser      = NewListParser(true, scanMediaType)
	stringWithQualityParser  = NewListParser(true, scanStringWithQuality)
	authenticationParser     = NewListParser(false, scanAuthentication)
	authenticationListParser = NewListParser(true, scanAuthentication)
	contentDispositionParser = NewListParser(false, scanContentDisposition)
	contentRangeParser       = NewListParser(false, scanContentRange)
	singleEntityTagParser    = NewListParser(false, scanSingleEntityTag)
	entityTagListParser      = NewListParser(true, scanEntityTag)
	expectParser             = NewListParser(true, scanNameValueWithParams)
	rangeConditionParser     = NewListParser(false, scanRangeCondition)
	pragmaParser             = NewListParser(true, scanNameValue)
	rangeParser              = NewListParser(false, scanRange)
	retryConditionParser     = NewListParser(false, scanRetryCondition)
	transferCodingParser     = NewListParser(true, scanTransferCoding)
	productListParser        = NewListParser(true, scanProduct)
	viaParser                = NewListParser(true, scanVia)
	warningParser            = NewListParser(true, scanWarning)
)

var knownParsers = map[Name]ValueParser{
	HdrAccept:             mediaTypeListParser,
	HdrAcceptCharset:      stringWithQualityParser,
	HdrAcceptEncoding:     stringWithQualityParser,
	HdrAcceptLanguage:     stringWithQualityParser,
	HdrAcceptRanges:       tokenListParser,
	HdrAge:                deltaSecondsParser,
	HdrAllow:              tokenListParser,
	HdrAuthorization:      authenticationParser,
	HdrCacheControl:       cacheControlParser{},
	HdrConnection:         tokenListParser,
	HdrContentDisposition: contentDispositionParser,
	HdrContentEncoding:    tokenListParser,
	HdrContentLanguage:    tokenListParser,
	HdrContentLength:      int64Parser,
	HdrContentLocation:    uriParser,
	HdrContentMD5:         base64Parser,
	HdrContentRange:       contentRangeParser,
	HdrContentType:        mediaTypeParser,
	HdrDate:               dateParser,
	HdrETag:               singleEntityTagParser,
	HdrExpect:             expectParser,
	HdrExpires:            dateParser,
	HdrFrom:               mailboxParser,
	HdrHost:               hostParser,
	HdrIfMatch:            entityTagListParser,
	HdrIfModifiedSince:    dateParser,
	HdrIfNoneMatch:        entityTagListParser,
	HdrIfRange:            rangeConditionParser,
	HdrIfUnmodifiedSince:  dateParser,
	HdrLastModified:       dateParser,
	HdrLocation:           uriParser,
	HdrMaxForwards:        int32Parser,
	HdrPragma:             pragmaParser,
	HdrProxyAuthenticate:  authenticationListParser,
	HdrProxyAuthorization: authenticationParser,
	HdrRange:              rangeParser,
	HdrReferer:            uriParser,
	HdrRetryAfter:         retryConditionParser,
	HdrServer:             productParser{},
	HdrTE:                 transferCodingParser,
	HdrTrailer:            tokenListParser,
	HdrTransferEncoding:   transferCodingParser,
	HdrUpgrade:            productListParser,
	HdrUserAgent:          productParser{},
	HdrVary:               tokenListParser,
	HdrVia:                viaParser,
	HdrWarning:            warningParser,
	HdrWWWAuthenticate:    authenticationListParser,
}
