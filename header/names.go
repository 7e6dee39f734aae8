package header

// Canonical names of the headers with built-in parsers.
const (
	HdrAccept             Name = "Accept"
	HdrAcceptCharset      Name = "Accept-Charset"
	HdrAcceptEncoding     Name = "Accept-Encoding"
	HdrAcceptLanguage     Name = "Accept-Language"
	HdrAcceptRanges       Name = "Accept-Ranges"
	HdrAge                Name = "Age"
	HdrAllow              Name = "Allow"
	HdrAuthorization      Name = "Authorization"
	HdrCacheControl       Name = "Cache-Control"
	HdrConnection         Name = "Connection"
	HdrContentDisposition Name = "Content-Disposition"
	HdrContentEncoding    Name = "Content-Encoding"
	HdrContentLanguage    Name = "Content-Language"
	HdrContentLength      Name = "Content-Length"
	HdrContentLocation    Name = "Content-Location"
	HdrContentMD5         Name = "Content-MD5"
	HdrContentRange       Name = "Content-Range"
	HdrContentType        Name = "Content-Type"
	HdrDate               Name = "Date"
	HdrETag               Name = "ETag"
	HdrExpect             Name = "Expect"
	HdrExpires            Name = "Expires"
	HdrFrom               Name = "From"
	HdrHost               Name = "Host"
	HdrIfMatch            Name = "If-Match"
	HdrIfModifiedSince    Name = "If-Modified-Since"
	HdrIfNoneMatch        Name = "If-None-Match"
	HdrIfRange            Name = "If-Range"
	HdrIfUnmodifiedSince  Name = "If-Unmodified-Since"
	HdrLastModified       Name = "Last-Modified"
	HdrLocation           Name = "Location"
	HdrMaxForwards        Name = "Max-Forwards"
	HdrPragma             Name = "Pragma"
	HdrProxyAuthenticate  Name = "Proxy-Authenticate"
	HdrProxyAuthorization Name = "Proxy-Authorization"
	HdrRange              Name = "Range"
	HdrReferer            Name = "Referer"
	HdrRetryAfter         Name = "Retry-After"
	HdrServer             Name = "Server"
	HdrTE                 Name = "TE"
	HdrTrailer            Name = "Trailer"
	HdrTransferEncoding   Name = "Transfer-Encoding"
	HdrUpgrade            Name = "Upgrade"
	HdrUserAgent          Name = "User-Agent"
	HdrVary               Name = "Vary"
	HdrVia                Name = "Via"
	HdrWarning            Name = "Warning"
	HdrWWWAuthenticate    Name = "WWW-Authenticate"
)
