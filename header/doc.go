// Package header provides structured HTTP header values defined by RFC 2616
// and related extensions.
//
// The package turns raw header field text into typed, validated values and renders
// them back to wire form. It performs no I/O.
//
// # Overview
//
// Every structured header has a value type: [MediaType], [CacheControl], [Range],
// [ContentRange], [EntityTag], [RangeCondition], [RetryCondition], [Warning], [Via],
// [Product], [ProductInfo], [StringWithQuality], [TransferCoding], [ContentDisposition],
// [Authentication], [NameValue] and [NameValueWithParams].
//
// All value types share one method set: String and Render produce the canonical wire form,
// Equal compares values by the header rules, IsValid checks the grammar and the constraints,
// Clone returns a deep copy, MarshalText and UnmarshalText adapt them to encoding packages.
// The canonical form round trips through the parser:
//
//	mt, _ := header.ParseMediaType(v.String())
//	mt.Equal(v) // true
//
// # Parsing
//
// Each type X has a strict ParseX function that fails unless the whole input is
// exactly one value, and a TryParseX variant that reports failure with a flag:
//
//	cc, err := header.ParseCacheControl("no-cache, no-store, max-age=120")
//	et, ok := header.TryParseEntityTag(`W/"abc"`)
//
// ParseX errors wrap [ErrMalformedInput], errors of NewX constructors and setters
// wrap [ErrInvalidArgument]. Use [errors.Is] to check them.
//
// # List engine
//
// Comma-separated list headers are parsed by a [ListParser] built over a per-value
// [ScanFunc]. It skips whitespace and empty list elements, so "a, , b" yields two
// values, and rejects any leftover text after a value. Built-in headers have their
// parsers registered by canonical name, see [Parser]. Extension headers may
// register their own via [RegisterParser].
//
// # Header store
//
// [Store] is the untyped name-keyed storage of parsed values. [Headers] implements it:
//
//	h := header.NewHeaders(nil)
//	_ = h.AddWithoutValidation("Connection", "keep-alive, close")
//	h.ConnectionClose() // true
//
// Raw values added without validation are parsed on first access. Values that fail to
// parse are kept verbatim and rendered after the parsed ones.
//
// # Collections and flags
//
// [Collection] is a typed view of one header in a store. Some collections treat one
// canonical value as a flag ("close" in Connection, "chunked" in Transfer-Encoding,
// "100-continue" in Expect). The flag is stored as the value itself, so adding
// or removing the value through the collection and setting the flag are the same thing.
//
// # Concurrency
//
// Parsers are stateless and safe for concurrent use. Value types are safe to read
// concurrently. [Headers] and the collections over it must not be mutated concurrently.
package header
