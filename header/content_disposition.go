package header

import (
	"fmt"
	"io"
	"mime"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
)

// Disposition parameter names.
const (
	dispName         = "name"
	dispFileName     = "filename"
	dispFileNameStar = "filename*"
	dispCreation     = "creation-date"
	dispModification = "modification-date"
	dispRead         = "read-date"
	dispSize         = "size"
)

// ContentDisposition is the Content-Disposition header value, e.g. `attachment; filename="a.txt"`.
type ContentDisposition struct {
	Type   string
	Params Params
}

// NewContentDisposition creates a validated ContentDisposition.
func NewContentDisposition(typ string, params Params) (ContentDisposition, error) {
	cd := ContentDisposition{Type: typ, Params: params}
	if !cd.IsValid() {
		return ContentDisposition{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid disposition type %q", typ))
	}
	return cd, nil
}

// ParseContentDisposition parses a Content-Disposition value from s.
func ParseContentDisposition(s string) (ContentDisposition, error) {
	return errtrace.Wrap2(parseValue("content disposition", s, scanContentDisposition))
}

// TryParseContentDisposition is like [ParseContentDisposition] but reports failure with a flag.
func TryParseContentDisposition(s string) (ContentDisposition, bool) {
	return parseOne(s, scanContentDisposition)
}

// Name returns the decoded "name" parameter.
func (cd ContentDisposition) Name() string { return cd.getMime(dispName) }

// SetName sets the "name" parameter, non-ASCII names are MIME encoded.
// An empty name deletes the parameter. Names with control characters are rejected.
func (cd ContentDisposition) SetName(name string) (ContentDisposition, error) {
	return errtrace.Wrap2(cd.setMime(dispName, name))
}

// FileName returns the decoded "filename" parameter.
func (cd ContentDisposition) FileName() string { return cd.getMime(dispFileName) }

// SetFileName sets the "filename" parameter, non-ASCII names are MIME encoded.
// An empty name deletes the parameter. Names with control characters are rejected.
func (cd ContentDisposition) SetFileName(name string) (ContentDisposition, error) {
	return errtrace.Wrap2(cd.setMime(dispFileName, name))
}

// FileNameStar returns the decoded "filename*" parameter (RFC 5987).
func (cd ContentDisposition) FileNameStar() string {
	v, ok := cd.Params.Get(dispFileNameStar)
	if !ok {
		return ""
	}
	if dec, ok := decodeExtValue(v); ok {
		return dec
	}
	return v
}

// SetFileNameStar sets the "filename*" parameter encoding the name as UTF-8 (RFC 5987).
// An empty name deletes the parameter.
func (cd ContentDisposition) SetFileNameStar(name string) ContentDisposition {
	cd.Params = cd.Params.Clone()
	if name == "" {
		cd.Params = cd.Params.Del(dispFileNameStar)
		return cd
	}
	cd.Params = cd.Params.Set(dispFileNameStar, "utf-8''"+grammar.Escape(name, nil))
	return cd
}

// CreationDate returns the "creation-date" parameter.
func (cd ContentDisposition) CreationDate() (time.Time, bool) { return cd.getDate(dispCreation) }

// SetCreationDate sets the "creation-date" parameter, a zero date deletes it.
func (cd ContentDisposition) SetCreationDate(date time.Time) ContentDisposition {
	return cd.setDate(dispCreation, date)
}

// ModificationDate returns the "modification-date" parameter.
func (cd ContentDisposition) ModificationDate() (time.Time, bool) { return cd.getDate(dispModification) }

// SetModificationDate sets the "modification-date" parameter, a zero date deletes it.
func (cd ContentDisposition) SetModificationDate(date time.Time) ContentDisposition {
	return cd.setDate(dispModification, date)
}

// ReadDate returns the "read-date" parameter.
func (cd ContentDisposition) ReadDate() (time.Time, bool) { return cd.getDate(dispRead) }

// SetReadDate sets the "read-date" parameter, a zero date deletes it.
func (cd ContentDisposition) SetReadDate(date time.Time) ContentDisposition {
	return cd.setDate(dispRead, date)
}

// Size returns the "size" parameter.
func (cd ContentDisposition) Size() (int64, bool) {
	v, ok := cd.Params.Get(dispSize)
	if !ok {
		return 0, false
	}
	size, n, ok := scanInt64(v, 0)
	if !ok || n != len(v) {
		return 0, false
	}
	return size, true
}

// SetSize sets the "size" parameter, a nil size deletes it.
func (cd ContentDisposition) SetSize(size *int64) (ContentDisposition, error) {
	cd.Params = cd.Params.Clone()
	if size == nil {
		cd.Params = cd.Params.Del(dispSize)
		return cd, nil
	}
	if *size < 0 {
		return cd, errtrace.Wrap(errorutil.NewInvalidArgumentError("negative size %d", *size))
	}
	cd.Params = cd.Params.Set(dispSize, strconv.FormatInt(*size, 10))
	return cd, nil
}

func (cd ContentDisposition) getMime(name string) string {
	v, ok := cd.Params.Get(name)
	if !ok {
		return ""
	}
	if grammar.IsQuoted(v) {
		v = grammar.Unquote(v)
	}
	if dec, err := mimeDecoder.DecodeHeader(v); err == nil {
		return dec
	}
	return v
}

func (cd ContentDisposition) setMime(name, value string) (ContentDisposition, error) {
	if hasCTL(value) {
		return cd, errtrace.Wrap(errorutil.NewInvalidArgumentError("control character in %s %q", name, value))
	}
	cd.Params = cd.Params.Clone()
	if value == "" {
		cd.Params = cd.Params.Del(name)
		return cd, nil
	}
	switch {
	case grammar.IsQuoted(value):
	case !isASCII(value):
		value = grammar.Quote(mime.BEncoding.Encode("utf-8", value))
	case !grammar.IsToken(value):
		value = grammar.Quote(value)
	}
	cd.Params = cd.Params.Set(name, value)
	return cd, nil
}

func hasCTL(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; (c < ' ' && c != '\t') || c == 0x7f {
			return true
		}
	}
	return false
}

func (cd ContentDisposition) getDate(name string) (time.Time, bool) {
	v, ok := cd.Params.Get(name)
	if !ok {
		return time.Time{}, false
	}
	return grammar.ParseDate(grammar.Unquote(v))
}

func (cd ContentDisposition) setDate(name string, date time.Time) ContentDisposition {
	cd.Params = cd.Params.Clone()
	if date.IsZero() {
		cd.Params = cd.Params.Del(name)
		return cd
	}
	cd.Params = cd.Params.Set(name, `"`+grammar.FormatDate(date)+`"`)
	return cd
}

var mimeDecoder = new(mime.WordDecoder)

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// decodeExtValue decodes an RFC 5987 ext-value "charset'[language]'value-chars".
// Only UTF-8 and ISO-8859-1 charsets are supported.
func decodeExtValue(s string) (string, bool) {
	cs, rest, ok := strings.Cut(s, "'")
	if !ok {
		return "", false
	}
	_, val, ok := strings.Cut(rest, "'")
	if !ok || !grammar.IsEscaped(val) {
		return "", false
	}
	raw := grammar.Unescape(val)
	switch {
	case strings.EqualFold(cs, "utf-8"):
		if !utf8.ValidString(raw) {
			return "", false
		}
		return raw, true
	case strings.EqualFold(cs, "iso-8859-1"):
		var sb strings.Builder
		for i := 0; i < len(raw); i++ {
			sb.WriteRune(rune(raw[i]))
		}
		return sb.String(), true
	default:
		return "", false
	}
}

func (cd ContentDisposition) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(cd.Type) //nolint:errcheck
	cw.Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(cd.Params.RenderTo(w, opts)) })
	return errtrace.Wrap2(cw.Result())
}

func (cd ContentDisposition) Render(opts *RenderOptions) string { return renderString(cd, opts) }

func (cd ContentDisposition) String() string { return cd.Render(nil) }

func (cd ContentDisposition) Format(f fmt.State, verb rune) {
	type hideMethods ContentDisposition
	type ContentDisposition hideMethods
	formatValue(f, verb, cd.String(), ContentDisposition(cd))
}

func (cd ContentDisposition) Equal(val any) bool {
	var other ContentDisposition
	switch v := val.(type) {
	case ContentDisposition:
		other = v
	case *ContentDisposition:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return equalFold(cd.Type, other.Type) && cd.Params.Equal(other.Params)
}

func (cd ContentDisposition) IsValid() bool { return grammar.IsToken(cd.Type) && cd.Params.IsValid() }

func (cd ContentDisposition) IsZero() bool { return cd.Type == "" && len(cd.Params) == 0 }

func (cd ContentDisposition) Clone() ContentDisposition {
	cd.Params = cd.Params.Clone()
	return cd
}

func (cd ContentDisposition) MarshalText() ([]byte, error) { return []byte(cd.String()), nil }

func (cd *ContentDisposition) UnmarshalText(data []byte) error {
	return errtrace.Wrap(unmarshalText(cd, "content disposition", data, scanContentDisposition))
}

func scanContentDisposition(s string, start int) (ContentDisposition, int, bool) {
	n, ok := grammar.TokenLength(s, start)
	if !ok {
		return ContentDisposition{}, 0, false
	}
	cd := ContentDisposition{Type: s[start : start+n]}
	cur := start + n
	cur += grammar.WhitespaceLength(s, cur)

	ps, n, ok := scanParams(s, cur)
	if !ok {
		return ContentDisposition{}, 0, false
	}
	cd.Params = ps
	return cd, cur + n - start, true
}
