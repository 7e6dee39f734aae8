package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
)

// Product is a "name[/version]" product token (Upgrade element, User-Agent part).
type Product struct {
	Name    string
	Version string
}

// NewProduct creates a validated Product.
func NewProduct(name, version string) (Product, error) {
	p := Product{Name: name, Version: version}
	if !p.IsValid() {
		return Product{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid product %q", p.String()))
	}
	return p, nil
}

// ParseProduct parses a product token from s, e.g. "HTTP/2.0".
func ParseProduct(s string) (Product, error) {
	return errtrace.Wrap2(parseValue("product", s, scanProduct))
}

// TryParseProduct is like [ParseProduct] but reports failure with a flag.
func TryParseProduct(s string) (Product, bool) { return parseOne(s, scanProduct) }

func (p Product) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(p.Name) //nolint:errcheck
	if p.Version != "" {
		cw.Fprint("/", p.Version) //nolint:errcheck
	}
	return errtrace.Wrap2(cw.Result())
}

func (p Product) Render(opts *RenderOptions) string { return renderString(p, opts) }

func (p Product) String() string { return p.Render(nil) }

func (p Product) Format(f fmt.State, verb rune) {
	type hideMethods Product
	type Product hideMethods
	formatValue(f, verb, p.String(), Product(p))
}

func (p Product) Equal(val any) bool {
	var other Product
	switch v := val.(type) {
	case Product:
		other = v
	case *Product:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return p.Name == other.Name && p.Version == other.Version
}

func (p Product) IsValid() bool {
	return grammar.IsToken(p.Name) && (p.Version == "" || grammar.IsToken(p.Version))
}

func (p Product) IsZero() bool { return p.Name == "" && p.Version == "" }

func (p Product) Clone() Product { return p }

func (p Product) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Product) UnmarshalText(data []byte) error {
	return errtrace.Wrap(unmarshalText(p, "product", data, scanProduct))
}

func scanProduct(s string, start int) (Product, int, bool) {
	n, ok := grammar.TokenLength(s, start)
	if !ok {
		return Product{}, 0, false
	}
	p := Product{Name: s[start : start+n]}
	cur := start + n
	cur += grammar.WhitespaceLength(s, cur)
	if cur == len(s) || s[cur] != '/' {
		return p, cur - start, true
	}

	cur++
	cur += grammar.WhitespaceLength(s, cur)
	n, ok = grammar.TokenLength(s, cur)
	if !ok {
		return Product{}, 0, false
	}
	p.Version = s[cur : cur+n]
	cur += n
	cur += grammar.WhitespaceLength(s, cur)
	return p, cur - start, true
}

// ProductInfo is a User-Agent or Server element: either a product or a comment.
// Comment keeps its parentheses.
type ProductInfo struct {
	Product *Product
	Comment string
}

// NewProductInfo creates a ProductInfo holding a product.
func NewProductInfo(name, version string) (ProductInfo, error) {
	p, err := NewProduct(name, version)
	if err != nil {
		return ProductInfo{}, errtrace.Wrap(err)
	}
	return ProductInfo{Product: &p}, nil
}

// NewCommentProductInfo creates a ProductInfo holding a comment, e.g. "(X11; Linux x86_64)".
func NewCommentProductInfo(comment string) (ProductInfo, error) {
	if !grammar.IsComment(comment) {
		return ProductInfo{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid comment %q", comment))
	}
	return ProductInfo{Comment: comment}, nil
}

// ParseProductInfo parses a single product or comment from s.
func ParseProductInfo(s string) (ProductInfo, error) {
	return errtrace.Wrap2(parseValue("product info", s, scanProductInfo))
}

// TryParseProductInfo is like [ParseProductInfo] but reports failure with a flag.
func TryParseProductInfo(s string) (ProductInfo, bool) { return parseOne(s, scanProductInfo) }

func (pi ProductInfo) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if pi.Product != nil {
		return errtrace.Wrap2(pi.Product.RenderTo(w, opts))
	}
	return errtrace.Wrap2(io.WriteString(w, pi.Comment))
}

func (pi ProductInfo) Render(opts *RenderOptions) string { return renderString(pi, opts) }

func (pi ProductInfo) String() string { return pi.Render(nil) }

func (pi ProductInfo) Format(f fmt.State, verb rune) {
	type hideMethods ProductInfo
	type ProductInfo hideMethods
	formatValue(f, verb, pi.String(), ProductInfo(pi))
}

func (pi ProductInfo) Equal(val any) bool {
	var other ProductInfo
	switch v := val.(type) {
	case ProductInfo:
		other = v
	case *ProductInfo:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	if pi.Product == nil || other.Product == nil {
		return pi.Product == nil && other.Product == nil && pi.Comment == other.Comment
	}
	return pi.Product.Equal(*other.Product)
}

func (pi ProductInfo) IsValid() bool {
	if pi.Product != nil {
		return pi.Comment == "" && pi.Product.IsValid()
	}
	return grammar.IsComment(pi.Comment)
}

func (pi ProductInfo) IsZero() bool { return pi.Product == nil && pi.Comment == "" }

func (pi ProductInfo) Clone() ProductInfo {
	if pi.Product != nil {
		pi.Product = Ptr(*pi.Product)
	}
	return pi
}

func (pi ProductInfo) MarshalText() ([]byte, error) { return []byte(pi.String()), nil }

func (pi *ProductInfo) UnmarshalText(data []byte) error {
	return errtrace.Wrap(unmarshalText(pi, "product info", data, scanProductInfo))
}

func scanProductInfo(s string, start int) (ProductInfo, int, bool) {
	if start >= len(s) {
		return ProductInfo{}, 0, false
	}

	if s[start] == '(' {
		n, res := grammar.CommentLength(s, start)
		if res != grammar.Parsed {
			return ProductInfo{}, 0, false
		}
		pi := ProductInfo{Comment: s[start : start+n]}
		cur := start + n
		cur += grammar.WhitespaceLength(s, cur)
		return pi, cur - start, true
	}

	p, n, ok := scanProduct(s, start)
	if !ok {
		return ProductInfo{}, 0, false
	}
	return ProductInfo{Product: &p}, n, true
}

// ParseProductInfoList parses a whole User-Agent or Server value from s,
// e.g. "Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101".
func ParseProductInfoList(s string) ([]ProductInfo, error) {
	var (
		list []ProductInfo
		p    productParser
	)
	for idx := 0; idx < len(s); {
		v, next, ok := p.ParseValue(s, nil, idx)
		if !ok {
			return nil, errtrace.Wrap(newMalformedError("product info list", s))
		}
		list = append(list, v.(ProductInfo)) //nolint:forcetypeassert
		idx = next
	}
	if len(list) == 0 {
		return nil, errtrace.Wrap(newMalformedError("product info list", s))
	}
	return list, nil
}
