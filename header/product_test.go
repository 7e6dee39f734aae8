package header_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/httphdr/header"
)

func TestParseProduct(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    header.Product
		wantErr error
	}{
		{"name and version", "HTTP/2.0", header.Product{Name: "HTTP", Version: "2.0"}, nil},
		{"spaces", "websocket / 13", header.Product{Name: "websocket", Version: "13"}, nil},
		{"name only", "websocket", header.Product{Name: "websocket"}, nil},
		{"empty version", "HTTP/", header.Product{}, header.ErrMalformedInput},
		{"two products", "a b", header.Product{}, header.ErrMalformedInput},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := header.ParseProduct(c.in)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("header.ParseProduct(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("header.ParseProduct(%q) = %v, want %v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
		})
	}
}

func TestParseProductInfoList(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    []header.ProductInfo
		wantErr error
	}{
		{
			"user agent",
			"Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101  Firefox/115.0",
			[]header.ProductInfo{
				{Product: &header.Product{Name: "Mozilla", Version: "5.0"}},
				{Comment: "(X11; Linux x86_64)"},
				{Product: &header.Product{Name: "Gecko", Version: "20100101"}},
				{Product: &header.Product{Name: "Firefox", Version: "115.0"}},
			},
			nil,
		},
		{"single", "curl/8.4.0", []header.ProductInfo{{Product: &header.Product{Name: "curl", Version: "8.4.0"}}}, nil},
		{"comment glued", "a/1(x)", nil, header.ErrMalformedInput},
		{"open comment", "a/1 (x", nil, header.ErrMalformedInput},
		{"empty", "  ", nil, header.ErrMalformedInput},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := header.ParseProductInfoList(c.in)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("header.ParseProductInfoList(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("header.ParseProductInfoList(%q) = %v, want %v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
		})
	}
}

func TestUserAgent(t *testing.T) {
	t.Parallel()

	h := header.NewHeaders(nil)
	if err := h.Add("User-Agent", "Mozilla/5.0 (compatible)"); err != nil {
		t.Fatalf("h.Add() error = %v, want nil", err)
	}
	if got, want := h.UserAgent().Len(), 2; got != want {
		t.Errorf("h.UserAgent().Len() = %d, want %d", got, want)
	}
	pi, err := header.NewProductInfo("Bot", "1")
	if err != nil {
		t.Fatalf("header.NewProductInfo() error = %v, want nil", err)
	}
	if err := h.UserAgent().Add(pi); err != nil {
		t.Fatalf("h.UserAgent().Add() error = %v, want nil", err)
	}
	if got, want := h.Get("User-Agent"), "Mozilla/5.0 (compatible) Bot/1"; got != want {
		t.Errorf("h.Get(\"User-Agent\") = %q, want %q", got, want)
	}

	if _, err := header.NewCommentProductInfo("no parens"); !cmp.Equal(err, header.ErrInvalidArgument, cmpopts.EquateErrors()) {
		t.Errorf("header.NewCommentProductInfo() error = %v, want %v", err, header.ErrInvalidArgument)
	}
	if err := h.UserAgent().Add(header.ProductInfo{Comment: "bad"}); !cmp.Equal(err, header.ErrInvalidArgument, cmpopts.EquateErrors()) {
		t.Errorf("h.UserAgent().Add(invalid) error = %v, want %v", err, header.ErrInvalidArgument)
	}
}
