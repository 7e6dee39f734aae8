package header_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/httphdr/header"
)

func TestParseVia(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    header.Via
		wantStr string
		wantErr error
	}{
		{
			"version only",
			"1.1 proxy.example.com (Squid/4.1)",
			header.Via{ProtoVersion: "1.1", ReceivedBy: "proxy.example.com", Comment: "(Squid/4.1)"},
			"1.1 proxy.example.com (Squid/4.1)",
			nil,
		},
		{
			"protocol name",
			"HTTP / 1.0  fred:8080",
			header.Via{ProtoName: "HTTP", ProtoVersion: "1.0", ReceivedBy: "fred:8080"},
			"HTTP/1.0 fred:8080",
			nil,
		},
		{
			"pseudonym and nested comment",
			"1.0 nowhere (a (b) c)",
			header.Via{ProtoVersion: "1.0", ReceivedBy: "nowhere", Comment: "(a (b) c)"},
			"1.0 nowhere (a (b) c)",
			nil,
		},
		{"no received by", "1.1", header.Via{}, "", header.ErrMalformedInput},
		{"no space", "1.1/", header.Via{}, "", header.ErrMalformedInput},
		{"no version", "HTTP/ proxy", header.Via{}, "", header.ErrMalformedInput},
		{"open comment", "1.1 proxy (x", header.Via{}, "", header.ErrMalformedInput},
		{"leftover", "1.1 proxy extra", header.Via{}, "", header.ErrMalformedInput},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := header.ParseVia(c.in)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("header.ParseVia(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("header.ParseVia(%q) = %v, want %v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
			if err != nil {
				return
			}
			if got.String() != c.wantStr {
				t.Errorf("via.String() = %q, want %q", got.String(), c.wantStr)
			}
			back, err := header.ParseVia(got.String())
			if err != nil || !back.Equal(got) {
				t.Errorf("round trip of %q = %v, %v", got.String(), back, err)
			}
		})
	}
}

func TestVia_List(t *testing.T) {
	t.Parallel()

	h := header.NewHeaders(nil)
	if err := h.Add("Via", "1.0 fred, 1.1 example.com (Apache/1.1)"); err != nil {
		t.Fatalf("h.Add() error = %v, want nil", err)
	}
	want := []header.Via{
		{ProtoVersion: "1.0", ReceivedBy: "fred"},
		{ProtoVersion: "1.1", ReceivedBy: "example.com", Comment: "(Apache/1.1)"},
	}
	if diff := cmp.Diff(h.Via().Values(), want); diff != "" {
		t.Errorf("h.Via().Values() = %v, want %v\ndiff (-got +want):\n%v", h.Via().Values(), want, diff)
	}

	if _, err := header.NewVia("", "1.1", "a b", ""); !cmp.Equal(err, header.ErrInvalidArgument, cmpopts.EquateErrors()) {
		t.Errorf("header.NewVia() error = %v, want %v", err, header.ErrInvalidArgument)
	}
	if !(header.Via{ProtoName: "http", ProtoVersion: "1.1", ReceivedBy: "EXAMPLE.com"}).Equal(header.Via{ProtoName: "HTTP", ProtoVersion: "1.1", ReceivedBy: "example.com"}) {
		t.Errorf("Via.Equal() is not case insensitive")
	}
}
