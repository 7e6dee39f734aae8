package header_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/httphdr/header"
)

func TestParseContentRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    header.ContentRange
		wantStr string
		wantErr error
	}{
		{
			"full",
			"bytes 0-499/1234",
			header.ContentRange{Unit: "bytes", From: header.Ptr[int64](0), To: header.Ptr[int64](499), Length: header.Ptr[int64](1234)},
			"bytes 0-499/1234",
			nil,
		},
		{
			"unknown length",
			"bytes 10 - 20 / *",
			header.ContentRange{Unit: "bytes", From: header.Ptr[int64](10), To: header.Ptr[int64](20)},
			"bytes 10-20/*",
			nil,
		},
		{
			"unsatisfied",
			"bytes */1234",
			header.ContentRange{Unit: "bytes", Length: header.Ptr[int64](1234)},
			"bytes */1234",
			nil,
		},
		{"reversed", "bytes 500-100/1234", header.ContentRange{}, "", header.ErrMalformedInput},
		{"beyond length", "bytes 0-1234/1234", header.ContentRange{}, "", header.ErrMalformedInput},
		{"no space", "bytes0-1/2", header.ContentRange{}, "", header.ErrMalformedInput},
		{"no length", "bytes 0-1", header.ContentRange{}, "", header.ErrMalformedInput},
		{"no slash value", "bytes 0-1/", header.ContentRange{}, "", header.ErrMalformedInput},
		{"half range", "bytes 0-/10", header.ContentRange{}, "", header.ErrMalformedInput},
		{"leftover", "bytes 0-1/10 x", header.ContentRange{}, "", header.ErrMalformedInput},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := header.ParseContentRange(c.in)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("header.ParseContentRange(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("header.ParseContentRange(%q) = %v, want %v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
			if err != nil {
				return
			}
			if got.String() != c.wantStr {
				t.Errorf("cr.String() = %q, want %q", got.String(), c.wantStr)
			}
			back, err := header.ParseContentRange(got.String())
			if err != nil || !back.Equal(got) {
				t.Errorf("round trip of %q = %v, %v", got.String(), back, err)
			}
		})
	}
}

func TestNewContentRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		from, to, len *int64
		wantErr       error
	}{
		{"full", header.Ptr[int64](0), header.Ptr[int64](9), header.Ptr[int64](10), nil},
		{"length only", nil, nil, header.Ptr[int64](10), nil},
		{"range only", header.Ptr[int64](0), header.Ptr[int64](9), nil, nil},
		{"half range", header.Ptr[int64](0), nil, nil, header.ErrInvalidArgument},
		{"reversed", header.Ptr[int64](9), header.Ptr[int64](0), nil, header.ErrInvalidArgument},
		{"to equals length", header.Ptr[int64](0), header.Ptr[int64](10), header.Ptr[int64](10), header.ErrInvalidArgument},
		{"negative length", nil, nil, header.Ptr[int64](-1), header.ErrInvalidArgument},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			cr, err := header.NewContentRange(c.from, c.to, c.len)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("header.NewContentRange() error = %v, want %v\ndiff (-got +want):\n%v", err, c.wantErr, diff)
			}
			if err == nil && (cr.HasRange() != (c.from != nil) || cr.HasLength() != (c.len != nil)) {
				t.Errorf("HasRange/HasLength mismatch for %v", cr)
			}
		})
	}
}
