package header_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/httphdr/header"
)

func TestParseMediaType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       string
		want     header.MediaType
		wantName string
		wantStr  string
		wantErr  error
	}{
		{
			"charset",
			"application/json; charset=utf-8",
			header.MediaType{Type: "application", Subtype: "json", Params: header.Params{{Name: "charset", Value: "utf-8"}}},
			"application/json",
			"application/json; charset=utf-8",
			nil,
		},
		{
			"spaces around slash",
			"text / html ;level=1;q=0.5",
			header.MediaType{
				Type:    "text",
				Subtype: "html",
				Params:  header.Params{{Name: "level", Value: "1"}, {Name: "q", Value: "0.5"}},
			},
			"text/html",
			"text/html; level=1; q=0.5",
			nil,
		},
		{"wildcard", "*/*", header.MediaType{Type: "*", Subtype: "*"}, "*/*", "*/*", nil},
		{"no subtype", "text", header.MediaType{}, "", "", header.ErrMalformedInput},
		{"no subtype after slash", "text/", header.MediaType{}, "", "", header.ErrMalformedInput},
		{"empty param", "text/plain;", header.MediaType{}, "", "", header.ErrMalformedInput},
		{"list", "text/plain, text/html", header.MediaType{}, "", "", header.ErrMalformedInput},
		{"empty", "", header.MediaType{}, "", "", header.ErrMalformedInput},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := header.ParseMediaType(c.in)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("header.ParseMediaType(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("header.ParseMediaType(%q) = %v, want %v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
			if err != nil {
				return
			}
			if got.Name() != c.wantName {
				t.Errorf("mt.Name() = %q, want %q", got.Name(), c.wantName)
			}
			if got.String() != c.wantStr {
				t.Errorf("mt.String() = %q, want %q", got.String(), c.wantStr)
			}
			back, err := header.ParseMediaType(got.String())
			if err != nil || !back.Equal(got) {
				t.Errorf("round trip of %q = %v, %v", got.String(), back, err)
			}
		})
	}
}

func TestMediaType_CharSet(t *testing.T) {
	t.Parallel()

	mt, err := header.ParseMediaType(`text/plain; charset="utf-8"`)
	if err != nil {
		t.Fatalf("header.ParseMediaType() error = %v, want nil", err)
	}
	if got, want := mt.CharSet(), "utf-8"; got != want {
		t.Errorf("mt.CharSet() = %q, want %q", got, want)
	}

	mt2, err := mt.SetCharSet("koi8-r")
	if err != nil {
		t.Fatalf("mt.SetCharSet() error = %v, want nil", err)
	}
	if got, want := mt2.String(), "text/plain; charset=koi8-r"; got != want {
		t.Errorf("mt.String() = %q, want %q", got, want)
	}
	if got, want := mt.CharSet(), "utf-8"; got != want {
		t.Errorf("source mt.CharSet() = %q, want %q", got, want)
	}

	mt2, _ = mt2.SetCharSet("")
	if got, want := mt2.String(), "text/plain"; got != want {
		t.Errorf("mt.String() = %q, want %q", got, want)
	}

	if _, err := mt.SetCharSet("a b"); !cmp.Equal(err, header.ErrInvalidArgument, cmpopts.EquateErrors()) {
		t.Errorf("mt.SetCharSet(\"a b\") error = %v, want %v", err, header.ErrInvalidArgument)
	}
}

func TestMediaType_Equal(t *testing.T) {
	t.Parallel()

	a := header.MediaType{Type: "Text", Subtype: "HTML", Params: header.Params{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}}
	cases := []struct {
		name string
		b    any
		want bool
	}{
		{"fold and reorder", header.MediaType{Type: "text", Subtype: "html", Params: header.Params{{Name: "B", Value: "2"}, {Name: "a", Value: "1"}}}, true},
		{"pointer", &header.MediaType{Type: "text", Subtype: "html", Params: header.Params{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}}, true},
		{"other subtype", header.MediaType{Type: "text", Subtype: "plain", Params: header.Params{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}}, false},
		{"missing param", header.MediaType{Type: "text", Subtype: "html", Params: header.Params{{Name: "a", Value: "1"}}}, false},
		{"other type", "text/html", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := a.Equal(c.b); got != c.want {
				t.Errorf("mt.Equal(%v) = %v, want %v", c.b, got, c.want)
			}
		})
	}
}

func TestNewMediaType(t *testing.T) {
	t.Parallel()

	mt, err := header.NewMediaType("image/png", nil)
	if err != nil {
		t.Fatalf("header.NewMediaType() error = %v, want nil", err)
	}
	if diff := cmp.Diff(mt, header.MediaType{Type: "image", Subtype: "png"}); diff != "" {
		t.Errorf("header.NewMediaType() = %v\ndiff (-got +want):\n%v", mt, diff)
	}

	for _, name := range []string{"image", "image/", "/png", "im age/png"} {
		if _, err := header.NewMediaType(name, nil); !cmp.Equal(err, header.ErrInvalidArgument, cmpopts.EquateErrors()) {
			t.Errorf("header.NewMediaType(%q) error = %v, want %v", name, err, header.ErrInvalidArgument)
		}
	}

	mt, err = mt.SetQuality(0.3)
	if err != nil {
		t.Fatalf("mt.SetQuality() error = %v, want nil", err)
	}
	if q, ok := mt.Quality(); !ok || q != 0.3 {
		t.Errorf("mt.Quality() = %v, %v, want 0.3, true", q, ok)
	}
}
