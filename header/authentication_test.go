package header_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/httphdr/header"
)

func TestParseAuthentication(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		in         string
		want       header.Authentication
		wantParams header.Params
		wantPsOK   bool
		wantErr    error
	}{
		{
			"token68",
			"Basic dXNlcjpwYXNz==",
			header.Authentication{Scheme: "Basic", Parameter: "dXNlcjpwYXNz=="},
			nil,
			false,
			nil,
		},
		{
			"params",
			`Digest realm="example", nonce="abc, def" , qop=auth`,
			header.Authentication{Scheme: "Digest", Parameter: `realm="example", nonce="abc, def" , qop=auth`},
			header.Params{{Name: "realm", Value: `"example"`}, {Name: "nonce", Value: `"abc, def"`}, {Name: "qop", Value: "auth"}},
			true,
			nil,
		},
		{"scheme only", "Negotiate", header.Authentication{Scheme: "Negotiate"}, nil, true, nil},
		{"no space", `Digest"x"`, header.Authentication{}, nil, false, header.ErrMalformedInput},
		{"trailing comma", "Basic abc,", header.Authentication{}, nil, false, header.ErrMalformedInput},
		{"two schemes", "Basic abc, Bearer xyz", header.Authentication{}, nil, false, header.ErrMalformedInput},
		{"open quote", `Digest realm="x`, header.Authentication{}, nil, false, header.ErrMalformedInput},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := header.ParseAuthentication(c.in)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("header.ParseAuthentication(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("header.ParseAuthentication(%q) = %v, want %v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
			if err != nil {
				return
			}
			ps, ok := got.Params()
			if ok != c.wantPsOK {
				t.Errorf("auth.Params() ok = %v, want %v", ok, c.wantPsOK)
			}
			if diff := cmp.Diff(ps, c.wantParams); diff != "" {
				t.Errorf("auth.Params() = %v, want %v\ndiff (-got +want):\n%v", ps, c.wantParams, diff)
			}
			if !got.IsValid() {
				t.Errorf("auth.IsValid() = false, want true")
			}
		})
	}
}

func TestAuthentication_List(t *testing.T) {
	t.Parallel()

	h := header.NewHeaders(nil)
	err := h.Add("WWW-Authenticate", `Basic realm="a", Bearer error="invalid_token", error_description="expired",, Negotiate`)
	if err != nil {
		t.Fatalf("h.Add() error = %v, want nil", err)
	}
	want := []header.Authentication{
		{Scheme: "Basic", Parameter: `realm="a"`},
		{Scheme: "Bearer", Parameter: `error="invalid_token", error_description="expired"`},
		{Scheme: "Negotiate"},
	}
	if diff := cmp.Diff(h.WWWAuthenticate().Values(), want); diff != "" {
		t.Errorf("h.WWWAuthenticate().Values() = %v, want %v\ndiff (-got +want):\n%v", h.WWWAuthenticate().Values(), want, diff)
	}

	if err := h.Add("Authorization", "Basic abc, Bearer xyz"); err == nil {
		t.Errorf("h.Add(Authorization list) error = nil, want error")
	}
	auth, err := header.NewAuthentication("bearer", "mF_9.B5f-4.1JqM")
	if err != nil {
		t.Fatalf("header.NewAuthentication() error = %v, want nil", err)
	}
	if err := h.SetAuthorization(auth); err != nil {
		t.Fatalf("h.SetAuthorization() error = %v, want nil", err)
	}
	if got, ok := h.Authorization(); !ok || !got.Equal(header.Authentication{Scheme: "Bearer", Parameter: "mF_9.B5f-4.1JqM"}) {
		t.Errorf("h.Authorization() = %v, %v", got, ok)
	}

	if _, err := header.NewAuthentication("Basic", "a, b c"); !cmp.Equal(err, header.ErrInvalidArgument, cmpopts.EquateErrors()) {
		t.Errorf("header.NewAuthentication() error = %v, want %v", err, header.ErrInvalidArgument)
	}
}
