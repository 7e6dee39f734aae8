package header_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/httphdr/header"
)

func TestParseWarning(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    header.Warning
		wantStr string
		wantErr error
	}{
		{
			"host agent",
			`110 proxy.example.com:8080 "Response is stale"`,
			header.Warning{Code: 110, Agent: "proxy.example.com:8080", Text: `"Response is stale"`},
			`110 proxy.example.com:8080 "Response is stale"`,
			nil,
		},
		{
			"pseudonym with date",
			`299 -  "Misc"  "Sun, 06 Nov 1994 08:49:37 GMT"`,
			header.Warning{Code: 299, Agent: "-", Text: `"Misc"`, Date: testDate},
			`299 - "Misc" "Sun, 06 Nov 1994 08:49:37 GMT"`,
			nil,
		},
		{
			"short code",
			`7 [::1] "x"`,
			header.Warning{Code: 7, Agent: "[::1]", Text: `"x"`},
			`007 [::1] "x"`,
			nil,
		},
		{"long code", `1100 a "x"`, header.Warning{}, "", header.ErrMalformedInput},
		{"no agent", `110 "x"`, header.Warning{}, "", header.ErrMalformedInput},
		{"unquoted text", `110 agent text`, header.Warning{}, "", header.ErrMalformedInput},
		{"date without space", `110 agent "x""Sun, 06 Nov 1994 08:49:37 GMT"`, header.Warning{}, "", header.ErrMalformedInput},
		{"bad date", `110 agent "x" "yesterday"`, header.Warning{}, "", header.ErrMalformedInput},
		{"two warnings", `110 a "x", 111 b "y"`, header.Warning{}, "", header.ErrMalformedInput},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := header.ParseWarning(c.in)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("header.ParseWarning(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("header.ParseWarning(%q) = %v, want %v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
			if err != nil {
				return
			}
			if got.String() != c.wantStr {
				t.Errorf("wrn.String() = %q, want %q", got.String(), c.wantStr)
			}
			back, err := header.ParseWarning(got.String())
			if err != nil || !back.Equal(got) {
				t.Errorf("round trip of %q = %v, %v", got.String(), back, err)
			}
		})
	}
}

func TestNewWarning(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-5", -5*60*60)
	wrn, err := header.NewWarning(199, "Cache.Example.COM", `"note"`, testDate.In(loc))
	if err != nil {
		t.Fatalf("header.NewWarning() error = %v, want nil", err)
	}
	if wrn.Date.Location() != time.UTC {
		t.Errorf("wrn.Date location = %v, want UTC", wrn.Date.Location())
	}
	if !wrn.Equal(header.Warning{Code: 199, Agent: "cache.example.com", Text: `"note"`, Date: testDate}) {
		t.Errorf("wrn.Equal() = false, want true")
	}

	cases := []struct {
		name  string
		code  int
		agent string
		text  string
	}{
		{"code above", 1000, "a", `"x"`},
		{"negative code", -1, "a", `"x"`},
		{"empty agent", 110, "", `"x"`},
		{"agent with space", 110, "a b", `"x"`},
		{"unquoted text", 110, "a", "x"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if _, err := header.NewWarning(c.code, c.agent, c.text, time.Time{}); !cmp.Equal(err, header.ErrInvalidArgument, cmpopts.EquateErrors()) {
				t.Errorf("header.NewWarning() error = %v, want %v", err, header.ErrInvalidArgument)
			}
		})
	}
}
