package header_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/httphdr/header"
)

func TestParseStringWithQuality(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    header.StringWithQuality
		wantStr string
		wantErr error
	}{
		{"quality", "gzip;q=0.8", header.StringWithQuality{Value: "gzip", Quality: header.Ptr(0.8)}, "gzip; q=0.8", nil},
		{"spaces", "gzip ; Q = 0.5 ", header.StringWithQuality{Value: "gzip", Quality: header.Ptr(0.5)}, "gzip; q=0.5", nil},
		{"no quality", "identity", header.StringWithQuality{Value: "identity"}, "identity", nil},
		{"zero", "*;q=0", header.StringWithQuality{Value: "*", Quality: header.Ptr(0.0)}, "*; q=0", nil},
		{"one", "br;q=1", header.StringWithQuality{Value: "br", Quality: header.Ptr(1.0)}, "br; q=1", nil},
		{"one decimals", "br;q=1.000", header.StringWithQuality{Value: "br", Quality: header.Ptr(1.0)}, "br; q=1", nil},
		{"above one", "gzip;q=1.001", header.StringWithQuality{}, "", header.ErrMalformedInput},
		{"negative", "gzip;q=-0.001", header.StringWithQuality{}, "", header.ErrMalformedInput},
		{"other param", "gzip;level=1", header.StringWithQuality{}, "", header.ErrMalformedInput},
		{"list", "gzip, br", header.StringWithQuality{}, "", header.ErrMalformedInput},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := header.ParseStringWithQuality(c.in)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("header.ParseStringWithQuality(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("header.ParseStringWithQuality(%q) = %v, want %v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
			if err != nil {
				return
			}
			if got.String() != c.wantStr {
				t.Errorf("sq.String() = %q, want %q", got.String(), c.wantStr)
			}
			back, err := header.ParseStringWithQuality(got.String())
			if err != nil || !back.Equal(got) {
				t.Errorf("round trip of %q = %v, %v", got.String(), back, err)
			}
		})
	}
}

func TestNewStringWithQuality(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		value   string
		q       *float64
		wantErr error
	}{
		{"no quality", "gzip", nil, nil},
		{"bounds low", "gzip", header.Ptr(0.0), nil},
		{"bounds high", "gzip", header.Ptr(1.0), nil},
		{"above", "gzip", header.Ptr(1.001), header.ErrInvalidArgument},
		{"below", "gzip", header.Ptr(-0.001), header.ErrInvalidArgument},
		{"not token", "gz ip", nil, header.ErrInvalidArgument},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			_, err := header.NewStringWithQuality(c.value, c.q)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("header.NewStringWithQuality() error = %v, want %v\ndiff (-got +want):\n%v", err, c.wantErr, diff)
			}
		})
	}
}

func TestStringWithQuality_Render(t *testing.T) {
	t.Parallel()

	sq := header.StringWithQuality{Value: "gzip", Quality: header.Ptr(0.8)}
	if got, want := sq.Render(&header.RenderOptions{Compact: true}), "gzip;q=0.8"; got != want {
		t.Errorf("sq.Render(compact) = %q, want %q", got, want)
	}

	txt, err := sq.MarshalText()
	if err != nil {
		t.Fatalf("sq.MarshalText() error = %v, want nil", err)
	}
	var back header.StringWithQuality
	if err := back.UnmarshalText(txt); err != nil {
		t.Fatalf("sq.UnmarshalText(%q) error = %v, want nil", txt, err)
	}
	if !back.Equal(sq) {
		t.Errorf("sq.UnmarshalText(%q) = %v, want %v", txt, back, sq)
	}

	c := sq.Clone()
	*c.Quality = 0.1
	if *sq.Quality != 0.8 {
		t.Errorf("clone shares quality with the source")
	}
}
