package grammar_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/httphdr/internal/grammar"
)

func TestQuote(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want string
	}{
		{"empty", "", `""`},
		{"no quote", "abc", `"abc"`},
		{"with quote", `"ab"c"`, `"\"ab\"c\""`},
		{"with backslash quote", `ab\"c`, `"ab\\\"c"`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.Quote(c.str), c.want; got != want {
				t.Errorf("grammar.Quote(%q) = %q, want %q", c.str, got, want)
			}
		})
	}
}

func TestUnquote(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want string
	}{
		{"empty", "", ""},
		{"empty quote", `""`, ""},
		{"no quote", "abc", "abc"},
		{"with quote", `"abc"`, "abc"},
		{"with backslash quote", `"\"ab\"c\\\""`, `"ab"c\"`},
		{"unterminated", `"abc`, `"abc`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.Unquote(c.str), c.want; got != want {
				t.Errorf("grammar.Unquote(%q) = %q, want %q", c.str, got, want)
			}
		})
	}
}

func TestTokenLength(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		str    string
		start  int
		wantN  int
		wantOK bool
	}{
		{"empty", "", 0, 0, false},
		{"out of range", "abc", 5, 0, false},
		{"negative", "abc", -1, 0, false},
		{"whole", "gzip", 0, 4, true},
		{"stops at separator", "no-cache, public", 0, 8, true},
		{"from index", "a=b", 2, 1, true},
		{"separator first", "/json", 0, 0, false},
		{"punctuation", "!#$%&'*+-.^_`|~", 0, 15, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			n, ok := grammar.TokenLength(c.str, c.start)
			if n != c.wantN || ok != c.wantOK {
				t.Errorf("grammar.TokenLength(%q, %d) = (%d, %v), want (%d, %v)",
					c.str, c.start, n, ok, c.wantN, c.wantOK,
				)
			}
		})
	}
}

func TestQuotedStringLength(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		str     string
		wantN   int
		wantRes grammar.Result
	}{
		{"empty", "", 0, grammar.NotParsed},
		{"not quoted", "abc", 0, grammar.NotParsed},
		{"empty quoted", `""`, 2, grammar.Parsed},
		{"simple", `"abc" rest`, 5, grammar.Parsed},
		{"escaped quote", `"a\"b"`, 6, grammar.Parsed},
		{"unterminated", `"abc`, 0, grammar.Invalid},
		{"escape at end", `"abc\`, 0, grammar.Invalid},
		{"bare control", "\"a\x01b\"", 0, grammar.Invalid},
		{"tab", "\"a\tb\"", 5, grammar.Parsed},
		{"folding", "\"a\r\n b\"", 7, grammar.Parsed},
		{"bare cr", "\"a\rb\"", 0, grammar.Invalid},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			n, res := grammar.QuotedStringLength(c.str, 0)
			if n != c.wantN || res != c.wantRes {
				t.Errorf("grammar.QuotedStringLength(%q, 0) = (%d, %v), want (%d, %v)",
					c.str, n, res, c.wantN, c.wantRes,
				)
			}
		})
	}
}

func TestCommentLength(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		str     string
		wantN   int
		wantRes grammar.Result
	}{
		{"empty", "", 0, grammar.NotParsed},
		{"not comment", "abc", 0, grammar.NotParsed},
		{"simple", "(Windows NT 10.0) rest", 17, grammar.Parsed},
		{"nested", "(a (b (c)))", 11, grammar.Parsed},
		{"escaped paren", `(a\)b)`, 6, grammar.Parsed},
		{"unterminated", "(abc", 0, grammar.Invalid},
		{"unbalanced", "(a (b)", 0, grammar.Invalid},
		{"max nesting", "((((((a))))))", 13, grammar.Parsed},
		{"too deep", "(((((((a)))))))", 0, grammar.Invalid},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			n, res := grammar.CommentLength(c.str, 0)
			if n != c.wantN || res != c.wantRes {
				t.Errorf("grammar.CommentLength(%q, 0) = (%d, %v), want (%d, %v)",
					c.str, n, res, c.wantN, c.wantRes,
				)
			}
		})
	}
}

func TestWhitespaceLength(t *testing.T) {
	t.Parallel()

	cases := []struct {
		str   string
		start int
		want  int
	}{
		{"", 0, 0},
		{"abc", 0, 0},
		{"  \tabc", 0, 3},
		{"a \r\n\tb", 1, 4},
		{"a \r\nb", 1, 1},
		{"a  ", 1, 2},
	}

	for _, c := range cases {
		t.Run(c.str, func(t *testing.T) {
			t.Parallel()

			if got := grammar.WhitespaceLength(c.str, c.start); got != c.want {
				t.Errorf("grammar.WhitespaceLength(%q, %d) = %d, want %d", c.str, c.start, got, c.want)
			}
		})
	}
}

func TestNumberLength(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		str          string
		allowDecimal bool
		wantN        int
		wantOK       bool
	}{
		{"empty", "", false, 0, false},
		{"integer", "120, x", false, 3, true},
		{"decimal disallowed", "0.8", false, 1, true},
		{"decimal", "0.8", true, 3, true},
		{"two dots", "1.2.3", true, 3, true},
		{"leading dot", ".5", true, 2, true},
		{"letters", "abc", true, 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			n, ok := grammar.NumberLength(c.str, 0, c.allowDecimal)
			if n != c.wantN || ok != c.wantOK {
				t.Errorf("grammar.NumberLength(%q, 0, %v) = (%d, %v), want (%d, %v)",
					c.str, c.allowDecimal, n, ok, c.wantN, c.wantOK,
				)
			}
		})
	}
}

func TestHostLength(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		str        string
		allowToken bool
		wantN      int
		wantOK     bool
	}{
		{"empty", "", false, 0, false},
		{"domain", "example.com rest", false, 11, true},
		{"domain port", "example.com:8080", false, 16, true},
		{"ipv4", "192.168.0.1:80,", false, 14, true},
		{"ipv6", "[::1]:443", false, 9, true},
		{"ipv6 zone", "[fe80::1%25eth0]", false, 16, true},
		{"bad ipv6", "[::zz]", false, 0, false},
		{"bad port", "example.com:99999", false, 0, false},
		{"empty port", "example.com:", false, 0, false},
		{"slash", "example.com/path", false, 0, false},
		{"token disallowed", "proxy~1", false, 0, false},
		{"token allowed", "proxy~1", true, 7, true},
		{"host with token allowed", "example.com:80", true, 14, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			n, ok := grammar.HostLength(c.str, 0, c.allowToken)
			if n != c.wantN || ok != c.wantOK {
				t.Errorf("grammar.HostLength(%q, 0, %v) = (%d, %v), want (%d, %v)",
					c.str, c.allowToken, n, ok, c.wantN, c.wantOK,
				)
			}
		})
	}
}

func TestIsToken(t *testing.T) {
	t.Parallel()

	cases := []struct {
		str  string
		want bool
	}{
		{"", false},
		{"close", true},
		{"100-continue", true},
		{"a b", false},
		{`"q"`, false},
	}

	for _, c := range cases {
		t.Run(c.str, func(t *testing.T) {
			t.Parallel()

			if got := grammar.IsToken(c.str); got != c.want {
				t.Errorf("grammar.IsToken(%q) = %v, want %v", c.str, got, c.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	want := time.Date(1994, time.November, 6, 8, 49, 37, 0, time.UTC)
	cases := []struct {
		name   string
		str    string
		want   time.Time
		wantOK bool
	}{
		{"empty", "", time.Time{}, false},
		{"rfc1123", "Sun, 06 Nov 1994 08:49:37 GMT", want, true},
		{"rfc850", "Sunday, 06-Nov-94 08:49:37 GMT", want, true},
		{"asctime", "Sun Nov  6 08:49:37 1994", want, true},
		{"numeric zone", "Sun, 06 Nov 1994 10:49:37 +0200", want, true},
		{"no weekday", "06 Nov 1994 08:49:37 GMT", want, true},
		{"surrounding spaces", "  Sun, 06 Nov 1994 08:49:37 GMT ", want, true},
		{"utc zone", "Sun, 06 Nov 1994 08:49:37 UTC", want, true},
		{"ut zone", "Sun, 06 Nov 1994 08:49:37 UT", want, true},
		{"unknown zone", "Sun, 06 Nov 1994 00:49:37 PST", time.Time{}, false},
		{"local zone name", "Sun, 06 Nov 1994 10:49:37 EET", time.Time{}, false},
		{"garbage", "yesterday", time.Time{}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, ok := grammar.ParseDate(c.str)
			if ok != c.wantOK {
				t.Fatalf("grammar.ParseDate(%q) ok = %v, want %v", c.str, ok, c.wantOK)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("grammar.ParseDate(%q) = %v, want %v\ndiff (-got +want):\n%v", c.str, got, c.want, diff)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	tm := time.Date(1994, time.November, 6, 10, 49, 37, 0, time.FixedZone("EET", 2*3600))
	if got, want := grammar.FormatDate(tm), "Sun, 06 Nov 1994 08:49:37 GMT"; got != want {
		t.Errorf("grammar.FormatDate(%v) = %q, want %q", tm, got, want)
	}
}

func TestEscape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		cb   func(byte) bool
		want string
	}{
		{"empty", "", nil, ""},
		{"no escape", "abc-%2Bqwe!", nil, "abc-%2Bqwe!"},
		{"escape all", "a b€", nil, "a%20b%E2%82%AC"},
		{"escape some", "a b?", func(c byte) bool { return c == '?' }, "a b%3F"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.Escape(c.str, c.cb), c.want; got != want {
				t.Errorf("grammar.Escape(%q, %p) = %q, want %q", c.str, c.cb, got, want)
			}
		})
	}
}

func TestUnescape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want string
	}{
		{"empty", "", ""},
		{"no unescape", "abc%ax%", "abc%ax%"},
		{"unescape all", "%E2%82%ac%20rates", "€ rates"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.Unescape(c.str), c.want; got != want {
				t.Errorf("grammar.Unescape(%q) = %q, want %q", c.str, got, want)
			}
		})
	}
}

func TestIsEscaped(t *testing.T) {
	t.Parallel()

	cases := []struct {
		str  string
		want bool
	}{
		{"", true},
		{"na%C3%AFve.txt", true},
		{"a b", false},
		{"%E", false},
		{"%zz", false},
	}

	for _, c := range cases {
		t.Run(c.str, func(t *testing.T) {
			t.Parallel()

			if got := grammar.IsEscaped(c.str); got != c.want {
				t.Errorf("grammar.IsEscaped(%q) = %v, want %v", c.str, got, c.want)
			}
		})
	}
}
