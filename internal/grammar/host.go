package grammar

import (
	"net/netip"
	"strconv"
	"strings"

	"github.com/miekg/dns"

	"github.com/ghettovoice/httphdr/internal/util"
)

// HostLength returns the length of the host at s[start:].
// The host is a reg-name, an IPv4 address or an IPv6 literal in brackets,
// optionally followed by ":port". When allowToken is set, a single token
// is accepted as a pseudonym (Via received-by, Warning agent).
// The candidate ends at whitespace, comma or the end of input.
func HostLength(s string, start int, allowToken bool) (int, bool) {
	if start < 0 || start >= len(s) {
		return 0, false
	}

	i := start
	isToken := true
loop:
	for i < len(s) {
		c := s[i]
		switch c {
		case ' ', '\t', '\r', ',':
			break loop
		case '/':
			return 0, false
		}
		isToken = isToken && tchar[c]
		i++
	}

	n := i - start
	if n == 0 {
		return 0, false
	}
	if allowToken && isToken {
		return n, true
	}
	if !IsHost(s[start:i]) {
		return 0, false
	}
	return n, true
}

// IsHost reports whether the whole s is a host with an optional port.
func IsHost[T ~string](s T) bool {
	host, port, ok := splitHostPort(string(s))
	if !ok {
		return false
	}
	if port != "" && !isPort(port) {
		return false
	}

	if host[0] == '[' {
		addr, err := netip.ParseAddr(strings.Replace(host[1:len(host)-1], "%25", "%", 1))
		return err == nil && addr.Is6()
	}
	if addr, err := netip.ParseAddr(host); err == nil {
		return addr.Is4()
	}
	return isRegName(host)
}

func splitHostPort(s string) (host, port string, ok bool) {
	if len(s) == 0 {
		return "", "", false
	}

	if s[0] == '[' {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return "", "", false
		}
		host, rest := s[:end+1], s[end+1:]
		switch {
		case rest == "":
			return host, "", len(host) > 2
		case rest[0] == ':':
			return host, rest[1:], len(host) > 2 && len(rest) > 1
		default:
			return "", "", false
		}
	}

	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		if i == 0 || i == len(s)-1 {
			return "", "", false
		}
		return s[:i], s[i+1:], true
	}
	return s, "", true
}

func isPort(s string) bool {
	if len(s) == 0 || len(s) > 5 {
		return false
	}
	for i := range len(s) {
		if !util.IsDigit(s[i]) {
			return false
		}
	}
	v, err := strconv.ParseUint(s, 10, 16)
	return err == nil && v <= 65535
}

func isRegName(s string) bool {
	for i := range len(s) {
		if c := s[i]; !IsAlphanumChar(c) && c != '-' && c != '.' && c != '_' {
			return false
		}
	}
	_, ok := dns.IsDomainName(s)
	return ok
}
