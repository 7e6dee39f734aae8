package header

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/grammar"
)

// RangeCondition is the If-Range header value: either a date or an entity tag.
type RangeCondition struct {
	Date      time.Time
	EntityTag *EntityTag
}

// NewDateRangeCondition creates a RangeCondition holding a date truncated to seconds.
func NewDateRangeCondition(date time.Time) RangeCondition {
	return RangeCondition{Date: date.UTC().Truncate(time.Second)}
}

// NewTagRangeCondition creates a RangeCondition holding an entity tag.
func NewTagRangeCondition(et EntityTag) (RangeCondition, error) {
	if !et.IsValid() || et.IsAny() {
		return RangeCondition{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid entity tag %q", et.String()))
	}
	return RangeCondition{EntityTag: &et}, nil
}

// ParseRangeCondition parses an If-Range header value from s.
func ParseRangeCondition(s string) (RangeCondition, error) {
	return errtrace.Wrap2(parseValue("range condition", s, scanRangeCondition))
}

// TryParseRangeCondition is like [ParseRangeCondition] but reports failure with a flag.
func TryParseRangeCondition(s string) (RangeCondition, bool) { return parseOne(s, scanRangeCondition) }

// IsDate reports whether the condition holds a date.
func (rc RangeCondition) IsDate() bool { return rc.EntityTag == nil }

func (rc RangeCondition) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if rc.EntityTag != nil {
		return errtrace.Wrap2(rc.EntityTag.RenderTo(w, opts))
	}
	return errtrace.Wrap2(io.WriteString(w, grammar.FormatDate(rc.Date)))
}

func (rc RangeCondition) Render(opts *RenderOptions) string { return renderString(rc, opts) }

func (rc RangeCondition) String() string { return rc.Render(nil) }

func (rc RangeCondition) Format(f fmt.State, verb rune) {
	type hideMethods RangeCondition
	type RangeCondition hideMethods
	formatValue(f, verb, rc.String(), RangeCondition(rc))
}

func (rc RangeCondition) Equal(val any) bool {
	var other RangeCondition
	switch v := val.(type) {
	case RangeCondition:
		other = v
	case *RangeCondition:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	if rc.EntityTag == nil || other.EntityTag == nil {
		return rc.EntityTag == nil && other.EntityTag == nil && rc.Date.Equal(other.Date)
	}
	return rc.EntityTag.Equal(*other.EntityTag)
}

func (rc RangeCondition) IsValid() bool {
	if rc.EntityTag != nil {
		return rc.Date.IsZero() && rc.EntityTag.IsValid() && !rc.EntityTag.IsAny()
	}
	return !rc.Date.IsZero()
}

func (rc RangeCondition) IsZero() bool { return rc.Date.IsZero() && rc.EntityTag == nil }

func (rc RangeCondition) Clone() RangeCondition {
	if rc.EntityTag != nil {
		rc.EntityTag = Ptr(*rc.EntityTag)
	}
	return rc
}

func (rc RangeCondition) MarshalText() ([]byte, error) { return []byte(rc.String()), nil }

func (rc *RangeCondition) UnmarshalText(data []byte) error {
	return errtrace.Wrap(unmarshalText(rc, "range condition", data, scanRangeCondition))
}

func scanRangeCondition(s string, start int) (RangeCondition, int, bool) {
	// the shortest entity tag is `""`
	if start+1 >= len(s) {
		return RangeCondition{}, 0, false
	}

	if c0, c1 := s[start], s[start+1]; c0 == '"' || ((c0 == 'W' || c0 == 'w') && c1 == '/') {
		et, n, ok := scanEntityTag(s, start)
		if !ok || start+n != len(s) || et.IsAny() {
			return RangeCondition{}, 0, false
		}
		return RangeCondition{EntityTag: &et}, n, true
	}

	date, ok := grammar.ParseDate(s[start:])
	if !ok {
		return RangeCondition{}, 0, false
	}
	return RangeCondition{Date: date}, len(s) - start, true
}

// RetryCondition is the Retry-After header value: either a date or a delay in seconds.
type RetryCondition struct {
	Date  time.Time
	Delta *time.Duration
}

// NewDateRetryCondition creates a RetryCondition holding a date truncated to seconds.
func NewDateRetryCondition(date time.Time) RetryCondition {
	return RetryCondition{Date: date.UTC().Truncate(time.Second)}
}

// NewDeltaRetryCondition creates a RetryCondition holding a delay.
// The delay is truncated to seconds and must fit into a non-negative int32.
func NewDeltaRetryCondition(delta time.Duration) (RetryCondition, error) {
	if delta < 0 || delta/time.Second > maxDeltaSeconds {
		return RetryCondition{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("delay %v out of range", delta))
	}
	delta = delta.Truncate(time.Second)
	return RetryCondition{Delta: &delta}, nil
}

const maxDeltaSeconds = 1<<31 - 1

// ParseRetryCondition parses a Retry-After header value from s.
func ParseRetryCondition(s string) (RetryCondition, error) {
	return errtrace.Wrap2(parseValue("retry condition", s, scanRetryCondition))
}

// TryParseRetryCondition is like [ParseRetryCondition] but reports failure with a flag.
func TryParseRetryCondition(s string) (RetryCondition, bool) { return parseOne(s, scanRetryCondition) }

// IsDate reports whether the condition holds a date.
func (rc RetryCondition) IsDate() bool { return rc.Delta == nil }

// RetryAt returns the moment to retry at, a delay counts from base.
func (rc RetryCondition) RetryAt(base time.Time) time.Time {
	if rc.Delta != nil {
		return base.Add(*rc.Delta)
	}
	return rc.Date
}

func (rc RetryCondition) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	if rc.Delta != nil {
		return errtrace.Wrap2(io.WriteString(w, strconv.FormatInt(int64(*rc.Delta/time.Second), 10)))
	}
	return errtrace.Wrap2(io.WriteString(w, grammar.FormatDate(rc.Date)))
}

func (rc RetryCondition) Render(opts *RenderOptions) string { return renderString(rc, opts) }

func (rc RetryCondition) String() string { return rc.Render(nil) }

func (rc RetryCondition) Format(f fmt.State, verb rune) {
	type hideMethods RetryCondition
	type RetryCondition hideMethods
	formatValue(f, verb, rc.String(), RetryCondition(rc))
}

func (rc RetryCondition) Equal(val any) bool {
	var other RetryCondition
	switch v := val.(type) {
	case RetryCondition:
		other = v
	case *RetryCondition:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	if rc.Delta == nil || other.Delta == nil {
		return rc.Delta == nil && other.Delta == nil && rc.Date.Equal(other.Date)
	}
	return *rc.Delta == *other.Delta
}

func (rc RetryCondition) IsValid() bool {
	if rc.Delta != nil {
		return rc.Date.IsZero() && *rc.Delta >= 0 && *rc.Delta/time.Second <= maxDeltaSeconds
	}
	return !rc.Date.IsZero()
}

func (rc RetryCondition) IsZero() bool { return rc.Date.IsZero() && rc.Delta == nil }

func (rc RetryCondition) Clone() RetryCondition {
	if rc.Delta != nil {
		rc.Delta = Ptr(*rc.Delta)
	}
	return rc
}

func (rc RetryCondition) MarshalText() ([]byte, error) { return []byte(rc.String()), nil }

func (rc *RetryCondition) UnmarshalText(data []byte) error {
	return errtrace.Wrap(unmarshalText(rc, "retry condition", data, scanRetryCondition))
}

func scanRetryCondition(s string, start int) (RetryCondition, int, bool) {
	if start >= len(s) {
		return RetryCondition{}, 0, false
	}

	if c := s[start]; c >= '0' && c <= '9' {
		secs, n, ok := scanInt32(s, start)
		if !ok {
			return RetryCondition{}, 0, false
		}
		cur := start + n
		cur += grammar.WhitespaceLength(s, cur)
		if cur != len(s) {
			return RetryCondition{}, 0, false
		}
		delta := time.Duration(secs) * time.Second
		return RetryCondition{Delta: &delta}, cur - start, true
	}

	date, ok := grammar.ParseDate(s[start:])
	if !ok {
		return RetryCondition{}, 0, false
	}
	return RetryCondition{Date: date}, len(s) - start, true
}
