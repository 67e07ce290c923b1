// Package goduration parses duration literals in the short textual form
// used by Go's standard library, such as "300ms", "-1.5h" or "2h45m",
// and returns the result as a signed count of nanoseconds.
//
// The grammar is a possibly signed sequence of decimal numbers, each with
// an optional fraction and a mandatory unit suffix:
//
//	[-+]?([0-9]*(\.[0-9]*)?[a-z]+)+
//
// Valid units are "ns", "us" (or "µs"), "ms", "s", "m" and "h". Larger
// calendar-aware units (days, months, years) are deliberately not
// supported.
package goduration

import (
	"math"
	"time"
)

// Nanosecond multipliers for each recognized unit suffix.
const (
	nanosecond  int64 = 1
	microsecond       = 1000 * nanosecond
	millisecond       = 1000 * microsecond
	second            = 1000 * millisecond
	minute            = 60 * second
	hour              = 60 * minute
)

var unitMap = map[string]int64{
	"ns": nanosecond,
	"us": microsecond,
	"µs": microsecond, // U+00B5 = micro symbol
	"μs": microsecond, // U+03BC = Greek letter mu
	"ms": millisecond,
	"s":  second,
	"m":  minute,
	"h":  hour,
}

// ParseError is the error type returned by Parse and ParseDuration. It
// carries the original, unmodified input so that messages are stable no
// matter how much of the literal was consumed before the failure.
type ParseError struct {
	Input string
	msg   string
}

func (e *ParseError) Error() string { return e.msg }

func errInvalid(input string) error {
	return &ParseError{Input: input, msg: "invalid duration: " + input}
}

func errOverflow(input string) error {
	return &ParseError{Input: input, msg: "invalid duration " + input}
}

// Parse parses a duration literal and returns the duration in
// nanoseconds. The empty string, a bare sign, a number without a unit
// and any arithmetic overflow of the 64-bit nanosecond total are all
// reported as a *ParseError.
func Parse(s string) (int64, error) {
	orig := s
	var d int64
	neg := false

	// Consume [-+]?
	if s != "" {
		c := s[0]
		if c == '-' || c == '+' {
			neg = c == '-'
			s = s[1:]
		}
	}
	// Special case: if all that is left is "0", this is zero.
	if s == "0" {
		return 0, nil
	}
	if s == "" {
		return 0, errInvalid(orig)
	}
	for s != "" {
		var (
			v, f  int64       // integers before, after decimal point
			scale float64 = 1 // value = v + f/scale
		)

		// The next character must be [0-9.]
		c := s[0]
		if !(c == '.' || '0' <= c && c <= '9') {
			return 0, errInvalid(orig)
		}

		// Consume [0-9]*
		pl := len(s)
		var err error
		v, s, err = leadingInt(s)
		if err != nil {
			return 0, &ParseError{Input: orig, msg: "invalid character in: " + orig}
		}
		pre := pl != len(s) // whether we consumed anything before a period

		// Consume (\.[0-9]*)?
		post := false
		if s != "" && s[0] == '.' {
			s = s[1:]
			pl := len(s)
			f, scale, s = leadingFraction(s)
			post = pl != len(s)
		}
		if !pre && !post {
			// no digits (e.g. ".s" or "-.s")
			return 0, errInvalid(orig)
		}

		// Consume unit.
		i := 0
		for ; i < len(s); i++ {
			c := s[i]
			if c == '.' || '0' <= c && c <= '9' {
				break
			}
		}
		if i == 0 {
			return 0, &ParseError{Input: orig, msg: "missing unit in duration: " + orig}
		}
		u := s[:i]
		s = s[i:]
		unit, ok := unitMap[u]
		if !ok {
			return 0, &ParseError{Input: orig, msg: "unknown unit " + u + " in duration " + orig}
		}
		if v > math.MaxInt64/unit {
			// overflow
			return 0, errOverflow(orig)
		}
		v *= unit
		if f > 0 {
			// float64 is needed to be nanosecond accurate for fractions
			// of hours: v >= 0 && (f*unit/scale) <= 3.6e12 (ns/h, h is
			// the largest unit).
			v += int64(float64(f) * (float64(unit) / scale))
			if v < 0 {
				// overflow
				return 0, errOverflow(orig)
			}
		}
		d += v
		if d < 0 {
			// overflow
			return 0, errOverflow(orig)
		}
	}
	if neg {
		d = -d
	}
	return d, nil
}

// ParseDuration parses a duration literal and returns the result as a
// time.Duration. It is a convenience wrapper around Parse for callers
// who want the standard library type.
func ParseDuration(s string) (time.Duration, error) {
	n, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return time.Duration(n), nil
}

// leadingIntError is internal to the scanners; Parse rewrites it into a
// *ParseError carrying the full input.
type leadingIntError struct{}

func (leadingIntError) Error() string { return "overflow in leading integer" }

// leadingInt consumes the leading [0-9]* from s, accumulating the value
// with a pre-multiply overflow check. Consuming zero digits is legal and
// yields x == 0 with s unchanged.
func leadingInt(s string) (x int64, rem string, err error) {
	i := 0
	for ; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		if x > math.MaxInt64/10 {
			return 0, "", leadingIntError{}
		}
		x = x*10 + int64(c-'0')
		if x < 0 {
			// overflow slipped past the pre-multiply check
			return 0, "", leadingIntError{}
		}
	}
	return x, s[i:], nil
}

// leadingFraction consumes the leading [0-9]* from s immediately after a
// decimal point. It is used only for fractions, so it does not fail on
// overflow: once the accumulator would overflow it stops accumulating
// precision but keeps consuming digits, so the cursor still advances past
// the whole fractional run.
func leadingFraction(s string) (x int64, scale float64, rem string) {
	i := 0
	scale = 1
	overflow := false
	for ; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		if overflow {
			continue
		}
		if x > math.MaxInt64/10 {
			// It's possible for overflow to give a positive number, so
			// take care.
			overflow = true
			continue
		}
		y := x*10 + int64(c-'0')
		if y < 0 {
			overflow = true
			continue
		}
		x = y
		scale *= 10
	}
	return x, scale, s[i:]
}
