// Package duration parses the short human durations moderators type into
// commands ("30s", "10min", "2h", "1day") into a whole number of seconds.
//
// The grammar is one or more ASCII digits followed by a unit suffix:
//
//	s, sec        seconds
//	m, min        minutes
//	h, hr, hour   hours
//	d, day        days
//
// Units are matched exactly and case-sensitively. What happens with any other
// suffix (including an empty one) depends on the Policy.
package duration

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrInvalidDuration is returned when the input has no leading digits or
	// the amount does not fit into an int64 number of seconds.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrUnknownUnit is returned by a Strict parser for suffixes outside the
	// unit table. It wraps ErrInvalidDuration.
	ErrUnknownUnit = fmt.Errorf("%w: unknown unit", ErrInvalidDuration)
)

// Policy decides how unknown unit suffixes are treated.
type Policy int

const (
	// Lenient maps unknown units to a multiplier of 0, so "10x" parses as 0.
	Lenient Policy = iota
	// Strict rejects unknown units with ErrUnknownUnit.
	Strict
)

func (p Policy) String() string {
	switch p {
	case Lenient:
		return "lenient"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

const (
	second int64 = 1
	minute       = 60 * second
	hour         = 60 * minute
	day          = 24 * hour
)

var multipliers = map[string]int64{
	"s":    second,
	"sec":  second,
	"m":    minute,
	"min":  minute,
	"h":    hour,
	"hr":   hour,
	"hour": hour,
	"d":    day,
	"day":  day,
}

// Parser converts duration strings to seconds. The zero value is a Lenient
// parser.
type Parser struct {
	Policy Policy
}

// Parse is shorthand for a Lenient Parser.
func Parse(s string) (int64, error) {
	return Parser{}.Parse(s)
}

// Parse returns the number of seconds described by s.
func (p Parser) Parse(s string) (int64, error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	amount, unit := s[:i], s[i:]

	n, err := strconv.ParseInt(amount, 10, 64)
	if err != nil {
		// only range errors are possible here, the amount is all digits
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidDuration, s)
	}

	mult, ok := multipliers[unit]
	if !ok {
		if p.Policy == Strict {
			return 0, fmt.Errorf("%w %q in %q", ErrUnknownUnit, unit, s)
		}
		return 0, nil
	}

	if n > math.MaxInt64/mult {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidDuration, s)
	}
	return n * mult, nil
}

// Units returns the accepted unit suffixes in display order.
func Units() []string {
	return []string{"s", "sec", "m", "min", "h", "hr", "hour", "d", "day"}
}
