package util

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp styles understood by Discord's <t:unix:style> markup.
const (
	ShortTime     = 't'
	LongTime      = 'T'
	ShortDate     = 'd'
	LongDate      = 'D'
	ShortDateTime = 'f'
	LongDateTime  = 'F'
	Relative      = 'R'
)

// DiscordTimestamp renders t as Discord timestamp markup, which every client
// shows in the reader's own timezone. A zero time renders as "unknown".
//
// Example:
//
//	DiscordTimestamp(time.Unix(1699603200, 0), LongDateTime) // "<t:1699603200:F>"
func DiscordTimestamp(t time.Time, style byte) string {
	if t.IsZero() {
		return "unknown"
	}
	return fmt.Sprintf("<t:%d:%c>", t.Unix(), style)
}

// Span is an elapsed whole-second count split into calendar-free units.
type Span struct {
	Days, Hours, Minutes, Seconds int64
}

// SplitSeconds decomposes secs by successive division with remainder
// (60 seconds, 60 minutes, 24 hours). Negative input is treated as zero.
func SplitSeconds(secs int64) Span {
	if secs < 0 {
		secs = 0
	}
	var s Span
	s.Seconds = secs % 60
	mins := secs / 60
	s.Minutes = mins % 60
	hours := mins / 60
	s.Hours = hours % 24
	s.Days = hours / 24
	return s
}

// String joins the non-zero components in day, hour, minute, second order,
// e.g. "1d 5m 7s". A zero span renders as the empty string.
func (s Span) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []struct {
		v    int64
		unit string
	}{
		{s.Days, "d"},
		{s.Hours, "h"},
		{s.Minutes, "m"},
		{s.Seconds, "s"},
	} {
		if p.v != 0 {
			parts = append(parts, fmt.Sprintf("%d%s", p.v, p.unit))
		}
	}
	return strings.Join(parts, " ")
}

// FormatUptime renders an elapsed duration as "Uptime: 1d 5m 7s", dropping
// sub-second precision and zero components.
func FormatUptime(elapsed time.Duration) string {
	span := SplitSeconds(int64(elapsed / time.Second))
	if text := span.String(); text != "" {
		return "Uptime: " + text
	}
	return "Uptime:"
}
