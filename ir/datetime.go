package ir

import (
	"fmt"
	"strings"
)

// Date is an RFC 3339 full-date (no time, no offset).
type Date struct {
	year  uint16
	month uint8
	day   uint8
}

// Time is an RFC 3339 partial-time (no date, no offset).
type Time struct {
	hour       uint8
	minute     uint8
	second     uint8
	nanosecond uint32
}

// TimeOffset is an RFC 3339 time-offset: Z or ±HH:MM.
type TimeOffset struct {
	// minutes east of UTC; Z is 0 with z set
	minutes int16
	z       bool
}

// DateTime is an RFC 3339 date-time with offset.
type DateTime struct {
	date   Date
	time   Time
	offset TimeOffset
}

func NewDate(year, month, day int) (Date, error) {
	if year < 0 || year > 9999 || month < 1 || month > 12 {
		return Date{}, fmt.Errorf("%w: date out of range %04d-%02d-%02d", ErrSyntax, year, month, day)
	}
	if day < 1 || day > daysInMonth(year, month) {
		return Date{}, fmt.Errorf("%w: date out of range %04d-%02d-%02d", ErrSyntax, year, month, day)
	}
	return Date{year: uint16(year), month: uint8(month), day: uint8(day)}, nil
}

func NewTime(hour, minute, second, nanosecond int) (Time, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 ||
		second < 0 || second > 59 || nanosecond < 0 || nanosecond > 999_999_999 {
		return Time{}, fmt.Errorf("%w: time out of range %02d:%02d:%02d", ErrSyntax, hour, minute, second)
	}
	return Time{
		hour:       uint8(hour),
		minute:     uint8(minute),
		second:     uint8(second),
		nanosecond: uint32(nanosecond),
	}, nil
}

func NewTimeOffset(minutesEast int) (TimeOffset, error) {
	if minutesEast <= -24*60 || minutesEast >= 24*60 {
		return TimeOffset{}, fmt.Errorf("%w: offset out of range", ErrSyntax)
	}
	return TimeOffset{minutes: int16(minutesEast)}, nil
}

// UTC is the Z offset.
var UTC = TimeOffset{z: true}

func NewDateTime(date Date, time Time, offset TimeOffset) DateTime {
	return DateTime{date: date, time: time, offset: offset}
}

func (d Date) Year() int  { return int(d.year) }
func (d Date) Month() int { return int(d.month) }
func (d Date) Day() int   { return int(d.day) }

func (t Time) Hour() int       { return int(t.hour) }
func (t Time) Minute() int     { return int(t.minute) }
func (t Time) Second() int     { return int(t.second) }
func (t Time) Nanosecond() int { return int(t.nanosecond) }

// Seconds returns the offset east of UTC in seconds.
func (o TimeOffset) Seconds() int { return int(o.minutes) * 60 }

func (dt DateTime) Date() Date         { return dt.date }
func (dt DateTime) Time() Time         { return dt.time }
func (dt DateTime) Offset() TimeOffset { return dt.offset }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

func (t Time) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.hour, t.minute, t.second)
	if t.nanosecond > 0 {
		frac := strings.TrimRight(fmt.Sprintf("%09d", t.nanosecond), "0")
		s += "." + frac
	}
	return s
}

func (o TimeOffset) String() string {
	if o.z {
		return "Z"
	}
	m := o.minutes
	sign := "+"
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%02d:%02d", sign, m/60, m%60)
}

func (dt DateTime) String() string {
	return dt.date.String() + "T" + dt.time.String() + dt.offset.String()
}

// MarshalText and UnmarshalText make the calendar types usable with
// encoding-based codecs (JSON, YAML) without extra glue.

func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(b []byte) error {
	v, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (t Time) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Time) UnmarshalText(b []byte) error {
	v, err := ParseTime(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (dt DateTime) MarshalText() ([]byte, error) { return []byte(dt.String()), nil }

func (dt *DateTime) UnmarshalText(b []byte) error {
	v, err := ParseDateTime(string(b))
	if err != nil {
		return err
	}
	*dt = v
	return nil
}

func ParseDate(s string) (Date, error) {
	b := []byte(s)
	if len(b) != 10 || b[4] != '-' || b[7] != '-' {
		return Date{}, fmt.Errorf("%w: expected date YYYY-MM-DD, got %q", ErrSyntax, s)
	}
	year, ok := parseDigits(b[:4])
	if !ok {
		return Date{}, fmt.Errorf("%w: bad year in %q", ErrSyntax, s)
	}
	month, ok := parseDigits(b[5:7])
	if !ok {
		return Date{}, fmt.Errorf("%w: bad month in %q", ErrSyntax, s)
	}
	day, ok := parseDigits(b[8:])
	if !ok {
		return Date{}, fmt.Errorf("%w: bad day in %q", ErrSyntax, s)
	}
	return NewDate(year, month, day)
}

func ParseTime(s string) (Time, error) {
	b := []byte(s)
	if len(b) < 8 || b[2] != ':' || b[5] != ':' {
		return Time{}, fmt.Errorf("%w: expected time HH:MM:SS, got %q", ErrSyntax, s)
	}
	hour, ok := parseDigits(b[:2])
	if !ok {
		return Time{}, fmt.Errorf("%w: bad hour in %q", ErrSyntax, s)
	}
	minute, ok := parseDigits(b[3:5])
	if !ok {
		return Time{}, fmt.Errorf("%w: bad minute in %q", ErrSyntax, s)
	}
	second, ok := parseDigits(b[6:8])
	if !ok {
		return Time{}, fmt.Errorf("%w: bad second in %q", ErrSyntax, s)
	}
	nanosecond, ok := parseFraction(b[8:])
	if !ok {
		return Time{}, fmt.Errorf("%w: bad fraction in %q", ErrSyntax, s)
	}
	return NewTime(hour, minute, second, nanosecond)
}

// ParseTimeOffset decodes "Z" or a signed HH:MM offset. The RFC 3339
// unknown-local-offset spelling "-00:00" is not preserved: it parses
// and re-formats as "+00:00".
func ParseTimeOffset(s string) (TimeOffset, error) {
	if s == "Z" {
		return UTC, nil
	}
	b := []byte(s)
	if len(b) != 6 || b[3] != ':' || (b[0] != '+' && b[0] != '-') {
		return TimeOffset{}, fmt.Errorf("%w: expected offset Z or ±HH:MM, got %q", ErrSyntax, s)
	}
	hour, ok := parseDigits(b[1:3])
	if !ok || hour > 23 {
		return TimeOffset{}, fmt.Errorf("%w: bad offset hour in %q", ErrSyntax, s)
	}
	minute, ok := parseDigits(b[4:])
	if !ok || minute > 59 {
		return TimeOffset{}, fmt.Errorf("%w: bad offset minute in %q", ErrSyntax, s)
	}
	m := hour*60 + minute
	if b[0] == '-' {
		m = -m
	}
	return NewTimeOffset(m)
}

func ParseDateTime(s string) (DateTime, error) {
	// date (10) + "T" + time (8+) + offset ("Z" or 6)
	if len(s) < 20 || s[10] != 'T' {
		return DateTime{}, fmt.Errorf("%w: expected datetime, got %q", ErrSyntax, s)
	}
	offAt := offsetIndex(s)
	if offAt < 19 {
		return DateTime{}, fmt.Errorf("%w: expected datetime, got %q", ErrSyntax, s)
	}
	date, err := ParseDate(s[:10])
	if err != nil {
		return DateTime{}, err
	}
	t, err := ParseTime(s[11:offAt])
	if err != nil {
		return DateTime{}, err
	}
	offset, err := ParseTimeOffset(s[offAt:])
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: date, time: t, offset: offset}, nil
}

// offsetIndex finds where the trailing time-offset starts.
func offsetIndex(s string) int {
	n := len(s)
	if n >= 1 && s[n-1] == 'Z' {
		return n - 1
	}
	if n >= 6 {
		return n - 6
	}
	return 0
}

func parseDigits(b []byte) (int, bool) {
	v := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	return v, len(b) > 0
}

// parseFraction parses an optional ".ddd..." suffix into nanoseconds.
// Digits past nanosecond precision are discarded.
func parseFraction(b []byte) (int, bool) {
	if len(b) == 0 {
		return 0, true
	}
	if len(b) < 2 || b[0] != '.' {
		return 0, false
	}
	ns := 0
	for i, c := range b[1:] {
		if c < '0' || c > '9' {
			return 0, false
		}
		if i < 9 {
			ns += int(c-'0') * pow10(8-i)
		}
	}
	return ns, true
}

func pow10(n int) int {
	v := 1
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}

func daysInMonth(year, month int) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// daysFromCivil converts a date to a day count relative to 1970-01-01.
func daysFromCivil(y, m, d int) int64 {
	if m <= 2 {
		y--
	}
	era := y / 400
	if y < 0 && y%400 != 0 {
		era--
	}
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return int64(era)*146097 + int64(doe) - 719468
}

func (d Date) Equal(o Date) bool { return d == o }

func (t Time) Equal(o Time) bool { return t == o }

func (d Date) Compare(o Date) int {
	a := daysFromCivil(d.Year(), d.Month(), d.Day())
	b := daysFromCivil(o.Year(), o.Month(), o.Day())
	return cmp64(a, b)
}

func (t Time) Compare(o Time) int {
	a := t.nanos()
	b := o.nanos()
	return cmp64(a, b)
}

func (t Time) nanos() int64 {
	secs := int64(t.hour)*3600 + int64(t.minute)*60 + int64(t.second)
	return secs*1_000_000_000 + int64(t.nanosecond)
}

// Compare is offset-aware: both instants are normalized to UTC before
// component comparison.
func (dt DateTime) Compare(o DateTime) int {
	return cmp64(dt.utcNanos(), o.utcNanos())
}

// Equal reports whether two datetimes denote the same instant, regardless
// of the offsets they are expressed in.
func (dt DateTime) Equal(o DateTime) bool {
	return dt.Compare(o) == 0
}

func (dt DateTime) utcNanos() int64 {
	days := daysFromCivil(dt.date.Year(), dt.date.Month(), dt.date.Day())
	secs := days*86400 - int64(dt.offset.Seconds())
	return secs*1_000_000_000 + dt.time.nanos()
}

func cmp64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
