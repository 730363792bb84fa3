package bok

import (
	"fmt"
	"time"
)

// The wire format stores an event date as a signed day count where
// 0001-01-01 is day 1. Conversions use civil-date arithmetic instead of
// time.Time subtraction, which saturates at roughly 292 years.

// Day counts and epoch seconds accepted on decode. Both bound the
// representable range to years 1 through 9999.
const (
	minDayCount = 1
	maxDayCount = 3652059

	minEpochSeconds = -62135596800
	maxEpochSeconds = 253402300799
)

// days between 0001-01-01 (day 1) and 1970-01-01
const unixEpochDays = 719163

// dayCount returns the day number of t's calendar date, counted from
// 0001-01-01 as day 1. The date is taken in t's own location.
func dayCount(t time.Time) int32 {
	year, month, day := t.Date()
	y := int64(year)
	if month <= time.February {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	m := int64(month)
	var doy int64
	if m > 2 {
		doy = (153*(m-3)+2)/5 + int64(day) - 1
	} else {
		doy = (153*(m+9)+2)/5 + int64(day) - 1
	}
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	sinceUnix := era*146097 + doe - 719468
	return int32(sinceUnix + unixEpochDays)
}

// dateFromDayCount converts a wire day count back into a calendar date
// at midnight UTC. Counts outside the supported calendar range fail.
func dateFromDayCount(days int32) (time.Time, error) {
	if days < minDayCount || days > maxDayCount {
		return time.Time{}, fmt.Errorf("%w: event date day count %d out of range", ErrInvalidData, days)
	}
	z := int64(days) - unixEpochDays + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day := doy - (153*mp+2)/5 + 1
	var month int64
	if mp < 10 {
		month = mp + 3
	} else {
		month = mp - 9
	}
	if month <= 2 {
		y++
	}
	return time.Date(int(y), time.Month(month), int(day), 0, 0, 0, 0, time.UTC), nil
}

// timeFromEpochSeconds converts wire epoch seconds to a UTC instant,
// rejecting values outside the supported calendar range.
func timeFromEpochSeconds(secs int64) (time.Time, error) {
	if secs < minEpochSeconds || secs > maxEpochSeconds {
		return time.Time{}, fmt.Errorf("%w: timestamp %d out of range", ErrInvalidData, secs)
	}
	return time.Unix(secs, 0).UTC(), nil
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
