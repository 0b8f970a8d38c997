package schema

import (
	"strings"
	"time"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	placeholderDate = "2006-01-02"
	placeholderTime = "15:04:05"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ExpandPlaceholders replaces the date and time placeholders in text with
// values from now: {date} {time} {datetime} {year} {month} {day} {hour}
// {minute} {second} {dow} {tz} and {spacetime}. The double brace forms
// such as {{date}} are replaced too.
func ExpandPlaceholders(text string, now time.Time) string {
	if !strings.Contains(text, "{") {
		return text
	}
	values := [][2]string{
		{"datetime", now.Format(placeholderDate + " " + placeholderTime)},
		{"date", now.Format(placeholderDate)},
		{"time", now.Format(placeholderTime)},
		{"year", now.Format("2006")},
		{"month", now.Format("01")},
		{"day", now.Format("02")},
		{"hour", now.Format("15")},
		{"minute", now.Format("04")},
		{"second", now.Format("05")},
		{"dow", now.Weekday().String()},
		{"tz", zoneName(now)},
	}
	values = append(values, [2]string{"spacetime", strings.Join([]string{
		now.Weekday().String(), now.Format(placeholderDate), now.Format(placeholderTime), zoneName(now),
	}, " ")})

	// Double brace forms are matched first
	pairs := make([]string, 0, len(values)*4)
	for _, v := range values {
		pairs = append(pairs, "{{"+v[0]+"}}", v[1])
	}
	for _, v := range values {
		pairs = append(pairs, "{"+v[0]+"}", v[1])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// WithPlaceholders returns the request with placeholders in the system
// prompt expanded
func (r Request) WithPlaceholders(now time.Time) Request {
	r.SystemPrompt = ExpandPlaceholders(r.SystemPrompt, now)
	return r
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// zoneName returns the location name, or the zone abbreviation for the
// local location
func zoneName(now time.Time) string {
	if name := now.Location().String(); name != "Local" && name != "" {
		return name
	}
	name, _ := now.Zone()
	return name
}
