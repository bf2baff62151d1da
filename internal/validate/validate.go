// Package validate holds the pure field checks used before any store mutation:
// Chilean RUT checksum, mobile phone and e-mail patterns, dates and clock times.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	rutStrip   = regexp.MustCompile(`[^0-9kK]`)
	phoneStrip = regexp.MustCompile(`[\s-]`)
	phoneRegex = regexp.MustCompile(`^(\+56)?[9][0-9]{8}$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// cleanRUT keeps digits and k, lowercased.
func cleanRUT(rut string) string {
	return strings.ToLower(rutStrip.ReplaceAllString(rut, ""))
}

// RUTCheckDigit computes the modulo-11 check digit for a RUT body.
// Returns "" if body is empty or contains a non-digit.
func RUTCheckDigit(body string) string {
	if body == "" {
		return ""
	}
	sum := 0
	multiplier := 2
	for i := len(body) - 1; i >= 0; i-- {
		d := body[i]
		if d < '0' || d > '9' {
			return ""
		}
		sum += int(d-'0') * multiplier
		if multiplier == 7 {
			multiplier = 2
		} else {
			multiplier++
		}
	}
	switch dv := 11 - sum%11; dv {
	case 11:
		return "0"
	case 10:
		return "k"
	default:
		return strconv.Itoa(dv)
	}
}

// RUT reports whether rut carries a correct check digit.
// Dots, hyphens and spaces are ignored, "K" and "k" are equivalent.
func RUT(rut string) bool {
	r := cleanRUT(rut)
	if len(r) < 2 {
		return false
	}
	body, dv := r[:len(r)-1], r[len(r)-1:]
	return RUTCheckDigit(body) == dv
}

// FormatRUT renders rut as 12.345.678-5. Input shorter than two significant
// characters is returned cleaned but otherwise untouched.
func FormatRUT(rut string) string {
	r := cleanRUT(rut)
	if len(r) < 2 {
		return r
	}
	body, dv := r[:len(r)-1], r[len(r)-1:]

	var groups []string
	for len(body) > 3 {
		groups = append([]string{body[len(body)-3:]}, groups...)
		body = body[:len(body)-3]
	}
	groups = append([]string{body}, groups...)
	return strings.Join(groups, ".") + "-" + dv
}

// Phone accepts Chilean mobile numbers: optional +56, a leading 9, eight digits.
func Phone(phone string) bool {
	return phoneRegex.MatchString(phoneStrip.ReplaceAllString(phone, ""))
}

// Email is a presence check for local@domain.tld, not an RFC 5322 parser.
func Email(email string) bool {
	return emailRegex.MatchString(email)
}

// NotEmpty reports whether s has any non-space content.
func NotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// dateLayouts accepted by Date and ParseDate, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses a calendar date or timestamp in one of the accepted layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date reports whether s parses as a date.
func Date(s string) bool {
	_, ok := ParseDate(s)
	return ok
}

// ClockTime reports whether s is a 24h HH:MM time of day.
func ClockTime(s string) bool {
	return clockRegex.MatchString(s)
}

// MinuteOfDay converts HH:MM to minutes since midnight, or -1 if malformed.
func MinuteOfDay(s string) int {
	if !ClockTime(s) {
		return -1
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	return h*60 + m
}
