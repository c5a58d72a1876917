// Package input parses and cleans text typed by the user before it is sent
// to the service.
package input

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"clockify-cli/internal/domain"
)

var (
	plainMinutesRe = regexp.MustCompile(`^(\d+)$`)
	minutesRe      = regexp.MustCompile(`^(\d+)\s*(?:m|min|mins|minutes?)$`)
	hoursRe        = regexp.MustCompile(`^(\d+)\s*(?:h|hr|hrs|hours?)$`)
	hoursMinutesRe = regexp.MustCompile(`^(\d+)\s*h\s*(\d+)\s*m?$`)
	clockRe        = regexp.MustCompile(`^(\d+):([0-5]\d)$`)
	decimalHoursRe = regexp.MustCompile(`^(\d*\.\d+|\d+\.\d*)\s*(?:h|hr|hrs|hours?)?$`)
)

// ParseDuration converts a human duration into whole minutes.
//
// Accepted forms: "90" (minutes), "90m", "2h", "1h30m", "1:30" and decimal
// hours such as "1.5" or "1.5h". Decimal hours round half up to the nearest
// minute.
func ParseDuration(s string) (int, error) {
	v := strings.ToLower(strings.TrimSpace(s))

	if m := plainMinutesRe.FindStringSubmatch(v); m != nil {
		return atoi(m[1], s)
	}
	if m := minutesRe.FindStringSubmatch(v); m != nil {
		return atoi(m[1], s)
	}
	if m := hoursRe.FindStringSubmatch(v); m != nil {
		h, err := atoi(m[1], s)
		if err != nil {
			return 0, err
		}
		return h * 60, nil
	}
	if m := hoursMinutesRe.FindStringSubmatch(v); m != nil {
		return combine(m[1], m[2], s)
	}
	if m := clockRe.FindStringSubmatch(v); m != nil {
		return combine(m[1], m[2], s)
	}
	if m := decimalHoursRe.FindStringSubmatch(v); m != nil {
		h, err := strconv.ParseFloat(m[1], 64)
		if err != nil || math.IsInf(h, 0) || h*60 > math.MaxInt32 {
			return 0, invalidDuration(s)
		}
		return int(math.Floor(h*60 + 0.5)), nil
	}
	return 0, invalidDuration(s)
}

func combine(hours, minutes, literal string) (int, error) {
	h, err := atoi(hours, literal)
	if err != nil {
		return 0, err
	}
	m, err := atoi(minutes, literal)
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

func atoi(digits, literal string) (int, error) {
	n, err := strconv.Atoi(digits)
	if err != nil || n > math.MaxInt32 {
		return 0, invalidDuration(literal)
	}
	return n, nil
}

func invalidDuration(literal string) error {
	return domain.Errorf(domain.KindInvalidDuration,
		"invalid duration %q: use minutes (90), hours (2h, 1.5h) or both (1h30m)", literal)
}
