// Package period renders subscription durations (in days) as human strings.
package period

import (
	"fmt"

	"github.com/light-bringer/pricing-service/internal/pkg/locale"
)

const (
	daysPerWeek  = 7
	daysPerMonth = 30
)

type unit int

const (
	day unit = iota
	week
	month
)

type forms struct {
	singular string
	plural   string
}

var units = map[locale.Locale]map[unit]forms{
	locale.English: {
		day:   {"day", "days"},
		week:  {"week", "weeks"},
		month: {"month", "months"},
	},
	locale.Arabic: {
		day:   {"يوم", "أيام"},
		week:  {"أسبوع", "أسابيع"},
		month: {"شهر", "أشهر"},
	},
}

var joiners = map[locale.Locale]string{
	locale.English: " and ",
	locale.Arabic:  " و ",
}

// Format renders days using the largest exact unit, or a unit plus remaining days:
// whole weeks first, then whole months, then months and days, then weeks and days, then days.
func Format(days int, loc locale.Locale) string {
	if days < 0 {
		return ""
	}
	if _, ok := units[loc]; !ok {
		loc = locale.English
	}

	switch {
	case days >= daysPerWeek && days%daysPerWeek == 0:
		return quantity(days/daysPerWeek, week, loc)
	case days >= daysPerMonth && days%daysPerMonth == 0:
		return quantity(days/daysPerMonth, month, loc)
	case days >= daysPerMonth:
		return join(loc, quantity(days/daysPerMonth, month, loc), quantity(days%daysPerMonth, day, loc))
	case days >= daysPerWeek:
		return join(loc, quantity(days/daysPerWeek, week, loc), quantity(days%daysPerWeek, day, loc))
	default:
		return quantity(days, day, loc)
	}
}

// FormatGift renders a bonus period. A zero-day gift renders as an empty string.
func FormatGift(days int, loc locale.Locale) string {
	if days <= 0 {
		return ""
	}
	return Format(days, loc)
}

func quantity(n int, u unit, loc locale.Locale) string {
	f := units[loc][u]
	if n == 1 {
		return fmt.Sprintf("%d %s", n, f.singular)
	}
	return fmt.Sprintf("%d %s", n, f.plural)
}

func join(loc locale.Locale, head, tail string) string {
	return head + joiners[loc] + tail
}
