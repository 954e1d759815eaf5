package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

//
// ===========================================================
//  FORM DATES
// ===========================================================
//

// FormDateLayout is what an <input type="datetime-local"> submits.
const FormDateLayout = "2006-01-02T15:04"

var formLayouts = []string{
	time.RFC3339,
	FormDateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseFormTime reads a reservation form date. Values without a zone are
// taken as UTC.
func ParseFormTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range formLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// FormatStay renders "Mon 2 Jan 15:04 → Tue 3 Jan 11:00 (1 night)".
func FormatStay(in, out time.Time) string {
	nights := int(out.Sub(in).Hours() / 24)
	unit := "nights"
	if nights == 1 {
		unit = "night"
	}
	return fmt.Sprintf("%s → %s (%d %s)",
		in.Format("Mon 2 Jan 15:04"), out.Format("Mon 2 Jan 15:04"), nights, unit)
}

//
// ===========================================================
//  PHONE
// ===========================================================
//

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,19}$`)

// IsPhoneNumber accepts digits with an optional leading + and the usual
// separators.
func IsPhoneNumber(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}

//
// ===========================================================
//  EMAIL MASKING
// ===========================================================
//

// MaskEmail returns masked email for safe display
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}
	local := []rune(parts[0])
	domain := parts[1]

	maskedLocal := string(local)
	if len(local) > 2 {
		maskedLocal = string(local[0]) + strings.Repeat("*", len(local)-2) + string(local[len(local)-1])
	} else if len(local) == 2 {
		maskedLocal = string(local[0]) + "*"
	}

	domainParts := strings.Split(domain, ".")
	if len(domainParts) >= 2 {
		if head := []rune(domainParts[0]); len(head) > 1 {
			domainParts[0] = string(head[0]) + strings.Repeat("*", len(head)-1)
		}
	}

	return maskedLocal + "@" + strings.Join(domainParts, ".")
}
