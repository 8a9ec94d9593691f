package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownMonth is returned when a value is neither a month key nor a month number.
var ErrUnknownMonth = errors.New("unknown month")

// Month is one of the twelve canonical month keys.
type Month string

// Months lists the canonical keys in calendar order.
var Months = []Month{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}

// ParseMonth accepts a month key (any case) or a month number from 1 to 12.
func ParseMonth(s string) (Month, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range Months {
		if string(m) == s {
			return m, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 12 {
		return Months[n-1], nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMonth, s)
}

// Index returns the zero-based calendar position, or -1 for an unknown key.
func (m Month) Index() int {
	for i, k := range Months {
		if k == m {
			return i
		}
	}
	return -1
}
