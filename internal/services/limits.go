package services

import (
	"fmt"
	"math"
	"unicode/utf8"

	"charter/internal/domain"
)

// Column widths of the customers and bookings tables, counted in characters.
const (
	maxNameLen     = 100
	maxEmailLen    = 254
	maxPhoneLen    = 20
	maxCountryLen  = 100
	maxLocationLen = 200
	maxTextLen     = 10000
	maxPassengers  = math.MaxInt32
)

type fieldLimit struct {
	field string
	value string
	max   int
}

// checkLengths returns a ValidationError for the first value longer than its column.
func checkLengths(limits ...fieldLimit) error {
	for _, l := range limits {
		if utf8.RuneCountInString(l.value) > l.max {
			return domain.ValidationError{
				Field: l.field,
				Msg:   fmt.Sprintf("%s must be at most %d characters", l.field, l.max),
			}
		}
	}
	return nil
}

func customerLimits(name, last, email, phone, country string) []fieldLimit {
	return []fieldLimit{
		{"first_name", name, maxNameLen},
		{"last_name", last, maxNameLen},
		{"email", email, maxEmailLen},
		{"phone_no", phone, maxPhoneLen},
		{"country", country, maxCountryLen},
	}
}
