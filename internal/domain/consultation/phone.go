package consultation

import (
	"strconv"
	"strings"
)

const (
	minMobile = 6000000000
	maxMobile = 9999999999
)

var separators = strings.NewReplacer(" ", "", "-", "")

// ValidPhone reports whether s is an Indian mobile number. A leading +91
// country code is dropped, as is a bare 91 written as its own group
// ("91 98765 43210"); a bare 91 glued to the number is part of it. Spaces
// and hyphens are ignored and the rest must be exactly ten digits within the
// mobile numbering range.
func ValidPhone(s string) bool {
	num := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(num, "+91"):
		num = num[3:]
	case strings.HasPrefix(num, "91 "), strings.HasPrefix(num, "91-"):
		num = num[2:]
	}
	num = separators.Replace(num)
	if len(num) != 10 {
		return false
	}
	for _, c := range num {
		if c < '0' || c > '9' {
			return false
		}
	}
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return false
	}
	return n >= minMobile && n <= maxMobile
}

// CountValidPhones counts encounters whose phone number passes ValidPhone.
func CountValidPhones(encounters []Encounter) int {
	n := 0
	for _, e := range encounters {
		if e.PhoneNumber.Valid && ValidPhone(e.PhoneNumber.Value) {
			n++
		}
	}
	return n
}
