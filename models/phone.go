package models

import "strings"

// PhoneDigits strips everything that is not a decimal digit.
func PhoneDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone applies the "(DD) DDDDD-DDDD" mask to arbitrary input,
// keeping at most 11 digits. The mask grows with the input so the function
// can be reapplied on every keystroke:
//
//	"4"            -> "(4"
//	"41"           -> "(41"
//	"419999"       -> "(41) 9999"
//	"41999999999"  -> "(41) 99999-9999"
//
// Ten-digit numbers get the short "(DD) DDDD-DDDD" shape.
func FormatPhone(input string) string {
	digits := PhoneDigits(input)
	if len(digits) > 11 {
		digits = digits[:11]
	}

	switch n := len(digits); {
	case n == 0:
		return ""
	case n <= 2:
		return "(" + digits
	case n <= 6:
		return "(" + digits[:2] + ") " + digits[2:]
	case n <= 10:
		return "(" + digits[:2] + ") " + digits[2:6] + "-" + digits[6:]
	default:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:]
	}
}
