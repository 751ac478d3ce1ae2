package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPhone_DigitByDigit(t *testing.T) {
	// The mask is reapplied on every keystroke, so feeding the running
	// masked value back through must converge on the same result.
	sequence := "41999999999"
	expected := []string{
		"(4",
		"(41",
		"(41) 9",
		"(41) 99",
		"(41) 999",
		"(41) 9999",
		"(41) 9999-9",
		"(41) 9999-99",
		"(41) 9999-999",
		"(41) 9999-9999",
		"(41) 99999-9999",
	}

	value := ""
	for i, digit := range sequence {
		value = FormatPhone(value + string(digit))
		assert.Equal(t, expected[i], value, "after typing %d digits", i+1)
	}
	assert.Equal(t, "(41) 99999-9999", value)
}

func TestFormatPhone_CapsAtElevenDigits(t *testing.T) {
	assert.Equal(t, "(41) 99999-9999", FormatPhone("419999999999999"))
}

func TestFormatPhone_StripsNonDigits(t *testing.T) {
	assert.Equal(t, "(41) 99999-9999", FormatPhone("41 9 9999 9999"))
	assert.Equal(t, "", FormatPhone("abc"))
}

func TestFormatPhone_TenDigitLandline(t *testing.T) {
	assert.Equal(t, "(41) 3333-4444", FormatPhone("4133334444"))
}

func TestPhoneDigits(t *testing.T) {
	assert.Equal(t, "5541999999999", PhoneDigits("+55 (41) 99999-9999"))
	assert.Equal(t, "", PhoneDigits(""))
}
