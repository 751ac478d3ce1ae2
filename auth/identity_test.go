package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySignInError(t *testing.T) {
	cases := []struct {
		code     string
		expected string
	}{
		{"INVALID_EMAIL", MsgInvalidEmail},
		{"EMAIL_NOT_FOUND", MsgWrongCredentials},
		{"INVALID_LOGIN_CREDENTIALS", MsgWrongCredentials},
		{"INVALID_PASSWORD", MsgWrongPassword},
		{"TOO_MANY_ATTEMPTS_TRY_LATER : access temporarily disabled", MsgLoginFailed},
		{"USER_DISABLED", MsgLoginFailed},
		{"", MsgLoginFailed},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, classifySignInError(tc.code), "code %q", tc.code)
	}
}
