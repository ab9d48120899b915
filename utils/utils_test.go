package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP()

	assert.Len(t, otp, 6)
	for _, ch := range otp {
		assert.True(t, ch >= '0' && ch <= '9', "OTP must be digits only, got %q", otp)
	}
}

func TestGenerateTempPassword(t *testing.T) {
	password := GenerateTempPassword()

	assert.Len(t, password, 8)
	for _, ch := range password {
		assert.True(t, strings.ContainsRune(passwordCharset, ch),
			"password must stay within the charset, got %q", password)
	}
}

func TestGenerateVerificationCode(t *testing.T) {
	code := GenerateVerificationCode()

	assert.Len(t, code, 8)
	assert.Equal(t, strings.ToUpper(code), code)
}
