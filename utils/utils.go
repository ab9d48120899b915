package utils

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"nxtsync/config"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	otp := ""
	for i := 0; i < 6; i++ {
		otp += fmt.Sprintf("%d", rng.Intn(10))
	}
	return otp
}

const passwordCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateTempPassword generates the random 8-character one-time password
// handed to a student at enrollment. It is returned in clear text exactly
// once and only the bcrypt hash is stored.
func GenerateTempPassword() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, 8)
	for i := range b {
		b[i] = passwordCharset[rng.Intn(len(passwordCharset))]
	}
	return string(b)
}

// GenerateVerificationCode returns the opaque secondary token stored with
// an issued certificate.
func GenerateVerificationCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:8])
}

// SendOTPToMobile delivers an OTP over the SMS gateway. When no gateway
// is configured the code is logged instead, which keeps local flows
// usable without credentials.
func SendOTPToMobile(mobile, otp string) error {
	if config.AppConfig.SmsApiKey == "" {
		log.Printf("MOBILE OTP for %s: %s", mobile, otp)
		return nil
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetQueryParams(map[string]string{
			"authorization":    config.AppConfig.SmsApiKey,
			"route":            "otp",
			"variables_values": otp,
			"numbers":          mobile,
		}).
		Get(config.AppConfig.SmsApiUrl)
	if err != nil {
		log.Printf("Error while sending OTP: %v", err)
		return err
	}

	if resp.StatusCode() != 200 {
		log.Printf("Failed to send OTP, response code: %d", resp.StatusCode())
		return fmt.Errorf("failed to send OTP, code: %d", resp.StatusCode())
	}

	log.Println("OTP sent successfully to", mobile)
	return nil
}
