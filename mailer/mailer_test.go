package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderOTPBody(t *testing.T) {
	body := RenderOTPBody("Harsh", "483920")

	assert.Contains(t, body, "Hi there, Harsh")
	assert.Contains(t, body, "483920")
	assert.False(t, strings.Contains(body, "$$userName$$"))
	assert.False(t, strings.Contains(body, "$$otp_code$$"))
}

func TestRenderOTPBodyDefaults(t *testing.T) {
	body := RenderOTPBody("", "")

	assert.Contains(t, body, "Hi there, User")
	assert.Contains(t, body, "000000")
}

func TestSendOTPRequiresCredentials(t *testing.T) {
	m := New("smtp.gmail.com", 587, "", "")

	assert.False(t, m.Configured())
	assert.Error(t, m.SendOTP("someone@example.com", "Someone", "123456"))
}
