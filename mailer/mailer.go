// Package mailer delivers the OTP email.
package mailer

import (
	"fmt"
	"strings"

	gomail "gopkg.in/gomail.v2"
)

const otpBodyHTML = `<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>paisafy OTP</title>
	<style>
		body { font-family: Arial, sans-serif; background-color: #f9f9f9; margin: 0; padding: 0; }
		.email-container { max-width: 600px; margin: 20px auto; background-color: #ffffff; border: 1px solid #dddddd; border-radius: 8px; overflow: hidden; }
		.header { background-color: #5046E4; color: #ffffff; text-align: center; padding: 20px; }
		.content { padding: 20px; text-align: center; }
		.otp { font-size: 32px; font-weight: bold; color: #5046E4; margin: 20px 0; }
	</style>
</head>
<body>
	<div class="email-container">
		<div class="header">
			<h1>Welcome to paisafy</h1>
		</div>
		<div class="content">
			<p>Hi there, $$userName$$</p>
			<p>Your One-Time Password (OTP) is:</p>
			<div class="otp">$$otp_code$$</div>
			<p>Please use this code to proceed. This OTP is valid for the next 10 minutes.</p>
			<p>If you did not request this OTP, please ignore this email.</p>
		</div>
	</div>
</body>
</html>`

// Mailer sends transactional mail over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(host string, port int, user, password string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   user,
	}
}

// Configured reports whether sending credentials are present.
func (m *Mailer) Configured() bool {
	return m.from != ""
}

// SendOTP mails the one-time passcode to the user.
func (m *Mailer) SendOTP(to, userName, otp string) error {
	if !m.Configured() {
		return fmt.Errorf("email credentials are not set")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "paisafy - OTP Verification")
	msg.SetBody("text/html", RenderOTPBody(userName, otp))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("error sending otp mail: %w", err)
	}
	return nil
}

// RenderOTPBody substitutes the user's name and passcode into the template.
func RenderOTPBody(userName, otp string) string {
	if userName == "" {
		userName = "User"
	}
	if otp == "" {
		otp = "000000"
	}
	body := strings.ReplaceAll(otpBodyHTML, "$$userName$$", userName)
	return strings.ReplaceAll(body, "$$otp_code$$", otp)
}
