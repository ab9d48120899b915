package utils

import (
	"encoding/base64"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"

	"nxtsync/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers an HTML email. SendGrid is used when an API key is
// configured, otherwise plain SMTP. attachmentPath may be empty; the
// attachment is skipped (and logged) on the SMTP path.
func SendEmail(to []string, subject string, htmlBody string, attachmentPath string) error {
	if config.AppConfig.SendGridKey != "" {
		return sendViaSendGrid(to, subject, htmlBody, attachmentPath)
	}
	if config.AppConfig.EmailSender != "" {
		if attachmentPath != "" {
			log.Printf("SMTP transport does not attach files; skipping attachment %s", attachmentPath)
		}
		return sendViaSmtp(to, subject, htmlBody)
	}
	log.Printf("No email transport configured; skipping email %q to %v", subject, to)
	return nil
}

func sendViaSendGrid(to []string, subject, htmlBody, attachmentPath string) error {
	from := mail.NewEmail("NXTSYNC Academy", config.AppConfig.EmailSender)

	m := mail.NewV3Mail()
	m.SetFrom(from)
	m.Subject = subject

	p := mail.NewPersonalization()
	for _, addr := range to {
		p.AddTos(mail.NewEmail("", addr))
	}
	m.AddPersonalizations(p)
	m.AddContent(mail.NewContent("text/html", htmlBody))

	if attachmentPath != "" {
		data, err := os.ReadFile(attachmentPath)
		if err != nil {
			log.Printf("Could not read attachment %s: %v", attachmentPath, err)
		} else {
			a := mail.NewAttachment()
			a.SetContent(base64.StdEncoding.EncodeToString(data))
			a.SetType("application/pdf")
			a.SetFilename("Certificate.pdf")
			a.SetDisposition("attachment")
			m.AddAttachment(a)
		}
	}

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	resp, err := client.Send(m)
	if err != nil {
		log.Printf("Error sending email via SendGrid: %v", err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email: %d %s", resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid rejected email: %d", resp.StatusCode)
	}
	return nil
}

func sendViaSmtp(to []string, subject, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: NXTSYNC Academy <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

// getEmailTemplate wraps body content in the academy's HTML shell.
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1a237e; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1e293b; line-height: 1.6; }
			.content h2 { color: #1a237e; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #1a237e; margin: 20px 0; }
			.code { text-align: center; color: #1a237e; font-size: 36px; letter-spacing: 6px; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>NXTSYNC ACADEMY</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 NXTSYNC Academy. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendOTPEmail delivers a verification code. Valid for 10 minutes.
func SendOTPEmail(otp, email string) error {
	subject := "Your Verification Code"
	body := fmt.Sprintf(`
		<p>Your One Time Password (OTP) is:</p>
		<h1 class="code">%s</h1>
		<p>This code is valid for 10 minutes. Do not share it with anyone.</p>
	`, otp)

	return SendEmail([]string{email}, subject, getEmailTemplate("OTP Verification", body), "")
}

// SendCredentialsEmail mails login credentials after a successful
// enrollment. Fired asynchronously; failures are logged only.
func SendCredentialsEmail(email, name, courseName, studentID, password string) {
	subject := "Enrollment Successful - Credentials"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have successfully enrolled in <strong>%s</strong>.</p>
		<div class="info-box">
			<strong>Student ID:</strong> %s<br>
			<strong>Password:</strong> %s
		</div>
		<p>Please login to your dashboard to access your course materials.</p>
	`, name, courseName, studentID, password)

	go func() {
		if err := SendEmail([]string{email}, subject, getEmailTemplate("Welcome to NXTSYNC!", body), ""); err != nil {
			log.Printf("Credentials email to %s failed: %v", email, err)
		}
	}()
}

// SendCertificateEmail mails the issued certificate PDF. Called
// synchronously so the approval response can report a delivery failure.
func SendCertificateEmail(email, name, courseName, certificateID, attachmentPath string) error {
	subject := "Your Course Certificate"
	body := fmt.Sprintf(`
		<p>Congratulations %s!</p>
		<p>Your certificate for <strong>%s</strong> is attached.</p>
		<div class="info-box">
			<strong>Certificate ID:</strong> %s
		</div>
		<p>Anyone can verify this certificate by scanning the QR code on the document.</p>
	`, name, courseName, certificateID)

	return SendEmail([]string{email}, subject, getEmailTemplate("Certificate of Completion", body), attachmentPath)
}
