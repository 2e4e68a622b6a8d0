package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"lms/config"
)

// SendEmail sends an HTML email through SMTP.
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" || password == "" {
		return fmt.Errorf("email sender not configured")
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LMS <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
}

// NotifyGrade emails the student that their submission was graded.
// Best effort: runs on its own goroutine, failures are logged and dropped.
func NotifyGrade(toEmail, studentName, assignmentTitle string, grade, maxMarks float64) {
	if toEmail == "" {
		return
	}
	go func() {
		subject := fmt.Sprintf("Your submission for %q has been graded", assignmentTitle)
		body := fmt.Sprintf(`
		<html><body>
		<p>Hi %s,</p>
		<p>Your submission for <b>%s</b> has been graded: <b>%.2f / %.2f</b>.</p>
		<p>Log in to see the feedback.</p>
		</body></html>`, studentName, assignmentTitle, grade, maxMarks)

		if err := SendEmail([]string{toEmail}, subject, body); err != nil {
			log.Printf("grade notification to %s failed: %v", toEmail, err)
		}
	}()
}
