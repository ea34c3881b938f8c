package utils

import (
	"fmt"
	"log"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Generic Send Email via SendGrid
func SendEmail(toAddress, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Println("SENDGRID_API_KEY not configured; skipping email to", toAddress)
		return nil
	}

	from := sgmail.NewEmail(config.AppConfig.EmailName, config.AppConfig.EmailSender)
	to := sgmail.NewEmail(toName, toAddress)

	message := sgmail.NewSingleEmail(from, subject, to, "", htmlBody)
	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)

	resp, err := client.Send(message)
	if err != nil {
		log.Println("Error sending email:", err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email, status %d: %s", resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid status %d", resp.StatusCode)
	}
	return nil
}

// HTML wrapper shared by all notification emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #00004D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00004D; line-height: 1.6; }
			.content h2 { color: #00004D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #d7b56d; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #d7b56d; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>CLASSIA CAPITAL ACADEMY</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Classia Capital Academy. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendCertificateEmail notifies a learner that their certificate is ready.
// Fire-and-forget: issuance never waits on it.
func SendCertificateEmail(email, name, credentialTitle, certificateNo, downloadURL string) {
	subject := "Your Certificate is Ready: " + credentialTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on completing <strong>%s</strong>!</p>
		<div class="info-box">
			<strong>Certificate Number:</strong> %s
		</div>
		<p>Your certificate number can be used by anyone to verify this credential.</p>
		<a href="%s" class="btn">Download Certificate</a>
	`, name, credentialTitle, certificateNo, downloadURL)

	go func() {
		if err := SendEmail(email, name, subject, getEmailTemplate("Certificate of Completion", body)); err != nil {
			log.Println("Failed to send certificate email to", email, ":", err)
		}
	}()
}

// SendReviewRequestEmail asks a learner to review a subject they just completed
func SendReviewRequestEmail(email, name, subjectTitle string) {
	subject := "How was " + subjectTitle + "?"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have completed <strong>%s</strong>. We would love to hear what you thought of it.</p>
		<p>Your feedback helps other learners pick the right material.</p>
		<a href="#" class="btn">Leave a Review</a>
	`, name, subjectTitle)

	go func() {
		if err := SendEmail(email, name, subject, getEmailTemplate("Share Your Feedback", body)); err != nil {
			log.Println("Failed to send review request email to", email, ":", err)
		}
	}()
}
