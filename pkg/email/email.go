package email

import (
	"bytes"
	"fmt"
	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/domain"
	"html/template"
	"net/smtp"
)

// EmailService sends contact-inquiry notifications via SMTP. It implements
// domain.ContactNotifier; callers are expected to swallow its errors.
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	toEmail   string
}

// NewEmailService creates a new email service from SMTP configuration.
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
		toEmail:   cfg.ContactEmailTo,
	}
}

const inquiryTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Inquiry</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Contact Inquiry</h1>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">From:</div>
                <div>{{.Name}} ({{.Email}})</div>
            </div>
            <div class="field">
                <div class="label">Category / Priority:</div>
                <div>{{.Category}} / {{.Priority}}</div>
            </div>
            <div class="field">
                <div class="label">Subject:</div>
                <div>{{.Subject}}</div>
            </div>
            <div class="field">
                <div class="label">Message:</div>
                <div class="message-box">{{.Message}}</div>
            </div>
        </div>
        <div class="footer">
            <p>This email was sent by the job board contact form.</p>
            <p>To reply, send an email to: {{.Email}}</p>
        </div>
    </div>
</body>
</html>`

const responseTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Your Inquiry Was Answered</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #2e7d32; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #2e7d32; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>We answered your inquiry</h1>
        </div>
        <div class="content">
            <p>Hi {{.Name}},</p>
            <p>Your inquiry "{{.Subject}}" has been resolved. Our response:</p>
            <div class="message-box">{{.ResponseMessage}}</div>
        </div>
        <div class="footer">
            <p>This is an automated message from the job board support team.</p>
        </div>
    </div>
</body>
</html>`

// NotifyInquiry emails the support inbox about a newly submitted inquiry.
func (s *EmailService) NotifyInquiry(contact *domain.Contact) error {
	body, err := render(inquiryTemplate, map[string]string{
		"Name":     contact.Name,
		"Email":    contact.Email,
		"Category": string(contact.Category),
		"Priority": string(contact.Priority),
		"Subject":  contact.Subject,
		"Message":  contact.Message,
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Contact Form: %s", contact.Subject)
	return s.send(s.toEmail, contact.Email, subject, body)
}

// NotifyResponse emails the inquirer once a response has been attached.
func (s *EmailService) NotifyResponse(contact *domain.Contact) error {
	if contact.Response == nil {
		return fmt.Errorf("email: contact %s has no response attached", contact.ID.Hex())
	}
	body, err := render(responseTemplate, map[string]string{
		"Name":            contact.Name,
		"Subject":         contact.Subject,
		"ResponseMessage": contact.Response.Message,
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Re: %s", contact.Subject)
	return s.send(contact.Email, s.fromEmail, subject, body)
}

func render(tpl string, data any) (string, error) {
	t, err := template.New("email").Parse(tpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}
	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *EmailService) send(to, replyTo, subject, htmlBody string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Reply-To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		to,
		replyTo,
		subject,
		htmlBody,
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if the service has usable SMTP settings.
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
