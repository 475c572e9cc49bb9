package service

import "net/smtp"

type EmailService interface{ Send(to, subject, body string) error }

// SMTPConfig points at a plain, unauthenticated relay such as MailHog.
type SMTPConfig struct {
	Host, Port, From string
}

type smtpEmail struct{ cfg SMTPConfig }

type noopEmail struct{}

// NewEmailService returns a mailer that drops every message when no SMTP host
// is configured.
func NewEmailService(cfg SMTPConfig) EmailService {
	if cfg.Host == "" {
		return noopEmail{}
	}
	return &smtpEmail{cfg: cfg}
}

func (s *smtpEmail) Send(to, subject, body string) error {
	addr := s.cfg.Host + ":" + s.cfg.Port

	msg := "From: " + s.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body

	return smtp.SendMail(addr, nil, s.cfg.From, []string{to}, []byte(msg))
}

func (noopEmail) Send(string, string, string) error { return nil }
