// Package mail renders and delivers RFP invitation emails.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/procureflow/procureflow/internal/services"
)

// SMTPMailer sends RFP invitations over plain SMTP.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	log      *zap.Logger

	// send is swappable for tests
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(host, port, username, password, from string, log *zap.Logger) *SMTPMailer {
	if log == nil {
		log = zap.NewNop()
	}
	if from == "" {
		from = "rfp@procurement.example.com"
	}
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		log:      log,
		send:     smtp.SendMail,
	}
}

// SendRfp renders the invitation and delivers it to the vendor's address.
func (m *SMTPMailer) SendRfp(ctx context.Context, vendor *services.Vendor, rfp *services.Rfp) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := RenderRfpEmail(rfp, vendor)
	if err != nil {
		return fmt.Errorf("render rfp email: %w", err)
	}

	subject := "Request for Proposal - " + rfp.Title
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", vendor.Email)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	addr := m.host + ":" + m.port
	if err := m.send(addr, auth, m.from, []string{vendor.Email}, msg.Bytes()); err != nil {
		return fmt.Errorf("send to %s: %w", vendor.Email, err)
	}
	m.log.Info("sent RFP email",
		zap.String("to", vendor.Email),
		zap.String("rfp_id", rfp.ID))
	return nil
}

// LogMailer logs instead of sending. Used in dev when SMTP is not
// configured.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogMailer{log: log}
}

func (m *LogMailer) SendRfp(ctx context.Context, vendor *services.Vendor, rfp *services.Rfp) error {
	m.log.Info("would send RFP email",
		zap.String("to", vendor.Email),
		zap.String("vendor", vendor.Name),
		zap.String("contact", vendor.ContactPerson),
		zap.String("subject", "Request for Proposal - "+rfp.Title))
	return nil
}

var (
	_ services.RfpMailer = (*SMTPMailer)(nil)
	_ services.RfpMailer = (*LogMailer)(nil)
)
