package mail

import (
	"context"
	"net/smtp"
	"strings"
	"testing"
)

func TestSMTPMailerSendRfp(t *testing.T) {
	m := NewSMTPMailer("mail.example.com", "587", "user", "pass", "rfp@corp.example.com", nil)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	rfp, vendor := invitationFixture()
	if err := m.SendRfp(context.Background(), vendor, rfp); err != nil {
		t.Fatalf("SendRfp: %v", err)
	}
	if gotAddr != "mail.example.com:587" {
		t.Fatalf("addr = %q", gotAddr)
	}
	if gotFrom != "rfp@corp.example.com" {
		t.Fatalf("from = %q", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "sales@techsupply.com" {
		t.Fatalf("to = %v", gotTo)
	}
	msg := string(gotMsg)
	if !strings.Contains(msg, "Subject: Request for Proposal - Office Laptop Procurement\r\n") {
		t.Fatalf("subject line missing:\n%s", msg)
	}
	if !strings.Contains(msg, "Content-Type: text/html") {
		t.Fatalf("content type missing:\n%s", msg)
	}
	if !strings.Contains(msg, "Dear John Smith") {
		t.Fatalf("body missing:\n%s", msg)
	}
}

func TestSMTPMailerCancelledContext(t *testing.T) {
	m := NewSMTPMailer("mail.example.com", "587", "", "", "", nil)
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		t.Fatalf("send must not be called with a cancelled context")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rfp, vendor := invitationFixture()
	if err := m.SendRfp(ctx, vendor, rfp); err == nil {
		t.Fatalf("expected context error")
	}
}
