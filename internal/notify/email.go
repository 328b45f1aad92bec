// Package notify delivers rendered invoices to client companies by email.
package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"invoice-manager/internal/core"
)

// SMTPConfig describes the outgoing mail server.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Transport delivers composed messages. *mail.Client satisfies it.
type Transport interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Message is an invoice email before it is encoded for SMTP.
type Message struct {
	To         string
	Subject    string
	Body       string
	Attachment string
}

// Sender emails invoices with their PDF attached.
type Sender struct {
	from      string
	transport Transport
	log       zerolog.Logger
}

// NewSender builds a Sender backed by an SMTP client. Authentication is enabled
// only when a username is configured.
func NewSender(cfg SMTPConfig, log zerolog.Logger) (*Sender, error) {
	if cfg.Host == "" {
		return nil, errors.New("SMTP host is not configured")
	}
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return NewSenderWithTransport(from, client, log), nil
}

// NewSenderWithTransport builds a Sender over an arbitrary transport.
func NewSenderWithTransport(from string, transport Transport, log zerolog.Logger) *Sender {
	return &Sender{from: from, transport: transport, log: log}
}

// SendInvoice emails the invoice to the client's address with pdfPath attached.
func (s *Sender) SendInvoice(ctx context.Context, detail *core.InvoiceDetail, pdfPath string) error {
	msg, err := Compose(detail, pdfPath)
	if err != nil {
		return err
	}

	m := mail.NewMsg()
	if s.from != "" {
		if err := m.From(s.from); err != nil {
			return fmt.Errorf("invalid sender address %q: %w", s.from, core.ErrValidation)
		}
	} else if err := m.From(detail.Company.Email); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", detail.Company.Email, core.ErrValidation)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("invalid client email %q: %w", msg.To, core.ErrValidation)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	m.AttachFile(msg.Attachment, mail.WithFileName(filepath.Base(msg.Attachment)))

	if err := s.transport.DialAndSendWithContext(ctx, m); err != nil {
		return core.Infra("send invoice email", err)
	}

	s.log.Info().
		Str("invoice_number", detail.Invoice.InvoiceNumber).
		Str("to", msg.To).
		Msg("invoice emailed")
	return nil
}

// Compose validates the preconditions for emailing an invoice and builds the message.
func Compose(detail *core.InvoiceDetail, pdfPath string) (*Message, error) {
	if detail.PurchaseOrder == nil || detail.Client == nil {
		return nil, fmt.Errorf("email invoice %s: %w", detail.Invoice.InvoiceNumber, core.ErrInvoiceOrphaned)
	}
	if strings.TrimSpace(detail.Client.Email) == "" {
		return nil, fmt.Errorf("client %s: %w", detail.Client.Name, core.ErrClientEmailMissing)
	}
	if pdfPath == "" {
		return nil, core.ErrPDFMissing
	}
	if _, err := os.Stat(pdfPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", pdfPath, core.ErrPDFMissing)
		}
		return nil, core.Infra("stat invoice pdf", err)
	}

	return &Message{
		To:         detail.Client.Email,
		Subject:    fmt.Sprintf("Invoice %s - %s", detail.Invoice.InvoiceNumber, detail.Company.Name),
		Body:       body(detail),
		Attachment: pdfPath,
	}, nil
}

func body(d *core.InvoiceDetail) string {
	signer := "Sales Team"
	if d.Company.ContactPerson != nil && *d.Company.ContactPerson != "" {
		signer = *d.Company.ContactPerson
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", d.Client.Name)
	b.WriteString("We are pleased to inform you that the training services as outlined in the Purchase Order (PO) have been successfully completed.\n\n")
	b.WriteString("As discussed, we are raising the invoice in accordance with the agreed terms and conditions mentioned in the PO. " +
		"Kindly find the attached invoice for your reference and initiate the payment process as per the PO agreement.\n\n")
	b.WriteString("Invoice Details:\n")
	fmt.Fprintf(&b, "Purchase Order Number: %s\n", d.PurchaseOrder.PONumber)
	fmt.Fprintf(&b, "Invoice Number: %s\n", d.Invoice.InvoiceNumber)
	fmt.Fprintf(&b, "Invoice Date: %s\n", d.Invoice.InvoiceDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "Total Amount: %s\n\n", core.FormatMoney(d.Invoice.TotalAmount))
	b.WriteString("Please let us know if any additional information or documentation is required from our end to proceed with the payment.\n\n")
	b.WriteString("Thank you for your continued support and cooperation.\n\n")
	b.WriteString("Warm regards,\n")
	fmt.Fprintf(&b, "%s\n%s\n", signer, d.Company.Name)
	if d.Company.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", d.Company.Phone)
	}
	return b.String()
}
