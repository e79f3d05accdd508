package mail

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"
)

// Sender envia e-mails transacionais via SendGrid.
// Sem API key configurada ele opera em modo log-only: registra o
// e-mail no log e reporta sucesso.
type Sender struct {
	apiKey      string
	senderEmail string
	senderName  string
}

// NewSender cria uma nova instância de Sender
func NewSender(apiKey, senderEmail string) *Sender {
	return &Sender{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  "3D Stuff",
	}
}

// Configured informa se o envio real via SendGrid está habilitado
func (s *Sender) Configured() bool {
	return s.apiKey != ""
}

// PaymentEmail carrega os dados usados nos e-mails de pagamento
type PaymentEmail struct {
	CustomerEmail string
	CustomerName  string
	ProductName   string
	PaymentID     string
	PaymentMethod string
	Amount        decimal.Decimal
}

// SendPaymentConfirmation envia o e-mail de pagamento aprovado
func (s *Sender) SendPaymentConfirmation(ctx context.Context, data PaymentEmail) error {
	subject := "✅ Pagamento Aprovado - 3D Stuff"
	html := paymentConfirmationBody(data)
	return s.send(ctx, data.CustomerEmail, data.CustomerName, subject, html)
}

// SendPaymentPending envia o e-mail com instruções de pagamento pendente
func (s *Sender) SendPaymentPending(ctx context.Context, data PaymentEmail) error {
	subject := "⏳ Aguardando Pagamento - 3D Stuff"
	html := paymentPendingBody(data)
	return s.send(ctx, data.CustomerEmail, data.CustomerName, subject, html)
}

// SendPaymentCancelled envia o e-mail de pagamento cancelado ou recusado
func (s *Sender) SendPaymentCancelled(ctx context.Context, data PaymentEmail) error {
	subject := "❌ Pagamento Não Aprovado - 3D Stuff"
	html := paymentCancelledBody(data)
	return s.send(ctx, data.CustomerEmail, data.CustomerName, subject, html)
}

// SendContactConfirmation envia a confirmação de recebimento do contato
func (s *Sender) SendContactConfirmation(ctx context.Context, toEmail, toName string) error {
	subject := "Recebemos sua mensagem - 3D Stuff"
	html := contactConfirmationBody(toName)
	return s.send(ctx, toEmail, toName, subject, html)
}

func (s *Sender) send(ctx context.Context, toEmail, toName, subject, html string) error {
	if s.apiKey == "" {
		log.Printf("ℹ️ [log-only] Email to=%s subject=%q", toEmail, subject)
		return nil
	}

	from := sgmail.NewEmail(s.senderName, s.senderEmail)
	to := sgmail.NewEmail(toName, toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, "", html)

	client := sendgrid.NewSendClient(s.apiKey)
	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}

	log.Printf("✅ Email sent | To=%s | Subject=%q", toEmail, subject)
	return nil
}
