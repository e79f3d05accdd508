package webhook

import (
	"context"
	"errors"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/3dstuff/backend/internal/inventory"
	"github.com/3dstuff/backend/internal/mail"
	"github.com/3dstuff/backend/internal/payment"
)

// StatusFetcher consulta o status de um pagamento no vendor
type StatusFetcher interface {
	GetPaymentStatus(ctx context.Context, paymentID string) (*payment.StatusResult, error)
}

// PaymentStore é o subconjunto do repositório de pagamentos usado pela reconciliação
type PaymentStore interface {
	GetByPaymentID(ctx context.Context, paymentID string) (*payment.Record, error)
	UpdateStatus(ctx context.Context, paymentID, status, statusDetail string, payload []byte) error
	MarkApproved(ctx context.Context, paymentID string) error
	MarkCancelled(ctx context.Context, paymentID string) error
}

// StockLedger é o subconjunto do estoque usado pela reconciliação
type StockLedger interface {
	GetStockInfo(ctx context.Context, productID string) (*inventory.StockInfo, error)
	CheckAvailability(ctx context.Context, productID string, quantity int) (*inventory.Availability, error)
	Reserve(ctx context.Context, productID string, quantity int, orderID string) error
	ConfirmSale(ctx context.Context, productID string, quantity int, orderID string) error
	CancelReservation(ctx context.Context, productID string, quantity int, orderID string) error
}

// MailSender envia os e-mails transacionais disparados pela reconciliação
type MailSender interface {
	SendPaymentConfirmation(ctx context.Context, data mail.PaymentEmail) error
	SendPaymentPending(ctx context.Context, data mail.PaymentEmail) error
	SendPaymentCancelled(ctx context.Context, data mail.PaymentEmail) error
}

// Reconciler processa notificações de pagamento: consulta o vendor,
// sincroniza o registro local e aplica os efeitos de estoque e e-mail
type Reconciler struct {
	notifications Repository
	fetcher       StatusFetcher
	payments      PaymentStore
	stock         StockLedger
	mailer        MailSender

	processedCounter metric.Int64Counter
	approvedCounter  metric.Int64Counter
	failedCounter    metric.Int64Counter
}

// NewReconciler cria uma nova instância de Reconciler
func NewReconciler(notifications Repository, fetcher StatusFetcher, payments PaymentStore, stock StockLedger, mailer MailSender) *Reconciler {
	meter := otel.Meter("webhook-service")
	processed, _ := meter.Int64Counter("webhook.notifications.processed")
	approved, _ := meter.Int64Counter("webhook.payments.approved")
	failed, _ := meter.Int64Counter("webhook.payments.failed")

	return &Reconciler{
		notifications:    notifications,
		fetcher:          fetcher,
		payments:         payments,
		stock:            stock,
		mailer:           mailer,
		processedCounter: processed,
		approvedCounter:  approved,
		failedCounter:    failed,
	}
}

// Process reconcilia uma notificação já persistida. Falhas são logadas
// e não propagadas: o vendor reenvia a notificação se necessário.
func (r *Reconciler) Process(ctx context.Context, notificationID int64, paymentID string) {
	tracer := otel.Tracer("webhook-service")

	ctx, span := tracer.Start(ctx, "ProcessNotification")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("notification.id", notificationID),
		attribute.String("payment.id", paymentID),
	)

	log.Printf("➡️ Processing payment notification | PaymentID=%s", paymentID)

	status, err := r.fetcher.GetPaymentStatus(ctx, paymentID)
	if err != nil {
		log.Printf("❌ Failed to fetch payment status | PaymentID=%s | Error=%v", paymentID, err)
		span.RecordError(err)
		return
	}
	if !status.Success {
		// Deixa a notificação pendente para o reenvio do vendor
		log.Printf("❌ Vendor could not resolve payment status | PaymentID=%s | Error=%s", paymentID, status.Error)
		return
	}

	record, err := r.payments.GetByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, payment.ErrPaymentNotFound) {
			log.Printf("⚠️ Payment %s not found locally, skipping reconciliation", paymentID)
		} else {
			log.Printf("❌ Failed to load payment record | PaymentID=%s | Error=%v", paymentID, err)
			span.RecordError(err)
		}
		return
	}

	oldStatus := record.Status
	if err := r.payments.UpdateStatus(ctx, paymentID, status.Status, status.StatusDetail, nil); err != nil {
		log.Printf("❌ Failed to persist payment status | PaymentID=%s | Error=%v", paymentID, err)
		span.RecordError(err)
		return
	}

	span.SetAttributes(
		attribute.String("payment.old_status", oldStatus),
		attribute.String("payment.new_status", status.Status),
	)

	switch status.Status {
	case payment.StatusApproved:
		r.handleApproved(ctx, record)
	case payment.StatusCancelled, payment.StatusRejected:
		r.handleFailed(ctx, record)
	case payment.StatusPending:
		r.handlePending(ctx, record, oldStatus)
	default:
		log.Printf("ℹ️ Ignoring intermediate status %q | PaymentID=%s", status.Status, paymentID)
	}

	if err := r.notifications.MarkProcessed(ctx, notificationID); err != nil {
		log.Printf("⚠️ Failed to mark notification processed | ID=%d | Error=%v", notificationID, err)
		span.RecordError(err)
		return
	}

	r.processedCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status.Status)))
	log.Printf("✅ Notification processed | PaymentID=%s | Status=%s", paymentID, status.Status)
}

func (r *Reconciler) handleApproved(ctx context.Context, record *payment.Record) {
	if record.InventoryUpdated {
		log.Printf("ℹ️ Inventory already confirmed for payment %s, skipping", record.PaymentID)
		return
	}

	quantity := 1
	orderID := record.PaymentID

	info, err := r.stock.GetStockInfo(ctx, record.ProductID)
	if err != nil {
		log.Printf("⚠️ Failed to read stock for product %s: %v", record.ProductID, err)
	}

	if info != nil && info.ReservedQuantity > 0 {
		err = r.stock.ConfirmSale(ctx, record.ProductID, quantity, orderID)
	} else {
		// Sem reserva prévia: reserva e confirma em seguida
		availability, availErr := r.stock.CheckAvailability(ctx, record.ProductID, quantity)
		switch {
		case availErr != nil:
			err = availErr
		case availability.CanFulfill:
			if err = r.stock.Reserve(ctx, record.ProductID, quantity, orderID); err == nil {
				err = r.stock.ConfirmSale(ctx, record.ProductID, quantity, orderID)
			}
		default:
			log.Printf("⚠️ Product %s out of stock but payment %s approved", record.ProductID, record.PaymentID)
		}
	}
	if err != nil {
		log.Printf("❌ Failed to confirm sale | PaymentID=%s | Error=%v", record.PaymentID, err)
	}

	if err := r.payments.MarkApproved(ctx, record.PaymentID); err != nil {
		log.Printf("❌ Failed to mark payment approved | PaymentID=%s | Error=%v", record.PaymentID, err)
		return
	}
	r.approvedCounter.Add(ctx, 1)

	if err := r.mailer.SendPaymentConfirmation(ctx, r.emailData(record)); err != nil {
		log.Printf("⚠️ Failed to send confirmation email | PaymentID=%s | Error=%v", record.PaymentID, err)
	}
}

func (r *Reconciler) handleFailed(ctx context.Context, record *payment.Record) {
	if record.InventoryReleased {
		log.Printf("ℹ️ Inventory already released for payment %s, skipping", record.PaymentID)
		return
	}

	if err := r.stock.CancelReservation(ctx, record.ProductID, 1, record.PaymentID); err != nil {
		log.Printf("⚠️ Failed to cancel reservation | PaymentID=%s | Error=%v", record.PaymentID, err)
	}

	if err := r.payments.MarkCancelled(ctx, record.PaymentID); err != nil {
		log.Printf("❌ Failed to mark payment cancelled | PaymentID=%s | Error=%v", record.PaymentID, err)
		return
	}
	r.failedCounter.Add(ctx, 1)

	if err := r.mailer.SendPaymentCancelled(ctx, r.emailData(record)); err != nil {
		log.Printf("⚠️ Failed to send cancellation email | PaymentID=%s | Error=%v", record.PaymentID, err)
	}
}

func (r *Reconciler) handlePending(ctx context.Context, record *payment.Record, oldStatus string) {
	info, err := r.stock.GetStockInfo(ctx, record.ProductID)
	if err != nil {
		log.Printf("⚠️ Failed to read stock for product %s: %v", record.ProductID, err)
	}

	if info == nil || info.ReservedQuantity == 0 {
		if err := r.stock.Reserve(ctx, record.ProductID, 1, record.PaymentID); err != nil {
			log.Printf("⚠️ Failed to reserve stock | PaymentID=%s | Error=%v", record.PaymentID, err)
		}
	}

	// E-mail de pendência apenas na transição para pending
	if oldStatus != payment.StatusPending {
		if err := r.mailer.SendPaymentPending(ctx, r.emailData(record)); err != nil {
			log.Printf("⚠️ Failed to send pending email | PaymentID=%s | Error=%v", record.PaymentID, err)
		}
	}
}

func (r *Reconciler) emailData(record *payment.Record) mail.PaymentEmail {
	return mail.PaymentEmail{
		CustomerEmail: record.CustomerEmail,
		CustomerName:  record.CustomerName,
		ProductName:   record.ProductName,
		PaymentID:     record.PaymentID,
		PaymentMethod: record.PaymentMethodID,
		Amount:        record.Amount,
	}
}
