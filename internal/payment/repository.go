package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repository define as operações de banco de dados dos pagamentos
type Repository interface {
	// Create insere um registro de pagamento recém-criado no vendor
	Create(ctx context.Context, record *Record) error

	// GetByPaymentID busca um pagamento pelo ID do vendor
	GetByPaymentID(ctx context.Context, paymentID string) (*Record, error)

	// UpdateStatus grava o status, o detalhe e o payload bruto do webhook
	UpdateStatus(ctx context.Context, paymentID, status, statusDetail string, payload []byte) error

	// MarkApproved grava approved_at e a flag inventory_updated
	MarkApproved(ctx context.Context, paymentID string) error

	// MarkCancelled grava cancelled_at e a flag inventory_released
	MarkCancelled(ctx context.Context, paymentID string) error

	// SyncFromPoll atualiza o registro a partir de uma consulta de status
	SyncFromPoll(ctx context.Context, paymentID, status, statusDetail string, netAmount decimal.Decimal) error

	// StatusSummary agrega contagem e valor total por status
	StatusSummary(ctx context.Context) ([]StatusSummary, error)
}

// PostgresRepository implementa Repository usando PostgreSQL
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository cria uma nova instância de PostgresRepository
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema cria a tabela de pagamentos quando ausente
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS mercado_pago_payments (
			id BIGSERIAL PRIMARY KEY,
			payment_id TEXT UNIQUE NOT NULL,
			external_reference TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			status_detail TEXT NOT NULL DEFAULT '',
			payment_method_id TEXT NOT NULL DEFAULT '',
			payment_type TEXT NOT NULL DEFAULT '',
			amount NUMERIC(12,2) NOT NULL,
			net_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT 'BRL',
			installments INT NOT NULL DEFAULT 1,
			customer_email TEXT NOT NULL,
			customer_document TEXT NOT NULL DEFAULT '',
			customer_name TEXT NOT NULL DEFAULT '',
			product_id TEXT NOT NULL,
			product_name TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			payment_data JSONB,
			qr_code TEXT NOT NULL DEFAULT '',
			ticket_url TEXT NOT NULL DEFAULT '',
			barcode TEXT NOT NULL DEFAULT '',
			inventory_updated BOOLEAN NOT NULL DEFAULT FALSE,
			inventory_released BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			approved_at TIMESTAMPTZ,
			cancelled_at TIMESTAMPTZ
		);
		CREATE INDEX IF NOT EXISTS idx_mp_payments_status ON mercado_pago_payments (status);
		CREATE INDEX IF NOT EXISTS idx_mp_payments_external_reference ON mercado_pago_payments (external_reference);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure payments schema: %w", err)
	}
	return nil
}

// Create insere um registro de pagamento
func (r *PostgresRepository) Create(ctx context.Context, record *Record) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO mercado_pago_payments (
			payment_id, external_reference, status, status_detail,
			payment_method_id, payment_type, amount, currency, installments,
			customer_email, customer_document, customer_name,
			product_id, product_name, description,
			payment_data, qr_code, ticket_url, barcode
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`,
		record.PaymentID, record.ExternalReference, record.Status, record.StatusDetail,
		record.PaymentMethodID, record.PaymentType, record.Amount, record.Currency, record.Installments,
		record.CustomerEmail, record.CustomerDocument, record.CustomerName,
		record.ProductID, record.ProductName, record.Description,
		record.PaymentData, record.QRCode, record.TicketURL, record.Barcode,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment record: %w", err)
	}
	return nil
}

// GetByPaymentID busca um pagamento pelo ID do vendor
func (r *PostgresRepository) GetByPaymentID(ctx context.Context, paymentID string) (*Record, error) {
	var record Record
	err := r.db.QueryRow(ctx, `
		SELECT id, payment_id, external_reference, status, status_detail,
		       payment_method_id, payment_type, amount, net_amount, currency, installments,
		       customer_email, customer_document, customer_name,
		       product_id, product_name, description,
		       qr_code, ticket_url, barcode,
		       inventory_updated, inventory_released,
		       created_at, updated_at, approved_at, cancelled_at
		FROM mercado_pago_payments WHERE payment_id = $1
	`, paymentID).Scan(
		&record.ID, &record.PaymentID, &record.ExternalReference, &record.Status, &record.StatusDetail,
		&record.PaymentMethodID, &record.PaymentType, &record.Amount, &record.NetAmount, &record.Currency, &record.Installments,
		&record.CustomerEmail, &record.CustomerDocument, &record.CustomerName,
		&record.ProductID, &record.ProductName, &record.Description,
		&record.QRCode, &record.TicketURL, &record.Barcode,
		&record.InventoryUpdated, &record.InventoryReleased,
		&record.CreatedAt, &record.UpdatedAt, &record.ApprovedAt, &record.CancelledAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment record: %w", err)
	}
	return &record, nil
}

// UpdateStatus grava o status, o detalhe e o payload bruto do webhook
func (r *PostgresRepository) UpdateStatus(ctx context.Context, paymentID, status, statusDetail string, payload []byte) error {
	_, err := r.db.Exec(ctx, `
		UPDATE mercado_pago_payments
		SET status = $1, status_detail = $2, payment_data = COALESCE($3, payment_data), updated_at = NOW()
		WHERE payment_id = $4
	`, status, statusDetail, payload, paymentID)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	return nil
}

// MarkApproved grava approved_at e a flag inventory_updated
func (r *PostgresRepository) MarkApproved(ctx context.Context, paymentID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE mercado_pago_payments
		SET approved_at = COALESCE(approved_at, NOW()), inventory_updated = TRUE, updated_at = NOW()
		WHERE payment_id = $1
	`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to mark payment approved: %w", err)
	}
	return nil
}

// MarkCancelled grava cancelled_at e a flag inventory_released
func (r *PostgresRepository) MarkCancelled(ctx context.Context, paymentID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE mercado_pago_payments
		SET cancelled_at = COALESCE(cancelled_at, NOW()), inventory_released = TRUE, updated_at = NOW()
		WHERE payment_id = $1
	`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to mark payment cancelled: %w", err)
	}
	return nil
}

// SyncFromPoll atualiza o registro a partir de uma consulta de status.
// Grava approved_at na primeira observação de "approved".
func (r *PostgresRepository) SyncFromPoll(ctx context.Context, paymentID, status, statusDetail string, netAmount decimal.Decimal) error {
	_, err := r.db.Exec(ctx, `
		UPDATE mercado_pago_payments
		SET status = $1,
		    status_detail = $2,
		    net_amount = $3,
		    approved_at = CASE WHEN $1 = 'approved' THEN COALESCE(approved_at, NOW()) ELSE approved_at END,
		    updated_at = NOW()
		WHERE payment_id = $4
	`, status, statusDetail, netAmount, paymentID)
	if err != nil {
		return fmt.Errorf("failed to sync payment from poll: %w", err)
	}
	return nil
}

// StatusSummary agrega contagem e valor total por status
func (r *PostgresRepository) StatusSummary(ctx context.Context) ([]StatusSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT status, COUNT(*), COALESCE(SUM(amount), 0)
		FROM mercado_pago_payments
		GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payment summary: %w", err)
	}
	defer rows.Close()

	var summary []StatusSummary
	for rows.Next() {
		var entry StatusSummary
		if err := rows.Scan(&entry.Status, &entry.Count, &entry.TotalAmount); err != nil {
			return nil, fmt.Errorf("failed to scan payment summary: %w", err)
		}
		summary = append(summary, entry)
	}
	return summary, rows.Err()
}
