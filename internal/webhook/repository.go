package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository define as operações de persistência de notificações
type Repository interface {
	// Save insere a notificação recebida e retorna seu ID
	Save(ctx context.Context, notification *Notification) (int64, error)

	// MarkProcessed grava processed e processed_at
	MarkProcessed(ctx context.Context, id int64) error

	// Stats agrega as notificações recebidas
	Stats(ctx context.Context) (*Stats, error)
}

// PostgresRepository implementa Repository usando PostgreSQL
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository cria uma nova instância de PostgresRepository
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema cria a tabela de notificações quando ausente
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS webhook_notifications (
			id BIGSERIAL PRIMARY KEY,
			notification_id TEXT NOT NULL DEFAULT '',
			topic TEXT NOT NULL DEFAULT '',
			action TEXT NOT NULL DEFAULT '',
			payment_id TEXT NOT NULL DEFAULT '',
			payload JSONB,
			processed BOOLEAN NOT NULL DEFAULT FALSE,
			received_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			processed_at TIMESTAMPTZ
		);
		CREATE INDEX IF NOT EXISTS idx_webhook_notifications_payment_id ON webhook_notifications (payment_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure webhook schema: %w", err)
	}
	return nil
}

// Save insere a notificação recebida e retorna seu ID
func (r *PostgresRepository) Save(ctx context.Context, notification *Notification) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO webhook_notifications (notification_id, topic, action, payment_id, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, notification.NotificationID, notification.Topic, notification.Action,
		notification.PaymentID, notification.Payload).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save webhook notification: %w", err)
	}
	return id, nil
}

// MarkProcessed grava processed e processed_at
func (r *PostgresRepository) MarkProcessed(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE webhook_notifications
		SET processed = TRUE, processed_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification processed: %w", err)
	}
	return nil
}

// Stats agrega as notificações recebidas
func (r *PostgresRepository) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE processed),
		       COUNT(*) FILTER (WHERE NOT processed)
		FROM webhook_notifications
	`).Scan(&stats.TotalNotifications, &stats.Processed, &stats.Pending)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate webhook stats: %w", err)
	}
	stats.LastUpdated = time.Now()
	return &stats, nil
}
