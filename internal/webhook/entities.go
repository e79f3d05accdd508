package webhook

import (
	"encoding/json"
	"time"
)

// Notification representa uma notificação recebida do Mercado Pago,
// persistida na tabela webhook_notifications
type Notification struct {
	ID             int64      `json:"id" db:"id"`
	NotificationID string     `json:"notification_id" db:"notification_id"`
	Topic          string     `json:"topic" db:"topic"`
	Action         string     `json:"action" db:"action"`
	PaymentID      string     `json:"payment_id" db:"payment_id"`
	Payload        []byte     `json:"-" db:"payload"`
	Processed      bool       `json:"processed" db:"processed"`
	ReceivedAt     time.Time  `json:"received_at" db:"received_at"`
	ProcessedAt    *time.Time `json:"processed_at,omitempty" db:"processed_at"`
}

// InboundNotification é o corpo enviado pelo Mercado Pago.
// O vendor manda IDs ora como número, ora como string.
type InboundNotification struct {
	ID     json.Number `json:"id"`
	Type   string      `json:"type"`
	Topic  string      `json:"topic"`
	Action string      `json:"action"`
	Data   struct {
		ID json.Number `json:"id"`
	} `json:"data"`
}

// ResolvedTopic resolve o tópico da notificação, aceitando os dois formatos
// que o vendor usa (campo "type" nos webhooks novos, "topic" nos IPN)
func (n InboundNotification) ResolvedTopic() string {
	if n.Type != "" {
		return n.Type
	}
	return n.Topic
}

// Stats agrega os pagamentos observados via webhook por status
type Stats struct {
	TotalNotifications int64     `json:"total_notifications"`
	Processed          int64     `json:"processed"`
	Pending            int64     `json:"pending"`
	LastUpdated        time.Time `json:"last_updated"`
}
