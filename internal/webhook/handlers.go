package webhook

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/3dstuff/backend/internal/worker"
)

// TaskSubmitter enfileira o processamento em background
type TaskSubmitter interface {
	Submit(task worker.Task) bool
}

// Handler contém os handlers HTTP de webhooks
type Handler struct {
	repository Repository
	reconciler *Reconciler
	pool       TaskSubmitter
	tracer     trace.Tracer
}

// NewHandler cria uma nova instância de Handler
func NewHandler(repository Repository, reconciler *Reconciler, pool TaskSubmitter, tracer trace.Tracer) *Handler {
	return &Handler{
		repository: repository,
		reconciler: reconciler,
		pool:       pool,
		tracer:     tracer,
	}
}

// RegisterRoutes registra as rotas de webhook no router
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/payments/webhook", h.Receive)
	api.GET("/payments/webhook/stats", h.GetStats)
}

// Receive persiste a notificação e agenda a reconciliação em background.
// Responde rápido: o Mercado Pago espera um 200 em poucos segundos.
func (h *Handler) Receive(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "receive_webhook")
	defer span.End()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo inválido"})
		return
	}

	var inbound InboundNotification
	if err := json.Unmarshal(body, &inbound); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido"})
		return
	}

	notification := &Notification{
		NotificationID: inbound.ID.String(),
		Topic:          inbound.ResolvedTopic(),
		Action:         inbound.Action,
		PaymentID:      inbound.Data.ID.String(),
		Payload:        body,
	}

	span.SetAttributes(
		attribute.String("webhook.topic", notification.Topic),
		attribute.String("webhook.payment_id", notification.PaymentID),
	)

	notificationID, err := h.repository.Save(ctx, notification)
	if err != nil {
		log.Printf("❌ Failed to save webhook notification: %v", err)
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao processar webhook"})
		return
	}

	if notification.Topic == "payment" && notification.PaymentID != "" {
		paymentID := notification.PaymentID
		submitted := h.pool.Submit(func(taskCtx context.Context) {
			h.reconciler.Process(taskCtx, notificationID, paymentID)
		})
		if !submitted {
			log.Printf("⚠️ Webhook queue full, notification %d left unprocessed", notificationID)
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

// GetStats retorna as estatísticas das notificações recebidas
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.repository.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao agregar webhooks"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
