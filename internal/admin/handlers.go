package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/3dstuff/backend/internal/inventory"
	"github.com/3dstuff/backend/internal/payment"
	"github.com/3dstuff/backend/internal/webhook"
)

// SalesReader agrega os pagamentos registrados por status
type SalesReader interface {
	Summary(ctx context.Context) ([]payment.StatusSummary, error)
}

// StockReporter é o subconjunto do estoque usado pela verificação de saúde
type StockReporter interface {
	LowStockReport(ctx context.Context) ([]*inventory.StockRecord, error)
}

// WebhookStatsReader lê as estatísticas de notificações processadas
type WebhookStatsReader interface {
	Stats(ctx context.Context) (*webhook.Stats, error)
}

// MailStatus informa se o provedor de e-mail está configurado
type MailStatus interface {
	Configured() bool
}

// Handler contém os handlers administrativos transversais
type Handler struct {
	sales    SalesReader
	stock    StockReporter
	webhooks WebhookStatsReader
	mail     MailStatus
	tracer   trace.Tracer
}

// NewHandler cria uma nova instância de Handler
func NewHandler(sales SalesReader, stock StockReporter, webhooks WebhookStatsReader, mail MailStatus, tracer trace.Tracer) *Handler {
	return &Handler{
		sales:    sales,
		stock:    stock,
		webhooks: webhooks,
		mail:     mail,
		tracer:   tracer,
	}
}

// RegisterRoutes registra as rotas administrativas de vendas e saúde
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/sales/summary", h.GetSalesSummary)
	admin.GET("/health", h.Health)
}

// GetSalesSummary retorna o resumo de vendas agregado por status
func (h *Handler) GetSalesSummary(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "admin_sales_summary")
	defer span.End()

	summary, err := h.sales.Summary(ctx)
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao obter resumo de vendas"})
		return
	}
	if summary == nil {
		summary = []payment.StatusSummary{}
	}

	c.JSON(http.StatusOK, gin.H{
		"sales_summary": summary,
		"last_updated":  time.Now().UTC(),
	})
}

// Health verifica o estado dos subsistemas administrados
func (h *Handler) Health(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "admin_health")
	defer span.End()

	inventoryStatus := "ok"
	if _, err := h.stock.LowStockReport(ctx); err != nil {
		span.RecordError(err)
		inventoryStatus = "error"
	}

	webhookStatus := "ok"
	if _, err := h.webhooks.Stats(ctx); err != nil {
		span.RecordError(err)
		webhookStatus = "error"
	}

	emailStatus := "mock_mode"
	if h.mail.Configured() {
		emailStatus = "configured"
	}

	c.JSON(http.StatusOK, gin.H{
		"admin_system":      "healthy",
		"inventory_service": inventoryStatus,
		"webhook_service":   webhookStatus,
		"email_service":     emailStatus,
	})
}
