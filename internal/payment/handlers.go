package payment

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// UseCaseInterface define a interface para o use case de pagamentos
type UseCaseInterface interface {
	CreatePayment(ctx context.Context, req PaymentRequest) (CreationResult, error)
	GetPaymentStatus(ctx context.Context, paymentID string) (*StatusResult, error)
	Installments(productID string) ([]InstallmentOption, Product, error)
	Summary(ctx context.Context) ([]StatusSummary, error)
}

// Handler contém os handlers HTTP de pagamentos
type Handler struct {
	useCase UseCaseInterface
	tracer  trace.Tracer
}

// NewHandler cria uma nova instância de Handler
func NewHandler(useCase UseCaseInterface, tracer trace.Tracer) *Handler {
	return &Handler{
		useCase: useCase,
		tracer:  tracer,
	}
}

// RegisterRoutes registra as rotas de pagamento no router
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	payments := api.Group("/payments")
	payments.POST("/create", h.CreatePayment)
	payments.GET("/:payment_id/status", h.GetPaymentStatus)
	payments.GET("/installments/:product_id", h.GetInstallments)
	payments.GET("/summary", h.GetSummary)
}

// CreatePayment cria um pagamento PIX, cartão ou boleto
func (h *Handler) CreatePayment(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "create_payment")
	defer span.End()

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(
		attribute.String("product_id", req.ProductID),
		attribute.String("payment_method", req.PaymentMethod),
	)

	result, err := h.useCase.CreatePayment(ctx, req)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, ErrInvalidDocument),
			errors.Is(err, ErrInvalidPaymentMethod),
			errors.Is(err, ErrCardTokenRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao processar pagamento"})
		}
		return
	}

	envelope := result.Envelope()
	span.SetAttributes(
		attribute.String("payment_id", envelope.PaymentID),
		attribute.String("status", envelope.Status),
	)

	if !envelope.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPaymentStatus consulta o status de um pagamento no vendor
func (h *Handler) GetPaymentStatus(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "get_payment_status")
	defer span.End()

	paymentID := c.Param("payment_id")
	span.SetAttributes(attribute.String("payment_id", paymentID))

	status, err := h.useCase.GetPaymentStatus(ctx, paymentID)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "pagamento não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao consultar pagamento"})
		return
	}

	c.JSON(http.StatusOK, status)
}

// GetInstallments retorna as opções de parcelamento de um produto
func (h *Handler) GetInstallments(c *gin.Context) {
	productID := c.Param("product_id")

	options, product, err := h.useCase.Installments(productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id":   productID,
		"product_name": product.Name,
		"price":        product.Price,
		"installments": options,
	})
}

// GetSummary agrega os pagamentos registrados por status
func (h *Handler) GetSummary(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "get_payment_summary")
	defer span.End()

	summary, err := h.useCase.Summary(ctx)
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao agregar pagamentos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
