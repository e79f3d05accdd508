package contact

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Handler contém os handlers HTTP do formulário de contato
type Handler struct {
	useCase *UseCase
	tracer  trace.Tracer
}

// NewHandler cria uma nova instância de Handler
func NewHandler(useCase *UseCase, tracer trace.Tracer) *Handler {
	return &Handler{
		useCase: useCase,
		tracer:  tracer,
	}
}

// RegisterRoutes registra as rotas de contato no router
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/contact", h.Create)
	api.GET("/contact", h.List)
}

// Create recebe uma mensagem do formulário de contato
func (h *Handler) Create(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "create_contact")
	defer span.End()

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.useCase.Create(ctx, req)
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao salvar mensagem"})
		return
	}

	span.SetAttributes(attribute.String("contact.id", message.ID))
	c.JSON(http.StatusOK, message)
}

// List retorna as mensagens recebidas
func (h *Handler) List(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "list_contacts")
	defer span.End()

	messages, err := h.useCase.List(ctx)
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao buscar mensagens"})
		return
	}
	if messages == nil {
		messages = []*Message{}
	}

	c.JSON(http.StatusOK, messages)
}
