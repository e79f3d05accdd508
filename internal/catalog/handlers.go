package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Handler contém os handlers HTTP do catálogo
type Handler struct {
	repository Repository
	tracer     trace.Tracer
}

// NewHandler cria uma nova instância de Handler
func NewHandler(repository Repository, tracer trace.Tracer) *Handler {
	return &Handler{
		repository: repository,
		tracer:     tracer,
	}
}

// RegisterRoutes registra as rotas do catálogo no router
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/products", h.ListProducts)
	api.GET("/products/:product_id", h.GetProduct)
	api.GET("/company-info", h.GetCompanyInfo)
}

// ListProducts retorna os produtos ativos, com filtro opcional por categoria
func (h *Handler) ListProducts(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "list_products")
	defer span.End()

	category := c.Query("category")
	if category != "" {
		span.SetAttributes(attribute.String("category", category))
	}

	products, err := h.repository.ListActive(ctx, category)
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao buscar produtos"})
		return
	}
	if products == nil {
		products = []*Product{}
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct busca um produto ativo pelo ID
func (h *Handler) GetProduct(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "get_product")
	defer span.End()

	productID := c.Param("product_id")
	span.SetAttributes(attribute.String("product_id", productID))

	product, err := h.repository.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "produto não encontrado"})
			return
		}
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao buscar produto"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetCompanyInfo retorna os dados institucionais da loja
func (h *Handler) GetCompanyInfo(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "get_company_info")
	defer span.End()

	info, err := h.repository.CompanyInfo(ctx)
	if err != nil {
		if errors.Is(err, ErrCompanyInfoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "informações da empresa não encontradas"})
			return
		}
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao buscar informações da empresa"})
		return
	}

	c.JSON(http.StatusOK, info)
}
