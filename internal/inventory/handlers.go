package inventory

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/3dstuff/backend/internal/catalog"
)

// ProductCatalog é o subconjunto do catálogo usado para enriquecer
// as respostas administrativas de estoque
type ProductCatalog interface {
	ListActive(ctx context.Context, category string) ([]*catalog.Product, error)
	GetByID(ctx context.Context, productID string) (*catalog.Product, error)
}

// Handler contém os handlers HTTP administrativos de estoque
type Handler struct {
	ledger  *Ledger
	catalog ProductCatalog
	tracer  trace.Tracer
}

// NewHandler cria uma nova instância de Handler
func NewHandler(ledger *Ledger, productCatalog ProductCatalog, tracer trace.Tracer) *Handler {
	return &Handler{
		ledger:  ledger,
		catalog: productCatalog,
		tracer:  tracer,
	}
}

// RegisterRoutes registra as rotas administrativas de estoque
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/inventory/summary", h.GetSummary)
	admin.GET("/inventory/low-stock", h.GetLowStock)
	admin.POST("/inventory/restock/:product_id", h.Restock)
}

// GetSummary retorna o resumo geral do estoque dos produtos ativos
func (h *Handler) GetSummary(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "inventory_summary")
	defer span.End()

	products, err := h.catalog.ListActive(ctx, "")
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao buscar produtos"})
		return
	}

	type productStock struct {
		ProductID         string      `json:"product_id"`
		ProductName       string      `json:"product_name"`
		Category          string      `json:"category"`
		Price             string      `json:"price"`
		AvailableQuantity int         `json:"available_quantity"`
		ReservedQuantity  int         `json:"reserved_quantity"`
		SoldQuantity      int         `json:"sold_quantity"`
		Status            StockStatus `json:"status"`
		NeedsRestock      bool        `json:"needs_restock"`
	}

	var (
		summary       []productStock
		totalStock    int
		totalReserved int
	)
	for _, product := range products {
		info, err := h.ledger.GetStockInfo(ctx, product.ID)
		if err != nil {
			if errors.Is(err, ErrStockNotFound) {
				continue
			}
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao buscar estoque"})
			return
		}

		summary = append(summary, productStock{
			ProductID:         product.ID,
			ProductName:       product.Name,
			Category:          product.Category,
			Price:             product.Price,
			AvailableQuantity: info.AvailableQuantity,
			ReservedQuantity:  info.ReservedQuantity,
			SoldQuantity:      info.SoldQuantity,
			Status:            info.Status,
			NeedsRestock:      info.NeedsRestock,
		})
		totalStock += info.AvailableQuantity
		totalReserved += info.ReservedQuantity
	}

	c.JSON(http.StatusOK, gin.H{
		"total_products": len(summary),
		"total_stock":    totalStock,
		"total_reserved": totalReserved,
		"products":       summary,
	})
}

// GetLowStock retorna os produtos abaixo do nível de reposição
func (h *Handler) GetLowStock(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "inventory_low_stock")
	defer span.End()

	records, err := h.ledger.LowStockReport(ctx)
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao buscar alertas de estoque"})
		return
	}

	type lowStockItem struct {
		ProductID         string      `json:"product_id"`
		ProductName       string      `json:"product_name"`
		Category          string      `json:"category"`
		AvailableQuantity int         `json:"available_quantity"`
		ReorderLevel      int         `json:"reorder_level"`
		Status            StockStatus `json:"status"`
	}

	var items []lowStockItem
	for _, record := range records {
		item := lowStockItem{
			ProductID:         record.ProductID,
			AvailableQuantity: record.AvailableQuantity,
			ReorderLevel:      record.ReorderLevel,
			Status:            record.Status,
		}
		if product, err := h.catalog.GetByID(ctx, record.ProductID); err == nil {
			item.ProductName = product.Name
			item.Category = product.Category
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"alert_count":        len(items),
		"low_stock_products": items,
	})
}

// Restock repõe o estoque de um produto
func (h *Handler) Restock(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "inventory_restock")
	defer span.End()

	productID := c.Param("product_id")
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil || quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantidade inválida"})
		return
	}

	span.SetAttributes(
		attribute.String("product_id", productID),
		attribute.Int("quantity", quantity),
	)

	notes := "Reposição manual via admin - " + strconv.Itoa(quantity) + " unidades"
	if err := h.ledger.AddStock(ctx, productID, quantity, notes); err != nil {
		if errors.Is(err, ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao repor estoque"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "estoque reposto com sucesso",
		"product_id":     productID,
		"quantity_added": quantity,
	})
}
