package inventory

import "time"

// StockStatus representa o estado derivado do estoque de um produto
type StockStatus string

const (
	StatusInStock    StockStatus = "in_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusOutOfStock StockStatus = "out_of_stock"
)

// MovementType representa os tipos de movimentação de estoque
type MovementType string

const (
	MovementReservation  MovementType = "reservation"
	MovementSale         MovementType = "sale"
	MovementCancellation MovementType = "cancellation"
	MovementRestock      MovementType = "restock"
)

// DefaultInitialStock é o estoque padrão para produtos impressos sob demanda
const DefaultInitialStock = 50

// DefaultReorderLevel é o nível mínimo antes do alerta de reposição
const DefaultReorderLevel = 10

// StockMovement representa uma movimentação no log append-only do estoque
type StockMovement struct {
	Type      MovementType `bson:"type" json:"type"`
	Quantity  int          `bson:"quantity" json:"quantity"`
	OrderID   string       `bson:"order_id,omitempty" json:"order_id,omitempty"`
	Timestamp time.Time    `bson:"timestamp" json:"timestamp"`
	Notes     string       `bson:"notes,omitempty" json:"notes,omitempty"`
}

// StockRecord representa o estoque de um produto (um documento por produto)
type StockRecord struct {
	ProductID         string          `bson:"product_id" json:"product_id"`
	AvailableQuantity int             `bson:"available_quantity" json:"available_quantity"`
	ReservedQuantity  int             `bson:"reserved_quantity" json:"reserved_quantity"`
	SoldQuantity      int             `bson:"sold_quantity" json:"sold_quantity"`
	ReorderLevel      int             `bson:"reorder_level" json:"reorder_level"`
	Status            StockStatus     `bson:"status" json:"status"`
	Movements         []StockMovement `bson:"stock_movements" json:"stock_movements"`
	CreatedAt         time.Time       `bson:"created_at" json:"created_at"`
	LastUpdated       time.Time       `bson:"last_updated" json:"last_updated"`
}

// NewStockRecord cria um registro de estoque com os valores iniciais padrão
func NewStockRecord(productID string, initialStock int) *StockRecord {
	now := time.Now().UTC()
	return &StockRecord{
		ProductID:         productID,
		AvailableQuantity: initialStock,
		ReservedQuantity:  0,
		SoldQuantity:      0,
		ReorderLevel:      DefaultReorderLevel,
		Status:            CalculateStatus(initialStock, DefaultReorderLevel),
		Movements:         []StockMovement{},
		CreatedAt:         now,
		LastUpdated:       now,
	}
}

// NeedsRestock indica se o produto atingiu o nível de reposição
func (r *StockRecord) NeedsRestock() bool {
	return r.AvailableQuantity <= r.ReorderLevel
}

// TotalQuantity retorna o estoque total (disponível + reservado)
func (r *StockRecord) TotalQuantity() int {
	return r.AvailableQuantity + r.ReservedQuantity
}

// RecentMovements retorna as últimas n movimentações do log
func (r *StockRecord) RecentMovements(n int) []StockMovement {
	if len(r.Movements) <= n {
		return r.Movements
	}
	return r.Movements[len(r.Movements)-n:]
}

// CalculateStatus deriva o status do estoque a partir da quantidade disponível
func CalculateStatus(available, reorderLevel int) StockStatus {
	switch {
	case available <= 0:
		return StatusOutOfStock
	case available <= reorderLevel:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// Availability é o resultado de uma verificação de disponibilidade
type Availability struct {
	Available         bool        `json:"available"`
	AvailableQuantity int         `json:"available_quantity"`
	RequestedQuantity int         `json:"requested_quantity"`
	Status            StockStatus `json:"status"`
	CanFulfill        bool        `json:"can_fulfill"`
}

// StockInfo é o resumo completo do estoque de um produto
type StockInfo struct {
	ProductID         string          `json:"product_id"`
	AvailableQuantity int             `json:"available_quantity"`
	ReservedQuantity  int             `json:"reserved_quantity"`
	SoldQuantity      int             `json:"sold_quantity"`
	TotalQuantity     int             `json:"total_quantity"`
	Status            StockStatus     `json:"status"`
	ReorderLevel      int             `json:"reorder_level"`
	NeedsRestock      bool            `json:"needs_restock"`
	LastUpdated       time.Time       `json:"last_updated"`
	RecentMovements   []StockMovement `json:"recent_movements"`
}
