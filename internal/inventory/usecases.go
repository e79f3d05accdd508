package inventory

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// Ledger contém a lógica de negócio do estoque
type Ledger struct {
	repository Repository
}

// NewLedger cria uma nova instância de Ledger
func NewLedger(repository Repository) *Ledger {
	return &Ledger{
		repository: repository,
	}
}

// Initialize cria o registro de estoque de um produto caso ainda não exista.
// Chamadas repetidas não sobrescrevem o estoque existente.
func (l *Ledger) Initialize(ctx context.Context, productID string, initialStock int) error {
	_, err := l.repository.Get(ctx, productID)
	if err == nil {
		log.Printf("ℹ️  Stock already initialized for product %s", productID)
		return nil
	}
	if !errors.Is(err, ErrStockNotFound) {
		return err
	}

	record := NewStockRecord(productID, initialStock)
	if err := l.repository.Create(ctx, record); err != nil {
		return err
	}

	log.Printf("✅ Stock initialized: ProductID=%s Quantity=%d", productID, initialStock)
	return nil
}

// CheckAvailability verifica se a quantidade pedida está disponível.
// Inicializa o estoque com o valor padrão quando o produto ainda não tem registro.
func (l *Ledger) CheckAvailability(ctx context.Context, productID string, quantity int) (*Availability, error) {
	record, err := l.ensureRecord(ctx, productID)
	if err != nil {
		return nil, err
	}

	status := CalculateStatus(record.AvailableQuantity, record.ReorderLevel)
	return &Availability{
		Available:         record.AvailableQuantity >= quantity,
		AvailableQuantity: record.AvailableQuantity,
		RequestedQuantity: quantity,
		Status:            status,
		CanFulfill:        record.AvailableQuantity >= quantity,
	}, nil
}

// Reserve reserva estoque para um pedido. A atualização é condicional no
// repositório, então duas reservas concorrentes nunca passam juntas da
// mesma disponibilidade.
func (l *Ledger) Reserve(ctx context.Context, productID string, quantity int, orderID string) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	if _, err := l.ensureRecord(ctx, productID); err != nil {
		return err
	}

	movement := StockMovement{
		Type:      MovementReservation,
		Quantity:  quantity,
		OrderID:   orderID,
		Timestamp: time.Now().UTC(),
		Notes:     fmt.Sprintf("Reserva para pedido %s", orderID),
	}

	reserved, err := l.repository.Reserve(ctx, productID, quantity, movement)
	if err != nil {
		return err
	}
	if !reserved {
		log.Printf("❌ RESERVE FAILED: Insufficient stock | ProductID=%s Quantity=%d OrderID=%s", productID, quantity, orderID)
		return ErrInsufficientStock
	}

	l.refreshStatus(ctx, productID)
	log.Printf("✅ [RESERVE] Success: ProductID=%s Quantity=%d OrderID=%s", productID, quantity, orderID)
	return nil
}

// ConfirmSale move a quantidade de reservado para vendido.
// Não valida se reserved_quantity cobre a quantidade: o comportamento do
// fluxo de aprovação tolera o backfill sem reserva prévia.
func (l *Ledger) ConfirmSale(ctx context.Context, productID string, quantity int, orderID string) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	movement := StockMovement{
		Type:      MovementSale,
		Quantity:  quantity,
		OrderID:   orderID,
		Timestamp: time.Now().UTC(),
		Notes:     fmt.Sprintf("Venda confirmada para pedido %s", orderID),
	}

	if err := l.repository.ApplyMovement(ctx, productID, 0, -quantity, quantity, movement); err != nil {
		return err
	}

	l.refreshStatus(ctx, productID)
	log.Printf("✅ [SALE] Confirmed: ProductID=%s Quantity=%d OrderID=%s", productID, quantity, orderID)
	return nil
}

// CancelReservation devolve a quantidade reservada para o estoque disponível
func (l *Ledger) CancelReservation(ctx context.Context, productID string, quantity int, orderID string) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	movement := StockMovement{
		Type:      MovementCancellation,
		Quantity:  quantity,
		OrderID:   orderID,
		Timestamp: time.Now().UTC(),
		Notes:     fmt.Sprintf("Cancelamento de reserva para pedido %s", orderID),
	}

	if err := l.repository.ApplyMovement(ctx, productID, quantity, -quantity, 0, movement); err != nil {
		return err
	}

	l.refreshStatus(ctx, productID)
	log.Printf("↩️ [CANCEL] Reservation released: ProductID=%s Quantity=%d OrderID=%s", productID, quantity, orderID)
	return nil
}

// AddStock repõe estoque disponível
func (l *Ledger) AddStock(ctx context.Context, productID string, quantity int, notes string) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if notes == "" {
		notes = "Reposição de estoque"
	}

	movement := StockMovement{
		Type:      MovementRestock,
		Quantity:  quantity,
		Timestamp: time.Now().UTC(),
		Notes:     notes,
	}

	if err := l.repository.ApplyMovement(ctx, productID, quantity, 0, 0, movement); err != nil {
		return err
	}

	l.refreshStatus(ctx, productID)
	log.Printf("✅ [RESTOCK] ProductID=%s Quantity=%d", productID, quantity)
	return nil
}

// GetStockInfo retorna o resumo completo do estoque de um produto
func (l *Ledger) GetStockInfo(ctx context.Context, productID string) (*StockInfo, error) {
	record, err := l.ensureRecord(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &StockInfo{
		ProductID:         record.ProductID,
		AvailableQuantity: record.AvailableQuantity,
		ReservedQuantity:  record.ReservedQuantity,
		SoldQuantity:      record.SoldQuantity,
		TotalQuantity:     record.TotalQuantity(),
		Status:            record.Status,
		ReorderLevel:      record.ReorderLevel,
		NeedsRestock:      record.NeedsRestock(),
		LastUpdated:       record.LastUpdated,
		RecentMovements:   record.RecentMovements(5),
	}, nil
}

// LowStockReport retorna os produtos com estoque no nível de reposição
func (l *Ledger) LowStockReport(ctx context.Context) ([]*StockRecord, error) {
	return l.repository.ListLowStock(ctx)
}

// ensureRecord busca o registro de estoque, inicializando com o padrão
// quando ausente (criação preguiçosa)
func (l *Ledger) ensureRecord(ctx context.Context, productID string) (*StockRecord, error) {
	record, err := l.repository.Get(ctx, productID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, ErrStockNotFound) {
		return nil, err
	}

	if err := l.Initialize(ctx, productID, DefaultInitialStock); err != nil {
		return nil, err
	}
	return l.repository.Get(ctx, productID)
}

// refreshStatus recalcula e grava o status derivado após uma mutação.
// Falhas aqui não abortam a operação principal, apenas são logadas.
func (l *Ledger) refreshStatus(ctx context.Context, productID string) {
	record, err := l.repository.Get(ctx, productID)
	if err != nil {
		log.Printf("⚠️ Failed to reload stock for status refresh: ProductID=%s Error=%v", productID, err)
		return
	}

	status := CalculateStatus(record.AvailableQuantity, record.ReorderLevel)
	if status == record.Status {
		return
	}
	if err := l.repository.UpdateStatus(ctx, productID, status); err != nil {
		log.Printf("⚠️ Failed to update stock status: ProductID=%s Error=%v", productID, err)
	}
}
