package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository define as operações de persistência do estoque
type Repository interface {
	// Get busca o registro de estoque de um produto
	Get(ctx context.Context, productID string) (*StockRecord, error)

	// Create insere um novo registro de estoque
	Create(ctx context.Context, record *StockRecord) error

	// Reserve decrementa available e incrementa reserved em uma única
	// atualização condicional (available_quantity >= quantity no filtro).
	// Retorna false quando o estoque não cobre a quantidade pedida.
	Reserve(ctx context.Context, productID string, quantity int, movement StockMovement) (bool, error)

	// ApplyMovement aplica os deltas nos contadores e anexa a movimentação
	// ao log em um único update no documento.
	ApplyMovement(ctx context.Context, productID string, availableDelta, reservedDelta, soldDelta int, movement StockMovement) error

	// UpdateStatus grava o status derivado do estoque
	UpdateStatus(ctx context.Context, productID string, status StockStatus) error

	// ListLowStock retorna os registros com available_quantity <= reorder_level
	ListLowStock(ctx context.Context) ([]*StockRecord, error)
}

// MongoRepository implementa Repository usando MongoDB
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository cria uma nova instância de MongoRepository
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		collection: db.Collection("inventory"),
	}
}

// Get busca o registro de estoque de um produto
func (r *MongoRepository) Get(ctx context.Context, productID string) (*StockRecord, error) {
	var record StockRecord
	err := r.collection.FindOne(ctx, bson.M{"product_id": productID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrStockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock record: %w", err)
	}
	return &record, nil
}

// Create insere um novo registro de estoque
func (r *MongoRepository) Create(ctx context.Context, record *StockRecord) error {
	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to create stock record: %w", err)
	}
	return nil
}

// Reserve aplica a reserva de forma condicional e atômica no documento.
// O filtro garante available_quantity >= quantity, fechando a janela entre
// a checagem de disponibilidade e a escrita.
func (r *MongoRepository) Reserve(ctx context.Context, productID string, quantity int, movement StockMovement) (bool, error) {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{
			"product_id":         productID,
			"available_quantity": bson.M{"$gte": quantity},
		},
		bson.M{
			"$inc": bson.M{
				"available_quantity": -quantity,
				"reserved_quantity":  quantity,
			},
			"$push": bson.M{"stock_movements": movement},
			"$set":  bson.M{"last_updated": time.Now().UTC()},
		},
	)
	if err != nil {
		return false, fmt.Errorf("failed to reserve stock: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

// ApplyMovement aplica os deltas e anexa a movimentação em um único update
func (r *MongoRepository) ApplyMovement(ctx context.Context, productID string, availableDelta, reservedDelta, soldDelta int, movement StockMovement) error {
	inc := bson.M{}
	if availableDelta != 0 {
		inc["available_quantity"] = availableDelta
	}
	if reservedDelta != 0 {
		inc["reserved_quantity"] = reservedDelta
	}
	if soldDelta != 0 {
		inc["sold_quantity"] = soldDelta
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"product_id": productID},
		bson.M{
			"$inc":  inc,
			"$push": bson.M{"stock_movements": movement},
			"$set":  bson.M{"last_updated": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to apply stock movement: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrStockNotFound
	}
	return nil
}

// UpdateStatus grava o status derivado do estoque
func (r *MongoRepository) UpdateStatus(ctx context.Context, productID string, status StockStatus) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"product_id": productID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to update stock status: %w", err)
	}
	return nil
}

// ListLowStock retorna os registros com available_quantity <= reorder_level
func (r *MongoRepository) ListLowStock(ctx context.Context) ([]*StockRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"$expr": bson.M{
			"$lte": bson.A{"$available_quantity", "$reorder_level"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*StockRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode low stock records: %w", err)
	}
	return records, nil
}
