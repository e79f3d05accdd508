package contact

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository define as operações de persistência das mensagens de contato
type Repository interface {
	// Insert grava uma nova mensagem
	Insert(ctx context.Context, message *Message) error

	// List retorna as mensagens mais recentes primeiro
	List(ctx context.Context, limit int64) ([]*Message, error)
}

// MongoRepository implementa Repository usando MongoDB
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository cria uma nova instância de MongoRepository
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		collection: db.Collection("contacts"),
	}
}

// Insert grava uma nova mensagem
func (r *MongoRepository) Insert(ctx context.Context, message *Message) error {
	if _, err := r.collection.InsertOne(ctx, message); err != nil {
		return fmt.Errorf("failed to insert contact message: %w", err)
	}
	return nil
}

// List retorna as mensagens mais recentes primeiro
func (r *MongoRepository) List(ctx context.Context, limit int64) ([]*Message, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []*Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode contact messages: %w", err)
	}
	return messages, nil
}
