package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrProductNotFound indica que o produto não existe ou está inativo
var ErrProductNotFound = errors.New("produto não encontrado")

// ErrCompanyInfoNotFound indica que os dados institucionais não foram semeados
var ErrCompanyInfoNotFound = errors.New("informações da empresa não encontradas")

// Repository define as operações de leitura e escrita do catálogo
type Repository interface {
	// ListActive retorna os produtos ativos, opcionalmente filtrados por categoria
	ListActive(ctx context.Context, category string) ([]*Product, error)

	// GetByID busca um produto ativo pelo ID
	GetByID(ctx context.Context, productID string) (*Product, error)

	// UpsertProduct insere ou substitui um produto pelo ID
	UpsertProduct(ctx context.Context, product *Product) error

	// CompanyInfo retorna os dados institucionais da loja
	CompanyInfo(ctx context.Context) (*CompanyInfo, error)

	// UpsertCompanyInfo substitui os dados institucionais
	UpsertCompanyInfo(ctx context.Context, info *CompanyInfo) error
}

// MongoRepository implementa Repository usando MongoDB
type MongoRepository struct {
	products    *mongo.Collection
	companyInfo *mongo.Collection
}

// NewMongoRepository cria uma nova instância de MongoRepository
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		products:    db.Collection("products"),
		companyInfo: db.Collection("company_info"),
	}
}

// ListActive retorna os produtos ativos, opcionalmente filtrados por categoria
func (r *MongoRepository) ListActive(ctx context.Context, category string) ([]*Product, error) {
	filter := bson.M{"active": true}
	if category != "" {
		filter["category"] = category
	}

	cursor, err := r.products.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// GetByID busca um produto ativo pelo ID
func (r *MongoRepository) GetByID(ctx context.Context, productID string) (*Product, error) {
	var product Product
	err := r.products.FindOne(ctx, bson.M{"id": productID, "active": true}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

// UpsertProduct insere ou substitui um produto pelo ID
func (r *MongoRepository) UpsertProduct(ctx context.Context, product *Product) error {
	_, err := r.products.ReplaceOne(ctx, bson.M{"id": product.ID}, product, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}

// CompanyInfo retorna os dados institucionais da loja
func (r *MongoRepository) CompanyInfo(ctx context.Context) (*CompanyInfo, error) {
	var info CompanyInfo
	err := r.companyInfo.FindOne(ctx, bson.M{}).Decode(&info)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCompanyInfoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company info: %w", err)
	}
	return &info, nil
}

// UpsertCompanyInfo substitui os dados institucionais
func (r *MongoRepository) UpsertCompanyInfo(ctx context.Context, info *CompanyInfo) error {
	_, err := r.companyInfo.ReplaceOne(ctx, bson.M{}, info, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert company info: %w", err)
	}
	return nil
}
