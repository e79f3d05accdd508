package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/3dstuff/backend/internal/catalog"
	"github.com/3dstuff/backend/internal/config"
	"github.com/3dstuff/backend/internal/inventory"
)

var products = []*catalog.Product{
	{
		ID:          "1",
		Name:        "Miniatura de Personagem",
		Description: "Miniaturas detalhadas de personagens famosos, impressas em alta qualidade.",
		Price:       "R$ 45,00",
		Image:       "https://via.placeholder.com/300x300/f97316/ffffff?text=Miniatura",
		Category:    "Miniaturas",
	},
	{
		ID:          "2",
		Name:        "Suporte para Celular",
		Description: "Suporte ergonômico e resistente para seu smartphone.",
		Price:       "R$ 25,00",
		Image:       "https://via.placeholder.com/300x300/f97316/ffffff?text=Suporte",
		Category:    "Utilitários",
	},
	{
		ID:          "3",
		Name:        "Chaveiros Personalizados",
		Description: "Chaveiros únicos com seu design ou nome personalizado.",
		Price:       "R$ 15,00",
		Image:       "https://via.placeholder.com/300x300/f97316/ffffff?text=Chaveiro",
		Category:    "Personalizados",
	},
	{
		ID:          "4",
		Name:        "Peças Decorativas",
		Description: "Objetos decorativos modernos para sua casa ou escritório.",
		Price:       "R$ 35,00",
		Image:       "https://via.placeholder.com/300x300/f97316/ffffff?text=Decorativo",
		Category:    "Decoração",
	},
	{
		ID:          "5",
		Name:        "Porta-Canetas Geométrico",
		Description: "Organizador de mesa com design geométrico único.",
		Price:       "R$ 30,00",
		Image:       "https://via.placeholder.com/300x300/f97316/ffffff?text=Porta-Canetas",
		Category:    "Utilitários",
	},
	{
		ID:          "6",
		Name:        "Luminária Personalizada",
		Description: "Luminária LED com design exclusivo para ambientes modernos.",
		Price:       "R$ 80,00",
		Image:       "https://via.placeholder.com/300x300/f97316/ffffff?text=Luminária",
		Category:    "Decoração",
	},
}

var companyInfo = &catalog.CompanyInfo{
	ID:       "company_1",
	Name:     "3D Stuff",
	Slogan:   "Produtos exclusivos em impressão 3D para você.",
	About:    "A 3D Stuff nasceu com a missão de transformar ideias em realidade através da impressão 3D. Trabalhamos com tecnologia de ponta e criatividade para oferecer peças únicas e personalizadas.",
	WhatsApp: "5511999999999",
	Email:    "contato@3dstuff.com.br",
	SocialMedia: catalog.SocialMedia{
		Instagram: "@3dstuff",
		Facebook:  "3DStuff",
		TikTok:    "@3dstuff",
	},
}

// initialStockFor define o estoque inicial por categoria. Produtos
// impressos sob demanda ficam no padrão.
func initialStockFor(category string) int {
	switch category {
	case "Miniaturas":
		return 30
	case "Utilitários":
		return 100
	case "Decoração":
		return 40
	case "Personalizados":
		return 20
	default:
		return inventory.DefaultInitialStock
	}
}

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, mongooptions.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	db := client.Database(cfg.MongoDatabase)
	catalogRepo := catalog.NewMongoRepository(db)
	ledger := inventory.NewLedger(inventory.NewMongoRepository(db))

	now := time.Now()
	for _, product := range products {
		product.Active = true
		product.CreatedAt = now
		product.UpdatedAt = now
		if err := catalogRepo.UpsertProduct(ctx, product); err != nil {
			log.Fatalf("Failed to seed product %s: %v", product.Name, err)
		}
	}
	log.Printf("✅ %d produtos inseridos com sucesso!", len(products))

	if err := catalogRepo.UpsertCompanyInfo(ctx, companyInfo); err != nil {
		log.Fatalf("Failed to seed company info: %v", err)
	}
	log.Println("✅ Informações da empresa inseridas com sucesso!")

	for _, product := range products {
		stock := initialStockFor(product.Category)
		if err := ledger.Initialize(ctx, product.ID, stock); err != nil {
			log.Fatalf("Failed to initialize stock for %s: %v", product.Name, err)
		}
		log.Printf("✅ Estoque inicializado: %s - %d unidades", product.Name, stock)
	}

	printSummary(ctx, ledger)
	log.Println("🎉 Seed do banco de dados concluído!")
}

func printSummary(ctx context.Context, ledger *inventory.Ledger) {
	log.Println("ℹ️ Resumo do estoque:")
	for _, product := range products {
		info, err := ledger.GetStockInfo(ctx, product.ID)
		if err != nil {
			log.Printf("⚠️ Failed to read stock for %s: %v", product.Name, err)
			continue
		}
		log.Printf("   %s: %d disponíveis | status=%s", product.Name, info.AvailableQuantity, info.Status)
	}
}
