package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Product representa um produto do catálogo da loja
type Product struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       string    `json:"price" bson:"price"`
	Image       string    `json:"image" bson:"image"`
	Category    string    `json:"category" bson:"category"`
	Active      bool      `json:"-" bson:"active"`
	CreatedAt   time.Time `json:"-" bson:"created_at"`
	UpdatedAt   time.Time `json:"-" bson:"updated_at"`
}

// NewProduct cria um produto ativo com ID gerado
func NewProduct(name, description, price, image, category string) *Product {
	now := time.Now()
	return &Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Price:       price,
		Image:       image,
		Category:    category,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SocialMedia agrupa os perfis da loja nas redes sociais
type SocialMedia struct {
	Instagram string `json:"instagram" bson:"instagram"`
	Facebook  string `json:"facebook" bson:"facebook"`
	TikTok    string `json:"tiktok" bson:"tiktok"`
}

// CompanyInfo representa os dados institucionais exibidos no site
type CompanyInfo struct {
	ID          string      `json:"-" bson:"id"`
	Name        string      `json:"name" bson:"name"`
	Slogan      string      `json:"slogan" bson:"slogan"`
	About       string      `json:"about" bson:"about"`
	WhatsApp    string      `json:"whatsapp" bson:"whatsapp"`
	Email       string      `json:"email" bson:"email"`
	SocialMedia SocialMedia `json:"social_media" bson:"social_media"`
}
