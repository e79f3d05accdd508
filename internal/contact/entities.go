package contact

import (
	"time"

	"github.com/google/uuid"
)

// Status de triagem das mensagens de contato
const (
	StatusNew     = "new"
	StatusRead    = "read"
	StatusReplied = "replied"
)

// Message representa uma mensagem enviada pelo formulário de contato
type Message struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Message   string    `json:"message" bson:"message"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// CreateRequest é o corpo do formulário de contato
type CreateRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// NewMessage cria uma mensagem com ID gerado e status "new"
func NewMessage(req CreateRequest) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		Status:    StatusNew,
		CreatedAt: time.Now(),
	}
}
