package contact

import (
	"context"
	"log"

	"github.com/3dstuff/backend/internal/worker"
)

// ConfirmationSender envia a confirmação de recebimento por e-mail
type ConfirmationSender interface {
	SendContactConfirmation(ctx context.Context, toEmail, toName string) error
}

// TaskSubmitter enfileira o envio de e-mail em background
type TaskSubmitter interface {
	Submit(task worker.Task) bool
}

// UseCase encapsula a lógica de negócio do formulário de contato
type UseCase struct {
	repository Repository
	mailer     ConfirmationSender
	pool       TaskSubmitter
}

// NewUseCase cria uma nova instância do caso de uso
func NewUseCase(repository Repository, mailer ConfirmationSender, pool TaskSubmitter) *UseCase {
	return &UseCase{
		repository: repository,
		mailer:     mailer,
		pool:       pool,
	}
}

// Create persiste a mensagem e agenda o e-mail de confirmação.
// A falha no e-mail não derruba o cadastro da mensagem.
func (uc *UseCase) Create(ctx context.Context, req CreateRequest) (*Message, error) {
	message := NewMessage(req)
	if err := uc.repository.Insert(ctx, message); err != nil {
		return nil, err
	}

	email, name := message.Email, message.Name
	uc.pool.Submit(func(taskCtx context.Context) {
		if err := uc.mailer.SendContactConfirmation(taskCtx, email, name); err != nil {
			log.Printf("⚠️ Failed to send contact confirmation to %s: %v", email, err)
		}
	})

	log.Printf("✅ Contact message saved | ID=%s | From=%s", message.ID, message.Email)
	return message, nil
}

// List retorna as mensagens recebidas, mais recentes primeiro
func (uc *UseCase) List(ctx context.Context) ([]*Message, error) {
	return uc.repository.List(ctx, 1000)
}
