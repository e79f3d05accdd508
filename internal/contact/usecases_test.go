package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3dstuff/backend/internal/worker"
)

type fakeRepository struct {
	messages []*Message
	insErr   error
}

func (f *fakeRepository) Insert(ctx context.Context, message *Message) error {
	if f.insErr != nil {
		return f.insErr
	}
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeRepository) List(ctx context.Context, limit int64) ([]*Message, error) {
	return f.messages, nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) SendContactConfirmation(ctx context.Context, toEmail, toName string) error {
	f.sent = append(f.sent, toEmail)
	return f.err
}

// inlinePool executa as tarefas na hora
type inlinePool struct{}

func (inlinePool) Submit(task worker.Task) bool {
	task(context.Background())
	return true
}

func TestCreateContact(t *testing.T) {
	repo := &fakeRepository{}
	mailer := &fakeMailer{}
	uc := NewUseCase(repo, mailer, inlinePool{})

	message, err := uc.Create(context.Background(), CreateRequest{
		Name:    "Maria",
		Email:   "maria@example.com",
		Message: "Quero um orçamento de miniaturas.",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, message.ID)
	assert.Equal(t, StatusNew, message.Status)
	assert.False(t, message.CreatedAt.IsZero())
	require.Len(t, repo.messages, 1)
	assert.Equal(t, []string{"maria@example.com"}, mailer.sent)
}

func TestCreateContactEmailFailureDoesNotFail(t *testing.T) {
	repo := &fakeRepository{}
	mailer := &fakeMailer{err: errors.New("sendgrid down")}
	uc := NewUseCase(repo, mailer, inlinePool{})

	_, err := uc.Create(context.Background(), CreateRequest{
		Name:    "Maria",
		Email:   "maria@example.com",
		Message: "Olá",
	})
	assert.NoError(t, err)
	assert.Len(t, repo.messages, 1)
}

func TestCreateContactRepositoryFailure(t *testing.T) {
	repo := &fakeRepository{insErr: errors.New("mongo down")}
	mailer := &fakeMailer{}
	uc := NewUseCase(repo, mailer, inlinePool{})

	_, err := uc.Create(context.Background(), CreateRequest{
		Name:    "Maria",
		Email:   "maria@example.com",
		Message: "Olá",
	})
	assert.Error(t, err)
	assert.Empty(t, mailer.sent)
}
