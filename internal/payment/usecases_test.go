package payment

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockGateway simula as chamadas ao vendor
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreatePix(ctx context.Context, req PaymentRequest) (*PixResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(*PixResult), args.Error(1)
}

func (m *MockGateway) CreateCreditCard(ctx context.Context, req PaymentRequest) (*CardResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(*CardResult), args.Error(1)
}

func (m *MockGateway) CreateBoleto(ctx context.Context, req PaymentRequest) (*BoletoResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(*BoletoResult), args.Error(1)
}

func (m *MockGateway) GetPaymentStatus(ctx context.Context, paymentID string) (*StatusResult, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StatusResult), args.Error(1)
}

func (m *MockGateway) InstallmentOptions(amount decimal.Decimal) []InstallmentOption {
	args := m.Called(amount)
	return args.Get(0).([]InstallmentOption)
}

// MockRepository simula a persistência de pagamentos
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, record *Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRepository) GetByPaymentID(ctx context.Context, paymentID string) (*Record, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Record), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, paymentID, status, statusDetail string, payload []byte) error {
	args := m.Called(ctx, paymentID, status, statusDetail, payload)
	return args.Error(0)
}

func (m *MockRepository) MarkApproved(ctx context.Context, paymentID string) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

func (m *MockRepository) MarkCancelled(ctx context.Context, paymentID string) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

func (m *MockRepository) SyncFromPoll(ctx context.Context, paymentID, status, statusDetail string, netAmount decimal.Decimal) error {
	args := m.Called(ctx, paymentID, status, statusDetail, netAmount)
	return args.Error(0)
}

func (m *MockRepository) StatusSummary(ctx context.Context) ([]StatusSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]StatusSummary), args.Error(1)
}

func validRequest() PaymentRequest {
	return PaymentRequest{
		ProductID:        "1",
		Quantity:         1,
		CustomerEmail:    "cliente@example.com",
		CustomerDocument: "529.982.247-25",
		CustomerName:     "Maria da Silva",
		PaymentMethod:    MethodPix,
	}
}

func TestCreatePaymentPix(t *testing.T) {
	gateway := new(MockGateway)
	repo := new(MockRepository)
	uc := NewUseCase(gateway, repo)

	pixResult := &PixResult{
		Result: Result{
			Success:           true,
			PaymentID:         "123",
			Status:            StatusPending,
			Amount:            Products["1"].Price,
			ExternalReference: "3DSTUFF_1_20260101120000",
		},
		QRCode: "qr-code",
	}

	gateway.On("CreatePix", mock.Anything, mock.MatchedBy(func(req PaymentRequest) bool {
		// O documento chega ao gateway normalizado
		return req.CustomerDocument == "52998224725"
	})).Return(pixResult, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(record *Record) bool {
		return record.PaymentID == "123" &&
			record.PaymentMethodID == MethodPix &&
			record.ProductName == "Miniatura de Personagem" &&
			record.QRCode == "qr-code"
	})).Return(nil)

	result, err := uc.CreatePayment(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, result.Envelope().Success)
	assert.Equal(t, "123", result.Envelope().PaymentID)
	gateway.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestCreatePaymentInvalidDocument(t *testing.T) {
	uc := NewUseCase(new(MockGateway), new(MockRepository))

	req := validRequest()
	req.CustomerDocument = "11111111111"

	_, err := uc.CreatePayment(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestCreatePaymentUnknownProduct(t *testing.T) {
	uc := NewUseCase(new(MockGateway), new(MockRepository))

	req := validRequest()
	req.ProductID = "42"

	_, err := uc.CreatePayment(context.Background(), req)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreatePaymentInvalidMethod(t *testing.T) {
	uc := NewUseCase(new(MockGateway), new(MockRepository))

	req := validRequest()
	req.PaymentMethod = "barter"

	_, err := uc.CreatePayment(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestCreatePaymentVendorRejectionIsNotPersisted(t *testing.T) {
	gateway := new(MockGateway)
	repo := new(MockRepository)
	uc := NewUseCase(gateway, repo)

	gateway.On("CreatePix", mock.Anything, mock.Anything).Return(&PixResult{
		Result: Result{Success: false, Error: "Erro ao criar pagamento PIX"},
	}, nil)

	result, err := uc.CreatePayment(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, result.Envelope().Success)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetPaymentStatusSyncsRecord(t *testing.T) {
	gateway := new(MockGateway)
	repo := new(MockRepository)
	uc := NewUseCase(gateway, repo)

	gateway.On("GetPaymentStatus", mock.Anything, "123").Return(&StatusResult{
		Success:      true,
		PaymentID:    "123",
		Status:       StatusApproved,
		StatusDetail: "accredited",
		NetAmount:    decimal.NewFromFloat(44.55),
	}, nil)
	repo.On("SyncFromPoll", mock.Anything, "123", StatusApproved, "accredited", mock.Anything).Return(nil)

	status, err := uc.GetPaymentStatus(context.Background(), "123")
	require.NoError(t, err)

	assert.Equal(t, StatusApproved, status.Status)
	repo.AssertExpectations(t)
}

func TestUseCaseGetPaymentStatusNotFound(t *testing.T) {
	gateway := new(MockGateway)
	uc := NewUseCase(gateway, new(MockRepository))

	gateway.On("GetPaymentStatus", mock.Anything, "999").Return(nil, ErrPaymentNotFound)

	_, err := uc.GetPaymentStatus(context.Background(), "999")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestGetPaymentStatusVendorFailureDoesNotSync(t *testing.T) {
	gateway := new(MockGateway)
	repo := new(MockRepository)
	uc := NewUseCase(gateway, repo)

	// Erro 5xx no vendor vira StatusResult sem sucesso e sem status
	gateway.On("GetPaymentStatus", mock.Anything, "123").Return(&StatusResult{
		Success: false, Error: "Pagamento não encontrado",
	}, nil)

	_, err := uc.GetPaymentStatus(context.Background(), "123")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
	repo.AssertNotCalled(t, "SyncFromPoll", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInstallmentsUnknownProduct(t *testing.T) {
	uc := NewUseCase(new(MockGateway), new(MockRepository))

	_, _, err := uc.Installments("42")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
