package webhook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/3dstuff/backend/internal/inventory"
	"github.com/3dstuff/backend/internal/mail"
	"github.com/3dstuff/backend/internal/payment"
)

// MockNotificationRepo simula a persistência de notificações
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Save(ctx context.Context, notification *Notification) (int64, error) {
	args := m.Called(ctx, notification)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepo) MarkProcessed(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNotificationRepo) Stats(ctx context.Context) (*Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(*Stats), args.Error(1)
}

// MockFetcher simula a consulta de status no vendor
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) GetPaymentStatus(ctx context.Context, paymentID string) (*payment.StatusResult, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.StatusResult), args.Error(1)
}

// MockPaymentStore simula o repositório de pagamentos
type MockPaymentStore struct {
	mock.Mock
}

func (m *MockPaymentStore) GetByPaymentID(ctx context.Context, paymentID string) (*payment.Record, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Record), args.Error(1)
}

func (m *MockPaymentStore) UpdateStatus(ctx context.Context, paymentID, status, statusDetail string, payload []byte) error {
	args := m.Called(ctx, paymentID, status, statusDetail, payload)
	return args.Error(0)
}

func (m *MockPaymentStore) MarkApproved(ctx context.Context, paymentID string) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

func (m *MockPaymentStore) MarkCancelled(ctx context.Context, paymentID string) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

// MockLedger simula o estoque
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) GetStockInfo(ctx context.Context, productID string) (*inventory.StockInfo, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockInfo), args.Error(1)
}

func (m *MockLedger) CheckAvailability(ctx context.Context, productID string, quantity int) (*inventory.Availability, error) {
	args := m.Called(ctx, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Availability), args.Error(1)
}

func (m *MockLedger) Reserve(ctx context.Context, productID string, quantity int, orderID string) error {
	args := m.Called(ctx, productID, quantity, orderID)
	return args.Error(0)
}

func (m *MockLedger) ConfirmSale(ctx context.Context, productID string, quantity int, orderID string) error {
	args := m.Called(ctx, productID, quantity, orderID)
	return args.Error(0)
}

func (m *MockLedger) CancelReservation(ctx context.Context, productID string, quantity int, orderID string) error {
	args := m.Called(ctx, productID, quantity, orderID)
	return args.Error(0)
}

// MockMailer simula o envio de e-mails
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPaymentConfirmation(ctx context.Context, data mail.PaymentEmail) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *MockMailer) SendPaymentPending(ctx context.Context, data mail.PaymentEmail) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *MockMailer) SendPaymentCancelled(ctx context.Context, data mail.PaymentEmail) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

type reconcilerMocks struct {
	notifications *MockNotificationRepo
	fetcher       *MockFetcher
	payments      *MockPaymentStore
	stock         *MockLedger
	mailer        *MockMailer
}

func newReconcilerForTest() (*Reconciler, *reconcilerMocks) {
	m := &reconcilerMocks{
		notifications: new(MockNotificationRepo),
		fetcher:       new(MockFetcher),
		payments:      new(MockPaymentStore),
		stock:         new(MockLedger),
		mailer:        new(MockMailer),
	}
	return NewReconciler(m.notifications, m.fetcher, m.payments, m.stock, m.mailer), m
}

func pendingRecord() *payment.Record {
	return &payment.Record{
		PaymentID:       "123",
		Status:          payment.StatusPending,
		ProductID:       "1",
		ProductName:     "Miniatura de Personagem",
		CustomerEmail:   "cliente@example.com",
		CustomerName:    "Maria",
		PaymentMethodID: payment.MethodPix,
	}
}

func TestProcessApprovedConfirmsSale(t *testing.T) {
	reconciler, m := newReconcilerForTest()
	ctx := context.Background()

	m.fetcher.On("GetPaymentStatus", mock.Anything, "123").Return(&payment.StatusResult{
		Success: true, Status: payment.StatusApproved, StatusDetail: "accredited",
	}, nil)
	m.payments.On("GetByPaymentID", mock.Anything, "123").Return(pendingRecord(), nil)
	m.payments.On("UpdateStatus", mock.Anything, "123", payment.StatusApproved, "accredited", mock.Anything).Return(nil)
	m.stock.On("GetStockInfo", mock.Anything, "1").Return(&inventory.StockInfo{
		ProductID: "1", AvailableQuantity: 29, ReservedQuantity: 1,
	}, nil)
	m.stock.On("ConfirmSale", mock.Anything, "1", 1, "123").Return(nil)
	m.payments.On("MarkApproved", mock.Anything, "123").Return(nil)
	m.mailer.On("SendPaymentConfirmation", mock.Anything, mock.Anything).Return(nil)
	m.notifications.On("MarkProcessed", mock.Anything, int64(7)).Return(nil)

	reconciler.Process(ctx, 7, "123")

	m.stock.AssertExpectations(t)
	m.payments.AssertExpectations(t)
	m.mailer.AssertExpectations(t)
	m.notifications.AssertExpectations(t)
}

func TestProcessApprovedIsIdempotent(t *testing.T) {
	reconciler, m := newReconcilerForTest()

	record := pendingRecord()
	record.Status = payment.StatusApproved
	record.InventoryUpdated = true

	m.fetcher.On("GetPaymentStatus", mock.Anything, "123").Return(&payment.StatusResult{
		Success: true, Status: payment.StatusApproved, StatusDetail: "accredited",
	}, nil)
	m.payments.On("GetByPaymentID", mock.Anything, "123").Return(record, nil)
	m.payments.On("UpdateStatus", mock.Anything, "123", payment.StatusApproved, "accredited", mock.Anything).Return(nil)
	m.notifications.On("MarkProcessed", mock.Anything, int64(8)).Return(nil)

	reconciler.Process(context.Background(), 8, "123")

	// Reprocessar um aprovado não mexe no estoque nem reenvia e-mail
	m.stock.AssertNotCalled(t, "ConfirmSale", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.payments.AssertNotCalled(t, "MarkApproved", mock.Anything, mock.Anything)
	m.mailer.AssertNotCalled(t, "SendPaymentConfirmation", mock.Anything, mock.Anything)
	m.notifications.AssertExpectations(t)
}

func TestProcessApprovedWithoutReservation(t *testing.T) {
	reconciler, m := newReconcilerForTest()

	m.fetcher.On("GetPaymentStatus", mock.Anything, "123").Return(&payment.StatusResult{
		Success: true, Status: payment.StatusApproved, StatusDetail: "accredited",
	}, nil)
	m.payments.On("GetByPaymentID", mock.Anything, "123").Return(pendingRecord(), nil)
	m.payments.On("UpdateStatus", mock.Anything, "123", payment.StatusApproved, "accredited", mock.Anything).Return(nil)
	m.stock.On("GetStockInfo", mock.Anything, "1").Return(&inventory.StockInfo{
		ProductID: "1", AvailableQuantity: 30, ReservedQuantity: 0,
	}, nil)
	m.stock.On("CheckAvailability", mock.Anything, "1", 1).Return(&inventory.Availability{CanFulfill: true}, nil)
	m.stock.On("Reserve", mock.Anything, "1", 1, "123").Return(nil)
	m.stock.On("ConfirmSale", mock.Anything, "1", 1, "123").Return(nil)
	m.payments.On("MarkApproved", mock.Anything, "123").Return(nil)
	m.mailer.On("SendPaymentConfirmation", mock.Anything, mock.Anything).Return(nil)
	m.notifications.On("MarkProcessed", mock.Anything, int64(9)).Return(nil)

	reconciler.Process(context.Background(), 9, "123")

	m.stock.AssertExpectations(t)
}

func TestProcessRejectedReleasesReservation(t *testing.T) {
	reconciler, m := newReconcilerForTest()

	m.fetcher.On("GetPaymentStatus", mock.Anything, "123").Return(&payment.StatusResult{
		Success: true, Status: payment.StatusRejected, StatusDetail: "cc_rejected_other_reason",
	}, nil)
	m.payments.On("GetByPaymentID", mock.Anything, "123").Return(pendingRecord(), nil)
	m.payments.On("UpdateStatus", mock.Anything, "123", payment.StatusRejected, "cc_rejected_other_reason", mock.Anything).Return(nil)
	m.stock.On("CancelReservation", mock.Anything, "1", 1, "123").Return(nil)
	m.payments.On("MarkCancelled", mock.Anything, "123").Return(nil)
	m.mailer.On("SendPaymentCancelled", mock.Anything, mock.Anything).Return(nil)
	m.notifications.On("MarkProcessed", mock.Anything, int64(10)).Return(nil)

	reconciler.Process(context.Background(), 10, "123")

	m.stock.AssertExpectations(t)
	m.payments.AssertExpectations(t)
	m.mailer.AssertExpectations(t)
}

func TestProcessCancelledIsIdempotent(t *testing.T) {
	reconciler, m := newReconcilerForTest()

	record := pendingRecord()
	record.Status = payment.StatusCancelled
	record.InventoryReleased = true

	m.fetcher.On("GetPaymentStatus", mock.Anything, "123").Return(&payment.StatusResult{
		Success: true, Status: payment.StatusCancelled,
	}, nil)
	m.payments.On("GetByPaymentID", mock.Anything, "123").Return(record, nil)
	m.payments.On("UpdateStatus", mock.Anything, "123", payment.StatusCancelled, "", mock.Anything).Return(nil)
	m.notifications.On("MarkProcessed", mock.Anything, int64(11)).Return(nil)

	reconciler.Process(context.Background(), 11, "123")

	m.stock.AssertNotCalled(t, "CancelReservation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.payments.AssertNotCalled(t, "MarkCancelled", mock.Anything, mock.Anything)
}

func TestProcessPendingReservesStock(t *testing.T) {
	reconciler, m := newReconcilerForTest()

	record := pendingRecord()
	record.Status = "" // registro ainda sem status observado

	m.fetcher.On("GetPaymentStatus", mock.Anything, "123").Return(&payment.StatusResult{
		Success: true, Status: payment.StatusPending, StatusDetail: "pending_waiting_transfer",
	}, nil)
	m.payments.On("GetByPaymentID", mock.Anything, "123").Return(record, nil)
	m.payments.On("UpdateStatus", mock.Anything, "123", payment.StatusPending, "pending_waiting_transfer", mock.Anything).Return(nil)
	m.stock.On("GetStockInfo", mock.Anything, "1").Return(&inventory.StockInfo{
		ProductID: "1", AvailableQuantity: 30, ReservedQuantity: 0,
	}, nil)
	m.stock.On("Reserve", mock.Anything, "1", 1, "123").Return(nil)
	m.mailer.On("SendPaymentPending", mock.Anything, mock.Anything).Return(nil)
	m.notifications.On("MarkProcessed", mock.Anything, int64(12)).Return(nil)

	reconciler.Process(context.Background(), 12, "123")

	m.stock.AssertExpectations(t)
	m.mailer.AssertExpectations(t)
}

func TestProcessPendingDoesNotRepeatEmail(t *testing.T) {
	reconciler, m := newReconcilerForTest()

	// Registro já estava pending: sem novo e-mail de pendência
	m.fetcher.On("GetPaymentStatus", mock.Anything, "123").Return(&payment.StatusResult{
		Success: true, Status: payment.StatusPending,
	}, nil)
	m.payments.On("GetByPaymentID", mock.Anything, "123").Return(pendingRecord(), nil)
	m.payments.On("UpdateStatus", mock.Anything, "123", payment.StatusPending, "", mock.Anything).Return(nil)
	m.stock.On("GetStockInfo", mock.Anything, "1").Return(&inventory.StockInfo{
		ProductID: "1", ReservedQuantity: 1,
	}, nil)
	m.notifications.On("MarkProcessed", mock.Anything, int64(13)).Return(nil)

	reconciler.Process(context.Background(), 13, "123")

	m.mailer.AssertNotCalled(t, "SendPaymentPending", mock.Anything, mock.Anything)
	m.stock.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessUnknownPaymentAborts(t *testing.T) {
	reconciler, m := newReconcilerForTest()

	m.fetcher.On("GetPaymentStatus", mock.Anything, "999").Return(&payment.StatusResult{
		Success: true, Status: payment.StatusApproved,
	}, nil)
	m.payments.On("GetByPaymentID", mock.Anything, "999").Return(nil, payment.ErrPaymentNotFound)

	reconciler.Process(context.Background(), 14, "999")

	m.payments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.notifications.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything)
}

func TestProcessVendorFailureDoesNotTouchRecord(t *testing.T) {
	reconciler, m := newReconcilerForTest()

	// Erro 5xx no vendor vira StatusResult sem sucesso e sem status
	m.fetcher.On("GetPaymentStatus", mock.Anything, "123").Return(&payment.StatusResult{
		Success: false, Error: "Pagamento não encontrado",
	}, nil)

	reconciler.Process(context.Background(), 16, "123")

	m.payments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.notifications.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything)
}

func TestProcessFetchFailureLeavesNotificationUnprocessed(t *testing.T) {
	reconciler, m := newReconcilerForTest()

	m.fetcher.On("GetPaymentStatus", mock.Anything, "123").Return(nil, context.DeadlineExceeded)

	reconciler.Process(context.Background(), 15, "123")

	m.payments.AssertNotCalled(t, "GetByPaymentID", mock.Anything, mock.Anything)
	m.notifications.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything)
}
