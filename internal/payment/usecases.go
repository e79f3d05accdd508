package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// PaymentGateway define as chamadas feitas ao Mercado Pago
type PaymentGateway interface {
	CreatePix(ctx context.Context, req PaymentRequest) (*PixResult, error)
	CreateCreditCard(ctx context.Context, req PaymentRequest) (*CardResult, error)
	CreateBoleto(ctx context.Context, req PaymentRequest) (*BoletoResult, error)
	GetPaymentStatus(ctx context.Context, paymentID string) (*StatusResult, error)
	InstallmentOptions(amount decimal.Decimal) []InstallmentOption
}

// UseCase encapsula a lógica de negócio de pagamentos
type UseCase struct {
	gateway    PaymentGateway
	repository Repository
}

// NewUseCase cria uma nova instância do caso de uso
func NewUseCase(gateway PaymentGateway, repository Repository) *UseCase {
	return &UseCase{
		gateway:    gateway,
		repository: repository,
	}
}

// CreationResult é o envelope comum retornado pela criação de pagamentos
type CreationResult interface {
	Envelope() Result
}

// Envelope retorna o envelope comum do resultado
func (r PixResult) Envelope() Result    { return r.Result }
func (r CardResult) Envelope() Result   { return r.Result }
func (r BoletoResult) Envelope() Result { return r.Result }

// CreatePayment valida a requisição, cria o pagamento no vendor e persiste o registro
func (uc *UseCase) CreatePayment(ctx context.Context, req PaymentRequest) (CreationResult, error) {
	tracer := otel.Tracer("payment-service")

	ctx, span := tracer.Start(ctx, "CreatePayment")
	defer span.End()

	span.SetAttributes(
		attribute.String("payment.product_id", req.ProductID),
		attribute.String("payment.method", req.PaymentMethod),
	)

	normalized, err := ValidateDocument(req.CustomerDocument)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	req.CustomerDocument = normalized

	product, ok := ProductInfo(req.ProductID)
	if !ok {
		span.RecordError(ErrProductNotFound)
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, req.ProductID)
	}

	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	log.Printf("➡️ Creating %s payment | Product=%s | Qty=%d | Customer=%s",
		req.PaymentMethod, product.Name, req.Quantity, req.CustomerEmail)

	var result CreationResult
	switch req.PaymentMethod {
	case MethodPix:
		result, err = uc.gateway.CreatePix(ctx, req)
	case MethodCreditCard:
		result, err = uc.gateway.CreateCreditCard(ctx, req)
	case MethodBoleto:
		result, err = uc.gateway.CreateBoleto(ctx, req)
	default:
		span.RecordError(ErrInvalidPaymentMethod)
		return nil, fmt.Errorf("%w: %s", ErrInvalidPaymentMethod, req.PaymentMethod)
	}
	if err != nil {
		log.Printf("❌ Payment creation failed: %v", err)
		span.RecordError(err)
		return nil, err
	}

	envelope := result.Envelope()
	if !envelope.Success {
		log.Printf("⚠️ Payment rejected by vendor | Product=%s | Method=%s", req.ProductID, req.PaymentMethod)
		return result, nil
	}

	record := uc.buildRecord(req, product, result)
	if err := uc.repository.Create(ctx, record); err != nil {
		// O pagamento já existe no vendor; a falha de persistência não
		// pode sumir com ele. O webhook reconcilia depois.
		log.Printf("⚠️ Failed to persist payment record | PaymentID=%s | Error=%v", envelope.PaymentID, err)
		span.RecordError(err)
	}

	span.SetAttributes(
		attribute.String("payment.id", envelope.PaymentID),
		attribute.String("payment.status", envelope.Status),
	)
	log.Printf("✅ Payment created | PaymentID=%s | Status=%s | Amount=%s",
		envelope.PaymentID, envelope.Status, envelope.Amount.StringFixed(2))
	return result, nil
}

// GetPaymentStatus consulta o vendor e sincroniza o registro local
func (uc *UseCase) GetPaymentStatus(ctx context.Context, paymentID string) (*StatusResult, error) {
	tracer := otel.Tracer("payment-service")

	ctx, span := tracer.Start(ctx, "GetPaymentStatus")
	defer span.End()
	span.SetAttributes(attribute.String("payment.id", paymentID))

	status, err := uc.gateway.GetPaymentStatus(ctx, paymentID)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			return nil, err
		}
		span.RecordError(err)
		return nil, err
	}
	if !status.Success {
		log.Printf("⚠️ Vendor could not resolve payment %s: %s", paymentID, status.Error)
		return nil, fmt.Errorf("%w: %s", ErrPaymentNotFound, paymentID)
	}

	if err := uc.repository.SyncFromPoll(ctx, paymentID, status.Status, status.StatusDetail, status.NetAmount); err != nil {
		log.Printf("⚠️ Failed to sync payment record | PaymentID=%s | Error=%v", paymentID, err)
		span.RecordError(err)
	}

	log.Printf("ℹ️ Payment status polled | PaymentID=%s | Status=%s", paymentID, status.Status)
	return status, nil
}

// Installments retorna as opções de parcelamento de um produto
func (uc *UseCase) Installments(productID string) ([]InstallmentOption, Product, error) {
	product, ok := ProductInfo(productID)
	if !ok {
		return nil, Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	return uc.gateway.InstallmentOptions(product.Price), product, nil
}

// Summary agrega os pagamentos registrados por status
func (uc *UseCase) Summary(ctx context.Context) ([]StatusSummary, error) {
	return uc.repository.StatusSummary(ctx)
}

func (uc *UseCase) buildRecord(req PaymentRequest, product Product, result CreationResult) *Record {
	envelope := result.Envelope()
	record := &Record{
		PaymentID:         envelope.PaymentID,
		ExternalReference: envelope.ExternalReference,
		Status:            envelope.Status,
		StatusDetail:      envelope.StatusDetail,
		Amount:            envelope.Amount,
		Currency:          "BRL",
		Installments:      1,
		CustomerEmail:     req.CustomerEmail,
		CustomerDocument:  req.CustomerDocument,
		CustomerName:      req.CustomerName,
		ProductID:         req.ProductID,
		ProductName:       product.Name,
		Description:       fmt.Sprintf("%s (x%d)", product.Name, req.Quantity),
		PaymentData:       envelope.RawPayload(),
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	switch r := result.(type) {
	case *PixResult:
		record.PaymentMethodID = MethodPix
		record.PaymentType = "bank_transfer"
		record.QRCode = r.QRCode
		record.TicketURL = r.TicketURL
	case *CardResult:
		record.PaymentMethodID = MethodCreditCard
		record.PaymentType = "credit_card"
		record.Installments = r.Installments
	case *BoletoResult:
		record.PaymentMethodID = MethodBoleto
		record.PaymentType = "ticket"
		record.TicketURL = r.TicketURL
		record.Barcode = r.Barcode
	}
	return record
}
