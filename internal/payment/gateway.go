package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const (
	pixExpiration    = 30 * time.Minute
	boletoExpiration = 7 * 24 * time.Hour
	boletoMethodID   = "bolbradesco"
)

// Gateway traduz requisições internas em chamadas à API do Mercado Pago
type Gateway struct {
	client *resty.Client
}

// NewGateway cria uma nova instância de Gateway
func NewGateway(baseURL, accessToken string) *Gateway {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(accessToken).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &Gateway{client: client}
}

// mpPayer é o pagador no formato do vendor
type mpPayer struct {
	Email          string           `json:"email"`
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name"`
	Identification mpIdentification `json:"identification"`
}

type mpIdentification struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

// mpPaymentRequest é o corpo de criação de pagamento do vendor
type mpPaymentRequest struct {
	TransactionAmount float64 `json:"transaction_amount"`
	PaymentMethodID   string  `json:"payment_method_id,omitempty"`
	Token             string  `json:"token,omitempty"`
	Installments      int     `json:"installments,omitempty"`
	Description       string  `json:"description"`
	ExternalReference string  `json:"external_reference"`
	DateOfExpiration  string  `json:"date_of_expiration,omitempty"`
	Payer             mpPayer `json:"payer"`
}

// mpPaymentResponse é a resposta de pagamento do vendor
type mpPaymentResponse struct {
	ID                 json.Number `json:"id"`
	Status             string      `json:"status"`
	StatusDetail       string      `json:"status_detail"`
	PaymentMethodID    string      `json:"payment_method_id"`
	TransactionAmount  float64     `json:"transaction_amount"`
	CurrencyID         string      `json:"currency_id"`
	DateCreated        string      `json:"date_created"`
	DateApproved       string      `json:"date_approved"`
	DateOfExpiration   string      `json:"date_of_expiration"`
	ExternalReference  string      `json:"external_reference"`
	PointOfInteraction struct {
		TransactionData struct {
			QRCode       string `json:"qr_code"`
			QRCodeBase64 string `json:"qr_code_base64"`
			TicketURL    string `json:"ticket_url"`
		} `json:"transaction_data"`
	} `json:"point_of_interaction"`
	TransactionDetails struct {
		ExternalResourceURL string  `json:"external_resource_url"`
		NetReceivedAmount   float64 `json:"net_received_amount"`
	} `json:"transaction_details"`
	Barcode struct {
		Content string `json:"content"`
	} `json:"barcode"`
}

// CreatePix cria um pagamento PIX com validade de 30 minutos
func (g *Gateway) CreatePix(ctx context.Context, req PaymentRequest) (*PixResult, error) {
	product, amount, err := priceFor(req)
	if err != nil {
		return nil, err
	}

	body := mpPaymentRequest{
		TransactionAmount: amount.InexactFloat64(),
		PaymentMethodID:   "pix",
		Description:       fmt.Sprintf("%s - 3D Stuff", product.Name),
		ExternalReference: newExternalReference(req.ProductID),
		DateOfExpiration:  time.Now().Add(pixExpiration).Format(time.RFC3339),
		Payer:             payerFor(req),
	}

	info, raw, vendorErr, err := g.createPayment(ctx, body)
	if err != nil {
		return nil, err
	}
	if vendorErr != "" {
		log.Printf("❌ PIX payment rejected by vendor: %s", vendorErr)
		return &PixResult{Result: Result{Success: false, Error: "Erro ao criar pagamento PIX"}}, nil
	}

	return &PixResult{
		Result: Result{
			Success:           true,
			PaymentID:         info.ID.String(),
			Status:            info.Status,
			StatusDetail:      info.StatusDetail,
			Amount:            amount,
			ExternalReference: body.ExternalReference,
			raw:               raw,
		},
		QRCode:       info.PointOfInteraction.TransactionData.QRCode,
		QRCodeBase64: info.PointOfInteraction.TransactionData.QRCodeBase64,
		TicketURL:    info.PointOfInteraction.TransactionData.TicketURL,
		ExpiresAt:    info.DateOfExpiration,
	}, nil
}

// CreateCreditCard cria um pagamento com cartão tokenizado
func (g *Gateway) CreateCreditCard(ctx context.Context, req PaymentRequest) (*CardResult, error) {
	if req.CardToken == "" {
		return nil, ErrCardTokenRequired
	}

	product, amount, err := priceFor(req)
	if err != nil {
		return nil, err
	}

	installments := req.Installments
	if installments <= 0 {
		installments = 1
	}

	body := mpPaymentRequest{
		TransactionAmount: amount.InexactFloat64(),
		Token:             req.CardToken,
		Installments:      installments,
		Description:       fmt.Sprintf("%s - 3D Stuff", product.Name),
		ExternalReference: newExternalReference(req.ProductID),
		Payer:             payerFor(req),
	}

	info, raw, vendorErr, err := g.createPayment(ctx, body)
	if err != nil {
		return nil, err
	}
	if vendorErr != "" {
		log.Printf("❌ Card payment rejected by vendor: %s", vendorErr)
		return &CardResult{Result: Result{Success: false, Error: "Erro ao processar cartão"}}, nil
	}

	return &CardResult{
		Result: Result{
			Success:           true,
			PaymentID:         info.ID.String(),
			Status:            info.Status,
			StatusDetail:      info.StatusDetail,
			Amount:            amount,
			ExternalReference: body.ExternalReference,
			raw:               raw,
		},
		Installments: installments,
	}, nil
}

// CreateBoleto cria um boleto com vencimento em 7 dias
func (g *Gateway) CreateBoleto(ctx context.Context, req PaymentRequest) (*BoletoResult, error) {
	product, amount, err := priceFor(req)
	if err != nil {
		return nil, err
	}

	body := mpPaymentRequest{
		TransactionAmount: amount.InexactFloat64(),
		PaymentMethodID:   boletoMethodID,
		Description:       fmt.Sprintf("%s - 3D Stuff", product.Name),
		ExternalReference: newExternalReference(req.ProductID),
		DateOfExpiration:  time.Now().Add(boletoExpiration).Format(time.RFC3339),
		Payer:             payerFor(req),
	}

	info, raw, vendorErr, err := g.createPayment(ctx, body)
	if err != nil {
		return nil, err
	}
	if vendorErr != "" {
		log.Printf("❌ Boleto payment rejected by vendor: %s", vendorErr)
		return &BoletoResult{Result: Result{Success: false, Error: "Erro ao gerar boleto"}}, nil
	}

	return &BoletoResult{
		Result: Result{
			Success:           true,
			PaymentID:         info.ID.String(),
			Status:            info.Status,
			StatusDetail:      info.StatusDetail,
			Amount:            amount,
			ExternalReference: body.ExternalReference,
			raw:               raw,
		},
		TicketURL: info.TransactionDetails.ExternalResourceURL,
		Barcode:   info.Barcode.Content,
		ExpiresAt: info.DateOfExpiration,
	}, nil
}

// GetPaymentStatus consulta o estado atual de um pagamento no vendor
func (g *Gateway) GetPaymentStatus(ctx context.Context, paymentID string) (*StatusResult, error) {
	var info mpPaymentResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetResult(&info).
		Get(fmt.Sprintf("/v1/payments/%s", paymentID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment status: %w", err)
	}

	if resp.StatusCode() == 404 {
		return nil, ErrPaymentNotFound
	}
	if resp.IsError() {
		log.Printf("❌ Vendor status lookup failed: PaymentID=%s HTTP=%d Body=%s", paymentID, resp.StatusCode(), resp.String())
		return &StatusResult{Success: false, Error: "Pagamento não encontrado"}, nil
	}

	result := &StatusResult{
		Success:           true,
		PaymentID:         info.ID.String(),
		Status:            info.Status,
		StatusDetail:      info.StatusDetail,
		PaymentMethod:     info.PaymentMethodID,
		Amount:            decimal.NewFromFloat(info.TransactionAmount),
		NetAmount:         decimal.NewFromFloat(info.TransactionDetails.NetReceivedAmount),
		Currency:          info.CurrencyID,
		ExternalReference: info.ExternalReference,
	}

	if created, err := time.Parse(time.RFC3339, info.DateCreated); err == nil {
		result.CreatedAt = created
	}
	if info.DateApproved != "" {
		if approved, err := time.Parse(time.RFC3339, info.DateApproved); err == nil {
			result.ApprovedAt = &approved
		}
	}

	return result, nil
}

// InstallmentOptions retorna a tabela de parcelamento sem juros da loja
func (g *Gateway) InstallmentOptions(amount decimal.Decimal) []InstallmentOption {
	two := amount.Div(decimal.NewFromInt(2)).Round(2)
	three := amount.Div(decimal.NewFromInt(3)).Round(2)

	return []InstallmentOption{
		{Installments: 1, InstallmentAmount: amount, TotalAmount: amount, RecommendedMessage: "À vista"},
		{Installments: 2, InstallmentAmount: two, TotalAmount: amount, RecommendedMessage: "2x sem juros"},
		{Installments: 3, InstallmentAmount: three, TotalAmount: amount, RecommendedMessage: "3x sem juros"},
	}
}

// createPayment envia a criação ao vendor. Retorna a resposta decodificada,
// o corpo bruto para auditoria e, em caso de rejeição do vendor, a
// descrição do erro (detalhe vai só para o log, nunca para o cliente).
func (g *Gateway) createPayment(ctx context.Context, body mpPaymentRequest) (*mpPaymentResponse, []byte, string, error) {
	var info mpPaymentResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&info).
		Post("/v1/payments")
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to call payment vendor: %w", err)
	}

	if resp.StatusCode() != 201 {
		return nil, nil, fmt.Sprintf("HTTP %d: %s", resp.StatusCode(), resp.String()), nil
	}

	return &info, resp.Body(), "", nil
}

// priceFor resolve o produto na tabela fixa e calcula o valor total
func priceFor(req PaymentRequest) (Product, decimal.Decimal, error) {
	product, ok := ProductInfo(req.ProductID)
	if !ok {
		return Product{}, decimal.Zero, ErrProductNotFound
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	return product, product.Price.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// payerFor monta o pagador, separando primeiro e último nome
func payerFor(req PaymentRequest) mpPayer {
	parts := strings.Fields(req.CustomerName)
	firstName := req.CustomerName
	lastName := ""
	if len(parts) > 0 {
		firstName = parts[0]
		lastName = strings.Join(parts[1:], " ")
	}

	return mpPayer{
		Email:     req.CustomerEmail,
		FirstName: firstName,
		LastName:  lastName,
		Identification: mpIdentification{
			Type:   DocumentType(req.CustomerDocument),
			Number: NormalizeDocument(req.CustomerDocument),
		},
	}
}

func newExternalReference(productID string) string {
	return fmt.Sprintf("3DSTUFF_%s_%s", productID, time.Now().Format("20060102150405"))
}
