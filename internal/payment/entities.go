package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status dos pagamentos no Mercado Pago. O vendor emite estados
// intermediários além desses; eles passam como strings opacas.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCancelled = "cancelled"
	StatusRejected  = "rejected"
)

// Métodos de pagamento aceitos
const (
	MethodPix        = "pix"
	MethodCreditCard = "credit_card"
	MethodBoleto     = "boleto"
)

// Product representa um item da tabela fixa de preços.
// Os preços nunca vêm do cliente.
type Product struct {
	Name        string
	Price       decimal.Decimal
	Description string
}

// Products é a tabela fixa de produtos vendidos pela loja
var Products = map[string]Product{
	"1": {Name: "Miniatura de Personagem", Price: decimal.NewFromFloat(45.00), Description: "Miniaturas detalhadas de personagens famosos"},
	"2": {Name: "Suporte para Celular", Price: decimal.NewFromFloat(25.00), Description: "Suporte ergonômico e resistente"},
	"3": {Name: "Chaveiros Personalizados", Price: decimal.NewFromFloat(15.00), Description: "Chaveiros únicos personalizados"},
	"4": {Name: "Peças Decorativas", Price: decimal.NewFromFloat(35.00), Description: "Objetos decorativos modernos"},
	"5": {Name: "Porta-Canetas Geométrico", Price: decimal.NewFromFloat(30.00), Description: "Organizador de mesa com design único"},
	"6": {Name: "Luminária Personalizada", Price: decimal.NewFromFloat(80.00), Description: "Luminária LED com design exclusivo"},
}

// ProductInfo busca um produto na tabela fixa de preços
func ProductInfo(productID string) (Product, bool) {
	product, ok := Products[productID]
	return product, ok
}

// PaymentRequest representa a requisição para criar um pagamento
type PaymentRequest struct {
	ProductID        string `json:"product_id" binding:"required"`
	Quantity         int    `json:"quantity"`
	CustomerEmail    string `json:"customer_email" binding:"required,email"`
	CustomerDocument string `json:"customer_document" binding:"required"`
	CustomerName     string `json:"customer_name" binding:"required"`
	PaymentMethod    string `json:"payment_method" binding:"required"`
	Installments     int    `json:"installments"`
	CardToken        string `json:"card_token"`
}

// Result é o envelope comum dos resultados de criação de pagamento
type Result struct {
	Success           bool            `json:"success"`
	PaymentID         string          `json:"payment_id,omitempty"`
	Status            string          `json:"status,omitempty"`
	StatusDetail      string          `json:"status_detail,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	ExternalReference string          `json:"external_reference,omitempty"`
	Error             string          `json:"error,omitempty"`

	// resposta bruta do vendor, persistida para auditoria
	raw []byte
}

// RawPayload retorna a resposta bruta do vendor
func (r Result) RawPayload() []byte {
	return r.raw
}

// PixResult é o resultado de um pagamento PIX
type PixResult struct {
	Result
	QRCode       string `json:"qr_code,omitempty"`
	QRCodeBase64 string `json:"qr_code_base64,omitempty"`
	TicketURL    string `json:"ticket_url,omitempty"`
	ExpiresAt    string `json:"expires_at,omitempty"`
}

// CardResult é o resultado de um pagamento com cartão de crédito
type CardResult struct {
	Result
	Installments int `json:"installments,omitempty"`
}

// BoletoResult é o resultado de um pagamento com boleto
type BoletoResult struct {
	Result
	TicketURL string `json:"ticket_url,omitempty"`
	Barcode   string `json:"barcode,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

// StatusResult é o retorno da consulta de status no vendor
type StatusResult struct {
	Success           bool            `json:"success"`
	PaymentID         string          `json:"payment_id"`
	Status            string          `json:"status"`
	StatusDetail      string          `json:"status_detail"`
	PaymentMethod     string          `json:"payment_method"`
	Amount            decimal.Decimal `json:"amount"`
	NetAmount         decimal.Decimal `json:"net_amount"`
	Currency          string          `json:"currency"`
	CreatedAt         time.Time       `json:"created_at"`
	ApprovedAt        *time.Time      `json:"approved_at,omitempty"`
	ExternalReference string          `json:"external_reference,omitempty"`
	Error             string          `json:"error,omitempty"`
}

// InstallmentOption representa uma opção de parcelamento
type InstallmentOption struct {
	Installments       int             `json:"installments"`
	InstallmentAmount  decimal.Decimal `json:"installment_amount"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	RecommendedMessage string          `json:"recommended_message"`
}

// Record representa um registro de pagamento na tabela mercado_pago_payments
type Record struct {
	ID                int64           `json:"id" db:"id"`
	PaymentID         string          `json:"payment_id" db:"payment_id"`
	ExternalReference string          `json:"external_reference" db:"external_reference"`
	Status            string          `json:"status" db:"status"`
	StatusDetail      string          `json:"status_detail" db:"status_detail"`
	PaymentMethodID   string          `json:"payment_method_id" db:"payment_method_id"`
	PaymentType       string          `json:"payment_type" db:"payment_type"`
	Amount            decimal.Decimal `json:"amount" db:"amount"`
	NetAmount         decimal.Decimal `json:"net_amount" db:"net_amount"`
	Currency          string          `json:"currency" db:"currency"`
	Installments      int             `json:"installments" db:"installments"`
	CustomerEmail     string          `json:"customer_email" db:"customer_email"`
	CustomerDocument  string          `json:"customer_document" db:"customer_document"`
	CustomerName      string          `json:"customer_name" db:"customer_name"`
	ProductID         string          `json:"product_id" db:"product_id"`
	ProductName       string          `json:"product_name" db:"product_name"`
	Description       string          `json:"description" db:"description"`
	PaymentData       []byte          `json:"-" db:"payment_data"`
	QRCode            string          `json:"qr_code,omitempty" db:"qr_code"`
	TicketURL         string          `json:"ticket_url,omitempty" db:"ticket_url"`
	Barcode           string          `json:"barcode,omitempty" db:"barcode"`
	InventoryUpdated  bool            `json:"inventory_updated" db:"inventory_updated"`
	InventoryReleased bool            `json:"inventory_released" db:"inventory_released"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
	ApprovedAt        *time.Time      `json:"approved_at,omitempty" db:"approved_at"`
	CancelledAt       *time.Time      `json:"cancelled_at,omitempty" db:"cancelled_at"`
}

// StatusSummary agrega pagamentos por status para o resumo de vendas
type StatusSummary struct {
	Status      string          `json:"status"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
