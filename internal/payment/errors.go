package payment

import "errors"

var (
	// ErrProductNotFound indica um product_id fora da tabela fixa de preços
	ErrProductNotFound = errors.New("product not found")

	// ErrPaymentNotFound indica que o pagamento não existe no banco ou no vendor
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrInvalidPaymentMethod indica um método fora de pix/credit_card/boleto
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrCardTokenRequired indica pagamento com cartão sem token
	ErrCardTokenRequired = errors.New("card token is required")

	// ErrInvalidDocument indica CPF ou CNPJ com dígitos verificadores inválidos
	ErrInvalidDocument = errors.New("invalid customer document")
)
