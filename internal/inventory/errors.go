package inventory

import "errors"

var (
	// ErrStockNotFound indica que não existe registro de estoque para o produto
	ErrStockNotFound = errors.New("stock record not found")

	// ErrInsufficientStock indica que a quantidade disponível não cobre a reserva
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidQuantity indica uma quantidade não positiva
	ErrInvalidQuantity = errors.New("invalid quantity")
)
