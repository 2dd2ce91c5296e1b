package catalog

import "errors"

var (
	ErrProductNotFound = errors.New("produto não encontrado")
	ErrClientNotFound  = errors.New("cliente não encontrado")
	ErrNegativePrice   = errors.New("preço não pode ser negativo")
	ErrEmptyClientName = errors.New("nome do cliente não pode ser vazio")
	ErrClientHasOrders = errors.New("cliente possui pedidos vinculados")
)
