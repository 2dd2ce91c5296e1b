package ordering

import (
	"errors"
	"fmt"

	"github.com/vfg2006/stockly-api/infrastructure/database/postgres"
	"github.com/vfg2006/stockly-api/internal/usecases/revenue"
	"github.com/vfg2006/stockly-api/pkg/apiErrors"
)

var (
	ErrOrderNotFound       = errors.New("pedido não encontrado")
	ErrClientNotFound      = errors.New("cliente não encontrado")
	ErrProductNotFound     = errors.New("produto não encontrado")
	ErrEmptyOrder          = errors.New("pedido deve ter ao menos um item")
	ErrInvalidQuantity     = errors.New("quantidade deve ser maior ou igual a 1")
	ErrInvalidStatus       = errors.New("status inválido")
	ErrLedgerRecordMissing = revenue.ErrLedgerRecordMissing
	ErrConflict            = postgres.ErrConflict
	ErrInternal            = errors.New("erro ao processar pedido")
)

// OrderError é um erro com contexto adicional para a API
type OrderError struct {
	Err     error          // Erro base
	Kind    apiErrors.Kind // Natureza do erro
	Code    string         // Código de erro para API
	Details string         // Detalhes adicionais
}

func (e *OrderError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *OrderError) Unwrap() error {
	return e.Err
}

func newOrderError(baseErr error, code string, details string) *OrderError {
	return &OrderError{
		Err:     baseErr,
		Kind:    apiErrors.KindOf(code),
		Code:    code,
		Details: details,
	}
}

func orderNotFound(orderID int64) *OrderError {
	return newOrderError(ErrOrderNotFound, apiErrors.ErrOrderNotFound, fmt.Sprintf("pedido %d", orderID))
}

func clientNotFound(clientID int64) *OrderError {
	return newOrderError(ErrClientNotFound, apiErrors.ErrClientNotFound, fmt.Sprintf("cliente %d", clientID))
}

func productNotFound(productID int64) *OrderError {
	return newOrderError(ErrProductNotFound, apiErrors.ErrProductNotFound, fmt.Sprintf("produto %d", productID))
}

func invalidQuantity(productID int64, quantity int) *OrderError {
	return newOrderError(ErrInvalidQuantity, apiErrors.ErrInvalidQuantity, fmt.Sprintf("produto %d com quantidade %d", productID, quantity))
}

func invalidStatus(status string) *OrderError {
	return newOrderError(ErrInvalidStatus, apiErrors.ErrInvalidStatus, fmt.Sprintf("%q (use pending, completed ou shipped)", status))
}

// classify converte falhas de infraestrutura em OrderError; erros já tipados passam intactos
func classify(err error) error {
	if err == nil {
		return nil
	}

	var orderErr *OrderError
	if errors.As(err, &orderErr) {
		return err
	}

	switch {
	case errors.Is(err, revenue.ErrLedgerRecordMissing):
		return &OrderError{Err: err, Kind: apiErrors.KindNotFound, Code: apiErrors.ErrLedgerRecordMissing}
	case errors.Is(err, postgres.ErrConflict):
		return &OrderError{Err: err, Kind: apiErrors.KindInternal, Code: apiErrors.ErrConcurrency}
	}

	return &OrderError{Err: fmt.Errorf("%w: %w", ErrInternal, err), Kind: apiErrors.KindInternal, Code: apiErrors.ErrDatabaseOperation}
}

// CodeOf retorna o código de API do erro; erros não tipados são internos
func CodeOf(err error) string {
	var orderErr *OrderError
	if errors.As(err, &orderErr) {
		return orderErr.Code
	}
	return apiErrors.ErrInternalServer
}
