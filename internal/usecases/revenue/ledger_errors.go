package revenue

import "errors"

var (
	ErrLedgerRecordMissing = errors.New("faturamento do período não encontrado")
	ErrInvalidAmount       = errors.New("valor de faturamento negativo")
	ErrInvalidPeriod       = errors.New("período inválido")
)
