package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Period identifica um mês do calendário (UTC)
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func PeriodOf(t time.Time) Period {
	t = t.UTC()
	return Period{Year: t.Year(), Month: t.Month()}
}

// Previous retorna o mês anterior
func (p Period) Previous() Period {
	return PeriodOf(time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0))
}

func (p Period) Valid() bool {
	return p.Year > 0 && p.Month >= time.January && p.Month <= time.December
}

// String no formato mm-yyyy
func (p Period) String() string {
	return fmt.Sprintf("%02d-%04d", int(p.Month), p.Year)
}

// MonthlyRevenue é a linha agregada de faturamento por (dono, ano, mês)
type MonthlyRevenue struct {
	ID          int64           `json:"id"`
	OwnerID     int64           `json:"-"`
	Period      Period          `json:"period"`
	Revenue     decimal.Decimal `json:"revenue"`
	LastOrderID *int64          `json:"last_order_id,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// LedgerDrift descreve a diferença entre o agregado e a soma das contribuições
type LedgerDrift struct {
	OwnerID  int64           `json:"owner_id"`
	Period   Period          `json:"period"`
	Ledger   decimal.Decimal `json:"ledger"`
	Expected decimal.Decimal `json:"expected"`
}

func (d LedgerDrift) Difference() decimal.Decimal {
	return d.Ledger.Sub(d.Expected)
}

type Dashboard struct {
	TotalProducts       int64           `json:"total_products"`
	TotalStock          int64           `json:"total_stock"`
	PendingOrders       int64           `json:"pending_orders"`
	TotalClients        int64           `json:"total_clients"`
	CurrentMonthRevenue decimal.Decimal `json:"current_month_revenue"`
	LastMonthRevenue    decimal.Decimal `json:"last_month_revenue"`
}

// PeriodTotal é a soma das contribuições de pedidos concluídos de um dono em um mês
type PeriodTotal struct {
	OwnerID int64
	Period  Period
	Amount  decimal.Decimal
}
