// Package revenue mantém o faturamento mensal derivado dos pedidos concluídos.
// Toda escrita em monthly_revenue passa por Ledger; as operações esperam estar
// dentro de uma transação aberta pelo chamador.
package revenue

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/stockly-api/infrastructure/repository"
	"github.com/vfg2006/stockly-api/internal/domain"
	"github.com/vfg2006/stockly-api/pkg/log"
)

type Ledger struct {
	repo   repository.MonthlyRevenueRepository
	clamps atomic.Int64
}

func NewLedger(repo repository.MonthlyRevenueRepository) *Ledger {
	return &Ledger{repo: repo}
}

// Apply soma amount ao período do dono e marca orderID como último pedido aplicado
func (l *Ledger) Apply(ctx context.Context, ownerID int64, period domain.Period, amount decimal.Decimal, orderID int64) (*domain.MonthlyRevenue, error) {
	if err := checkArgs(period, amount); err != nil {
		return nil, err
	}

	row, err := l.repo.EnsureForUpdate(ctx, ownerID, period)
	if err != nil {
		return nil, fmt.Errorf("erro ao bloquear faturamento de %s: %w", period, err)
	}

	row.Revenue = row.Revenue.Add(amount)
	row.LastOrderID = &orderID

	if err := l.repo.Save(ctx, row); err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"owner_id":      ownerID,
		"period":        period.String(),
		"ledger_amount": amount.StringFixed(2),
		"order_id":      orderID,
	}).Debug("Faturamento aplicado")

	return row, nil
}

// Reverse subtrai amount do período. Se o resultado ficaria negativo o valor é
// limitado a zero e o evento é registrado.
func (l *Ledger) Reverse(ctx context.Context, ownerID int64, period domain.Period, amount decimal.Decimal) (*domain.MonthlyRevenue, error) {
	if err := checkArgs(period, amount); err != nil {
		return nil, err
	}

	row, err := l.repo.GetForUpdate(ctx, ownerID, period)
	if err != nil {
		return nil, fmt.Errorf("erro ao bloquear faturamento de %s: %w", period, err)
	}
	if row == nil {
		return nil, ErrLedgerRecordMissing
	}

	next := row.Revenue.Sub(amount)
	if next.IsNegative() {
		l.clamps.Add(1)
		log.ForContext(ctx).WithFields(log.Fields{
			"owner_id":       ownerID,
			"period":         period.String(),
			"ledger_revenue": row.Revenue.StringFixed(2),
			"ledger_amount":  amount.StringFixed(2),
			"ledger_deficit": next.Neg().StringFixed(2),
		}).Warn("Reversão maior que o faturamento do período, valor limitado a zero")
		next = decimal.Zero
	}

	row.Revenue = next
	if err := l.repo.Save(ctx, row); err != nil {
		return nil, err
	}

	return row, nil
}

// Forget remove a referência ao pedido excluído. Linhas zeradas que o tinham como
// último pedido são apagadas; nas demais last_order_id é limpo.
func (l *Ledger) Forget(ctx context.Context, ownerID, orderID int64) error {
	rows, err := l.repo.FindByLastOrder(ctx, ownerID, orderID)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if row.Revenue.IsZero() {
			if err := l.repo.Delete(ctx, row.ID); err != nil {
				return err
			}
			continue
		}

		row.LastOrderID = nil
		if err := l.repo.Save(ctx, row); err != nil {
			return err
		}
	}

	return nil
}

// Get retorna o faturamento do período, zero quando não há linha
func (l *Ledger) Get(ctx context.Context, ownerID int64, period domain.Period) (decimal.Decimal, error) {
	row, err := l.repo.Get(ctx, ownerID, period)
	if err != nil {
		return decimal.Zero, err
	}
	if row == nil {
		return decimal.Zero, nil
	}
	return row.Revenue, nil
}

func (l *Ledger) ListMonthly(ctx context.Context, ownerID int64, year int) ([]*domain.MonthlyRevenue, error) {
	return l.repo.ListByYear(ctx, ownerID, year)
}

// ClampCount retorna quantas reversões foram limitadas a zero desde o início do processo
func (l *Ledger) ClampCount() int64 {
	return l.clamps.Load()
}

func checkArgs(period domain.Period, amount decimal.Decimal) error {
	if !period.Valid() {
		return ErrInvalidPeriod
	}
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}
