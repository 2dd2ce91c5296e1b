package reporting

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/stockly-api/internal/domain"
)

type driftKey struct {
	owner int64
	year  int
	month int
}

// AuditLedger compara cada linha do faturamento com a soma das contribuições gravadas
// nos pedidos. Apenas relata; nada é corrigido.
func (s *Service) AuditLedger(ctx context.Context) ([]domain.LedgerDrift, error) {
	totals, err := s.orderRepo.ContributionTotals(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.revenueRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	expected := make(map[driftKey]domain.PeriodTotal, len(totals))
	for _, total := range totals {
		expected[driftKey{total.OwnerID, total.Period.Year, int(total.Period.Month)}] = total
	}

	drifts := make([]domain.LedgerDrift, 0)
	for _, row := range rows {
		key := driftKey{row.OwnerID, row.Period.Year, int(row.Period.Month)}
		want := decimal.Zero
		if total, ok := expected[key]; ok {
			want = total.Amount
			delete(expected, key)
		}

		if !row.Revenue.Equal(want) {
			drifts = append(drifts, domain.LedgerDrift{
				OwnerID:  row.OwnerID,
				Period:   row.Period,
				Ledger:   row.Revenue,
				Expected: want,
			})
		}
	}

	// Contribuições sem linha no faturamento
	for _, total := range totals {
		key := driftKey{total.OwnerID, total.Period.Year, int(total.Period.Month)}
		if _, missing := expected[key]; missing && !total.Amount.IsZero() {
			drifts = append(drifts, domain.LedgerDrift{
				OwnerID:  total.OwnerID,
				Period:   total.Period,
				Ledger:   decimal.Zero,
				Expected: total.Amount,
			})
		}
	}

	return drifts, nil
}
