package ordering

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/stockly-api/internal/config"
	"github.com/vfg2006/stockly-api/internal/domain"
	"github.com/vfg2006/stockly-api/pkg/log"
)

// transition aplica a mudança de status ao pedido e ao faturamento. O pedido deve
// estar bloqueado na transação corrente; a gravação do pedido fica com o chamador.
//
//	completed -> outro:   reverte a contribuição gravada
//	outro -> completed:   recalcula o total e aplica no período atual
//	completed -> completed e demais pares: só o status muda
func (s *Service) transition(ctx context.Context, order *domain.Order, to domain.OrderStatus) error {
	from := order.Status

	switch {
	case from.IsCompleted() && !to.IsCompleted():
		contribution, err := s.contributionOf(ctx, order)
		if err != nil {
			return err
		}

		if _, err := s.ledger.Reverse(ctx, order.OwnerID, contribution.Period, contribution.Amount); err != nil {
			return err
		}
		order.Contribution = nil

	case to.IsCompleted() && !from.IsCompleted():
		total, err := s.completionTotal(ctx, order)
		if err != nil {
			return err
		}

		period := domain.PeriodOf(s.now())
		if _, err := s.ledger.Apply(ctx, order.OwnerID, period, total, order.ID); err != nil {
			return err
		}
		order.TotalPrice = total
		order.Contribution = &domain.RevenueContribution{Amount: total, Period: period}
	}

	order.Status = to
	return nil
}

// rebaseContribution troca a contribuição de um pedido concluído cujos itens mudaram.
// O período original é mantido.
func (s *Service) rebaseContribution(ctx context.Context, order *domain.Order, total decimal.Decimal) error {
	contribution, err := s.contributionOf(ctx, order)
	if err != nil {
		return err
	}

	if _, err := s.ledger.Reverse(ctx, order.OwnerID, contribution.Period, contribution.Amount); err != nil {
		return err
	}
	if _, err := s.ledger.Apply(ctx, order.OwnerID, contribution.Period, total, order.ID); err != nil {
		return err
	}

	order.Contribution = &domain.RevenueContribution{Amount: total, Period: contribution.Period}
	return nil
}

// contributionOf retorna a contribuição gravada. Pedidos concluídos antes da gravação
// de contribuições recebem o total recalculado no período atual.
func (s *Service) contributionOf(ctx context.Context, order *domain.Order) (*domain.RevenueContribution, error) {
	if order.Contribution != nil {
		return order.Contribution, nil
	}

	total, err := s.completionTotal(ctx, order)
	if err != nil {
		return nil, err
	}

	contribution := &domain.RevenueContribution{Amount: total, Period: domain.PeriodOf(s.now())}
	s.logger(ctx, order.OwnerID, order.ID).
		WithFields(log.Fields{"period": contribution.Period.String(), "amount": total.StringFixed(2)}).
		Warn("Pedido concluído sem contribuição gravada, revertendo total recalculado no período atual")

	return contribution, nil
}

// completionTotal calcula o valor do pedido conforme a política de preços
func (s *Service) completionTotal(ctx context.Context, order *domain.Order) (decimal.Decimal, error) {
	if s.pricingPolicy == config.PricingPolicyFrozen {
		return domain.SumItems(order.Items), nil
	}

	ids := make([]int64, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, order.OwnerID, ids)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, item := range order.Items {
		product, ok := products[item.ProductID]
		if !ok {
			return decimal.Zero, productNotFound(item.ProductID)
		}
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total, nil
}

func errorIsLedgerMissing(err error) bool {
	return errors.Is(err, ErrLedgerRecordMissing)
}

func (s *Service) logger(ctx context.Context, ownerID, orderID int64) log.Logger {
	return log.ForContext(ctx).WithFields(log.Fields{
		"owner_id": ownerID,
		"order_id": orderID,
	})
}
