// Package ordering implementa o ciclo de vida dos pedidos e mantém o
// faturamento mensal sincronizado com as mudanças de status.
package ordering

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/stockly-api/infrastructure/repository"
	"github.com/vfg2006/stockly-api/internal/config"
	"github.com/vfg2006/stockly-api/internal/domain"
	"github.com/vfg2006/stockly-api/pkg/apiErrors"
	"github.com/vfg2006/stockly-api/pkg/log"
	"github.com/vfg2006/stockly-api/pkg/utils"
)

// Transactor abre uma transação propagada pelo contexto
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// RevenueLedger é o único caminho de escrita do faturamento mensal
type RevenueLedger interface {
	Apply(ctx context.Context, ownerID int64, period domain.Period, amount decimal.Decimal, orderID int64) (*domain.MonthlyRevenue, error)
	Reverse(ctx context.Context, ownerID int64, period domain.Period, amount decimal.Decimal) (*domain.MonthlyRevenue, error)
	Forget(ctx context.Context, ownerID, orderID int64) error
}

type Orderer interface {
	CreateOrder(ctx context.Context, ownerID int64, req *domain.CreateOrderRequest) (*domain.Order, error)
	UpdateOrder(ctx context.Context, ownerID, orderID int64, req *domain.UpdateOrderRequest) (*domain.Order, error)
	ChangeStatus(ctx context.Context, ownerID, orderID int64, status string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, ownerID, orderID int64) error
	GetOrder(ctx context.Context, ownerID, orderID int64) (*domain.Order, error)
	ListOrders(ctx context.Context, ownerID int64, status *string) ([]*domain.Order, error)
}

type Service struct {
	tx            Transactor
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	clientRepo    repository.ClientRepository
	ledger        RevenueLedger
	pricingPolicy string
	now           func() time.Time
	newReference  func() (string, error)
}

func NewService(
	cfg *config.Config,
	tx Transactor,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	ledger RevenueLedger,
) *Service {
	policy := config.PricingPolicyLive
	if cfg != nil && cfg.Orders.PricingPolicy != "" {
		policy = cfg.Orders.PricingPolicy
	}

	return &Service{
		tx:            tx,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		clientRepo:    clientRepo,
		ledger:        ledger,
		pricingPolicy: policy,
		now:           time.Now,
		newReference:  utils.GenerateReference,
	}
}

// WithClock substitui o relógio usado para definir o período de faturamento
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithReferenceGenerator substitui o gerador de códigos de pedido
func (s *Service) WithReferenceGenerator(fn func() (string, error)) *Service {
	s.newReference = fn
	return s
}

func (s *Service) CreateOrder(ctx context.Context, ownerID int64, req *domain.CreateOrderRequest) (*domain.Order, error) {
	client, err := s.clientRepo.GetByID(ctx, ownerID, req.ClientID)
	if err != nil {
		return nil, classify(err)
	}
	if client == nil {
		return nil, clientNotFound(req.ClientID)
	}

	items, total, err := s.buildItems(ctx, ownerID, req.Items)
	if err != nil {
		return nil, err
	}

	status := domain.OrderStatusPending
	if req.Status != nil {
		parsed, ok := domain.ParseOrderStatus(*req.Status)
		if !ok {
			return nil, invalidStatus(*req.Status)
		}
		status = parsed
	}

	reference, err := s.newReference()
	if err != nil {
		return nil, classify(fmt.Errorf("erro ao gerar referência do pedido: %w", err))
	}

	order := &domain.Order{
		OwnerID:    ownerID,
		ClientID:   req.ClientID,
		Reference:  reference,
		Status:     status,
		Items:      items,
		TotalPrice: total,
	}
	if status.IsCompleted() {
		order.Contribution = &domain.RevenueContribution{Amount: total, Period: domain.PeriodOf(s.now())}
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}

		if order.Contribution != nil {
			_, err := s.ledger.Apply(ctx, ownerID, order.Contribution.Period, order.Contribution.Amount, order.ID)
			return err
		}

		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	s.logger(ctx, ownerID, order.ID).WithField("status", order.Status).Info("Pedido criado")

	return order, nil
}

func (s *Service) UpdateOrder(ctx context.Context, ownerID, orderID int64, req *domain.UpdateOrderRequest) (*domain.Order, error) {
	var newStatus *domain.OrderStatus
	if req.Status != nil {
		parsed, ok := domain.ParseOrderStatus(*req.Status)
		if !ok {
			return nil, invalidStatus(*req.Status)
		}
		newStatus = &parsed
	}

	var order *domain.Order
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetForUpdate(ctx, ownerID, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return orderNotFound(orderID)
		}

		if req.ClientID != nil {
			client, err := s.clientRepo.GetByID(ctx, ownerID, *req.ClientID)
			if err != nil {
				return err
			}
			if client == nil {
				return clientNotFound(*req.ClientID)
			}
		}

		items, total, err := s.buildItems(ctx, ownerID, req.Items)
		if err != nil {
			return err
		}

		// Nenhuma escrita acontece antes deste ponto
		if err := s.orderRepo.ReplaceItems(ctx, order.ID, items); err != nil {
			return err
		}

		if order.Status.IsCompleted() {
			if err := s.rebaseContribution(ctx, order, total); err != nil {
				return err
			}
		}

		order.Items = items
		order.TotalPrice = total
		if req.ClientID != nil {
			order.ClientID = *req.ClientID
		}

		if newStatus != nil {
			if err := s.transition(ctx, order, *newStatus); err != nil {
				return err
			}
		}

		return s.orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, classify(err)
	}

	s.logger(ctx, ownerID, order.ID).Info("Pedido atualizado")

	return order, nil
}

func (s *Service) ChangeStatus(ctx context.Context, ownerID, orderID int64, status string) (*domain.Order, error) {
	newStatus, ok := domain.ParseOrderStatus(status)
	if !ok {
		return nil, invalidStatus(status)
	}

	var order *domain.Order
	var oldStatus domain.OrderStatus
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetForUpdate(ctx, ownerID, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return orderNotFound(orderID)
		}

		oldStatus = order.Status
		if err := s.transition(ctx, order, newStatus); err != nil {
			return err
		}

		return s.orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, classify(err)
	}

	s.logger(ctx, ownerID, order.ID).
		WithFields(log.Fields{"from": oldStatus, "to": newStatus}).
		Info("Status do pedido alterado")

	return order, nil
}

func (s *Service) DeleteOrder(ctx context.Context, ownerID, orderID int64) error {
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetForUpdate(ctx, ownerID, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return orderNotFound(orderID)
		}

		if order.Status.IsCompleted() {
			contribution, err := s.contributionOf(ctx, order)
			if err != nil {
				return err
			}

			_, err = s.ledger.Reverse(ctx, ownerID, contribution.Period, contribution.Amount)
			if err != nil {
				if !errorIsLedgerMissing(err) {
					return err
				}
				s.logger(ctx, ownerID, orderID).
					WithField("period", contribution.Period.String()).
					Warn("Pedido concluído sem faturamento no período, exclusão segue sem reversão")
			}
		}

		if err := s.ledger.Forget(ctx, ownerID, order.ID); err != nil {
			return err
		}

		deleted, err := s.orderRepo.Delete(ctx, ownerID, order.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return orderNotFound(orderID)
		}

		return nil
	})
	if err != nil {
		return classify(err)
	}

	s.logger(ctx, ownerID, orderID).Info("Pedido excluído")

	return nil
}

func (s *Service) GetOrder(ctx context.Context, ownerID, orderID int64) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, ownerID, orderID)
	if err != nil {
		return nil, classify(err)
	}
	if order == nil {
		return nil, orderNotFound(orderID)
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, ownerID int64, status *string) ([]*domain.Order, error) {
	filters := domain.OrderFilters{}
	if status != nil && *status != "" {
		parsed, ok := domain.ParseOrderStatus(*status)
		if !ok {
			return nil, invalidStatus(*status)
		}
		filters.Status = &parsed
	}

	orders, err := s.orderRepo.List(ctx, ownerID, filters)
	if err != nil {
		return nil, classify(err)
	}
	return orders, nil
}

// buildItems valida a lista na ordem recebida e captura o preço atual de cada produto
func (s *Service) buildItems(ctx context.Context, ownerID int64, reqItems []domain.OrderItemRequest) ([]*domain.OrderItem, decimal.Decimal, error) {
	if len(reqItems) == 0 {
		return nil, decimal.Zero, newOrderError(ErrEmptyOrder, apiErrors.ErrEmptyOrder, "")
	}

	ids := make([]int64, 0, len(reqItems))
	for _, item := range reqItems {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, ownerID, ids)
	if err != nil {
		return nil, decimal.Zero, err
	}

	items := make([]*domain.OrderItem, 0, len(reqItems))
	for _, req := range reqItems {
		if req.Quantity < 1 {
			return nil, decimal.Zero, invalidQuantity(req.ProductID, req.Quantity)
		}

		product, ok := products[req.ProductID]
		if !ok {
			return nil, decimal.Zero, productNotFound(req.ProductID)
		}

		items = append(items, &domain.OrderItem{
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			UnitPrice: product.Price,
		})
	}

	return items, domain.SumItems(items), nil
}
