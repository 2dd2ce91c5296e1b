// Package reporting reúne as leituras agregadas: painel, faturamento anual e auditoria do livro.
package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/stockly-api/infrastructure/repository"
	"github.com/vfg2006/stockly-api/internal/domain"
)

var ErrInvalidYear = errors.New("ano inválido")

// RevenueReader é o lado de leitura do livro de faturamento
type RevenueReader interface {
	Get(ctx context.Context, ownerID int64, period domain.Period) (decimal.Decimal, error)
	ListMonthly(ctx context.Context, ownerID int64, year int) ([]*domain.MonthlyRevenue, error)
}

type Reporter interface {
	Dashboard(ctx context.Context, ownerID int64) (*domain.Dashboard, error)
	RevenueByYear(ctx context.Context, ownerID int64, year int) ([]*domain.MonthlyRevenue, error)
}

type Service struct {
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	orderRepo   repository.OrderRepository
	revenueRepo repository.MonthlyRevenueRepository
	ledger      RevenueReader
	now         func() time.Time
}

func NewService(
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	orderRepo repository.OrderRepository,
	revenueRepo repository.MonthlyRevenueRepository,
	ledger RevenueReader,
) *Service {
	return &Service{
		productRepo: productRepo,
		clientRepo:  clientRepo,
		orderRepo:   orderRepo,
		revenueRepo: revenueRepo,
		ledger:      ledger,
		now:         time.Now,
	}
}

func (s *Service) Dashboard(ctx context.Context, ownerID int64) (*domain.Dashboard, error) {
	totalProducts, totalStock, err := s.productRepo.Summary(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	pending, err := s.orderRepo.CountByStatus(ctx, ownerID, domain.OrderStatusPending)
	if err != nil {
		return nil, err
	}

	totalClients, err := s.clientRepo.Count(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	current := domain.PeriodOf(s.now())

	currentRevenue, err := s.ledger.Get(ctx, ownerID, current)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar faturamento de %s: %w", current, err)
	}

	lastRevenue, err := s.ledger.Get(ctx, ownerID, current.Previous())
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar faturamento de %s: %w", current.Previous(), err)
	}

	return &domain.Dashboard{
		TotalProducts:       totalProducts,
		TotalStock:          totalStock,
		PendingOrders:       pending,
		TotalClients:        totalClients,
		CurrentMonthRevenue: currentRevenue,
		LastMonthRevenue:    lastRevenue,
	}, nil
}

func (s *Service) RevenueByYear(ctx context.Context, ownerID int64, year int) ([]*domain.MonthlyRevenue, error) {
	if year < 1 || year > 9999 {
		return nil, ErrInvalidYear
	}
	return s.ledger.ListMonthly(ctx, ownerID, year)
}
