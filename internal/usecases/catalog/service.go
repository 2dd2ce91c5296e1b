// Package catalog expõe produtos e clientes do dono. Pedidos só leem estes dados.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/vfg2006/stockly-api/infrastructure/database/postgres"
	"github.com/vfg2006/stockly-api/infrastructure/repository"
	"github.com/vfg2006/stockly-api/internal/domain"
)

type Cataloger interface {
	CreateProduct(ctx context.Context, ownerID int64, req *domain.CreateProductRequest) (*domain.Product, error)
	GetProduct(ctx context.Context, ownerID, productID int64) (*domain.Product, error)
	ListProducts(ctx context.Context, ownerID int64) ([]*domain.Product, error)
	CreateClient(ctx context.Context, ownerID int64, req *domain.CreateClientRequest) (*domain.Client, error)
	GetClient(ctx context.Context, ownerID, clientID int64) (*domain.Client, error)
	ListClients(ctx context.Context, ownerID int64) ([]*domain.Client, error)
	UpdateClient(ctx context.Context, ownerID, clientID int64, req *domain.UpdateClientRequest) (*domain.Client, error)
	DeleteClient(ctx context.Context, ownerID, clientID int64) error
}

type Service struct {
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
}

func NewService(productRepo repository.ProductRepository, clientRepo repository.ClientRepository) *Service {
	return &Service{
		productRepo: productRepo,
		clientRepo:  clientRepo,
	}
}

func (s *Service) CreateProduct(ctx context.Context, ownerID int64, req *domain.CreateProductRequest) (*domain.Product, error) {
	if req.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	return s.productRepo.Create(ctx, &domain.Product{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		Color:       req.Color,
		Size:        req.Size,
		Dimensions:  req.Dimensions,
		Description: req.Description,
		Price:       req.Price.Round(2),
		Quantity:    req.Quantity,
	})
}

func (s *Service) GetProduct(ctx context.Context, ownerID, productID int64) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *Service) ListProducts(ctx context.Context, ownerID int64) ([]*domain.Product, error) {
	return s.productRepo.List(ctx, ownerID)
}

func (s *Service) CreateClient(ctx context.Context, ownerID int64, req *domain.CreateClientRequest) (*domain.Client, error) {
	return s.clientRepo.Create(ctx, &domain.Client{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	})
}

func (s *Service) GetClient(ctx context.Context, ownerID, clientID int64) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, ownerID, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}
	return client, nil
}

func (s *Service) ListClients(ctx context.Context, ownerID int64) ([]*domain.Client, error) {
	return s.clientRepo.List(ctx, ownerID)
}

func (s *Service) UpdateClient(ctx context.Context, ownerID, clientID int64, req *domain.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.GetClient(ctx, ownerID, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrEmptyClientName
		}
		client.Name = name
	}
	if req.PhoneNumber != nil {
		client.PhoneNumber = req.PhoneNumber
	}
	if req.Email != nil {
		client.Email = req.Email
	}

	updated, err := s.clientRepo.Update(ctx, client)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrClientNotFound
	}

	return client, nil
}

// DeleteClient recusa a remoção enquanto existirem pedidos do cliente
func (s *Service) DeleteClient(ctx context.Context, ownerID, clientID int64) error {
	deleted, err := s.clientRepo.Delete(ctx, ownerID, clientID)
	if postgres.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %w", ErrClientHasOrders, err)
	}
	if err != nil {
		return err
	}
	if !deleted {
		return ErrClientNotFound
	}
	return nil
}
