// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

//go:generate mockgen -source=product.go -destination=mocks/product.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/stockly-api/infrastructure/database/postgres"
	"github.com/vfg2006/stockly-api/internal/domain"
)

const (
	productsTable = "products"
)

var productColumns = []string{
	"id", "owner_id", "name", "color", "size", "dimensions", "description", "price", "quantity", "created_at",
}

type ProductRepository interface {
	GetByID(ctx context.Context, ownerID, productID int64) (*domain.Product, error)
	GetByIDs(ctx context.Context, ownerID int64, productIDs []int64) (map[int64]*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	List(ctx context.Context, ownerID int64) ([]*domain.Product, error)
	Summary(ctx context.Context, ownerID int64) (count int64, stock int64, err error)
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

func (r *productRepository) GetByID(ctx context.Context, ownerID, productID int64) (*domain.Product, error) {
	query, args, err := squirrel.
		Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"id": productID, "owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	product, err := scanProduct(r.conn.Queryer(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear produto: %w", err)
	}

	return product, nil
}

// GetByIDs busca os produtos do dono em uma única consulta; ids de outros donos ficam de fora
func (r *productRepository) GetByIDs(ctx context.Context, ownerID int64, productIDs []int64) (map[int64]*domain.Product, error) {
	products := make(map[int64]*domain.Product, len(productIDs))
	if len(productIDs) == 0 {
		return products, nil
	}

	query, args, err := squirrel.
		Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"owner_id": ownerID, "id": productIDs}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Queryer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear produto: %w", err)
		}
		products[product.ID] = product
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return products, nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query, args, err := squirrel.
		Insert(productsTable).
		Columns("owner_id", "name", "color", "size", "dimensions", "description", "price", "quantity").
		Values(
			product.OwnerID,
			product.Name,
			product.Color,
			product.Size,
			product.Dimensions,
			product.Description,
			product.Price,
			product.Quantity,
		).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.Queryer(ctx).QueryRowContext(ctx, query, args...).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao inserir produto: %w", err)
	}

	return product, nil
}

func (r *productRepository) List(ctx context.Context, ownerID int64) ([]*domain.Product, error) {
	query, args, err := squirrel.
		Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Queryer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear produto: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return products, nil
}

// Summary retorna a quantidade de produtos e o estoque total do dono
func (r *productRepository) Summary(ctx context.Context, ownerID int64) (int64, int64, error) {
	query, args, err := squirrel.
		Select("COUNT(*)", "COALESCE(SUM(quantity), 0)").
		From(productsTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count, stock int64
	if err := r.conn.Queryer(ctx).QueryRowContext(ctx, query, args...).Scan(&count, &stock); err != nil {
		return 0, 0, fmt.Errorf("erro ao resumir produtos: %w", err)
	}

	return count, stock, nil
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}

	err := row.Scan(
		&product.ID,
		&product.OwnerID,
		&product.Name,
		&product.Color,
		&product.Size,
		&product.Dimensions,
		&product.Description,
		&product.Price,
		&product.Quantity,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return product, nil
}
