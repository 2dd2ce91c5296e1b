package repository

//go:generate mockgen -source=order.go -destination=mocks/order.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/stockly-api/infrastructure/database/postgres"
	"github.com/vfg2006/stockly-api/internal/domain"
)

const (
	ordersTable     = "orders"
	orderItemsTable = "order_items"
)

var orderColumns = []string{
	"id", "owner_id", "client_id", "reference", "status", "total_price",
	"revenue_amount", "revenue_year", "revenue_month", "created_at", "updated_at",
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, ownerID, orderID int64) (*domain.Order, error)
	GetForUpdate(ctx context.Context, ownerID, orderID int64) (*domain.Order, error)
	List(ctx context.Context, ownerID int64, filters domain.OrderFilters) ([]*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	ReplaceItems(ctx context.Context, orderID int64, items []*domain.OrderItem) error
	Delete(ctx context.Context, ownerID, orderID int64) (bool, error)
	CountByStatus(ctx context.Context, ownerID int64, status domain.OrderStatus) (int64, error)
	ContributionTotals(ctx context.Context) ([]domain.PeriodTotal, error)
}

type orderRepository struct {
	conn *postgres.Connection
}

func NewOrderRepository(conn *postgres.Connection) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

// Create insere o pedido e seus itens; deve ser chamado dentro de RunInTransaction
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	amount, year, month := contributionValues(order.Contribution)

	query, args, err := squirrel.
		Insert(ordersTable).
		Columns("owner_id", "client_id", "reference", "status", "total_price", "revenue_amount", "revenue_year", "revenue_month").
		Values(order.OwnerID, order.ClientID, order.Reference, string(order.Status), order.TotalPrice, amount, year, month).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.Queryer(ctx).QueryRowContext(ctx, query, args...).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao inserir pedido: %w", err)
	}

	return r.insertItems(ctx, order.ID, order.Items)
}

func (r *orderRepository) GetByID(ctx context.Context, ownerID, orderID int64) (*domain.Order, error) {
	return r.get(ctx, ownerID, orderID, false)
}

// GetForUpdate bloqueia a linha do pedido até o fim da transação corrente
func (r *orderRepository) GetForUpdate(ctx context.Context, ownerID, orderID int64) (*domain.Order, error) {
	return r.get(ctx, ownerID, orderID, true)
}

func (r *orderRepository) get(ctx context.Context, ownerID, orderID int64, lock bool) (*domain.Order, error) {
	builder := squirrel.
		Select(orderColumns...).
		From(ordersTable).
		Where(squirrel.Eq{"id": orderID, "owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar)
	if lock {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	order, err := scanOrder(r.conn.Queryer(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
	}

	items, err := r.loadItems(ctx, []int64{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]

	return order, nil
}

func (r *orderRepository) List(ctx context.Context, ownerID int64, filters domain.OrderFilters) ([]*domain.Order, error) {
	builder := squirrel.
		Select(orderColumns...).
		From(ordersTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filters.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": string(*filters.Status)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Queryer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
		}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		order.Items = items[order.ID]
	}

	return orders, nil
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	amount, year, month := contributionValues(order.Contribution)

	query, args, err := squirrel.
		Update(ordersTable).
		Set("client_id", order.ClientID).
		Set("status", string(order.Status)).
		Set("total_price", order.TotalPrice).
		Set("revenue_amount", amount).
		Set("revenue_year", year).
		Set("revenue_month", month).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": order.ID, "owner_id": order.OwnerID}).
		Suffix("RETURNING updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.Queryer(ctx).QueryRowContext(ctx, query, args...).Scan(&order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao atualizar pedido %d: %w", order.ID, err)
	}

	return nil
}

// ReplaceItems remove todos os itens do pedido e insere a nova lista
func (r *orderRepository) ReplaceItems(ctx context.Context, orderID int64, items []*domain.OrderItem) error {
	query, args, err := squirrel.
		Delete(orderItemsTable).
		Where(squirrel.Eq{"order_id": orderID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Queryer(ctx).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao remover itens do pedido %d: %w", orderID, err)
	}

	return r.insertItems(ctx, orderID, items)
}

// Delete remove os itens e o pedido do dono; retorna false se nada foi removido
func (r *orderRepository) Delete(ctx context.Context, ownerID, orderID int64) (bool, error) {
	itemsQuery, itemsArgs, err := squirrel.
		Delete(orderItemsTable).
		Where(squirrel.Expr("order_id IN (SELECT id FROM orders WHERE id = ? AND owner_id = ?)", orderID, ownerID)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Queryer(ctx).ExecContext(ctx, itemsQuery, itemsArgs...); err != nil {
		return false, fmt.Errorf("erro ao remover itens do pedido %d: %w", orderID, err)
	}

	orderQuery, orderArgs, err := squirrel.
		Delete(ordersTable).
		Where(squirrel.Eq{"id": orderID, "owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Queryer(ctx).ExecContext(ctx, orderQuery, orderArgs...)
	if err != nil {
		return false, fmt.Errorf("erro ao remover pedido %d: %w", orderID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *orderRepository) CountByStatus(ctx context.Context, ownerID int64, status domain.OrderStatus) (int64, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(ordersTable).
		Where(squirrel.Eq{"owner_id": ownerID, "status": string(status)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int64
	if err := r.conn.Queryer(ctx).QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar pedidos: %w", err)
	}

	return count, nil
}

// ContributionTotals soma as contribuições registradas nos pedidos por dono e mês
func (r *orderRepository) ContributionTotals(ctx context.Context) ([]domain.PeriodTotal, error) {
	query, args, err := squirrel.
		Select("owner_id", "revenue_year", "revenue_month", "SUM(revenue_amount)").
		From(ordersTable).
		Where(squirrel.NotEq{"revenue_amount": nil}).
		GroupBy("owner_id", "revenue_year", "revenue_month").
		OrderBy("owner_id", "revenue_year", "revenue_month").
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

	totals := make([]domain.PeriodTotal, 0)
	for rows.Next() {
		var total domain.PeriodTotal
		var month int
		if err := rows.Scan(&total.OwnerID, &total.Period.Year, &month, &total.Amount); err != nil {
			return nil, fmt.Errorf("erro ao escanear contribuição: %w", err)
		}
		total.Period.Month = time.Month(month)
		totals = append(totals, total)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return totals, nil
}

func (r *orderRepository) insertItems(ctx context.Context, orderID int64, items []*domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	builder := squirrel.
		Insert(orderItemsTable).
		Columns("order_id", "product_id", "quantity", "unit_price").
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	for _, item := range items {
		builder = builder.Values(orderID, item.ProductID, item.Quantity, item.UnitPrice)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Queryer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao inserir itens do pedido %d: %w", orderID, err)
	}
	defer rows.Close()

	// RETURNING devolve as linhas na ordem do VALUES
	i := 0
	for rows.Next() {
		if i >= len(items) {
			return fmt.Errorf("insert de itens retornou mais linhas que o esperado")
		}
		if err := rows.Scan(&items[i].ID); err != nil {
			return fmt.Errorf("erro ao escanear id do item: %w", err)
		}
		items[i].OrderID = orderID
		i++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderIDs []int64) (map[int64][]*domain.OrderItem, error) {
	items := make(map[int64][]*domain.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return items, nil
	}

	query, args, err := squirrel.
		Select("id", "order_id", "product_id", "quantity", "unit_price").
		From(orderItemsTable).
		Where(squirrel.Eq{"order_id": orderIDs}).
		OrderBy("order_id ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Queryer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar itens dos pedidos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := &domain.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("erro ao escanear item do pedido: %w", err)
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return items, nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	order := &domain.Order{}
	var status string
	var amount decimal.NullDecimal
	var year, month sql.NullInt32

	err := row.Scan(
		&order.ID,
		&order.OwnerID,
		&order.ClientID,
		&order.Reference,
		&status,
		&order.TotalPrice,
		&amount,
		&year,
		&month,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatus(status)
	if amount.Valid && year.Valid && month.Valid {
		order.Contribution = &domain.RevenueContribution{
			Amount: amount.Decimal,
			Period: domain.Period{Year: int(year.Int32), Month: time.Month(month.Int32)},
		}
	}

	return order, nil
}

func contributionValues(c *domain.RevenueContribution) (any, any, any) {
	if c == nil {
		return nil, nil, nil
	}
	return c.Amount, c.Period.Year, int(c.Period.Month)
}
