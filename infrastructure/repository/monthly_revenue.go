package repository

//go:generate mockgen -source=monthly_revenue.go -destination=mocks/monthly_revenue.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/stockly-api/infrastructure/database/postgres"
	"github.com/vfg2006/stockly-api/internal/domain"
)

const (
	monthlyRevenueTable = "monthly_revenue"
)

var monthlyRevenueColumns = []string{
	"id", "owner_id", "year", "month", "revenue", "last_order_id", "updated_at",
}

// MonthlyRevenueRepository é o acesso bruto ao agregado; só o livro de faturamento deve usá-lo para escrita
type MonthlyRevenueRepository interface {
	EnsureForUpdate(ctx context.Context, ownerID int64, period domain.Period) (*domain.MonthlyRevenue, error)
	GetForUpdate(ctx context.Context, ownerID int64, period domain.Period) (*domain.MonthlyRevenue, error)
	Get(ctx context.Context, ownerID int64, period domain.Period) (*domain.MonthlyRevenue, error)
	Save(ctx context.Context, row *domain.MonthlyRevenue) error
	Delete(ctx context.Context, id int64) error
	FindByLastOrder(ctx context.Context, ownerID, orderID int64) ([]*domain.MonthlyRevenue, error)
	ListByYear(ctx context.Context, ownerID int64, year int) ([]*domain.MonthlyRevenue, error)
	ListAll(ctx context.Context) ([]*domain.MonthlyRevenue, error)
}

type monthlyRevenueRepository struct {
	conn *postgres.Connection
}

func NewMonthlyRevenueRepository(conn *postgres.Connection) MonthlyRevenueRepository {
	return &monthlyRevenueRepository{
		conn: conn,
	}
}

// EnsureForUpdate cria a linha do período se ainda não existir e a retorna bloqueada.
// Duas transações concorrentes sobre o mesmo período ficam serializadas no SELECT.
func (r *monthlyRevenueRepository) EnsureForUpdate(ctx context.Context, ownerID int64, period domain.Period) (*domain.MonthlyRevenue, error) {
	query, args, err := squirrel.
		Insert(monthlyRevenueTable).
		Columns("owner_id", "year", "month", "revenue").
		Values(ownerID, period.Year, int(period.Month), 0).
		Suffix("ON CONFLICT (owner_id, year, month) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Queryer(ctx).ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao criar faturamento de %s: %w", period, err)
	}

	row, err := r.GetForUpdate(ctx, ownerID, period)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("faturamento de %s não encontrado após insert", period)
	}

	return row, nil
}

func (r *monthlyRevenueRepository) GetForUpdate(ctx context.Context, ownerID int64, period domain.Period) (*domain.MonthlyRevenue, error) {
	return r.get(ctx, ownerID, period, true)
}

func (r *monthlyRevenueRepository) Get(ctx context.Context, ownerID int64, period domain.Period) (*domain.MonthlyRevenue, error) {
	return r.get(ctx, ownerID, period, false)
}

func (r *monthlyRevenueRepository) get(ctx context.Context, ownerID int64, period domain.Period, lock bool) (*domain.MonthlyRevenue, error) {
	builder := squirrel.
		Select(monthlyRevenueColumns...).
		From(monthlyRevenueTable).
		Where(squirrel.Eq{"owner_id": ownerID, "year": period.Year, "month": int(period.Month)}).
		PlaceholderFormat(squirrel.Dollar)
	if lock {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row, err := scanMonthlyRevenue(r.conn.Queryer(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear faturamento: %w", err)
	}

	return row, nil
}

func (r *monthlyRevenueRepository) Save(ctx context.Context, row *domain.MonthlyRevenue) error {
	query, args, err := squirrel.
		Update(monthlyRevenueTable).
		Set("revenue", row.Revenue).
		Set("last_order_id", row.LastOrderID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": row.ID}).
		Suffix("RETURNING updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.Queryer(ctx).QueryRowContext(ctx, query, args...).Scan(&row.UpdatedAt); err != nil {
		return fmt.Errorf("erro ao salvar faturamento %d: %w", row.ID, err)
	}

	return nil
}

func (r *monthlyRevenueRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := squirrel.
		Delete(monthlyRevenueTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Queryer(ctx).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao remover faturamento %d: %w", id, err)
	}

	return nil
}

// FindByLastOrder retorna, bloqueadas, as linhas cujo último pedido aplicado é orderID
func (r *monthlyRevenueRepository) FindByLastOrder(ctx context.Context, ownerID, orderID int64) ([]*domain.MonthlyRevenue, error) {
	query, args, err := squirrel.
		Select(monthlyRevenueColumns...).
		From(monthlyRevenueTable).
		Where(squirrel.Eq{"owner_id": ownerID, "last_order_id": orderID}).
		OrderBy("year", "month").
		Suffix("FOR UPDATE").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.list(ctx, query, args)
}

func (r *monthlyRevenueRepository) ListByYear(ctx context.Context, ownerID int64, year int) ([]*domain.MonthlyRevenue, error) {
	query, args, err := squirrel.
		Select(monthlyRevenueColumns...).
		From(monthlyRevenueTable).
		Where(squirrel.Eq{"owner_id": ownerID, "year": year}).
		OrderBy("month ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.list(ctx, query, args)
}

// ListAll é usado pela auditoria, que percorre todos os donos
func (r *monthlyRevenueRepository) ListAll(ctx context.Context) ([]*domain.MonthlyRevenue, error) {
	query, args, err := squirrel.
		Select(monthlyRevenueColumns...).
		From(monthlyRevenueTable).
		OrderBy("owner_id", "year", "month").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.list(ctx, query, args)
}

func (r *monthlyRevenueRepository) list(ctx context.Context, query string, args []any) ([]*domain.MonthlyRevenue, error) {
	rows, err := r.conn.Queryer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	result := make([]*domain.MonthlyRevenue, 0)
	for rows.Next() {
		row, err := scanMonthlyRevenue(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear faturamento: %w", err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}

func scanMonthlyRevenue(row rowScanner) (*domain.MonthlyRevenue, error) {
	revenue := &domain.MonthlyRevenue{}
	var month int
	var lastOrderID sql.NullInt64

	err := row.Scan(
		&revenue.ID,
		&revenue.OwnerID,
		&revenue.Period.Year,
		&month,
		&revenue.Revenue,
		&lastOrderID,
		&revenue.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	revenue.Period.Month = time.Month(month)
	if lastOrderID.Valid {
		id := lastOrderID.Int64
		revenue.LastOrderID = &id
	}

	return revenue, nil
}
