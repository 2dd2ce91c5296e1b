package repository

//go:generate mockgen -source=client.go -destination=mocks/client.go -package=mocks

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
	clientsTable = "clients"
)

type ClientRepository interface {
	GetByID(ctx context.Context, ownerID, clientID int64) (*domain.Client, error)
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	List(ctx context.Context, ownerID int64) ([]*domain.Client, error)
	Count(ctx context.Context, ownerID int64) (int64, error)
	Update(ctx context.Context, client *domain.Client) (bool, error)
	Delete(ctx context.Context, ownerID, clientID int64) (bool, error)
}

type clientRepository struct {
	conn *postgres.Connection
}

func NewClientRepository(conn *postgres.Connection) ClientRepository {
	return &clientRepository{
		conn: conn,
	}
}

func (r *clientRepository) GetByID(ctx context.Context, ownerID, clientID int64) (*domain.Client, error) {
	query, args, err := squirrel.
		Select("id", "owner_id", "name", "phone_number", "email", "created_at").
		From(clientsTable).
		Where(squirrel.Eq{"id": clientID, "owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	client, err := scanClient(r.conn.Queryer(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
	}

	return client, nil
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	query, args, err := squirrel.
		Insert(clientsTable).
		Columns("owner_id", "name", "phone_number", "email").
		Values(client.OwnerID, client.Name, client.PhoneNumber, client.Email).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.Queryer(ctx).QueryRowContext(ctx, query, args...).Scan(&client.ID, &client.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao inserir cliente: %w", err)
	}

	return client, nil
}

func (r *clientRepository) List(ctx context.Context, ownerID int64) ([]*domain.Client, error) {
	query, args, err := squirrel.
		Select("id", "owner_id", "name", "phone_number", "email", "created_at").
		From(clientsTable).
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

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
		}
		clients = append(clients, client)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return clients, nil
}

func (r *clientRepository) Count(ctx context.Context, ownerID int64) (int64, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(clientsTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int64
	if err := r.conn.Queryer(ctx).QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar clientes: %w", err)
	}

	return count, nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) (bool, error) {
	query, args, err := squirrel.
		Update(clientsTable).
		Set("name", client.Name).
		Set("phone_number", client.PhoneNumber).
		Set("email", client.Email).
		Where(squirrel.Eq{"id": client.ID, "owner_id": client.OwnerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Queryer(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao atualizar cliente %d: %w", client.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected > 0, nil
}

// Delete falha com violação de chave estrangeira enquanto houver pedidos do cliente
func (r *clientRepository) Delete(ctx context.Context, ownerID, clientID int64) (bool, error) {
	query, args, err := squirrel.
		Delete(clientsTable).
		Where(squirrel.Eq{"id": clientID, "owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Queryer(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao remover cliente %d: %w", clientID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected > 0, nil
}

func scanClient(row rowScanner) (*domain.Client, error) {
	client := &domain.Client{}

	err := row.Scan(
		&client.ID,
		&client.OwnerID,
		&client.Name,
		&client.PhoneNumber,
		&client.Email,
		&client.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return client, nil
}
