package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/stockly-api/infrastructure/database/postgres"
	"github.com/vfg2006/stockly-api/internal/domain"
)

func TestUserRepository_UpdateUser(t *testing.T) {
	t.Run("Atualiza dados e carimba updated_at", func(t *testing.T) {
		conn, mock := newMockConn(t)
		repo := NewUserRepository(conn)
		now := time.Now()

		mock.ExpectQuery(`UPDATE users SET name = \$1, email = \$2, phone_number = \$3, updated_at = NOW\(\) WHERE id = \$4 RETURNING updated_at`).
			WithArgs("Ana", "ana@x.com", nil, int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

		user := &domain.User{ID: 7, Name: "Ana", Email: "ana@x.com"}
		require.NoError(t, repo.UpdateUser(context.Background(), user))

		assert.Equal(t, now, user.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("E-mail duplicado preserva o código do banco", func(t *testing.T) {
		conn, mock := newMockConn(t)
		repo := NewUserRepository(conn)

		mock.ExpectQuery(`UPDATE users SET`).WillReturnError(&pq.Error{Code: "23505"})

		err := repo.UpdateUser(context.Background(), &domain.User{ID: 7, Name: "Ana", Email: "b@x.com"})

		assert.True(t, postgres.IsUniqueViolation(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
