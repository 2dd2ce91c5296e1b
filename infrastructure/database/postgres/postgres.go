package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/stockly-api/internal/config"
)

// ErrConflict indica que a transação continuou em conflito após todas as tentativas
var ErrConflict = stderrors.New("conflito de concorrência na transação")

// SQLSTATE que justificam reexecutar a transação inteira
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

type Conn interface {
	Queryer(ctx context.Context) Queryer
	Close() error
	Ping(context.Context) error
	RunInTransaction(context.Context, func(ctx context.Context) error) error
}

type Connection struct {
	*sql.DB
	maxAttempts int
}

func NewConnection(
	ctx context.Context,
	cfg config.Database,
	maxAttempts int,
) (*Connection, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return NewFromDB(db, maxAttempts), nil
}

// NewFromDB envolve um *sql.DB já aberto
func NewFromDB(db *sql.DB, maxAttempts int) *Connection {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Connection{DB: db, maxAttempts: maxAttempts}
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Queryer retorna a transação do contexto ou o pool
func (c *Connection) Queryer(ctx context.Context) Queryer {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return c.DB
}

// RunInTransaction executa fn numa transação propagada pelo contexto.
// Chamadas aninhadas reutilizam a transação externa. Em falha de serialização
// ou deadlock a função inteira é reexecutada, até maxAttempts vezes.
func (c *Connection) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		err = c.runOnce(ctx, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"attempt":      attempt,
			"max_attempts": c.maxAttempts,
		}).WithError(err).Warn("Conflito de concorrência, reexecutando transação")
	}

	return errors.Wrap(ErrConflict, err.Error())
}

func (c *Connection) runOnce(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "erro ao iniciar transação")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !stderrors.Is(rbErr, sql.ErrTxDone) {
			logrus.WithError(rbErr).Error("Erro ao desfazer transação")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "erro ao confirmar transação")
	}

	return nil
}

// IsRetryable identifica falhas de serialização e deadlocks do PostgreSQL
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !stderrors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == codeSerializationFailure || pqErr.Code == codeDeadlockDetected
}

// IsForeignKeyViolation identifica remoções bloqueadas por linhas que ainda referenciam o registro
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, codeForeignKeyViolation)
}

func IsUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	if !stderrors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == code
}
