// Package postgres implements the store contracts with raw SQL over pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DBTX is the connection surface the stores need. *pgxpool.Pool and
// pgxmock.PgxPoolIface both satisfy it.
type DBTX interface {
	querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// withTx runs fn inside a transaction. Any error from fn rolls back.
func withTx(ctx context.Context, db DBTX, fn func(tx pgx.Tx) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return apperrors.NewDatabaseError(fmt.Errorf("begin transaction: %w", err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				logger.GetLogger().Warnw("Transaction rollback failed", "error", rbErr)
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return apperrors.NewDatabaseError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// mapError converts pgx and Postgres errors into application errors.
// Errors that already are *AppError pass through unchanged.
func mapError(err error, entity string, id interface{}) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound(entity, id)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return apperrors.NewConflictError(entity+" already exists", pgErr.ConstraintName)
		case "23503": // foreign_key_violation
			return apperrors.ValidationFailed("referenced record does not exist", pgErr.ConstraintName)
		case "23502", "23514", "22P02": // not_null, check, invalid_text_representation
			return apperrors.ValidationFailed("invalid "+entity, pgErr.Message)
		}
	}

	return apperrors.NewDatabaseError(err)
}

func notFoundIfNoRows(tag pgconn.CommandTag, entity string, id interface{}) error {
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(entity, id)
	}
	return nil
}
