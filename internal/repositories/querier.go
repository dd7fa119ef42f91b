package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier - общее подмножество pgxpool.Pool и pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// pick возвращает транзакцию, если она есть, иначе пул.
func pick(pool *pgxpool.Pool, tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return pool
}
