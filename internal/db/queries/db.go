// Package queries holds the SQL used by the trivia store, written against pgx.
package queries

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Category mirrors a row of the categories table.
type Category struct {
	ID   int32
	Type string
}

// Question mirrors a row of the questions table.
type Question struct {
	ID         int64
	Question   string
	Answer     string
	Difficulty int32
	Category   int32
}
