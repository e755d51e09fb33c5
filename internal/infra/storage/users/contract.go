package users

import (
	"context"
	"database/sql"
)

// DBExecutor минимальный интерфейс над *sql.DB, нужный репозиторию
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
