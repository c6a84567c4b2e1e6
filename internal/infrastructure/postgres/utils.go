package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier lo cumplen *pgxpool.Pool y pgx.Tx; los repositorios funcionan con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Códigos SQLSTATE de capacidad: disk_full, out_of_memory, program_limit_exceeded.
const (
	sqlStateDiskFull        = "53100"
	sqlStateOutOfMemory     = "53200"
	sqlStateProgramLimitExc = "54000"
)

// isCapacityError verifica si el servidor rechazó la escritura por falta de espacio o límites.
func isCapacityError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateDiskFull, sqlStateOutOfMemory, sqlStateProgramLimitExc:
			return true
		}
	}
	return false
}
