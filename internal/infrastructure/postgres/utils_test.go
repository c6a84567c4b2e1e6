package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/pkg/config"
)

func TestIsCapacityError(t *testing.T) {
	cases := map[string]bool{
		"53100": true,
		"53200": true,
		"54000": true,
		"23505": false,
	}
	for code, want := range cases {
		err := fmt.Errorf("exec: %w", &pgconn.PgError{Code: code})
		assert.Equal(t, want, isCapacityError(err), code)
	}
	assert.False(t, isCapacityError(errors.New("53100")))
}

func TestWrapWrite_CapacidadEsCuota(t *testing.T) {
	assert.NoError(t, wrapWrite("k", nil))

	err := wrapWrite("ordersDB", &pgconn.PgError{Code: "54000"})
	assert.ErrorIs(t, err, repository.ErrQuotaExceeded)

	err = wrapWrite("ordersDB", errors.New("conexión cerrada"))
	assert.NotErrorIs(t, err, repository.ErrQuotaExceeded)
}

func TestLookupIPv4_Literales(t *testing.T) {
	ip, err := lookupIPv4(context.Background(), "10.0.0.7")
	assert.NoError(t, err)
	assert.Equal(t, "10.0.0.7", ip)

	_, err = lookupIPv4(context.Background(), "::1")
	assert.ErrorIs(t, err, errNoIPv4)
}

func TestConnString_DatabaseURLConIPLiteral(t *testing.T) {
	cfg := config.DBConfig{DatabaseURL: "postgres://u:p@127.0.0.1/pedidos?sslmode=disable"}
	assert.Equal(t, "postgres://u:p@127.0.0.1:5432/pedidos?sslmode=disable", connString(cfg))

	cfg = config.DBConfig{Host: "127.0.0.1", Port: 5433, User: "app", DBName: "pedidos", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:@127.0.0.1:5433/pedidos?sslmode=disable", connString(cfg))
}
