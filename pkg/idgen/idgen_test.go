package idgen_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/pkg/idgen"
)

func TestUUIDv7_SinColisiones(t *testing.T) {
	const n = 10_000
	seen := make(map[string]struct{}, n)
	gen := idgen.UUIDv7{}
	for i := 0; i < n; i++ {
		id := gen.NewID()
		_, dup := seen[id]
		require.False(t, dup, "id repetido: %s", id)
		seen[id] = struct{}{}
	}
}

func TestUUIDv7_Version(t *testing.T) {
	u, err := uuid.Parse(idgen.Default.NewID())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), u.Version())
}

func TestUUIDv7_OrdenTemporal(t *testing.T) {
	gen := idgen.UUIDv7{}
	a := gen.NewID()
	b := gen.NewID()
	assert.Less(t, a, b, "los UUIDv7 del mismo proceso deben ser crecientes")
}
