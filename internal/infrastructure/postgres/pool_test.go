package postgres

import (
	"testing"

	"github.com/jhoicas/caja-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoolConfig_DesdeCampos(t *testing.T) {
	pc, err := newPoolConfig(config.DBConfig{
		Host: "db.local", Port: 5433, User: "caja", Password: "p@ss", DBName: "caja", SSLMode: "disable", MaxConns: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, "db.local", pc.ConnConfig.Host, "el host se usa tal cual, sin resolver")
	assert.EqualValues(t, 5433, pc.ConnConfig.Port)
	assert.Equal(t, "p@ss", pc.ConnConfig.Password)
	assert.EqualValues(t, 4, pc.MaxConns)
	assert.NotNil(t, pc.AfterConnect, "cada conexión registra el codec decimal")
}

func TestNewPoolConfig_DatabaseURLYMaxConnsPorDefecto(t *testing.T) {
	pc, err := newPoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@pg.example:5432/caja?sslmode=disable"})
	require.NoError(t, err)

	assert.Equal(t, "pg.example", pc.ConnConfig.Host)
	assert.EqualValues(t, defaultMaxConns, pc.MaxConns)
	assert.EqualValues(t, 1, pc.MinConns)
}

func TestNewPoolConfig_DSNInvalido(t *testing.T) {
	_, err := newPoolConfig(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.ErrorContains(t, err, "parse DSN")
}
