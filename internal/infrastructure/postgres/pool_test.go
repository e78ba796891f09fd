package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/pkg/config"
)

func TestPoolConfig_TomaTamañoDeConfig(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db.internal", Port: 5433, User: "app", Password: "p@ss", DBName: "stock", SSLMode: "disable",
		MaxConns: 7, MinConns: 3, MaxConnLifetime: 15 * time.Minute,
	}
	pc, err := poolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, int32(7), pc.MaxConns)
	assert.Equal(t, int32(3), pc.MinConns)
	assert.Equal(t, 15*time.Minute, pc.MaxConnLifetime)
	assert.NotNil(t, pc.AfterConnect)
	// El host no se reescribe: pool y migraciones resuelven el mismo DSN.
	assert.Equal(t, "db.internal", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "p@ss", pc.ConnConfig.Password)
}

func TestPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL: "postgres://u:pw@remote.example:6543/prod?sslmode=disable",
		Host:        "ignored", Port: 5432,
		MaxConns: 5, MinConns: 1, MaxConnLifetime: time.Hour,
	}
	pc, err := poolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "remote.example", pc.ConnConfig.Host)
	assert.Equal(t, "prod", pc.ConnConfig.Database)
	assert.Equal(t, int32(5), pc.MaxConns)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://u:pw@host:notaport/db"})
	assert.ErrorContains(t, err, "parse DSN")
}
