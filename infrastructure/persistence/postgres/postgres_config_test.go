package postgres

import (
	"testing"
	"time"

	"meusmedicamentos/infrastructure/persistence/mysql"

	"github.com/stretchr/testify/assert"
)

func TestConfig_DSN(t *testing.T) {
	c := &Config{Host: "db", Port: "5432", Username: "meds", Password: "s3cret", Database: "meus_medicamentos"}
	assert.Equal(t, "postgres://meds:s3cret@db:5432/meus_medicamentos?sslmode=disable&TimeZone=UTC", c.DSN())

	c.SSLMode = "require"
	assert.Contains(t, c.DSN(), "sslmode=require")
}

func TestConfig_ApplyDefaults(t *testing.T) {
	c := &Config{MaxIdleConns: 100}
	c.applyDefaults()

	assert.Equal(t, mysql.DefaultMaxOpenConns, c.MaxOpenConns)
	assert.Equal(t, c.MaxOpenConns, c.MaxIdleConns)
	assert.Equal(t, mysql.DefaultConnMaxLifetime, c.ConnMaxLifetime)
	assert.Greater(t, c.ConnMaxLifetime, time.Duration(0))
}
