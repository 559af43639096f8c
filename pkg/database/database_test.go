package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormLogger "gorm.io/gorm/logger"
)

func TestDialector(t *testing.T) {
	cfg := Config{Host: "db", Port: "3306", User: "u", Password: "p", Name: "saldo"}

	t.Run("mysql is the default driver", func(t *testing.T) {
		d, err := Dialector(cfg)
		require.NoError(t, err)
		assert.Equal(t, "mysql", d.Name())
	})

	t.Run("postgres", func(t *testing.T) {
		pg := cfg
		pg.Driver = DriverPostgres
		d, err := Dialector(pg)
		require.NoError(t, err)
		assert.Equal(t, "postgres", d.Name())
	})

	t.Run("unknown driver", func(t *testing.T) {
		bad := cfg
		bad.Driver = "oracle"
		_, err := Dialector(bad)
		assert.Error(t, err)
	})
}

func TestDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "u", Password: "p", Name: "saldo"}

	assert.Equal(t, "u:p@tcp(db:5432)/saldo?charset=utf8mb4&parseTime=True&loc=Local", mysqlDSN(cfg))
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=saldo sslmode=disable TimeZone=UTC", postgresDSN(cfg))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, gormLogger.Silent, parseLevel("silent"))
	assert.Equal(t, gormLogger.Info, parseLevel("INFO"))
	assert.Equal(t, gormLogger.Warn, parseLevel(""))
}
