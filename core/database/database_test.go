package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "disruptions",
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.ErrorContains(t, err, "unsupported database driver")
		assert.Nil(t, db)
	})

	t.Run("SQLite In Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
		require.NoError(t, err)
		t.Cleanup(func() { _ = Close(db) })

		assert.Equal(t, "sqlite", db.Dialector.Name())
	})
}

func TestConfig_WithCredential(t *testing.T) {
	cfg := Config{Host: "db", User: "root", Password: "secret"}

	got := cfg.WithCredential("reporter")

	assert.Equal(t, "reporter", got.User)
	assert.Equal(t, "reporter", got.Password)
	assert.Equal(t, "db", got.Host)
	assert.Equal(t, "root", cfg.User, "original config must not change")
}

func TestMysqlDSN(t *testing.T) {
	cfg := Config{Host: "db.local", Port: 3307, User: "u", Password: "p@ss", Name: "reports"}

	dsn := mysqlDSN(cfg, 5)

	assert.Equal(t, "u:p%40ss@tcp(db.local:3307)/reports?charset=utf8mb4&parseTime=True&loc=Local&timeout=5s&readTimeout=5s&writeTimeout=5s", dsn)
}
