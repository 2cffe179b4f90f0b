package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSQLite(t *testing.T) {
	gormDB, err := Connect("sqlite", ":memory:")
	require.NoError(t, err)
	require.NotNil(t, gormDB)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
}

func TestConnectErrors(t *testing.T) {
	_, err := Connect("sqlite", "")
	assert.Error(t, err)

	_, err = Connect("oracle", "some-dsn")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}
