package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDSN(t *testing.T) {
	got, err := normalizeDSN("user:pass@tcp(db:3306)/clockify")
	require.NoError(t, err)
	assert.Contains(t, got, "parseTime=true")
	assert.Contains(t, got, "multiStatements=true")
	assert.Contains(t, got, "tcp(db:3306)/clockify")

	_, err = normalizeDSN("not a dsn")
	assert.ErrorContains(t, err, "invalid DSN")
}

func TestOpenRequiresDSN(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.ErrorContains(t, err, "CLOCKIFY_MYSQL_DSN")
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "p1", nullable("p1"))
}
