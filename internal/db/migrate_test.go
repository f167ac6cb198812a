package db

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@localhost:5432/app?sslmode=disable", "pgx5://u:p@localhost:5432/app?sslmode=disable"},
		{"postgresql://u@db/app", "pgx5://u@db/app"},
		{"pgx5://u@db/app", "pgx5://u@db/app"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MigrationURL(tt.in))
	}
}

func TestMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationsFS, "migrations/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}
