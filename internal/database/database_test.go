package database

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	names, err := fs.Glob(Migrations, "migrations/*.sql")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"migrations/000001_tree_snapshot.up.sql",
		"migrations/000001_tree_snapshot.down.sql",
	}, names)

	up, err := fs.ReadFile(Migrations, "migrations/000001_tree_snapshot.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS tree_entry")
}
