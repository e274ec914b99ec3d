package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add letter notes", "add_letter_notes"},
		{"Add-Letter-Notes", "add_letter_notes"},
		{"ADD_LETTER_NOTES", "add_letter_notes"},
		{"add__letter__notes", "add_letter_notes"},
		{"Index 2026", "index_2026"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestListMigrations(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		files, err := ListMigrations(filepath.Join(t.TempDir(), "absent"))
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("orders by version and skips unrelated files", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"000002_create_letter_counters.up.sql",
			"000002_create_letter_counters.down.sql",
			"000001_create_catalogs.up.sql",
			"000010_late.up.sql",
			"README.md",
			"notes.up.sql",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
		}

		files, err := ListMigrations(dir)
		require.NoError(t, err)
		require.Len(t, files, 3)
		assert.Equal(t, uint(1), files[0].Version)
		assert.Equal(t, "create_catalogs", files[0].Name)
		assert.Equal(t, uint(2), files[1].Version)
		assert.Equal(t, uint(10), files[2].Version)
	})

	t.Run("repository migrations are sequential", func(t *testing.T) {
		files, err := ListMigrations(filepath.Join("..", "..", "..", "migrations"))
		require.NoError(t, err)
		require.NotEmpty(t, files)
		for i, f := range files {
			assert.Equal(t, uint(i+1), f.Version, f.BaseName())
			_, err := os.Stat(f.DownPath)
			assert.NoError(t, err, "missing down migration for %s", f.BaseName())
		}
	})
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000003_create_letters.up.sql"), nil, 0o644))

	mf, err := CreateMigration(dir, "Add letter notes", "Free-form notes column")
	require.NoError(t, err)
	assert.Equal(t, uint(4), mf.Version)
	assert.Equal(t, "000004_add_letter_notes", mf.BaseName())

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- add_letter_notes")
	assert.Contains(t, string(up), "-- Free-form notes column")

	_, err = os.Stat(mf.DownPath)
	assert.NoError(t, err)

	next, err := NextVersion(dir)
	require.NoError(t, err)
	assert.Equal(t, uint(5), next)
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}
