package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenFile_RoundTrip(t *testing.T) {
	t.Parallel()

	f := NewTokenFile(filepath.Join(t.TempDir(), "nested", "session.jwt"))

	got, err := f.Load()
	require.NoError(t, err)
	assert.Empty(t, got, "missing file loads as empty token")

	require.NoError(t, f.Save("abc.def.ghi"))

	info, err := os.Stat(f.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err = f.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", got)

	require.NoError(t, f.Remove())
	require.NoError(t, f.Remove(), "removing twice is not an error")

	got, err = f.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}
