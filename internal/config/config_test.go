package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupFallsBackToDefaultsWhenFileMissing(t *testing.T) {
	Reset()
	ConfFile = filepath.Join(t.TempDir(), "does-not-exist.toml")

	Setup()

	require.Equal(t, 10, Settings.Driver.GamesPerOpponent)
	require.Len(t, Settings.Opponents, 3)
	require.Equal(t, "hard", Settings.Opponents[2].Name)
	require.Equal(t, 4, Settings.Opponents[2].Depth)
	require.Equal(t, 10_000_000, Settings.Model.MaxParams)
}

func TestSetupReadsTOMLOverrides(t *testing.T) {
	Reset()

	path := filepath.Join(t.TempDir(), "compete.toml")
	contents := `
[Driver]
GamesPerOpponent = 25
Seed = 99

[[Opponents]]
Name = "solo"
Depth = 6
Mode = "classic"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	ConfFile = path

	Setup()

	require.Equal(t, 25, Settings.Driver.GamesPerOpponent)
	require.Equal(t, int64(99), Settings.Driver.Seed)
	require.Len(t, Settings.Opponents, 1)
	require.Equal(t, "solo", Settings.Opponents[0].Name)
	require.Equal(t, 6, Settings.Opponents[0].Depth)
	require.Equal(t, "classic", Settings.Opponents[0].Mode)
	// Untouched fields keep their defaults.
	require.Equal(t, 500, Settings.Driver.PlyCap)
}

func TestSetupIsIdempotent(t *testing.T) {
	Reset()
	ConfFile = filepath.Join(t.TempDir(), "does-not-exist.toml")

	Setup()
	Settings.Driver.Seed = 1234
	Setup() // second call must be a no-op

	require.Equal(t, int64(1234), Settings.Driver.Seed)
}
