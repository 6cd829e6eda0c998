package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefault(t *testing.T) {
	almanac := Default()

	assert.Equal(t, 45, almanac.Fetcher.TimeoutSeconds)
	assert.Equal(t, 2, almanac.Fetcher.PauseSeconds)
	assert.Equal(t, "local", almanac.Repository.Type)
	assert.Equal(t, ".", almanac.Repository.Local.Path)

	require.Len(t, almanac.Fetcher.Endpoints, 2)
	assert.Equal(t, "d0", almanac.Fetcher.Endpoints[0].ID)
	assert.Equal(t, "forecast_today.json", almanac.Fetcher.Endpoints[0].File)
	assert.Equal(t, "d1", almanac.Fetcher.Endpoints[1].ID)
	assert.Equal(t, "forecast_tomorrow.json", almanac.Fetcher.Endpoints[1].File)
}

func TestNewAlmanacFromFile(t *testing.T) {
	t.Run("valid config overrides defaults", func(t *testing.T) {
		almanac, err := NewAlmanacFromFile("testdata/almanac.yml")
		require.NoError(t, err)
		require.NotNil(t, almanac)

		assert.Equal(t, "almanac-staging/1.0", almanac.Fetcher.UserAgent)
		assert.Equal(t, 1, almanac.Fetcher.PauseSeconds)
		// unset fields keep their defaults
		assert.Equal(t, 45, almanac.Fetcher.TimeoutSeconds)

		require.Len(t, almanac.Fetcher.Endpoints, 1)
		assert.Equal(t, "today.json", almanac.Fetcher.Endpoints[0].File)
		assert.Equal(t, "/var/lib/almanac", almanac.Repository.Local.Path)
		assert.Equal(t, ":9090", almanac.Server.Addr)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewAlmanacFromFile("testdata/does-not-exist.yml")
		assert.Error(t, err)
	})
}

func TestInitializeRunner(t *testing.T) {
	t.Run("local repository", func(t *testing.T) {
		r, err := InitializeRunner(Default(), zap.NewNop())
		require.NoError(t, err)
		assert.NotNil(t, r)
	})

	t.Run("unknown repository type", func(t *testing.T) {
		almanac := Default()
		almanac.Repository.Type = "ftp"

		_, err := InitializeRunner(almanac, zap.NewNop())
		assert.Error(t, err)
	})
}
