package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadrehq/cadre/core/config"
)

type serverCfg struct {
	Port int    `env:"TEST_CFG_PORT" envDefault:"8080"`
	Name string `env:"TEST_CFG_NAME" envDefault:"cadre"`
}

type requiredCfg struct {
	Token string `env:"TEST_CFG_TOKEN,required"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		config.Reset()

		var cfg serverCfg
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "cadre", cfg.Name)
	})

	t.Run("reads environment", func(t *testing.T) {
		config.Reset()
		t.Setenv("TEST_CFG_PORT", "9090")

		var cfg serverCfg
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 9090, cfg.Port)
	})

	t.Run("caches per type", func(t *testing.T) {
		config.Reset()
		t.Setenv("TEST_CFG_PORT", "7070")

		var first serverCfg
		require.NoError(t, config.Load(&first))

		// Changing the environment after the first load has no effect.
		t.Setenv("TEST_CFG_PORT", "1111")
		var second serverCfg
		require.NoError(t, config.Load(&second))
		assert.Equal(t, first, second)
	})

	t.Run("missing required variable fails", func(t *testing.T) {
		config.Reset()

		var cfg requiredCfg
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TEST_CFG_TOKEN")
	})

	t.Run("rejects non pointer targets", func(t *testing.T) {
		config.Reset()

		require.ErrorIs(t, config.Load(serverCfg{}), config.ErrNilConfig)
		require.ErrorIs(t, config.Load(nil), config.ErrNilConfig)
	})
}

func TestMustLoad(t *testing.T) {
	config.Reset()

	assert.Panics(t, func() {
		var cfg requiredCfg
		config.MustLoad(&cfg)
	})
}
