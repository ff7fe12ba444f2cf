package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bibliotek/library-api/config"
)

func TestNewConfig_IndependentInstances(t *testing.T) {
	a := config.NewConfig(config.WithWriteTimeout(time.Minute))
	b := config.NewConfig()

	require.NotSame(t, a, b)
	require.Equal(t, time.Minute, a.Server.WriteTimeout)
	require.Zero(t, b.Server.WriteTimeout)

	// defaults from the environment layer still apply
	require.Equal(t, "8080", a.Server.Port)
	require.Equal(t, "exports", a.ExportDir)
}
