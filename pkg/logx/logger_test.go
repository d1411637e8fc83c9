package logx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelForVerbosity(t *testing.T) {
	require.Equal(t, "warn", LevelForVerbosity(0))
	require.Equal(t, "info", LevelForVerbosity(1))
	require.Equal(t, "debug", LevelForVerbosity(2))
	require.Equal(t, "debug", LevelForVerbosity(3))
}

func TestWithConfig_FileLogging(t *testing.T) {
	dir := t.TempDir()
	err := WithConfig(&LoggingConfig{
		Level:          "debug",
		ConsoleLogging: true,
		FileLogging:    true,
		Directory:      dir,
		Filename:       "gg.log",
		MaxSize:        1,
		MaxBackups:     1,
		MaxAge:         1,
	}, map[string]string{"component": "test"})
	require.NoError(t, err)

	As().Info().Msg("hello")
}

func TestWithConfig_InvalidLevel(t *testing.T) {
	err := WithConfig(&LoggingConfig{Level: "not-a-level"}, nil)
	require.Error(t, err)
}
