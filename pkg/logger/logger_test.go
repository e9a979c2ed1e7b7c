package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewWriter_Levels(t *testing.T) {
	var buf bytes.Buffer
	require.Equal(t, zerolog.DebugLevel, NewWriter(&buf, "dev", "").GetLevel())
	require.Equal(t, zerolog.InfoLevel, NewWriter(&buf, "prod", "").GetLevel())
	require.Equal(t, zerolog.WarnLevel, NewWriter(&buf, "dev", "warn").GetLevel())
	require.Equal(t, zerolog.InfoLevel, NewWriter(&buf, "prod", "loud").GetLevel())
}

func TestNewWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "prod", "")
	l.Info().Str("k", "v").Msg("hello")
	l.Debug().Msg("dropped")
	require.Contains(t, buf.String(), `"message":"hello"`)
	require.Contains(t, buf.String(), `"k":"v"`)
	require.NotContains(t, buf.String(), "dropped")
}
