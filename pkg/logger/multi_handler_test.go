package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultiHandler(t *testing.T) {
	t.Parallel()

	var info, warn bytes.Buffer
	h := newMultiHandler(
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	log := slog.New(h).With("component", "quiz")

	log.Info("only first")
	require.Contains(t, info.String(), "only first")
	require.Contains(t, info.String(), "component=quiz")
	require.Zero(t, warn.Len())

	log.Warn("both")
	require.Contains(t, info.String(), "both")
	require.Contains(t, warn.String(), "both")
}
