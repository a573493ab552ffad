package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mediatrack/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("heartbeat", slog.String("kind", "play"), slog.Int("n", 2))
	require.Equal(t, "heartbeat", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "kind", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestSessionID(t *testing.T) {
	attr := logger.SessionID("abc")
	assert.Equal(t, "session_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())

	assert.True(t, logger.SessionID("").Equal(slog.Attr{}))
}

func TestDomainAttrs(t *testing.T) {
	assert.Equal(t, "event", logger.Event("av.play").Key)
	assert.Equal(t, int64(1500), logger.Position(1500).Value.Int64())
	assert.Equal(t, 5*time.Second, logger.Interval(5*time.Second).Value.Duration())
	assert.Equal(t, int64(3), logger.Count(3).Value.Int64())
	assert.Equal(t, "avmedia", logger.Component("avmedia").Value.String())
}
