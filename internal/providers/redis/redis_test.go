package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorHook_LogsFailedCommands(t *testing.T) {
	// Arrange
	core, logs := observer.New(zap.DebugLevel)
	hook := errorHook{logger: zap.New(core).Sugar()}
	ctx := context.Background()

	failing := hook.ProcessHook(func(context.Context, redis.Cmder) error {
		return errors.New("connection reset")
	})
	succeeding := hook.ProcessHook(func(context.Context, redis.Cmder) error {
		return nil
	})
	missing := hook.ProcessHook(func(context.Context, redis.Cmder) error {
		return redis.Nil
	})

	// Act
	errFailing := failing(ctx, redis.NewIntCmd(ctx, "publish", "kanban:board_events", "board_changed"))
	errSucceeding := succeeding(ctx, redis.NewStatusCmd(ctx, "ping"))
	errMissing := missing(ctx, redis.NewStringCmd(ctx, "get", "absent"))

	// Assert
	assert.EqualError(t, errFailing, "connection reset")
	assert.NoError(t, errSucceeding)
	assert.ErrorIs(t, errMissing, redis.Nil)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "Redis command failed", entries[0].Message)
		assert.Equal(t, "publish", entries[0].ContextMap()["command"])
	}
}
