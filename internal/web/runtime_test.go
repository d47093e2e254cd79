package web_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/internal/web"
)

func TestApp_Run_ShutdownHooks(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	var order []string
	err := web.New().Run(ctx, "127.0.0.1:0",
		web.ShutdownTimeout(time.Second),
		web.ShutdownHook(func(context.Context) error { order = append(order, "first"); return nil }),
		web.ShutdownHook(func(context.Context) error { order = append(order, "second"); return nil }),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestApp_Run_HookError(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	boom := errors.New("close failed")
	var ran bool
	err := web.New().Run(ctx, "127.0.0.1:0",
		web.ShutdownHook(func(context.Context) error { return boom }),
		web.ShutdownHook(func(context.Context) error { ran = true; return nil }),
	)
	require.ErrorIs(t, err, boom)
	assert.True(t, ran, "later hooks still run")
}

func TestApp_Run_ListenError(t *testing.T) {
	t.Parallel()

	err := web.New().Run(context.Background(), "256.0.0.1:bad")
	require.Error(t, err)
}
