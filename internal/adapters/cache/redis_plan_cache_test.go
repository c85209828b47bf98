package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPlanCache(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	c, err := DialRedisPlanCache(ctx, mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	_, ok, err := c.Get(ctx, "v1:abc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "v1:abc", []byte(`{"items":[]}`), time.Minute))

	got, ok, err := c.Get(ctx, "v1:abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"items":[]}`, string(got))
	assert.True(t, mr.Exists(planKeyPrefix+"v1:abc"))

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, "v1:abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisPlanCacheSkipsZeroTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	c, err := DialRedisPlanCache(ctx, mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Put(ctx, "k", []byte("x"), 0))
	assert.False(t, mr.Exists(planKeyPrefix+"k"))

	_, _, err = c.Get(ctx, " ")
	assert.Error(t, err)
}
