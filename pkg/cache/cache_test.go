package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "videos:explore:30", exploreKey(30))
	assert.Equal(t, "video:views:42", viewKey(42))
}

func TestDisabledVideoCache(t *testing.T) {
	ctx := context.Background()
	var nilManager *VideoCacheManager
	ids, ok, err := nilManager.GetExplore(ctx, 30)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, ids)

	m := NewVideoCacheManager(nil)
	assert.NoError(t, m.CacheExplore(ctx, 30, []int64{1, 2}))
	assert.NoError(t, m.InvalidateExplore(ctx))
	_, ok, err = m.GetExplore(ctx, 30)
	require.NoError(t, err)
	assert.False(t, ok)
}
