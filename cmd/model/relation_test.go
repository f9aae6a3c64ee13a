package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRelationKind(t *testing.T) {
	for _, s := range []string{"video_like", "comment_like", "follow"} {
		k, err := ParseRelationKind(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(k))
	}
	_, err := ParseRelationKind("block")
	assert.Error(t, err)
}
