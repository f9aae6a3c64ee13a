package search

import (
	"encoding/json"
	"testing"

	"github.com/olivere/elastic/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoQuery(t *testing.T) {
	src, err := videoQuery("cats").Source()
	require.NoError(t, err)
	body, err := json.Marshal(src)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"multi_match"`)
	assert.Contains(t, string(body), `"title^2"`)
	assert.Contains(t, string(body), `"query":"cats"`)
}

func TestUserQuery(t *testing.T) {
	src, err := userQuery("ali").Source()
	require.NoError(t, err)
	body, err := json.Marshal(src)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"match_phrase_prefix"`)
	assert.Contains(t, string(body), `"display_name"`)
}

func TestHitIds(t *testing.T) {
	res := &elastic.SearchResult{Hits: &elastic.SearchHits{Hits: []*elastic.SearchHit{
		{Id: "3"}, {Id: "bogus"}, {Id: "1"},
	}}}
	assert.Equal(t, []int64{3, 1}, hitIds(res))
	assert.Empty(t, hitIds(nil))
}

func TestIndexNames(t *testing.T) {
	c := NewClient(nil, "")
	assert.Equal(t, "tiklite_videos", c.videoIndex)
	assert.Equal(t, "tiklite_users", c.userIndex)
}

func TestMappingsAreJSON(t *testing.T) {
	var v map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(videoMapping), &v))
	require.NoError(t, json.Unmarshal([]byte(userMapping), &v))
}
