package search

import (
	"context"
	"fmt"
	"strconv"

	"TikLite.com/config"
	"TikLite.com/pkg/constants"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/olivere/elastic/v7"
)

type VideoDoc struct {
	VideoID     int64  `json:"video_id"`
	UserID      int64  `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ViewCount   int64  `json:"view_count"`
	CreatedAt   int64  `json:"created_at"`
}

type UserDoc struct {
	UserID      int64  `json:"user_id"`
	UserName    string `json:"user_name"`
	DisplayName string `json:"display_name"`
}

const videoMapping = `{
  "mappings": {
    "properties": {
      "video_id":    {"type": "long"},
      "user_id":     {"type": "long"},
      "title":       {"type": "text"},
      "description": {"type": "text"},
      "view_count":  {"type": "long"},
      "created_at":  {"type": "date", "format": "epoch_millis"}
    }
  }
}`

const userMapping = `{
  "mappings": {
    "properties": {
      "user_id":      {"type": "long"},
      "user_name":    {"type": "text"},
      "display_name": {"type": "text"}
    }
  }
}`

type Client struct {
	es         *elastic.Client
	videoIndex string
	userIndex  string
}

// Init 未配置elasticsearch时返回nil，搜索回退到SQL
func Init() (*Client, error) {
	c := config.ConfigInfo.Elasticsearch
	if len(c.Urls) == 0 {
		return nil, nil
	}
	es, err := elastic.NewClient(
		elastic.SetURL(c.Urls...),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return NewClient(es, c.IndexPrefix), nil
}

func NewClient(es *elastic.Client, prefix string) *Client {
	if prefix == "" {
		prefix = "tiklite"
	}
	return &Client{
		es:         es,
		videoIndex: prefix + constants.VideoIndexSuffix,
		userIndex:  prefix + constants.UserIndexSuffix,
	}
}

// EnsureIndices 索引不存在时按mapping创建
func (c *Client) EnsureIndices(ctx context.Context) error {
	for name, mapping := range map[string]string{c.videoIndex: videoMapping, c.userIndex: userMapping} {
		exists, err := c.es.IndexExists(name).Do(ctx)
		if err != nil {
			return fmt.Errorf("check index %s: %w", name, err)
		}
		if exists {
			continue
		}
		if _, err := c.es.CreateIndex(name).BodyString(mapping).Do(ctx); err != nil {
			return fmt.Errorf("create index %s: %w", name, err)
		}
		hlog.CtxInfof(ctx, "Created elasticsearch index: %s", name)
	}
	return nil
}

func (c *Client) IndexVideo(ctx context.Context, doc *VideoDoc) error {
	_, err := c.es.Index().Index(c.videoIndex).Id(strconv.FormatInt(doc.VideoID, 10)).BodyJson(doc).Do(ctx)
	return err
}

func (c *Client) DeleteVideo(ctx context.Context, videoID int64) error {
	_, err := c.es.Delete().Index(c.videoIndex).Id(strconv.FormatInt(videoID, 10)).Do(ctx)
	if elastic.IsNotFound(err) {
		return nil
	}
	return err
}

func (c *Client) IndexUser(ctx context.Context, doc *UserDoc) error {
	_, err := c.es.Index().Index(c.userIndex).Id(strconv.FormatInt(doc.UserID, 10)).BodyJson(doc).Do(ctx)
	return err
}

func videoQuery(text string) elastic.Query {
	return elastic.NewMultiMatchQuery(text, "title^2", "description").
		Type("best_fields").
		Fuzziness("AUTO")
}

func userQuery(text string) elastic.Query {
	return elastic.NewBoolQuery().
		Should(
			elastic.NewMatchPhrasePrefixQuery("user_name", text),
			elastic.NewMatchPhrasePrefixQuery("display_name", text),
		).
		MinimumNumberShouldMatch(1)
}

// SearchVideos 返回按相关度排序的视频ID
func (c *Client) SearchVideos(ctx context.Context, text string, size int) ([]int64, error) {
	return c.searchIds(ctx, c.videoIndex, videoQuery(text), size)
}

// SearchUsers 返回按相关度排序的用户ID
func (c *Client) SearchUsers(ctx context.Context, text string, size int) ([]int64, error) {
	return c.searchIds(ctx, c.userIndex, userQuery(text), size)
}

func (c *Client) searchIds(ctx context.Context, index string, q elastic.Query, size int) ([]int64, error) {
	res, err := c.es.Search().Index(index).Query(q).Size(size).FetchSource(false).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}
	return hitIds(res), nil
}

func hitIds(res *elastic.SearchResult) []int64 {
	ids := make([]int64, 0)
	if res == nil || res.Hits == nil {
		return ids
	}
	for _, hit := range res.Hits.Hits {
		id, err := strconv.ParseInt(hit.Id, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func (c *Client) Ping(ctx context.Context) error {
	_, err := c.es.IndexExists(c.videoIndex).Do(ctx)
	return err
}
