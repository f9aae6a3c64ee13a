package model

import (
	"fmt"
	"time"
)

// Follow 关注关系，follower关注following
type Follow struct {
	FollowerId  int64     `json:"follower_id,string" gorm:"uniqueIndex:uk_follow,priority:1"`
	FollowingId int64     `json:"following_id,string" gorm:"uniqueIndex:uk_follow,priority:2;index"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Follow) TableName() string { return "follows" }

type RelationKind string

const (
	KindVideoLike   RelationKind = "video_like"
	KindCommentLike RelationKind = "comment_like"
	KindFollow      RelationKind = "follow"
)

func (k RelationKind) Valid() bool {
	switch k {
	case KindVideoLike, KindCommentLike, KindFollow:
		return true
	}
	return false
}

func ParseRelationKind(s string) (RelationKind, error) {
	k := RelationKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown relation kind %q", s)
	}
	return k, nil
}

// RelationState toggle之后的最终状态，count为服务端权威计数
type RelationState struct {
	Active bool  `json:"active"`
	Count  int64 `json:"count"`
}
