package model

import "time"

type Comment struct {
	CommentId int64     `json:"comment_id,string" gorm:"primaryKey;autoIncrement:false"`
	UserId    int64     `json:"user_id,string" gorm:"index"`
	VideoId   int64     `json:"video_id,string" gorm:"index:idx_video_created,priority:1"`
	Content   string    `json:"content" gorm:"type:varchar(500)"`
	LikeCount int64     `json:"like_count" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_video_created,priority:2"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:UserId;references:UserId"`
}

func (Comment) TableName() string { return "comments" }

type VideoLike struct {
	UserId    int64     `gorm:"uniqueIndex:uk_video_like,priority:1"`
	VideoId   int64     `gorm:"uniqueIndex:uk_video_like,priority:2;index"`
	CreatedAt time.Time `json:"created_at"`
}

func (VideoLike) TableName() string { return "video_likes" }

type CommentLike struct {
	UserId    int64     `gorm:"uniqueIndex:uk_comment_like,priority:1"`
	CommentId int64     `gorm:"uniqueIndex:uk_comment_like,priority:2;index"`
	CreatedAt time.Time `json:"created_at"`
}

func (CommentLike) TableName() string { return "comment_likes" }

type CommentInfo struct {
	*Comment
	IsLiked bool `json:"is_liked"`
}
