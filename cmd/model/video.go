package model

import "time"

type Video struct {
	VideoId      int64     `json:"video_id,string" gorm:"primaryKey;autoIncrement:false"`
	UserId       int64     `json:"user_id,string" gorm:"index"`
	Title        string    `json:"title" gorm:"type:varchar(100)"`
	Description  string    `json:"description" gorm:"type:varchar(500)"`
	VideoUrl     string    `json:"video_url" gorm:"type:varchar(512)"`
	CoverUrl     string    `json:"cover_url" gorm:"type:varchar(512)"`
	ObjectName   string    `json:"-" gorm:"type:varchar(255)"`
	Duration     int64     `json:"duration"`
	ViewCount    int64     `json:"view_count" gorm:"not null;default:0;index"`
	LikeCount    int64     `json:"like_count" gorm:"not null;default:0"`
	CommentCount int64     `json:"comment_count" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time `json:"updated_at"`
	Author       *User     `json:"author,omitempty" gorm:"foreignKey:UserId;references:UserId"`
}

func (Video) TableName() string { return "videos" }

// VideoInfo 带观看者视角点赞状态的视频
type VideoInfo struct {
	*Video
	IsLiked bool `json:"is_liked"`
}
