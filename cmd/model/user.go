package model

import "time"

type User struct {
	UserId         int64     `json:"user_id,string" gorm:"primaryKey;autoIncrement:false"`
	UserName       string    `json:"user_name" gorm:"type:varchar(30);uniqueIndex"`
	DisplayName    string    `json:"display_name" gorm:"type:varchar(50)"`
	Bio            string    `json:"bio" gorm:"type:varchar(300)"`
	AvatarUrl      string    `json:"avatar_url" gorm:"type:varchar(512)"`
	Email          string    `json:"-" gorm:"type:varchar(255);uniqueIndex"`
	Password       string    `json:"-" gorm:"type:varchar(255)"`
	FollowerCount  int64     `json:"follower_count" gorm:"not null;default:0"`
	FollowingCount int64     `json:"following_count" gorm:"not null;default:0"`
	Verified       bool      `json:"verified" gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Profile 对外展示的用户资料，附带观看者视角的关系
type Profile struct {
	*User
	IsFollowing bool `json:"is_following"`
	IsSelf      bool `json:"is_self"`
}
