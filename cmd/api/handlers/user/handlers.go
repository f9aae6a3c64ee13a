package handlers

import (
	"TikLite.com/pkg/session"
)

type RegisterParam struct {
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	UserName    string `json:"username" form:"username"`
	DisplayName string `json:"display_name" form:"display_name"`
}

type UpdateParam struct {
	DisplayName *string `json:"display_name" form:"display_name"`
	Bio         *string `json:"bio" form:"bio"`
}

type PageParam struct {
	Page int64 `query:"page"`
	Size int64 `query:"size"`
}

var sessions *session.Manager

// Init 注册成功后需要签发token
func Init(m *session.Manager) {
	sessions = m
}
