package db

import (
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init 共享同一个连接池
func Init(gdb *gorm.DB) {
	DB = gdb
}
