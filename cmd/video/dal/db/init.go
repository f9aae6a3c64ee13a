package db

import "gorm.io/gorm"

var DB *gorm.DB

func Init(gdb *gorm.DB) {
	DB = gdb
}
