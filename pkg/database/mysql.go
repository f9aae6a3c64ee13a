package database

import (
	"context"
	"errors"
	"time"

	"TikLite.com/cmd/model"
	"TikLite.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormopentracing "gorm.io/plugin/opentracing"
)

const mysqlDuplicateEntry = 1062

var DB *gorm.DB

// Init 打开MySQL连接并迁移表结构
func Init() *gorm.DB {
	gdb, err := Open(mysql.Open(utils.GetMysqlDsn()))
	if err != nil {
		panic(err)
	}
	if err = Migrate(gdb); err != nil {
		panic(err)
	}
	DB = gdb
	return gdb
}

// Open 按统一配置打开gorm，测试中传入sqlmock的dialector
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	gdb, err := gorm.Open(dialector,
		&gorm.Config{
			PrepareStmt:                              true,
			SkipDefaultTransaction:                   true,
			TranslateError:                           true,
			DisableForeignKeyConstraintWhenMigrating: true,
		},
	)
	if err != nil {
		return nil, err
	}
	if err = gdb.Use(gormopentracing.New()); err != nil {
		return nil, err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}
	return gdb, nil
}

func Migrate(gdb *gorm.DB) error {
	hlog.Info("Starting tables migration...")
	err := gdb.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.VideoLike{},
		&model.CommentLike{},
		&model.Follow{},
	)
	if err != nil {
		hlog.Errorf("Failed to migrate tables: %v", err)
		return err
	}
	hlog.Info("Tables migration completed successfully")
	return nil
}

// IsDuplicateKey 唯一索引冲突，TranslateError开启时为gorm.ErrDuplicatedKey
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysqldriver.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}

func Ping(ctx context.Context) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
