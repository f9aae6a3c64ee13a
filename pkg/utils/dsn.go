package utils

import (
	"strings"

	"TikLite.com/config"
)

func GetMysqlDsn() string {
	//生成数据库的dsn
	m := config.ConfigInfo.Mysql
	charset := m.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	dsn := strings.Join([]string{m.Username, ":", m.Password, "@tcp(", m.Addr, ")/", m.Database,
		"?charset=", charset, "&parseTime=true&loc=Local"}, "")
	if m.Params != "" {
		dsn += "&" + m.Params
	}
	return dsn
}
