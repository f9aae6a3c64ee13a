package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var ConfigInfo config

// 使用Viper读取config.yml，环境变量TIKLITE_*可以覆盖同名配置项
func Init() {
	wd, _ := os.Getwd()
	logrus.Infof("Current working directory: %s", wd)

	viper.SetConfigType("yaml")
	viper.SetConfigName("config.yml")
	viper.SetEnvPrefix("tiklite")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	configPaths := []string{
		"../../config",
		"./config",
		"../config",
		".",
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
		absPath, _ := filepath.Abs(path)
		logrus.Debugf("Added config path: %s (absolute: %s)", path, absPath)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Warnf("config file not found, using defaults and env: %v", err)
		} else {
			logrus.Errorf("config error: %v", err)
		}
	} else {
		logrus.Infof("Successfully read config file: %s", viper.ConfigFileUsed())
	}

	load()

	logrus.Infof("Config loaded - MySQL: %s:%s@%s/%s",
		ConfigInfo.Mysql.Username, "***", ConfigInfo.Mysql.Addr, ConfigInfo.Mysql.Database)
	if ConfigInfo.Redis.Addr == "" {
		logrus.Warn("No redis configured, cache/view buffer/toggle guard disabled")
	}
	if len(ConfigInfo.Elasticsearch.Urls) == 0 {
		logrus.Warn("No elasticsearch configured, search falls back to SQL")
	}
	if ConfigInfo.RabbitMq.Addr == "" {
		logrus.Warn("No rabbitmq configured, events are dispatched in-process")
	}
	checkJwtSecret()
}

// config.yml里自带的占位密钥
const defaultJwtSecret = "change-me"

// WeakJwtSecret 使用占位密钥或长度不足16字节
func WeakJwtSecret() bool {
	s := ConfigInfo.Jwt.Secret
	return s == defaultJwtSecret || len(s) < 16
}

func checkJwtSecret() {
	if WeakJwtSecret() {
		logrus.Warn("jwt.secret is the placeholder or shorter than 16 bytes, set TIKLITE_JWT_SECRET before deploying")
	}
}

func setDefaults() {
	viper.SetDefault("server.addr", "0.0.0.0:8888")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "120s")
	viper.SetDefault("server.view_sync_period", "10s")
	viper.SetDefault("mysql.charset", "utf8mb4")
	viper.SetDefault("minio.bucket", "videos")
	viper.SetDefault("minio.location", "us-east-1")
	viper.SetDefault("elasticsearch.index_prefix", "tiklite")
	viper.SetDefault("jwt.timeout", "1h")
	viper.SetDefault("jwt.max_refresh", "168h")
	viper.SetDefault("upload.max_size", 100*1024*1024)
	viper.SetDefault("upload.temp_dir", os.TempDir())
	viper.SetDefault("sentinel.write_qps", 200)
	viper.SetDefault("snowflake.node", 1)
}

// 手动从viper获取配置值，避免Unmarshal问题
func load() {
	ConfigInfo.Server.Addr = viper.GetString("server.addr")
	ConfigInfo.Server.ReadTimeout = viper.GetString("server.read_timeout")
	ConfigInfo.Server.WriteTimeout = viper.GetString("server.write_timeout")
	ConfigInfo.Server.AllowOrigins = viper.GetStringSlice("server.allow_origins")
	ConfigInfo.Server.ViewSyncPeriod = viper.GetString("server.view_sync_period")

	ConfigInfo.Mysql.Addr = viper.GetString("mysql.addr")
	ConfigInfo.Mysql.Database = viper.GetString("mysql.database")
	ConfigInfo.Mysql.Username = viper.GetString("mysql.username")
	ConfigInfo.Mysql.Password = viper.GetString("mysql.password")
	ConfigInfo.Mysql.Charset = viper.GetString("mysql.charset")
	ConfigInfo.Mysql.Params = viper.GetString("mysql.params")

	ConfigInfo.Redis.Addr = viper.GetString("redis.addr")
	ConfigInfo.Redis.Password = viper.GetString("redis.password")
	ConfigInfo.Redis.DB = viper.GetInt("redis.db")

	ConfigInfo.Minio.Endpoint = viper.GetString("minio.endpoint")
	ConfigInfo.Minio.AccessKey = viper.GetString("minio.access_key")
	ConfigInfo.Minio.SecretKey = viper.GetString("minio.secret_key")
	ConfigInfo.Minio.UseSSL = viper.GetBool("minio.use_ssl")
	ConfigInfo.Minio.Bucket = viper.GetString("minio.bucket")
	ConfigInfo.Minio.Location = viper.GetString("minio.location")
	ConfigInfo.Minio.PublicBaseUrl = viper.GetString("minio.public_base_url")

	ConfigInfo.Elasticsearch.Urls = viper.GetStringSlice("elasticsearch.urls")
	ConfigInfo.Elasticsearch.IndexPrefix = viper.GetString("elasticsearch.index_prefix")

	ConfigInfo.RabbitMq.Addr = viper.GetString("rabbitmq.addr")
	ConfigInfo.RabbitMq.Username = viper.GetString("rabbitmq.username")
	ConfigInfo.RabbitMq.Password = viper.GetString("rabbitmq.password")

	ConfigInfo.Jwt.Secret = viper.GetString("jwt.secret")
	ConfigInfo.Jwt.Timeout = viper.GetString("jwt.timeout")
	ConfigInfo.Jwt.MaxRefresh = viper.GetString("jwt.max_refresh")

	ConfigInfo.Upload.MaxSize = viper.GetInt64("upload.max_size")
	ConfigInfo.Upload.TempDir = viper.GetString("upload.temp_dir")

	ConfigInfo.Jaeger.AgentAddr = viper.GetString("jaeger.agent_addr")
	ConfigInfo.Jaeger.SamplerParam = viper.GetFloat64("jaeger.sampler_param")

	ConfigInfo.Sentinel.WriteQps = viper.GetFloat64("sentinel.write_qps")

	ConfigInfo.Snowflake.Node = viper.GetInt64("snowflake.node")
}

// RabbitMqURL 拼接amqp连接串，未配置时返回空串
func RabbitMqURL() string {
	if ConfigInfo.RabbitMq.Addr == "" {
		return ""
	}
	return fmt.Sprintf("amqp://%s:%s@%s/", ConfigInfo.RabbitMq.Username, ConfigInfo.RabbitMq.Password, ConfigInfo.RabbitMq.Addr)
}

// Duration 解析时长配置，非法值回退到默认值
func Duration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
