package config

type config struct {
	Server        server        `yaml:"server" mapstructure:"server"`
	Mysql         mysql         `yaml:"mysql" mapstructure:"mysql"`
	Redis         redis         `yaml:"redis" mapstructure:"redis"`
	Minio         minio         `yaml:"minio" mapstructure:"minio"`
	Elasticsearch elasticsearch `yaml:"elasticsearch" mapstructure:"elasticsearch"`
	RabbitMq      rabbitmq      `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Jwt           jwt           `yaml:"jwt" mapstructure:"jwt"`
	Upload        upload        `yaml:"upload" mapstructure:"upload"`
	Jaeger        jaeger        `yaml:"jaeger" mapstructure:"jaeger"`
	Sentinel      sentinel      `yaml:"sentinel" mapstructure:"sentinel"`
	Snowflake     snowflake     `yaml:"snowflake" mapstructure:"snowflake"`
}

type server struct {
	Addr           string   `yaml:"addr"`
	ReadTimeout    string   `yaml:"read_timeout"`
	WriteTimeout   string   `yaml:"write_timeout"`
	AllowOrigins   []string `yaml:"allow_origins"`
	ViewSyncPeriod string   `yaml:"view_sync_period"`
}

type mysql struct {
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Charset  string `yaml:"charset"`
	Params   string `yaml:"params"`
}

type redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type minio struct {
	Endpoint      string `yaml:"endpoint"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	UseSSL        bool   `yaml:"use_ssl"`
	Bucket        string `yaml:"bucket"`
	Location      string `yaml:"location"`
	PublicBaseUrl string `yaml:"public_base_url"`
}

type elasticsearch struct {
	Urls        []string `yaml:"urls"`
	IndexPrefix string   `yaml:"index_prefix"`
}

type rabbitmq struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type jwt struct {
	Secret     string `yaml:"secret"`
	Timeout    string `yaml:"timeout"`
	MaxRefresh string `yaml:"max_refresh"`
}

type upload struct {
	MaxSize int64  `yaml:"max_size"`
	TempDir string `yaml:"temp_dir"`
}

type jaeger struct {
	AgentAddr    string  `yaml:"agent_addr"`
	SamplerParam float64 `yaml:"sampler_param"`
}

type sentinel struct {
	WriteQps float64 `yaml:"write_qps"`
}

type snowflake struct {
	Node int64 `yaml:"node"`
}
