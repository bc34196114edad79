package config

const (
	StoreKindPostgres = "postgres"
	StoreKindRedis    = "redis"
	StoreKindBolt     = "bolt"
	StoreKindNats     = "nats"
)

type GeneralConfig struct {
	LogDirectory string `yaml:"logDirectory"`
	LogColors    bool   `yaml:"logColors"`
	JsonLogs     bool   `yaml:"jsonLogs"`
	LogLevel     string `yaml:"logLevel"`
}

type StoreConfig struct {
	Kind string `yaml:"kind"`
}

type DatabaseConfig struct {
	Postgres string        `yaml:"postgres"`
	Pool     *DbPoolConfig `yaml:"pool"`
}

type DbPoolConfig struct {
	MaxConnections int `yaml:"maxConnections"`
	MaxIdle        int `yaml:"maxIdleConnections"`
}

type RedisConfig struct {
	Address   string `yaml:"addr"`
	Password  string `yaml:"password"`
	DbNum     int    `yaml:"databaseNumber"`
	KeyPrefix string `yaml:"keyPrefix"`
}

type BoltConfig struct {
	Path string `yaml:"path"`
}

type NatsConfig struct {
	Url            string `yaml:"url"`
	Bucket         string `yaml:"bucket"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

type BackupsConfig struct {
	Root           string         `yaml:"root"`
	IncludeSeconds bool           `yaml:"includeSeconds"`
	S3             S3MirrorConfig `yaml:"s3"`
}

type S3MirrorConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Endpoint     string `yaml:"endpoint"`
	BucketName   string `yaml:"bucketName"`
	AccessKeyId  string `yaml:"accessKeyId"`
	AccessSecret string `yaml:"accessSecret"`
	Region       string `yaml:"region"`
	Ssl          bool   `yaml:"ssl"`
	Prefix       string `yaml:"prefix"`
}

type MetricsConfig struct {
	PushgatewayUrl string `yaml:"pushgatewayUrl"`
	Job            string `yaml:"job"`
}

type SentryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Dsn         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
	Debug       bool   `yaml:"debug"`
}
