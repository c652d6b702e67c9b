package main

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	Version     string `mapstructure:"VERSION"`
	TLSCertFile string `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile  string `mapstructure:"TLS_KEY_FILE"`

	AdminUsername string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
	AuthMode      string `mapstructure:"AUTH_MODE"`
	AuthSecret    string `mapstructure:"AUTH_SECRET"`

	StorageBackend string `mapstructure:"STORAGE_BACKEND"`
	DataDir        string `mapstructure:"DATA_DIR"`
	MongoURI       string `mapstructure:"MONGO_URI"`
	MongoDBName    string `mapstructure:"MONGO_DB"`

	UploadBackend  string `mapstructure:"UPLOAD_BACKEND"`
	UploadDir      string `mapstructure:"UPLOAD_DIR"`
	UploadBaseURL  string `mapstructure:"UPLOAD_BASE_URL"`
	MinioEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket    string `mapstructure:"MINIO_BUCKET"`
	MinioUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`

	RateLimitEnabled bool    `mapstructure:"RATE_LIMIT_ENABLED"`
	RateLimitRPS     float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst   int     `mapstructure:"RATE_LIMIT_BURST"`

	MailEnabled  bool   `mapstructure:"MAIL_ENABLED"`
	MailHost     string `mapstructure:"MAIL_HOST"`
	MailPort     int    `mapstructure:"MAIL_PORT"`
	MailUser     string `mapstructure:"MAIL_USER"`
	MailPassword string `mapstructure:"MAIL_PASSWORD"`
	MailSender   string `mapstructure:"MAIL_SENDER"`

	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`
}

func loadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)

	viper.SetDefault("PORT", "4000")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("VERSION", "1.0.0")
	viper.SetDefault("STORAGE_BACKEND", "file")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("UPLOAD_BACKEND", "disk")
	viper.SetDefault("UPLOAD_DIR", "data/uploads")
	viper.SetDefault("UPLOAD_BASE_URL", "/uploads")
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_RPS", 10)
	viper.SetDefault("RATE_LIMIT_BURST", 20)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if !strings.HasPrefix(config.Port, ":") {
		config.Port = ":" + config.Port
	}

	return &config, nil
}
