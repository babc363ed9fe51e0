package config

import (
	"database/sql"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/viper"
	"strings"
	"time"
)

type Config struct {
	MinIOBucket string        `yaml:"minio_bucket"`
	App         App           `yaml:"app"`
	DB          *sql.DB       `yaml:"db"`
	Queue       *RabbitMQ     `yaml:"rabbitmq"`
	Storage     *minio.Client `yaml:"storage"`
	Server      Server        `yaml:"server"`
	Redis       Redis         `yaml:"redis"`
	Mux         Mux           `yaml:"mux"`
	Auth        Auth          `yaml:"auth"`
	Cors        Cors          `yaml:"cors"`
	Upload      Upload        `yaml:"upload"`
	// PublicStorageURL is prepended to object keys to build download URLs.
	PublicStorageURL string `yaml:"minio_public_url"`
}

type App struct {
	Environment string `yaml:"environment"`
	Host        string `yaml:"host"`
	Protocol    string `yaml:"protocol"`
}

type Server struct {
	HttpPort string `yaml:"http_port"`
	Workers  int    `yaml:"workers"`
}

type RabbitMQ struct {
	Host         string `json:"host"`
	Port         int    `json:"port"`
	User         string `json:"user"`
	Pass         string `json:"pass"`
	ExchangeName string `json:"exchange_name"`
	Kind         string `json:"kind"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Mux struct {
	TokenId         string        `yaml:"token_id"`
	TokenSecret     string        `yaml:"token_secret"`
	BaseURL         string        `yaml:"base_url"`
	Timeout         time.Duration `yaml:"timeout"`
	CleanupMaxTries uint          `yaml:"cleanup_max_tries"`
}

type Auth struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type Cors struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Upload struct {
	MaxSizeMB          int64 `yaml:"max_size_mb"`
	RateLimitPerMinute int   `yaml:"rate_limit_per_minute"`
}

func setDefaults() {
	viper.SetDefault("app.environment", "develop")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.workers", 2)
	viper.SetDefault("rabbitmq_kind", "direct")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("mux.base_url", "https://api.mux.com")
	viper.SetDefault("mux.timeout", 30*time.Second)
	viper.SetDefault("mux.cleanup_max_tries", 5)
	viper.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	viper.SetDefault("upload.max_size_mb", 512)
	viper.SetDefault("upload.rate_limit_per_minute", 20)
}

func Load(path string) (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	db, err := sql.Open("postgres", viper.GetString("postgresql_host"))
	if err != nil {
		return nil, err
	}

	rabbitmq := &RabbitMQ{
		Host:         viper.GetString("rabbitmq_host"),
		Port:         viper.GetInt("rabbitmq_port"),
		User:         viper.GetString("rabbitmq_user"),
		Pass:         viper.GetString("rabbitmq_pass"),
		ExchangeName: viper.GetString("rabbitmq_exchange_name"),
		Kind:         viper.GetString("rabbitmq_kind"),
	}

	minioClient, err := minio.New(viper.GetString("minio.url"), &minio.Options{
		Creds:  credentials.NewStaticV4(viper.GetString("minio.access_id"), viper.GetString("minio.secret_access_key"), ""),
		Secure: viper.GetBool("minio.secure"),
	})
	if err != nil {
		return nil, err
	}

	return &Config{
		MinIOBucket:      viper.GetString("minio.bucket"),
		PublicStorageURL: viper.GetString("minio.public_url"),
		App: App{
			Environment: viper.GetString("app.environment"),
			Host:        viper.GetString("app.host"),
			Protocol:    viper.GetString("app.protocol"),
		},
		Server: Server{
			HttpPort: viper.GetString("server.port"),
			Workers:  viper.GetInt("server.workers"),
		},
		Redis: Redis{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Mux: Mux{
			TokenId:         viper.GetString("mux.token_id"),
			TokenSecret:     viper.GetString("mux.token_secret"),
			BaseURL:         viper.GetString("mux.base_url"),
			Timeout:         viper.GetDuration("mux.timeout"),
			CleanupMaxTries: viper.GetUint("mux.cleanup_max_tries"),
		},
		Auth: Auth{
			JWTSecret: viper.GetString("auth.jwt_secret"),
		},
		Cors: Cors{
			AllowedOrigins: viper.GetStringSlice("cors.allowed_origins"),
		},
		Upload: Upload{
			MaxSizeMB:          viper.GetInt64("upload.max_size_mb"),
			RateLimitPerMinute: viper.GetInt("upload.rate_limit_per_minute"),
		},
		DB:      db,
		Queue:   rabbitmq,
		Storage: minioClient,
	}, nil
}
