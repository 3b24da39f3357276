package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	Portfolio struct {
		APISecret string `mapstructure:"api_secret"`
		BlobPath  string `mapstructure:"blob_path"`
		SiteURL   string `mapstructure:"site_url"`
	} `mapstructure:"portfolio"`
	Contact struct {
		Provider     string `mapstructure:"provider"`
		ResendAPIKey string `mapstructure:"resend_api_key"`
		Recipient    string `mapstructure:"recipient"`
		Sender       string `mapstructure:"sender"`
		SMTP         struct {
			Host     string `mapstructure:"host"`
			Port     string `mapstructure:"port"`
			User     string `mapstructure:"user"`
			Password string `mapstructure:"password"`
		} `mapstructure:"smtp"`
		RateLimit struct {
			RPS   float64 `mapstructure:"rps"`
			Burst int     `mapstructure:"burst"`
		} `mapstructure:"rate_limit"`
	} `mapstructure:"contact"`
	Storage struct {
		Driver string `mapstructure:"driver"`
	} `mapstructure:"storage"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	MinIO struct {
		Endpoint  string `mapstructure:"endpoint"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
		UseSSL    bool   `mapstructure:"use_ssl"`
		Bucket    string `mapstructure:"bucket"`
	} `mapstructure:"minio"`
	Redis struct {
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		TTL      time.Duration `mapstructure:"ttl"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
		Folder    string `mapstructure:"folder"`
	} `mapstructure:"cloudinary"`
	Tracing struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"tracing"`
	Admin struct {
		Endpoint string        `mapstructure:"endpoint"`
		LocalDB  string        `mapstructure:"local_db"`
		Timeout  time.Duration `mapstructure:"timeout"`
	} `mapstructure:"admin"`
}

// LoadConfig reads .env, then config.yaml from the given paths (or "."), then the environment.
// Missing files are noted on the standard logger.
func LoadConfig(paths ...string) (Config, error) {
	return load(log.Printf, paths)
}

// LoadConfigQuiet is LoadConfig without the missing-file notes.
func LoadConfigQuiet(paths ...string) (Config, error) {
	return load(func(string, ...any) {}, paths)
}

func load(notef func(format string, args ...any), paths []string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	if err := godotenv.Load(envFiles(paths)...); err != nil {
		notef("warning: .env file not found, use default.")
	}

	v := viper.New()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		notef("note: config.yaml not found, read .env only. Error: %v", err)
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT", "PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("portfolio.api_secret", "PORTFOLIO_API_SECRET")
	v.BindEnv("portfolio.blob_path", "PORTFOLIO_BLOB_PATH")
	v.BindEnv("portfolio.site_url", "SITE_URL")

	v.BindEnv("contact.provider", "CONTACT_PROVIDER")
	v.BindEnv("contact.resend_api_key", "RESEND_API_KEY")
	v.BindEnv("contact.recipient", "CONTACT_EMAIL")
	v.BindEnv("contact.sender", "SENDER_EMAIL")
	v.BindEnv("contact.smtp.host", "SMTP_HOST")
	v.BindEnv("contact.smtp.port", "SMTP_PORT")
	v.BindEnv("contact.smtp.user", "SMTP_USER")
	v.BindEnv("contact.smtp.password", "SMTP_PASS")
	v.BindEnv("contact.rate_limit.rps", "CONTACT_RATE_LIMIT_RPS")
	v.BindEnv("contact.rate_limit.burst", "CONTACT_RATE_LIMIT_BURST")

	v.BindEnv("storage.driver", "STORAGE_DRIVER")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("minio.endpoint", "MINIO_ENDPOINT")
	v.BindEnv("minio.access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("minio.secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("minio.use_ssl", "MINIO_USE_SSL")
	v.BindEnv("minio.bucket", "MINIO_BUCKET")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.ttl", "REDIS_TTL")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.group_id", "KAFKA_GROUP_ID")

	v.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	v.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	v.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")
	v.BindEnv("cloudinary.folder", "CLOUDINARY_FOLDER")

	v.BindEnv("tracing.otlp_endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")

	v.BindEnv("admin.endpoint", "PORTFOLIO_ENDPOINT")
	v.BindEnv("admin.local_db", "PORTFOLIO_LOCAL_DB")
	v.BindEnv("admin.timeout", "PORTFOLIO_HTTP_TIMEOUT")

	err = v.Unmarshal(&cfg)
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("portfolio.blob_path", "portfolio/data.json")
	v.SetDefault("contact.provider", "resend")
	v.SetDefault("contact.smtp.port", "587")
	v.SetDefault("contact.rate_limit.rps", 0.2)
	v.SetDefault("contact.rate_limit.burst", 3)
	v.SetDefault("storage.driver", "memory")
	v.SetDefault("minio.bucket", "portfolio")
	v.SetDefault("redis.ttl", 5*time.Minute)
	v.SetDefault("kafka.group_id", "portfolio-snapshot-group")
	v.SetDefault("cloudinary.folder", "portfolio/projects")
	v.SetDefault("admin.endpoint", "http://localhost:8080")
}

func envFiles(paths []string) []string {
	files := make([]string, 0, len(paths))
	for _, p := range paths {
		files = append(files, strings.TrimRight(p, "/")+"/.env")
	}
	return files
}
