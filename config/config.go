package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Setting names. Connection strings are looked up lazily, so the names are
// reported back to the operator when a value is missing.
const (
	SettingMongoURI    = "MONGODB_URI"
	SettingDatabaseURL = "DATABASE_URL"
)

type Config struct {
	Environment string
	ServerPort  string
	LogLevel    string

	DBDriver      string
	MongoURI      string
	MongoDatabase string
	DatabaseURL   string

	RabbitURL     string
	PublicBaseURL string

	Mail MailConfig
}

type MailConfig struct {
	Provider           string
	FromAddress        string
	FromName           string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// Load reads configuration from the environment, loading a .env file first
// outside production. Missing connection strings are not an error here.
func Load() *Config {
	env := getEnv("GO_ENV", "development")

	if env != "production" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}

	return &Config{
		Environment:   env,
		ServerPort:    getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBDriver:      getEnv("DB_DRIVER", DriverMongo),
		MongoURI:      os.Getenv(SettingMongoURI),
		MongoDatabase: getEnv("MONGODB_DATABASE", "devevent"),
		DatabaseURL:   os.Getenv(SettingDatabaseURL),
		RabbitURL:     os.Getenv("RABBITMQ_URL"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
		Mail: MailConfig{
			Provider:           getEnv("MAIL_PROVIDER", "noop"),
			FromAddress:        getEnv("MAIL_FROM", "no-reply@devevent.local"),
			FromName:           getEnv("MAIL_FROM_NAME", "DevEvent"),
			AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
			AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}
}

// ConnectionSetting returns the name and value of the connection string the
// configured driver needs.
func (c *Config) ConnectionSetting() (name, value string) {
	if c.DBDriver == DriverPostgres {
		return SettingDatabaseURL, c.DatabaseURL
	}
	return SettingMongoURI, c.MongoURI
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
