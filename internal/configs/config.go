package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

type RESTconfig struct {
	Port           string
	AllowedOrigins []string
}

// ListingAPIConfig - удалённый сервис выдачи объектов
type ListingAPIConfig struct {
	URL     string
	Timeout time.Duration
	// ValidateResponses - проверять ответы по JSON-схеме
	ValidateResponses bool
}

type FavoritesConfig struct {
	Backend string
	Dir     string // для file
}

type DBconfig struct {
	URL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MongoConfig struct {
	URI      string
	Database string
}

type RabbitMQConfig struct {
	Enabled    bool
	URL        string
	Exchange   string
	RoutingKey string
}

type SessionsConfig struct {
	IdleTTL time.Duration
}

type StdoutLogConfig struct {
	Level  string
	IsJSON bool
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Rest         RESTconfig
	ListingAPI   ListingAPIConfig
	Favorites    FavoritesConfig
	Database     DBconfig
	Redis        RedisConfig
	Mongo        MongoConfig
	RabbitMQ     RabbitMQConfig
	Sessions     SessionsConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из .env (если он есть) и переменных окружения.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath...)
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		// В контейнере переменные приходят из окружения, .env не обязателен
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
		}
		log.Printf("Info: .env file not found (path: %v), using process environment.\n", envPath)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "listing-service")

	cfg.Rest.Port = getEnvAsString("PORT", "8080")
	cfg.Rest.AllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"})

	cfg.ListingAPI.URL = getEnvAsString("LISTING_API_URL", "http://localhost:3000/api")
	cfg.ListingAPI.Timeout = time.Duration(getEnvAsInt("LISTING_API_TIMEOUT_SEC", 10)) * time.Second
	cfg.ListingAPI.ValidateResponses = getEnvAsBool("LISTING_API_VALIDATE", true)

	cfg.Favorites.Backend = strings.ToLower(getEnvAsString("FAVORITES_BACKEND", BackendMemory))
	cfg.Favorites.Dir = getEnvAsString("FAVORITES_DIR", ".favorites")

	switch cfg.Favorites.Backend {
	case BackendMemory, BackendFile:
	case BackendPostgres:
		cfg.Database.URL = os.Getenv("DATABASE_URL")
		if cfg.Database.URL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required for the postgres favorites backend")
		}
	case BackendRedis:
		cfg.Redis.Addr = getEnvAsString("REDIS_ADDR", "localhost:6379")
		cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
		cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)
	case BackendMongo:
		cfg.Mongo.URI = os.Getenv("MONGO_URI")
		if cfg.Mongo.URI == "" {
			return nil, fmt.Errorf("MONGO_URI environment variable is required for the mongo favorites backend")
		}
		cfg.Mongo.Database = getEnvAsString("MONGO_DATABASE", "listing")
	default:
		return nil, fmt.Errorf("unknown FAVORITES_BACKEND %q", cfg.Favorites.Backend)
	}

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED is true")
		}
	}
	cfg.RabbitMQ.Exchange = getEnvAsString("RABBITMQ_TRANSLATION_EXCHANGE", "content")
	cfg.RabbitMQ.RoutingKey = getEnvAsString("RABBITMQ_TRANSLATION_ROUTING_KEY", "content.translate")

	cfg.Sessions.IdleTTL = time.Duration(getEnvAsInt("LISTING_SESSION_TTL_MIN", 30)) * time.Minute

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "info")
	cfg.StdoutLogger.IsJSON = getEnvAsBool("STDOUT_LOG_JSON", false)

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsList - список через запятую, пустые элементы отбрасываются
func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valStr) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
