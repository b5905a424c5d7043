package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	Redis   RedisConfig
	Store   StoreConfig
	Shop    ShopConfig
	GRPC    GRPCConfig
	Gateway GatewayConfig
	Events  EventsConfig
}

type StoreConfig struct {
	Backend    string
	SQLitePath string
	DSN        string
	Namespace  string
}

type ShopConfig struct {
	Name           string
	Address        string
	DefaultUPIID   string
	TaxRatePercent decimal.Decimal
	PaymentMethod  string
	Location       *time.Location
}

type GRPCConfig struct {
	Addr string
}

type GatewayConfig struct {
	Addr           string
	RateLimit      string
	AllowedOrigins []string
	Production     bool
}

type EventsConfig struct {
	Enabled bool
}

func LoadConfig(logger *zap.Logger) Config {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	taxRate, err := decimal.NewFromString(getEnv("TAX_RATE_PERCENT", "0"))
	if err != nil || taxRate.IsNegative() {
		logger.Warn("invalid TAX_RATE_PERCENT, using 0", zap.String("value", os.Getenv("TAX_RATE_PERCENT")))
		taxRate = decimal.Zero
	}

	loc, err := time.LoadLocation(getEnv("POS_TIMEZONE", "Local"))
	if err != nil {
		logger.Warn("invalid POS_TIMEZONE, using local time", zap.Error(err))
		loc = time.Local
	}

	return Config{
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Store: StoreConfig{
			Backend:    strings.ToLower(getEnv("STORE_BACKEND", BackendSQLite)),
			SQLitePath: getEnv("SQLITE_PATH", "restaurant-pos.db"),
			DSN:        getEnv("POS_DSN", ""),
			Namespace:  getEnv("POS_NAMESPACE", "restaurant"),
		},
		Shop: ShopConfig{
			Name:           getEnv("SHOP_NAME", "My Restaurant"),
			Address:        getEnv("SHOP_ADDRESS", "123, Main Road, City"),
			DefaultUPIID:   getEnv("UPI_ID", "shanmugam786358-1@okaxis"),
			TaxRatePercent: taxRate,
			PaymentMethod:  "UPI",
			Location:       loc,
		},
		GRPC: GRPCConfig{
			Addr: getEnv("POS_GRPC_ADDR", "localhost:50053"),
		},
		Gateway: GatewayConfig{
			Addr:           getEnv("GATEWAY_ADDR", ":8080"),
			RateLimit:      getEnv("RATE_LIMIT", "120-M"),
			AllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "")),
			Production:     strings.EqualFold(getEnv("GO_ENV", ""), "production"),
		},
		Events: EventsConfig{
			Enabled: getEnvBool("EVENTS_ENABLED", false),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
