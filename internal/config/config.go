package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const configPathEnv = "PRICING_CONFIG_PATH"

type PricingConfig struct {
	Env          string `yaml:"env" env:"PRICING_ENV" env-default:"local"`
	GRPCServer   `yaml:"grpc_server"`
	HTTPServer   `yaml:"http_server"`
	PricingDB    `yaml:"pricing_db"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka_service"`
	Redis        `yaml:"redis"`
	Cache        `yaml:"cache"`
	Pricing      `yaml:"pricing"`
	Exchange     `yaml:"exchange"`
}

type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50051"`
}

// HTTPServer serves /metrics.
type HTTPServer struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"9090"`
}

type PricingDB struct {
	Dsn            string `yaml:"dsn" env:"PRICING_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path" env:"PRICING_DB_MIGRATIONS" env-default:"migrations"`
	AutoMigrate    bool   `yaml:"auto_migrate" env:"PRICING_DB_AUTO_MIGRATE" env-default:"false"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	LogOutput string `yaml:"log_output" env:"LOG_OUTPUT" env-default:"stdout"`
}

type KafkaService struct {
	Enabled     bool   `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
	Host        string `yaml:"host" env:"KAFKA_HOST" env-default:"localhost"`
	Port        string `yaml:"port" env:"KAFKA_PORT" env-default:"9092"`
	ConfigTopic string `yaml:"config_topic" env:"KAFKA_CONFIG_TOPIC" env-default:"pricing-config-events"`
	QuoteTopic  string `yaml:"quote_topic" env:"KAFKA_QUOTE_TOPIC" env-default:"pricing-quotes"`
	GroupID     string `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"pricing-service"`
}

func (k KafkaService) Broker() string {
	return fmt.Sprintf("%s:%s", k.Host, k.Port)
}

type Redis struct {
	Enabled   bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	URL       string `yaml:"url" env:"REDIS_URL" env-default:"redis://localhost:6379/0"`
	KeyPrefix string `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:"pricing:"`
}

type Cache struct {
	PriceTTL      time.Duration `yaml:"price_ttl" env:"CACHE_PRICE_TTL" env-default:"5m"`
	CampaignTTL   time.Duration `yaml:"campaign_ttl" env:"CACHE_CAMPAIGN_TTL" env-default:"10m"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"CACHE_SWEEP_INTERVAL" env-default:"1m"`
}

type Pricing struct {
	ConsistencyTolerance float64 `yaml:"consistency_tolerance" env:"PRICING_CONSISTENCY_TOLERANCE" env-default:"0.01"`
	DefaultCurrency      string  `yaml:"default_currency" env:"PRICING_DEFAULT_CURRENCY" env-default:"EUR"`
	MaxRooms             int     `yaml:"max_rooms" env:"PRICING_MAX_ROOMS" env-default:"10"`
}

// Exchange holds static display rates: one unit of Base buys Rates[code].
type Exchange struct {
	Base  string             `yaml:"base" env:"EXCHANGE_BASE" env-default:"EUR"`
	Rates map[string]float64 `yaml:"rates"`
}

// Load reads the YAML file at path; environment variables override it.
func Load(path string) (*PricingConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("find config file: %w", err)
	}
	var cfg PricingConfig
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return &cfg, nil
}

func MustLoad() *PricingConfig {
	configPath := os.Getenv(configPathEnv)
	if configPath == "" {
		log.Fatalf("%s was not found\n", configPathEnv)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}
