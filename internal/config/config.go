package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type PatriotConfig struct {
	Env              string `yaml:"env" env:"APP_ENV" env-default:"development"`
	HTTPServer       `yaml:"http_server"`
	PatriotDB        `yaml:"patriot_db"`
	LogConfig        `yaml:"log_config"`
	KafkaService     `yaml:"kafka-service"`
	GeocodingService `yaml:"geocoding-service"`
	PlacesService    `yaml:"places-service"`
	CardPayments     `yaml:"card-payments"`
	WalletPayments   `yaml:"wallet-payments"`
	MailService      `yaml:"mail-service"`
	Auth             `yaml:"auth"`
	RateLimit        `yaml:"rate_limit"`
}

type HTTPServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"8080"`
}

type PatriotDB struct {
	Dsn            string `yaml:"dsn" env:"PATRIOT_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path" env-default:"migrations"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
	LogOutput string `yaml:"log_output" env-default:"stdout"`
}

type KafkaService struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	Enabled bool   `yaml:"enabled" env-default:"false"`
}

type GeocodingService struct {
	BaseURL string        `yaml:"base_url" env-default:"https://api.zippopotam.us"`
	Timeout time.Duration `yaml:"timeout" env-default:"5s"`
}

type PlacesService struct {
	BaseURL string        `yaml:"base_url" env-default:"https://maps.googleapis.com/maps/api/place"`
	APIKey  string        `yaml:"api_key" env:"PLACES_API_KEY"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

type CardPayments struct {
	BaseURL   string `yaml:"base_url" env-default:"https://api.stripe.com/v1"`
	SecretKey string `yaml:"secret_key" env:"CARD_PAYMENTS_SECRET_KEY"`
}

type WalletPayments struct {
	BaseURL      string `yaml:"base_url" env-default:"https://api-m.paypal.com"`
	ClientID     string `yaml:"client_id" env:"WALLET_PAYMENTS_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"WALLET_PAYMENTS_CLIENT_SECRET"`
}

type MailService struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key" env:"MAIL_API_KEY"`
	From    string `yaml:"from" env-default:"no-reply@patriotthanks.com"`
	AppURL  string `yaml:"app_url" env-default:"https://patriotthanks.com"`
}

type Auth struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	TokenTTL  time.Duration `yaml:"token_ttl" env-default:"24h"`
}

type RateLimit struct {
	RegisterPerHour int `yaml:"register_per_hour" env-default:"5"`
	RegisterBurst   int `yaml:"register_burst" env-default:"3"`
}

func MustLoad() *PatriotConfig {

	// Processing env config variable and file
	configPath := os.Getenv("PATRIOT_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("PATRIOT_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg PatriotConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
