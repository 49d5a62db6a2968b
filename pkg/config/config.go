package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Mongo    MongoConfig
	Database DatabaseConfig
	Firebase FirebaseConfig
	Stripe   StripeConfig
	Mailjet  MailjetConfig
	Rabbit   RabbitConfig
	Otel     OtelConfig
}

type AppConfig struct {
	Name             string
	Version          string
	Environment      string
	SiteDomain       string
	EnforceAdminRole bool
}

type ServerConfig struct {
	Port         string
	AllowOrigins []string
}

// MongoConfig holds the document store settings. URI wins over the
// user/password/cluster triple when both are set.
type MongoConfig struct {
	URI      string
	User     string
	Password string
	Cluster  string
	Name     string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type FirebaseConfig struct {
	ServiceKey string
}

type StripeConfig struct {
	SecretKey string
	Currency  string
}

type MailjetConfig struct {
	MailjetBaseUrl           string
	MailjetBasicAuthUsername string
	MailjetBasicAuthPassword string
	MailjetSenderEmail       string
	MailjetSenderName        string
}

type RabbitConfig struct {
	URL      string
	Exchange string
}

type OtelConfig struct {
	Endpoint string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	enforceAdmin, err := strconv.ParseBool(getEnv("ENFORCE_ADMIN_ROLE", "false"))
	if err != nil {
		return nil, errors.New("invalid enforce admin role flag")
	}

	cfg := &Config{
		App: AppConfig{
			Name:             getEnv("APP_NAME", "Roktosheba API"),
			Version:          getEnv("APP_VERSION", "1.0.0"),
			Environment:      getEnv("APP_ENV", "development"),
			SiteDomain:       strings.TrimRight(getEnv("SITE_DOMAIN", ""), "/"),
			EnforceAdminRole: enforceAdmin,
		},
		Server: ServerConfig{
			Port:         getEnv("PORT", "5000"),
			AllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGODB_URI", ""),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASS", ""),
			Cluster:  getEnv("MONGODB_CLUSTER", "cluster0.iovcwwa.mongodb.net"),
			Name:     getEnv("MONGODB_NAME", "roktosheba11"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			User:     getEnv("PG_USER", "postgres"),
			Password: getEnv("PG_PASSWORD", ""),
			Name:     getEnv("PG_NAME", "roktosheba"),
			SSLMode:  getEnv("PG_SSL_MODE", "disable"),
		},
		Firebase: FirebaseConfig{
			ServiceKey: getEnv("FB_SERVICE_KEY", ""),
		},
		Stripe: StripeConfig{
			SecretKey: getEnv("STRIPE_SECRET_KEY", ""),
			Currency:  strings.ToLower(getEnv("PAYMENT_CURRENCY", "usd")),
		},
		Mailjet: MailjetConfig{
			MailjetBaseUrl:           getEnv("MAILJET_BASE_URL", ""),
			MailjetBasicAuthUsername: getEnv("MAILJET_BASIC_AUTH_USERNAME", ""),
			MailjetBasicAuthPassword: getEnv("MAILJET_BASIC_AUTH_PASSWORD", ""),
			MailjetSenderEmail:       getEnv("MAILJET_SENDER_EMAIL", ""),
			MailjetSenderName:        getEnv("MAILJET_SENDER_NAME", "Roktosheba"),
		},
		Rabbit: RabbitConfig{
			URL:      getEnv("RABBIT_URL", ""),
			Exchange: getEnv("DONATION_EXCHANGE", "donation.exchange"),
		},
		Otel: OtelConfig{
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
	}

	if cfg.Mongo.URI == "" && (cfg.Mongo.User == "" || cfg.Mongo.Password == "") {
		return nil, errors.New("missing mongodb credentials")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.Firebase.ServiceKey == "" {
		return nil, errors.New("missing firebase service key")
	}

	if cfg.Stripe.SecretKey == "" {
		return nil, errors.New("missing stripe secret key")
	}

	if cfg.App.SiteDomain == "" {
		return nil, errors.New("missing site domain")
	}

	return cfg, nil
}

// MailjetEnabled reports whether receipt emails can be sent.
func (c *Config) MailjetEnabled() bool {
	return c.Mailjet.MailjetBaseUrl != "" && c.Mailjet.MailjetSenderEmail != ""
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
