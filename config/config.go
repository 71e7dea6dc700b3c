package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// DefaultQZOrigins are the two browser origins allowed to reach the print
// signing endpoints when QZ_ALLOWED_ORIGINS is not set.
var DefaultQZOrigins = []string{"https://app.pdvflow.com.br", "http://localhost:5173"}

type Config struct {
	Port  string
	Env   string
	DB    DB
	Redis Redis

	JWTSecret  string
	AdminToken string
	AIAPIKey   string

	WhatsApp   WhatsApp
	Cloudinary Cloudinary
	SMTP       SMTP
	QZ         QZ

	AutomationWebhookURL  string
	DeliveryFeeWebhookURL string
	PublicOrderURL        string

	HTTPClientTimeout time.Duration
	LogRetentionDays  int

	SeedAdminPassword string
}

type DB struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DB) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

func (r Redis) Enabled() bool { return r.Addr != "" }

type WhatsApp struct {
	APIURL   string
	APIKey   string
	Instance string
}

// Enabled reports whether every credential needed to reach the gateway is set.
func (w WhatsApp) Enabled() bool {
	return w.APIURL != "" && w.APIKey != "" && w.Instance != ""
}

type Cloudinary struct {
	CloudName string
	APIKey    string
	APISecret string
}

func (c Cloudinary) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (s SMTP) Enabled() bool { return s.Host != "" && s.From != "" }

type QZ struct {
	Certificate    string
	PrivateKey     string
	AllowedOrigins []string
}

var ErrMissingEnv = errors.New("missing required environment variable")

// Load reads the environment (after an optional .env file) into a Config.
// Only the database and JWT settings are mandatory; every integration
// degrades to "skipped" when its variables are absent.
func Load(log *zap.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file, using process environment")
	}

	var missing []string
	required := func(key string) string {
		v, ok := os.LookupEnv(key)
		if !ok || strings.TrimSpace(v) == "" {
			log.Error("required environment variable not set", zap.String("key", key))
			missing = append(missing, key)
			return ""
		}
		return v
	}

	cfg := &Config{
		Port: getEnv("APP_PORT", ":8080"),
		Env:  getEnv("ENV", "production"),
		DB: DB{
			Host:     required("DB_HOST"),
			Port:     required("DB_PORT"),
			User:     required("DB_USER"),
			Password: required("DB_PASSWORD"),
			Name:     required("DB_NAME"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       atoiDefault(os.Getenv("REDIS_DB"), 0),
		},
		JWTSecret:  required("JWT_SECRET"),
		AdminToken: os.Getenv("ADMIN_TOKEN"),
		AIAPIKey:   os.Getenv("AI_API_KEY"),
		WhatsApp: WhatsApp{
			APIURL:   strings.TrimRight(os.Getenv("WHATSAPP_API_URL"), "/"),
			APIKey:   os.Getenv("WHATSAPP_API_KEY"),
			Instance: os.Getenv("WHATSAPP_INSTANCE"),
		},
		Cloudinary: Cloudinary{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     atoiDefault(os.Getenv("SMTP_PORT"), 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
		QZ: QZ{
			Certificate:    expandNewlines(os.Getenv("QZ_CERTIFICATE")),
			PrivateKey:     expandNewlines(os.Getenv("QZ_PRIVATE_KEY")),
			AllowedOrigins: splitAndTrim(os.Getenv("QZ_ALLOWED_ORIGINS")),
		},
		AutomationWebhookURL:  os.Getenv("AUTOMATION_WEBHOOK_URL"),
		DeliveryFeeWebhookURL: os.Getenv("DELIVERY_FEE_WEBHOOK_URL"),
		PublicOrderURL:        strings.TrimRight(os.Getenv("PUBLIC_ORDER_URL"), "/"),
		HTTPClientTimeout:     time.Duration(atoiDefault(os.Getenv("HTTP_CLIENT_TIMEOUT_SECONDS"), 10)) * time.Second,
		LogRetentionDays:      atoiDefault(os.Getenv("LOG_RETENTION_DAYS"), 30),
		SeedAdminPassword:     os.Getenv("SEED_ADMIN_PASSWORD"),
	}
	if len(cfg.QZ.AllowedOrigins) == 0 {
		cfg.QZ.AllowedOrigins = DefaultQZOrigins
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}

	if !cfg.WhatsApp.Enabled() {
		log.Warn("whatsapp gateway not configured, notifications will be skipped")
	}
	return cfg, nil
}

func (c *Config) IsDev() bool { return c.Env == "development" }

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}

// PEM blocks stored in a single-line env var usually carry literal "\n".
func expandNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
