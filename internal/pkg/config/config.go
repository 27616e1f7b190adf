package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   processor credentials) or are security sensitive
// - default: Values common across all environments (timeouts, commission
//   defaults, standard settings)
// -----------------------------------------------------------------------------

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	Redis       RedisConfig
	CORS        CORSConfig
	Log         LogConfig
	JWT         JWTConfig
	MercadoPago MercadoPagoConfig
	Commission  CommissionConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
	// PublicBaseURL is the externally reachable origin used to build
	// webhook notification URLs.
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" required:"true"`
	// FrontBaseURL is the UI origin used to build payment redirect targets.
	FrontBaseURL string `envconfig:"FRONT_BASE_URL" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"America/Argentina/Buenos_Aires"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL time.Duration `envconfig:"REDIS_CACHE_TTL" default:"5s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"America/Argentina/Buenos_Aires"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-10800"` // -3*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Issuer   string `envconfig:"JWT_ISSUER" default:"casaraiz-auth"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type MercadoPagoConfig struct {
	AccessToken string        `envconfig:"MP_ACCESS_TOKEN" required:"true"`
	BaseURL     string        `envconfig:"MP_BASE_URL" default:"https://api.mercadopago.com"`
	Timeout     time.Duration `envconfig:"MP_TIMEOUT" default:"10s"`
	Sandbox     bool          `envconfig:"MP_SANDBOX" default:"false"`
}

// CommissionConfig holds the platform-wide fallback percentages applied when
// a house row carries no plan-specific override.
type CommissionConfig struct {
	CeremonyPct float64 `envconfig:"COMMISSION_CEREMONY_PCT" default:"10"`
	ProductPct  float64 `envconfig:"COMMISSION_PRODUCT_PCT" default:"15"`
	CoursePct   float64 `envconfig:"COMMISSION_COURSE_PCT" default:"12"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:          "8889",
			PublicBaseURL: "http://localhost:8889",
			FrontBaseURL:  "http://localhost:3000",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level:          "error",
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		MercadoPago: MercadoPagoConfig{
			AccessToken: "TEST-token",
			BaseURL:     "http://localhost:9999",
			Timeout:     time.Second,
			Sandbox:     true,
		},
		Commission: CommissionConfig{
			CeremonyPct: 10,
			ProductPct:  15,
			CoursePct:   12,
		},
	}
}
