package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Store      StoreConfig
	CORS       CORSConfig
	Log        LogConfig
	JWT        JWTConfig
	Redis      RedisConfig
	Booking    BookingConfig
	Membership MembershipConfig
	RateLimit  RateLimitConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
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
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
	// Issuer and Audience are enforced only when set.
	Issuer   string        `envconfig:"JWT_ISSUER"`
	Audience string        `envconfig:"JWT_AUDIENCE"`
	Leeway   time.Duration `envconfig:"JWT_LEEWAY" default:"30s"`
}

// Empty Addr disables event publishing.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Stream   string `envconfig:"REDIS_STREAM" default:"booking_events"`
	MaxLen   int64  `envconfig:"REDIS_STREAM_MAXLEN" default:"100000"`
}

type BookingConfig struct {
	TimeZone                string        `envconfig:"BOOKING_TIMEZONE" default:"Asia/Tokyo"`
	LeadTime                time.Duration `envconfig:"BOOKING_LEAD_TIME" default:"15m"`
	MaxBatchIntervals       int           `envconfig:"BOOKING_MAX_BATCH_INTERVALS" default:"48"`
	RefundRestoresRedeemUse bool          `envconfig:"BOOKING_REFUND_RESTORES_REDEEM_USE" default:"false"`
	DefaultOpenHour         int           `envconfig:"BOOKING_DEFAULT_OPEN_HOUR" default:"6"`
	DefaultCloseHour        int           `envconfig:"BOOKING_DEFAULT_CLOSE_HOUR" default:"24"`
	SoloOpenHour            int           `envconfig:"BOOKING_SOLO_OPEN_HOUR" default:"10"`
	SoloCloseHour           int           `envconfig:"BOOKING_SOLO_CLOSE_HOUR" default:"22"`
}

// Discounts maps membership tier to a percent off, e.g. "vip:20".
type MembershipConfig struct {
	Discounts map[string]int `envconfig:"MEMBERSHIP_DISCOUNTS" default:"vip:20"`
}

type RateLimitConfig struct {
	RPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst int     `envconfig:"RATE_LIMIT_BURST" default:"40"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c *BookingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.Store.Driver != StoreDriverPostgres && cfg.Store.Driver != StoreDriverMemory {
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Store.Driver)
	}
	if cfg.Store.Driver == StoreDriverPostgres && (cfg.DB.User == "" || cfg.DB.DBName == "") {
		return Config{}, fmt.Errorf("DB_USER and DB_NAME are required for the postgres store")
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",
			MaxConns: 5,
		},
		Store: StoreConfig{
			Driver: StoreDriverMemory,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
			Issuer:   "booking-test",
			Audience: "court-booking",
		},
		Redis: RedisConfig{
			Stream: "booking_events_test",
			MaxLen: 1000,
		},
		Booking: BookingConfig{
			TimeZone:          "Asia/Tokyo",
			LeadTime:          15 * time.Minute,
			MaxBatchIntervals: 48,
			DefaultOpenHour:   6,
			DefaultCloseHour:  24,
			SoloOpenHour:      10,
			SoloCloseHour:     22,
		},
		Membership: MembershipConfig{
			Discounts: map[string]int{"vip": 20},
		},
		RateLimit: RateLimitConfig{
			RPS:   1000,
			Burst: 1000,
		},
	}
}
