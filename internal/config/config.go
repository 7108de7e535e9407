package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Mail      MailConfig
	Signup    SignupConfig
	Matching  MatchingConfig
	Admin     AdminConfig
	Scheduler SchedulerConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogLevel    string
	FrontEndURL string
}

func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	URL string
	TTL time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether enough SMTP settings are present to send mail.
func (c MailConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

type SignupConfig struct {
	EmployerAccessCode string
}

type MatchingConfig struct {
	SimilarThreshold float64
	ProfileThreshold float64
	NotifyThreshold  float64
	Limit            int
}

type AdminConfig struct {
	Email    string
	Password string
}

type SchedulerConfig struct {
	ResetTokenSweepSpec string
}

const (
	defaultRedisTTL        = 10 * time.Minute
	defaultAccessTTL       = time.Hour
	defaultRefreshTTL      = 7 * 24 * time.Hour
	defaultSMTPPort        = 587
	defaultSimilar         = 0.5
	defaultProfile         = 0.7
	defaultNotify          = 0.7
	defaultMatchLimit      = 6
	defaultResetSweepSpec  = "@every 1h"
	defaultConnectTimeout  = 5 * time.Second
	defaultFrontEndURL     = "http://localhost:3000"
	defaultLogLevel        = "info"
	defaultJWTIssuerSuffix = "-api"
)

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		LogLevel:    strOr(opt("LOG_LEVEL"), defaultLogLevel),
		FrontEndURL: strings.TrimRight(strOr(opt("FRONT_END_URL"), defaultFrontEndURL), "/"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  strOr(opt("DB_SSL_MODE"), "disable"),

		ConnectTimeout:        durationOr(opt("DB_CONNECT_TIMEOUT"), defaultConnectTimeout),
		PoolMaxConns:          int32(intOr(opt("DB_POOL_MAX_CONNS"), 0)),
		PoolMinConns:          int32(intOr(opt("DB_POOL_MIN_CONNS"), 0)),
		PoolMaxConnLifetime:   durationOr(opt("DB_POOL_MAX_CONN_LIFETIME"), 0),
		PoolMaxConnIdleTime:   durationOr(opt("DB_POOL_MAX_CONN_IDLE_TIME"), 0),
		PoolHealthCheckPeriod: durationOr(opt("DB_POOL_HEALTH_CHECK_PERIOD"), 0),
	}

	cfg.Redis = RedisConfig{
		URL: opt("REDIS_URL"),
		TTL: durationOr(opt("REDIS_TTL"), defaultRedisTTL),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:  req("JWT_ACCESS_SECRET"),
		RefreshSecret: req("JWT_REFRESH_SECRET"),
		AccessTTL:     durationOr(opt("JWT_ACCESS_TTL"), defaultAccessTTL),
		RefreshTTL:    durationOr(opt("JWT_REFRESH_TTL"), defaultRefreshTTL),
		Issuer:        strOr(opt("JWT_ISSUER"), cfg.App.AppName+defaultJWTIssuerSuffix),
	}

	cfg.Mail = MailConfig{
		Host:     opt("SMTP_HOST"),
		Port:     intOr(opt("SMTP_PORT"), defaultSMTPPort),
		Username: opt("SMTP_USER"),
		Password: opt("SMTP_PASSWORD"),
		From:     opt("SMTP_FROM"),
	}

	cfg.Signup = SignupConfig{
		EmployerAccessCode: opt("EMPLOYER_ACCESS_CODE"),
	}

	cfg.Matching = MatchingConfig{
		SimilarThreshold: floatOr(opt("MATCH_SIMILAR_THRESHOLD"), defaultSimilar),
		ProfileThreshold: floatOr(opt("MATCH_PROFILE_THRESHOLD"), defaultProfile),
		NotifyThreshold:  floatOr(opt("MATCH_NOTIFY_THRESHOLD"), defaultNotify),
		Limit:            intOr(opt("MATCH_LIMIT"), defaultMatchLimit),
	}
	if cfg.Matching.Limit <= 0 {
		cfg.Matching.Limit = defaultMatchLimit
	}

	cfg.Admin = AdminConfig{
		Email:    opt("ADMIN_EMAIL"),
		Password: opt("ADMIN_PASSWORD"),
	}

	cfg.Scheduler = SchedulerConfig{
		ResetTokenSweepSpec: strOr(opt("RESET_TOKEN_SWEEP_SPEC"), defaultResetSweepSpec),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func strOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func intOr(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func floatOr(v string, def float64) float64 {
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// durationOr accepts Go duration strings ("90s") or a bare number of seconds.
func durationOr(v string, def time.Duration) time.Duration {
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 {
		return time.Duration(n) * time.Second
	}
	return def
}
