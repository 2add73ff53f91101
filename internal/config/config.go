package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/gotlocks/internal/platform/logging"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                        string
	ServiceName                   string
	ServiceVersion                string
	HTTPAddr                      string
	ReadTimeout                   time.Duration
	WriteTimeout                  time.Duration
	ShutdownTimeout               time.Duration
	LogLevel                      logging.Level
	StorageDriver                 string
	DBURL                         string
	DBDisablePreparedBinary       bool
	SeedEnabled                   bool
	CacheEnabled                  bool
	CacheTTL                      time.Duration
	CORSAllowedOrigins            []string
	RateLimitPerSecond            float64
	RateLimitBurst                int
	TrustProxyHeaders             bool
	MetricsEnabled                bool
	SwaggerEnabled                bool
	GradingBackendURL             string
	GradingTimeout                time.Duration
	GradingCronAuthEnabled        bool
	GradingCronSecret             string
	GradingScheduleEnabled        bool
	GradingScheduleInterval       time.Duration
	GradingRunHistory             int
	ScoringTablePath              string
	LeaderboardWorkers            int
	IdentityBaseURL               string
	IdentityIntrospectPath        string
	IdentityAdminKey              string
	IdentityTimeout               time.Duration
	IdentityCacheTTL              time.Duration
	IdentityCircuitEnabled        bool
	IdentityCircuitFailureCount   int
	IdentityCircuitOpenTimeout    time.Duration
	IdentityCircuitHalfOpenMaxReq int
	InternalJobToken              string
	PprofEnabled                  bool
	PprofAddr                     string
	UptraceEnabled                bool
	UptraceDSN                    string
	PyroscopeEnabled              bool
	PyroscopeServerAddress        string
	PyroscopeAppName              string
	PyroscopeAuthToken            string
	PyroscopeBasicAuthUser        string
	PyroscopeBasicAuthPassword    string
	PyroscopeUploadRate           time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                 appEnv,
		ServiceName:            getEnv("APP_SERVICE_NAME", "gotlocks-api"),
		ServiceVersion:         getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:               getEnv("APP_HTTP_ADDR", ":8080"),
		LogLevel:               parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		DBURL:                  strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins:     splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		GradingBackendURL:      strings.TrimRight(strings.TrimSpace(getEnv("GRADING_BACKEND_URL", "")), "/"),
		GradingCronSecret:      strings.TrimSpace(getEnv("GRADING_CRON_SECRET", "")),
		ScoringTablePath:       strings.TrimSpace(getEnv("SCORING_TABLE_PATH", "")),
		IdentityBaseURL:        getEnv("IDENTITY_BASE_URL", "http://localhost:8081"),
		IdentityIntrospectPath: getEnv("IDENTITY_INTROSPECT_PATH", "/v1/auth/introspect"),
		IdentityAdminKey:       getEnv("IDENTITY_ADMIN_KEY", ""),
		InternalJobToken:       strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		PprofAddr:              strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		UptraceDSN:             strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		PyroscopeServerAddress: strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
	}
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}

	if err := cfg.loadHTTP(); err != nil {
		return Config{}, err
	}
	if err := cfg.loadStorage(); err != nil {
		return Config{}, err
	}
	if err := cfg.loadGrading(); err != nil {
		return Config{}, err
	}
	if err := cfg.loadIdentity(); err != nil {
		return Config{}, err
	}
	if err := cfg.loadObservability(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) loadHTTP() error {
	var err error
	if c.ReadTimeout, err = getEnvAsDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return err
	}
	if c.WriteTimeout, err = getEnvAsDuration("APP_WRITE_TIMEOUT", "45s"); err != nil {
		return err
	}
	if c.ShutdownTimeout, err = getEnvAsDuration("APP_SHUTDOWN_TIMEOUT", "10s"); err != nil {
		return err
	}
	if len(c.CORSAllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if c.RateLimitPerSecond, err = getEnvAsFloat("RATE_LIMIT_PER_SECOND", 20); err != nil {
		return fmt.Errorf("parse RATE_LIMIT_PER_SECOND: %w", err)
	}
	if c.RateLimitPerSecond < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_SECOND must be >= 0")
	}
	if c.RateLimitBurst, err = getEnvAsInt("RATE_LIMIT_BURST", 40); err != nil {
		return fmt.Errorf("parse RATE_LIMIT_BURST: %w", err)
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 1")
	}
	if c.TrustProxyHeaders, err = strconv.ParseBool(getEnv("TRUST_PROXY_HEADERS", "false")); err != nil {
		return fmt.Errorf("parse TRUST_PROXY_HEADERS: %w", err)
	}

	if c.MetricsEnabled, err = strconv.ParseBool(getEnv("METRICS_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}
	swaggerDefault := "true"
	if c.AppEnv == EnvProd {
		swaggerDefault = "false"
	}
	if c.SwaggerEnabled, err = strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault)); err != nil {
		return fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}
	if c.LeaderboardWorkers, err = getEnvAsInt("LEADERBOARD_WORKERS", 8); err != nil {
		return fmt.Errorf("parse LEADERBOARD_WORKERS: %w", err)
	}
	if c.LeaderboardWorkers < 1 {
		return fmt.Errorf("LEADERBOARD_WORKERS must be >= 1")
	}
	return nil
}

func (c *Config) loadStorage() error {
	driver := strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageMemory)))
	switch driver {
	case StorageMemory, StoragePostgres:
		c.StorageDriver = driver
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", driver, StorageMemory, StoragePostgres)
	}
	if c.StorageDriver == StoragePostgres && c.DBURL == "" {
		return fmt.Errorf("DB_URL is required when STORAGE_DRIVER=postgres")
	}

	var err error
	if c.DBDisablePreparedBinary, err = strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true")); err != nil {
		return fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	seedDefault := "true"
	if c.AppEnv == EnvProd {
		seedDefault = "false"
	}
	if c.SeedEnabled, err = strconv.ParseBool(getEnv("SEED_ENABLED", seedDefault)); err != nil {
		return fmt.Errorf("parse SEED_ENABLED: %w", err)
	}
	if c.CacheEnabled, err = strconv.ParseBool(getEnv("CACHE_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	if c.CacheTTL, err = getEnvAsDuration("CACHE_TTL", "60s"); err != nil {
		return err
	}
	return nil
}

func (c *Config) loadGrading() error {
	if c.GradingBackendURL != "" {
		parsed, err := url.Parse(c.GradingBackendURL)
		if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return fmt.Errorf("GRADING_BACKEND_URL must be an absolute http(s) URL, got %q", c.GradingBackendURL)
		}
	}

	var err error
	if c.GradingTimeout, err = getEnvAsDuration("GRADING_TIMEOUT", "30s"); err != nil {
		return err
	}
	if c.GradingCronAuthEnabled, err = strconv.ParseBool(getEnv("GRADING_CRON_AUTH_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse GRADING_CRON_AUTH_ENABLED: %w", err)
	}
	if c.GradingCronAuthEnabled && c.GradingCronSecret == "" {
		return fmt.Errorf("GRADING_CRON_SECRET is required when GRADING_CRON_AUTH_ENABLED=true")
	}
	if c.GradingScheduleEnabled, err = strconv.ParseBool(getEnv("GRADING_SCHEDULE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse GRADING_SCHEDULE_ENABLED: %w", err)
	}
	if c.GradingScheduleInterval, err = getEnvAsDuration("GRADING_SCHEDULE_INTERVAL", "15m"); err != nil {
		return err
	}
	if c.GradingScheduleEnabled {
		if c.GradingBackendURL == "" {
			return fmt.Errorf("GRADING_BACKEND_URL is required when GRADING_SCHEDULE_ENABLED=true")
		}
		if c.GradingScheduleInterval < time.Minute {
			return fmt.Errorf("GRADING_SCHEDULE_INTERVAL must be >= 1m")
		}
	}
	if c.GradingRunHistory, err = getEnvAsInt("GRADING_RUN_HISTORY", 500); err != nil {
		return fmt.Errorf("parse GRADING_RUN_HISTORY: %w", err)
	}
	if c.GradingRunHistory < 1 {
		return fmt.Errorf("GRADING_RUN_HISTORY must be >= 1")
	}
	return nil
}

func (c *Config) loadIdentity() error {
	var err error
	if c.IdentityTimeout, err = getEnvAsDuration("IDENTITY_TIMEOUT", "3s"); err != nil {
		return err
	}
	if c.IdentityCacheTTL, err = getEnvAsDuration("IDENTITY_CACHE_TTL", "30s"); err != nil {
		return err
	}
	if c.IdentityCircuitEnabled, err = strconv.ParseBool(getEnv("IDENTITY_CIRCUIT_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse IDENTITY_CIRCUIT_ENABLED: %w", err)
	}
	if c.IdentityCircuitFailureCount, err = getEnvAsInt("IDENTITY_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return fmt.Errorf("parse IDENTITY_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if c.IdentityCircuitFailureCount < 1 {
		return fmt.Errorf("IDENTITY_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if c.IdentityCircuitOpenTimeout, err = getEnvAsDuration("IDENTITY_CIRCUIT_OPEN_TIMEOUT", "15s"); err != nil {
		return err
	}
	if c.IdentityCircuitHalfOpenMaxReq, err = getEnvAsInt("IDENTITY_CIRCUIT_HALF_OPEN_MAX_REQ", 2); err != nil {
		return fmt.Errorf("parse IDENTITY_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if c.IdentityCircuitHalfOpenMaxReq < 1 {
		return fmt.Errorf("IDENTITY_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	return nil
}

func (c *Config) loadObservability() error {
	var err error
	if c.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	if c.UptraceEnabled && c.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if c.PprofEnabled, err = strconv.ParseBool(getEnv("PPROF_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	if c.PprofEnabled && c.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	if c.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	if c.PyroscopeEnabled {
		if c.PyroscopeServerAddress == "" {
			return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
		}
		if c.PyroscopeAppName == "" {
			return fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
		}
	}
	if c.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return err
	}
	return nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.ParseFloat(value, 64)
}

// getEnvAsDuration parses a positive duration.
func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
