package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/club-activity/internal/platform/logging"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config stores runtime configuration for the service and the CLI.
type Config struct {
	AppEnv                      string
	ServiceName                 string
	ServiceVersion              string
	HTTPAddr                    string
	StorageBackend              string
	DataDir                     string
	DBURL                       string
	DBMaxOpenConns              int
	DBMaxIdleConns              int
	DBDisablePreparedBinary     bool
	ProviderCacheEnabled        bool
	ProviderCacheTTL            time.Duration
	RegisterCacheTTL            time.Duration
	CORSAllowedOrigins          []string
	ReadTimeout                 time.Duration
	WriteTimeout                time.Duration
	PprofEnabled                bool
	PprofAddr                   string
	UptraceEnabled              bool
	UptraceDSN                  string
	UptraceCaptureRequestBody   bool
	UptraceRequestBodyMaxBytes  int
	PyroscopeEnabled            bool
	PyroscopeServerAddress      string
	PyroscopeAppName            string
	PyroscopeAuthToken          string
	PyroscopeBasicAuthUser      string
	PyroscopeBasicAuthPassword  string
	PyroscopeUploadRate         time.Duration
	StravaBaseURL               string
	StravaAccessToken           string
	StravaTimeout               time.Duration
	StravaMaxRetries            int
	StravaRatePerMinute         int
	StravaCircuitEnabled        bool
	StravaCircuitFailureCount   int
	StravaCircuitOpenTimeout    time.Duration
	StravaCircuitHalfOpenMaxReq int
	FetchCooldown               time.Duration
	IngestMemberCap             int
	IngestPerPage               int
	IngestMaxPages              int
	IngestScreenWorkers         int
	InternalJobToken            string
	LogLevel                    logging.Level
	LogFormat                   string
}

// StravaConfigured reports whether remote ingestion can authenticate.
func (c Config) StravaConfigured() bool {
	return c.StravaAccessToken != ""
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	storageBackend, err := parseStorageBackend(getEnv("STORAGE_BACKEND", StorageFile))
	if err != nil {
		return Config{}, err
	}
	dataDir := strings.TrimSpace(getEnv("DATA_DIR", "data"))
	if storageBackend == StorageFile && dataDir == "" {
		return Config{}, fmt.Errorf("DATA_DIR is required when STORAGE_BACKEND=file")
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if storageBackend == StoragePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORAGE_BACKEND=postgres")
	}

	dbMaxOpenConns, err := getEnvAsInt("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
	}
	dbMaxIdleConns, err := getEnvAsInt("DB_MAX_IDLE_CONNS", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_IDLE_CONNS: %w", err)
	}
	if dbMaxOpenConns < 1 || dbMaxIdleConns < 0 {
		return Config{}, fmt.Errorf("DB_MAX_OPEN_CONNS must be >= 1 and DB_MAX_IDLE_CONNS >= 0")
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceCaptureRequestBody, err := strconv.ParseBool(getEnv("UPTRACE_CAPTURE_REQUEST_BODY", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_CAPTURE_REQUEST_BODY: %w", err)
	}
	uptraceRequestBodyMaxBytes, err := getEnvAsInt("UPTRACE_REQUEST_BODY_MAX_BYTES", 8192)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_REQUEST_BODY_MAX_BYTES: %w", err)
	}
	if uptraceRequestBodyMaxBytes <= 0 {
		return Config{}, fmt.Errorf("UPTRACE_REQUEST_BODY_MAX_BYTES must be > 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	stravaTimeout, err := time.ParseDuration(getEnv("STRAVA_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STRAVA_TIMEOUT: %w", err)
	}
	if stravaTimeout <= 0 {
		return Config{}, fmt.Errorf("STRAVA_TIMEOUT must be > 0")
	}
	stravaMaxRetries, err := getEnvAsInt("STRAVA_MAX_RETRIES", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse STRAVA_MAX_RETRIES: %w", err)
	}
	if stravaMaxRetries < 0 {
		return Config{}, fmt.Errorf("STRAVA_MAX_RETRIES must be >= 0")
	}
	stravaRatePerMinute, err := getEnvAsInt("STRAVA_RATE_PER_MINUTE", 40)
	if err != nil {
		return Config{}, fmt.Errorf("parse STRAVA_RATE_PER_MINUTE: %w", err)
	}
	if stravaRatePerMinute < 0 {
		return Config{}, fmt.Errorf("STRAVA_RATE_PER_MINUTE must be >= 0")
	}
	stravaCircuitEnabled, err := strconv.ParseBool(getEnv("STRAVA_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STRAVA_CIRCUIT_ENABLED: %w", err)
	}
	stravaCircuitFailureCount, err := getEnvAsInt("STRAVA_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse STRAVA_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if stravaCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("STRAVA_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	stravaCircuitOpenTimeout, err := time.ParseDuration(getEnv("STRAVA_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STRAVA_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if stravaCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("STRAVA_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	stravaCircuitHalfOpenMaxReq, err := getEnvAsInt("STRAVA_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse STRAVA_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if stravaCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("STRAVA_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	providerCacheEnabled, err := strconv.ParseBool(getEnv("PROVIDER_CACHE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_CACHE_ENABLED: %w", err)
	}
	providerCacheTTL, err := time.ParseDuration(getEnv("PROVIDER_CACHE_TTL", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_CACHE_TTL: %w", err)
	}
	if providerCacheTTL < time.Second {
		return Config{}, fmt.Errorf("PROVIDER_CACHE_TTL must be >= 1s")
	}
	registerCacheTTL, err := time.ParseDuration(getEnv("REGISTER_CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse REGISTER_CACHE_TTL: %w", err)
	}
	if registerCacheTTL < 0 {
		return Config{}, fmt.Errorf("REGISTER_CACHE_TTL must be >= 0")
	}

	fetchCooldown, err := time.ParseDuration(getEnv("FETCH_COOLDOWN", "6h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FETCH_COOLDOWN: %w", err)
	}
	if fetchCooldown < 0 {
		return Config{}, fmt.Errorf("FETCH_COOLDOWN must be >= 0")
	}
	ingestMemberCap, err := getEnvAsInt("INGEST_MEMBER_CAP", 300)
	if err != nil {
		return Config{}, fmt.Errorf("parse INGEST_MEMBER_CAP: %w", err)
	}
	if ingestMemberCap < 1 {
		return Config{}, fmt.Errorf("INGEST_MEMBER_CAP must be >= 1")
	}
	ingestPerPage, err := getEnvAsInt("INGEST_PER_PAGE", 200)
	if err != nil {
		return Config{}, fmt.Errorf("parse INGEST_PER_PAGE: %w", err)
	}
	if ingestPerPage < 1 || ingestPerPage > 200 {
		return Config{}, fmt.Errorf("INGEST_PER_PAGE must be between 1 and 200")
	}
	ingestMaxPages, err := getEnvAsInt("INGEST_MAX_PAGES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse INGEST_MAX_PAGES: %w", err)
	}
	if ingestMaxPages < 1 {
		return Config{}, fmt.Errorf("INGEST_MAX_PAGES must be >= 1")
	}
	ingestScreenWorkers, err := getEnvAsInt("INGEST_SCREEN_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse INGEST_SCREEN_WORKERS: %w", err)
	}
	if ingestScreenWorkers < 1 {
		return Config{}, fmt.Errorf("INGEST_SCREEN_WORKERS must be >= 1")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	// Ingestion runs synchronously inside the request, so the write timeout is generous.
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	logFormat := strings.ToLower(strings.TrimSpace(getEnv("APP_LOG_FORMAT", logging.FormatJSON)))
	if logFormat != logging.FormatJSON && logFormat != logging.FormatConsole {
		return Config{}, fmt.Errorf("invalid APP_LOG_FORMAT %q: valid values are %s, %s", logFormat, logging.FormatJSON, logging.FormatConsole)
	}

	cfg := Config{
		AppEnv:                      appEnv,
		ServiceName:                 getEnv("APP_SERVICE_NAME", "club-activity-api"),
		ServiceVersion:              getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                    getEnv("APP_HTTP_ADDR", ":8080"),
		StorageBackend:              storageBackend,
		DataDir:                     dataDir,
		DBURL:                       dbURL,
		DBMaxOpenConns:              dbMaxOpenConns,
		DBMaxIdleConns:              dbMaxIdleConns,
		DBDisablePreparedBinary:     dbDisablePreparedBinary,
		ProviderCacheEnabled:        providerCacheEnabled,
		ProviderCacheTTL:            providerCacheTTL,
		RegisterCacheTTL:            registerCacheTTL,
		CORSAllowedOrigins:          splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                 readTimeout,
		WriteTimeout:                writeTimeout,
		PprofEnabled:                pprofEnabled,
		PprofAddr:                   pprofAddr,
		UptraceEnabled:              uptraceEnabled,
		UptraceDSN:                  uptraceDSN,
		UptraceCaptureRequestBody:   uptraceCaptureRequestBody,
		UptraceRequestBodyMaxBytes:  uptraceRequestBodyMaxBytes,
		PyroscopeEnabled:            pyroscopeEnabled,
		PyroscopeServerAddress:      pyroscopeServerAddress,
		PyroscopeAuthToken:          strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:      strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:  strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:         pyroscopeUploadRate,
		StravaBaseURL:               strings.TrimSpace(getEnv("STRAVA_BASE_URL", "https://www.strava.com/api/v3")),
		StravaAccessToken:           strings.TrimSpace(getEnv("STRAVA_ACCESS_TOKEN", "")),
		StravaTimeout:               stravaTimeout,
		StravaMaxRetries:            stravaMaxRetries,
		StravaRatePerMinute:         stravaRatePerMinute,
		StravaCircuitEnabled:        stravaCircuitEnabled,
		StravaCircuitFailureCount:   stravaCircuitFailureCount,
		StravaCircuitOpenTimeout:    stravaCircuitOpenTimeout,
		StravaCircuitHalfOpenMaxReq: stravaCircuitHalfOpenMaxReq,
		FetchCooldown:               fetchCooldown,
		IngestMemberCap:             ingestMemberCap,
		IngestPerPage:               ingestPerPage,
		IngestMaxPages:              ingestMaxPages,
		IngestScreenWorkers:         ingestScreenWorkers,
		InternalJobToken:            strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		LogLevel:                    logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat:                   logFormat,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if appEnv == EnvProd && cfg.InternalJobToken == "" {
		return Config{}, fmt.Errorf("INTERNAL_JOB_TOKEN is required when APP_ENV=prod")
	}

	return cfg, nil
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

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
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

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
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

func parseStorageBackend(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case StorageFile, StoragePostgres, StorageMemory:
		return value, nil
	default:
		return "", fmt.Errorf("invalid STORAGE_BACKEND %q: valid values are %s, %s, %s", v, StorageFile, StoragePostgres, StorageMemory)
	}
}
