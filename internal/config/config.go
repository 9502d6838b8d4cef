package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/domain"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	HorizonURL   string
	TickerURL    string
	TickerSymbol string
	HTTPPort     string
	DatabaseURL  string

	RequestTimeout       time.Duration
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration

	MinBaseReserve          decimal.Decimal
	BaseReservePerTrustline decimal.Decimal
	TransactionFee          decimal.Decimal

	PaymentsPageLimit int
	AssetsPageLimit   int

	ExportAccount         string
	ExportInterval        time.Duration
	GoogleSheetsID        string
	GoogleCredentialsJSON string

	MetricsAPIKey string

	Logging Logging
}

// Logging holds the log settings. They are read apart from Config so the
// logger can be installed before Load reports invalid values.
type Logging struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		HorizonURL:   envOrDefault("HORIZON_URL", "https://horizon.stellar.org"),
		TickerURL:    envOrDefault("TICKER_URL", "https://api.coinmarketcap.com/v1"),
		TickerSymbol: envOrDefault("TICKER_SYMBOL", "stellar"),
		HTTPPort:     envOrDefault("HTTP_PORT", "8080"),
		DatabaseURL:  envOrDefault("DATABASE_URL", ""),

		RequestTimeout:       envOrDefaultDuration("REQUEST_TIMEOUT", 30*time.Second),
		SessionTTL:           envOrDefaultDuration("SESSION_TTL", 24*time.Hour),
		SessionSweepInterval: envOrDefaultDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute),

		MinBaseReserve:          envOrDefaultDecimal("MIN_BASE_RESERVE", decimal.NewFromInt(1)),
		BaseReservePerTrustline: envOrDefaultDecimal("BASE_RESERVE_PER_TRUSTLINE", decimal.RequireFromString("0.5")),
		TransactionFee:          envOrDefaultDecimal("TRANSACTION_FEE", decimal.RequireFromString("0.00001")),

		PaymentsPageLimit: envOrDefaultInt("PAYMENTS_PAGE_LIMIT", 10),
		AssetsPageLimit:   envOrDefaultInt("ASSETS_PAGE_LIMIT", 20),

		ExportAccount:         envOrDefault("EXPORT_ACCOUNT", ""),
		ExportInterval:        envOrDefaultDuration("EXPORT_INTERVAL", 24*time.Hour),
		GoogleSheetsID:        envOrDefault("GOOGLE_SHEETS_ID", ""),
		GoogleCredentialsJSON: envOrDefault("GOOGLE_CREDENTIALS_JSON", ""),

		MetricsAPIKey: envOrDefault("METRICS_API_KEY", ""),

		Logging: LoadLogging(),
	}
}

// LoadLogging reads LOG_LEVEL and LOG_FORMAT. It logs nothing.
func LoadLogging() Logging {
	return Logging{
		Level:  envOrDefault("LOG_LEVEL", "info"),
		Format: envOrDefault("LOG_FORMAT", "text"),
	}
}

// Reserve returns the ledger reserve model.
func (c Config) Reserve() domain.ReserveParams {
	return domain.ReserveParams{
		MinBaseReserve: c.MinBaseReserve,
		PerTrustline:   c.BaseReservePerTrustline,
		TransactionFee: c.TransactionFee,
	}
}

// SheetsExportEnabled reports whether scheduled Google Sheets export is configured.
func (c Config) SheetsExportEnabled() bool {
	return c.ExportAccount != "" && c.GoogleSheetsID != "" && c.GoogleCredentialsJSON != ""
}

// SlogLevel maps LOG_LEVEL to a slog level. An unknown value yields info and false.
func (l Logging) SlogLevel() (slog.Level, bool) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, false
	}
	return level, true
}

// NewLogger builds a JSON or text logger writing to w. An invalid level is
// reported through the new logger itself.
func (l Logging) NewLogger(w io.Writer) *slog.Logger {
	level, ok := l.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if l.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	if !ok {
		logger.Warn("invalid log level, using info", "value", l.Level)
	}
	return logger
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}

func envOrDefaultDecimal(key string, defaultVal decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil || d.IsNegative() {
			slog.Warn("invalid decimal env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
