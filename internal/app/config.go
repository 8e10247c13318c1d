package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/backoffice/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/backoffice/internal/service/backoffice"
)

const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	GRPCAddr    string
	MetricsAddr string

	StorageDriver       string
	PostgresDSN         string
	SecretsFile         string
	PostgresAutoMigrate bool
	SeedMemoryCatalog   bool

	KafkaBrokers       []string
	OutboxTopic        string
	OutboxDLQTopic     string
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
	OutboxRetryDelay   time.Duration
	OutboxMaxAge       time.Duration

	OutboxRetention       time.Duration
	OutboxCleanupInterval time.Duration

	ReportWindow int
}

// DefaultConfig возвращает базовые адреса и параметры воркера outbox.
func DefaultConfig() Config {
	return Config{
		GRPCAddr:              ":50051",
		MetricsAddr:           ":9090",
		StorageDriver:         StorageDriverMemory,
		PostgresAutoMigrate:   true,
		SeedMemoryCatalog:     true,
		OutboxTopic:           kafka.TopicBackofficeEvents,
		OutboxDLQTopic:        kafka.TopicDeadLetterQueue,
		OutboxPollInterval:    time.Second,
		OutboxBatchSize:       100,
		OutboxMaxAttempts:     3,
		OutboxRetryDelay:      50 * time.Millisecond,
		OutboxMaxAge:          5 * time.Minute,
		OutboxRetention:       24 * time.Hour,
		OutboxCleanupInterval: 10 * time.Minute,
		ReportWindow:          backoffice.DefaultReportWindow,
	}
}

// ConfigFromEnv накладывает переменные BACKOFFICE_* на DefaultConfig.
// Некорректное значение возвращается ошибкой с именем переменной.
func ConfigFromEnv() (Config, error) {
	return configFromLookup(os.LookupEnv)
}

func configFromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	env := envReader{lookup: lookup}

	env.str("BACKOFFICE_GRPC_ADDR", &cfg.GRPCAddr)
	env.str("BACKOFFICE_METRICS_ADDR", &cfg.MetricsAddr)
	env.str("BACKOFFICE_STORAGE_DRIVER", &cfg.StorageDriver)
	env.str("BACKOFFICE_POSTGRES_DSN", &cfg.PostgresDSN)
	env.str("BACKOFFICE_SECRETS_FILE", &cfg.SecretsFile)
	env.boolean("BACKOFFICE_POSTGRES_AUTO_MIGRATE", &cfg.PostgresAutoMigrate)
	env.boolean("BACKOFFICE_SEED_MEMORY_CATALOG", &cfg.SeedMemoryCatalog)
	env.list("BACKOFFICE_KAFKA_BROKERS", &cfg.KafkaBrokers)
	env.str("BACKOFFICE_OUTBOX_TOPIC", &cfg.OutboxTopic)
	env.str("BACKOFFICE_OUTBOX_DLQ_TOPIC", &cfg.OutboxDLQTopic)
	env.duration("BACKOFFICE_OUTBOX_POLL_INTERVAL", &cfg.OutboxPollInterval)
	env.positiveInt("BACKOFFICE_OUTBOX_BATCH_SIZE", &cfg.OutboxBatchSize)
	env.positiveInt("BACKOFFICE_OUTBOX_MAX_ATTEMPTS", &cfg.OutboxMaxAttempts)
	env.duration("BACKOFFICE_OUTBOX_RETRY_DELAY", &cfg.OutboxRetryDelay)
	env.duration("BACKOFFICE_OUTBOX_MAX_AGE", &cfg.OutboxMaxAge)
	env.duration("BACKOFFICE_OUTBOX_RETENTION", &cfg.OutboxRetention)
	env.duration("BACKOFFICE_OUTBOX_CLEANUP_INTERVAL", &cfg.OutboxCleanupInterval)
	env.positiveInt("BACKOFFICE_REPORT_WINDOW", &cfg.ReportWindow)

	if env.err != nil {
		return Config{}, env.err
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	return cfg, nil
}

// envReader запоминает первую ошибку разбора, чтобы не проверять каждую переменную.
type envReader struct {
	lookup func(string) (string, bool)
	err    error
}

func (r *envReader) value(name string) (string, bool) {
	if r.err != nil {
		return "", false
	}
	v, ok := r.lookup(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (r *envReader) fail(name, raw string, err error) {
	r.err = fmt.Errorf("invalid %s=%q: %w", name, raw, err)
}

func (r *envReader) str(name string, dst *string) {
	if v, ok := r.value(name); ok {
		*dst = v
	}
}

func (r *envReader) list(name string, dst *[]string) {
	v, ok := r.value(name)
	if !ok {
		return
	}
	var items []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	*dst = items
}

func (r *envReader) boolean(name string, dst *bool) {
	v, ok := r.value(name)
	if !ok {
		return
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(name, v, err)
		return
	}
	*dst = parsed
}

func (r *envReader) positiveInt(name string, dst *int) {
	v, ok := r.value(name)
	if !ok {
		return
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		r.fail(name, v, err)
		return
	}
	if parsed <= 0 {
		r.fail(name, v, fmt.Errorf("must be greater than zero"))
		return
	}
	*dst = parsed
}

func (r *envReader) duration(name string, dst *time.Duration) {
	v, ok := r.value(name)
	if !ok {
		return
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		r.fail(name, v, err)
		return
	}
	if parsed < 0 {
		r.fail(name, v, fmt.Errorf("must not be negative"))
		return
	}
	*dst = parsed
}
