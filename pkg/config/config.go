package config

import (
	"errors"
	"fmt"
	"io/fs"
	"medq/pkg/client"
	"medq/pkg/locale"
	"medq/pkg/logger"
	"os"
	"regexp"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	StoreBackend    string
	StoreFilePath   string
	AppointmentsKey string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	PostgresDSN string

	TokenPolicy    string
	MaxTokenNumber int

	PredictionDelay  time.Duration
	EstimateCacheTTL time.Duration
	ClinicTimezone   string
	PhoneRegion      string

	KafkaEnabled     bool
	KafkaBookedTopic string
	KafkaQueueTopic  string
	KafkaGroupID     string
	KafkaDLQSuffix   string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client

	location *time.Location
}

// Load reads an optional .env file, then the process environment, and exits
// the process if the resulting configuration is invalid.
func Load(serviceName string) *Config {
	envErr := godotenv.Load()

	log := logger.New(logger.Config{
		Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
		Format:    logger.JSON,
		AddSource: true,
		Service:   serviceName,
	})
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		log.Warn("Failed to read .env file, relying on environment variables", "error", envErr)
	}

	clinicTZ := getEnvStr(EnvClinicTimezone, DefaultClinicTimezone)
	cfg := &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		StoreBackend:    getEnvStr(EnvStoreBackend, DefaultStoreBackend),
		StoreFilePath:   getEnvStr(EnvStoreFilePath, DefaultStoreFilePath),
		AppointmentsKey: getEnvStr(EnvAppointmentsKey, DefaultAppointmentsKey),

		RedisAddr:     getEnvStr(EnvRedisAddr, DefaultRedisAddr),
		RedisPassword: getEnvStr(EnvRedisPassword, ""),
		RedisDB:       getEnvNum(EnvRedisDB, DefaultRedisDB),

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		PostgresDSN: getEnvStr(EnvPostgresDSN, ""),

		TokenPolicy:    getEnvStr(EnvTokenPolicy, DefaultTokenPolicy),
		MaxTokenNumber: getEnvNum(EnvMaxTokenNumber, DefaultMaxTokenNumber),

		PredictionDelay:  getEnvDuration(EnvPredictionDelay, DefaultPredictionDelay),
		EstimateCacheTTL: getEnvDuration(EnvEstimateCacheTTL, DefaultEstimateCacheTTL),
		ClinicTimezone:   clinicTZ,
		PhoneRegion:      locale.DetectRegion(clinicTZ),

		KafkaEnabled:     getEnvBool(EnvKafkaEnabled, DefaultKafkaEnabled),
		KafkaBookedTopic: getEnvStr(EnvKafkaBookedTopic, DefaultKafkaBookedTopic),
		KafkaQueueTopic:  getEnvStr(EnvKafkaQueueTopic, DefaultKafkaQueueTopic),
		KafkaGroupID:     getEnvStr(EnvKafkaGroupID, DefaultKafkaGroupID),
		KafkaDLQSuffix:   getEnvStr(EnvKafkaDLQSuffix, DefaultKafkaDLQSuffix),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log:    log,
		Client: client.NewClient(log),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.location, _ = time.LoadLocation(cfg.ClinicTimezone)
	cfg.LogConfiguration()
	return cfg
}

// Connect opens the connection required by the configured store backend.
func (cfg *Config) Connect() {
	switch cfg.StoreBackend {
	case StoreRedis:
		cfg.Client.SetRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.MongoConnTimeout)
	case StoreMongo:
		cfg.Client.SetMongo(cfg.MongoURI, cfg.MongoConnTimeout)
	case StorePostgres:
		cfg.Client.SetPostgres(cfg.PostgresDSN)
	}
}

// Location returns the clinic timezone, falling back to UTC when the
// configured zone cannot be loaded.
func (cfg *Config) Location() *time.Location {
	if cfg.location != nil {
		return cfg.location
	}
	loc, err := time.LoadLocation(cfg.ClinicTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	switch cfg.StoreBackend {
	case StoreMemory:
	case StoreFile:
		if cfg.StoreFilePath == "" {
			errors = append(errors, "StoreFilePath cannot be empty when STORE_BACKEND=file")
		}
	case StoreRedis:
		if cfg.RedisAddr == "" {
			errors = append(errors, "RedisAddr cannot be empty when STORE_BACKEND=redis")
		}
	case StoreMongo:
		if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
			errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
		}
		if cfg.MongoDatabaseName == "" {
			errors = append(errors, "MongoDatabaseName cannot be empty")
		}
	case StorePostgres:
		if cfg.PostgresDSN == "" {
			errors = append(errors, "PostgresDSN cannot be empty when STORE_BACKEND=postgres")
		}
	default:
		errors = append(errors, fmt.Sprintf("StoreBackend must be one of [memory, file, redis, mongo, postgres], got: %s", cfg.StoreBackend))
	}

	if cfg.AppointmentsKey == "" {
		errors = append(errors, "AppointmentsKey cannot be empty")
	}

	if cfg.TokenPolicy != TokenPolicyRandom && cfg.TokenPolicy != TokenPolicySequential {
		errors = append(errors, fmt.Sprintf("TokenPolicy must be one of [random, sequential], got: %s", cfg.TokenPolicy))
	}
	if cfg.MaxTokenNumber < 1 || cfg.MaxTokenNumber > MaxAllowedTokenNumber {
		errors = append(errors, fmt.Sprintf("MaxTokenNumber must be between 1 and %d, got: %d", MaxAllowedTokenNumber, cfg.MaxTokenNumber))
	}

	if cfg.PredictionDelay < 0 {
		errors = append(errors, fmt.Sprintf("PredictionDelay cannot be negative, got: %s", cfg.PredictionDelay))
	}
	if cfg.EstimateCacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("EstimateCacheTTL cannot be negative, got: %s", cfg.EstimateCacheTTL))
	}
	if _, err := time.LoadLocation(cfg.ClinicTimezone); err != nil {
		errors = append(errors, fmt.Sprintf("ClinicTimezone must be a valid IANA timezone, got: %s", cfg.ClinicTimezone))
	}

	if cfg.KafkaEnabled {
		if cfg.KafkaBookedTopic == "" || cfg.KafkaQueueTopic == "" {
			errors = append(errors, "Kafka topics cannot be empty when KAFKA_ENABLED=true")
		}
		if cfg.KafkaGroupID == "" {
			errors = append(errors, "KafkaGroupID cannot be empty when KAFKA_ENABLED=true")
		}
	}

	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
		"store_file_path", cfg.StoreFilePath,
		"appointments_key", cfg.AppointmentsKey,
		"redis_addr", cfg.RedisAddr,
		"redis_password_set", cfg.RedisPassword != "",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"postgres_dsn_set", cfg.PostgresDSN != "",
		"token_policy", cfg.TokenPolicy,
		"max_token_number", cfg.MaxTokenNumber,
		"prediction_delay", cfg.PredictionDelay,
		"estimate_cache_ttl", cfg.EstimateCacheTTL,
		"clinic_timezone", cfg.ClinicTimezone,
		"phone_region", cfg.PhoneRegion,
		"kafka_enabled", cfg.KafkaEnabled,
		"kafka_booked_topic", cfg.KafkaBookedTopic,
		"kafka_queue_topic", cfg.KafkaQueueTopic,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}
