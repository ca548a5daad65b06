package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvStoreBackend    = "STORE_BACKEND"
	EnvStoreFilePath   = "STORE_FILE_PATH"
	EnvAppointmentsKey = "APPOINTMENTS_KEY"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPostgresDSN = "POSTGRES_DSN"

	EnvTokenPolicy    = "TOKEN_POLICY"
	EnvMaxTokenNumber = "MAX_TOKEN_NUMBER"

	EnvPredictionDelay  = "PREDICTION_DELAY"
	EnvEstimateCacheTTL = "ESTIMATE_CACHE_TTL"
	EnvClinicTimezone   = "CLINIC_TIMEZONE"

	EnvKafkaEnabled     = "KAFKA_ENABLED"
	EnvKafkaBookedTopic = "KAFKA_BOOKED_TOPIC"
	EnvKafkaQueueTopic  = "KAFKA_QUEUE_TOPIC"
	EnvKafkaGroupID     = "KAFKA_GROUP_ID"
	EnvKafkaDLQSuffix   = "KAFKA_DLQ_SUFFIX"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
