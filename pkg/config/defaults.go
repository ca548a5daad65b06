package config

import "time"

const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreRedis    = "redis"
	StoreMongo    = "mongo"
	StorePostgres = "postgres"

	TokenPolicyRandom     = "random"
	TokenPolicySequential = "sequential"

	StatusConfirmed = "confirmed"
)

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultStoreBackend    = StoreMemory
	DefaultStoreFilePath   = "data/appointments.json"
	DefaultAppointmentsKey = "appointments"

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisDB   = 0

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "medq"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultTokenPolicy    = TokenPolicyRandom
	DefaultMaxTokenNumber = 50
	MaxAllowedTokenNumber = 50

	DefaultPredictionDelay  = 1500 * time.Millisecond
	DefaultEstimateCacheTTL = time.Duration(0)
	DefaultClinicTimezone   = "Asia/Kolkata"

	DefaultKafkaEnabled     = false
	DefaultKafkaBookedTopic = "appointments.booked"
	DefaultKafkaQueueTopic  = "queues.advanced"
	DefaultKafkaGroupID     = "medq"
	DefaultKafkaDLQSuffix   = ".dlq"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 64 * 1024 // 64KB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
