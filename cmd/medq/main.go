package main

import (
	"context"

	appointmentsevents "medq/internal/appointments/events"
	appointmentshandler "medq/internal/appointments/handler"
	appointmentsrepo "medq/internal/appointments/repository"
	appointmentsservice "medq/internal/appointments/service"
	"medq/internal/appointments/token"
	appointmentsvalidator "medq/internal/appointments/validator"
	"medq/internal/doctors/catalog"
	doctorshandler "medq/internal/doctors/handler"
	doctorsservice "medq/internal/doctors/service"
	estimationservice "medq/internal/estimation/service"
	queueevents "medq/internal/queue/events"
	queuehandler "medq/internal/queue/handler"
	queuerepo "medq/internal/queue/repository"
	queueservice "medq/internal/queue/service"
	"medq/pkg/app"
	"medq/pkg/config"
	"medq/pkg/kafka"
	kafka_config "medq/pkg/kafka/config"
	kafka_middleware "medq/pkg/kafka/middleware"
	"medq/pkg/kvstore"
)

const (
	ServiceName = "medq"
	redisPrefix = "medq:"
)

func main() {
	cfg := config.Load(ServiceName)
	cfg.Connect()

	cfg.Log.Info("Starting medq service",
		"store_backend", cfg.StoreBackend,
		"token_policy", cfg.TokenPolicy,
	)

	serverApp := app.NewApplication(cfg)

	directory := initDirectory(cfg)
	appointmentRepo, queueRepo := initRepositories(cfg, serverApp)

	queueSvc := queueservice.NewQueueService(queueRepo, directory, cfg.Log)

	estimateSvc := estimationservice.NewEstimateService(estimationservice.Config{
		PredictionDelay: cfg.PredictionDelay,
		CacheTTL:        cfg.EstimateCacheTTL,
	}, queueSvc, cfg.Log)
	serverApp.OnShutdown("estimate-cache", func() error {
		estimateSvc.Stop()
		return nil
	})

	appointmentSvc := appointmentsservice.NewAppointmentService(
		appointmentRepo,
		directory,
		initTokenAllocator(cfg, queueSvc),
		estimateSvc,
		initKafka(cfg, serverApp, queueSvc),
		appointmentsvalidator.NewAppointmentValidator(cfg.Log),
		cfg,
	)

	serverApp.SetApp(
		doctorshandler.NewDoctorHandler(directory, cfg.Log),
		appointmentshandler.NewAppointmentHandler(appointmentSvc, cfg.Log),
		queuehandler.NewQueueHandler(queueSvc, cfg.Log),
	)
	serverApp.Run()
}

func initDirectory(cfg *config.Config) *doctorsservice.Directory {
	doctors, err := catalog.Load()
	if err != nil {
		cfg.Log.Fatal("Failed to load doctor catalog", "error", err)
	}
	cfg.Log.Info("Doctor directory initialized", "doctors", len(doctors))
	return doctorsservice.NewDirectory(doctors, cfg.Log)
}

func initRepositories(cfg *config.Config, serverApp *app.Application) (appointmentsrepo.AppointmentRepository, queuerepo.QueueRepository) {
	switch cfg.StoreBackend {
	case config.StoreMongo:
		db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
		cfg.Log.Info("Using Mongo repositories", "database", cfg.MongoDatabaseName)
		return appointmentsrepo.NewMongoAppointmentRepository(db, cfg.ReadTimeout, cfg.WriteTimeout),
			queuerepo.NewMongoQueueRepository(db, cfg.ReadTimeout, cfg.WriteTimeout)

	case config.StorePostgres:
		cfg.Log.Info("Using Postgres repositories")
		return appointmentsrepo.NewPostgresAppointmentRepository(cfg.Client.Postgres),
			queuerepo.NewPostgresQueueRepository(cfg.Client.Postgres)
	}

	store := initKVStore(cfg)
	serverApp.OnShutdown("kvstore", store.Close)
	return appointmentsrepo.NewKVAppointmentRepository(store, cfg.AppointmentsKey, cfg.Log),
		queuerepo.NewKVQueueRepository(store)
}

func initKVStore(cfg *config.Config) kvstore.Store {
	switch cfg.StoreBackend {
	case config.StoreFile:
		store, err := kvstore.NewFileStore(cfg.StoreFilePath, cfg.Log)
		if err != nil {
			cfg.Log.Fatal("Failed to open file store", "path", cfg.StoreFilePath, "error", err)
		}
		cfg.Log.Info("Using file store", "path", cfg.StoreFilePath)
		return store
	case config.StoreRedis:
		cfg.Log.Info("Using Redis store", "addr", cfg.RedisAddr, "prefix", redisPrefix)
		return kvstore.NewRedisStore(cfg.Client.Redis, redisPrefix)
	default:
		cfg.Log.Warn("Using in-memory store, bookings are lost on restart")
		return kvstore.NewMemoryStore()
	}
}

func initTokenAllocator(cfg *config.Config, queueSvc queueservice.QueueService) token.Allocator {
	if cfg.TokenPolicy == config.TokenPolicySequential {
		return token.NewSequentialAllocator(queueSvc, cfg.MaxTokenNumber)
	}
	return token.NewRandomAllocator(cfg.MaxTokenNumber, nil)
}

// initKafka wires the booked-event producer and the queue-advanced consumer.
// It returns a no-op publisher when Kafka is disabled.
func initKafka(cfg *config.Config, serverApp *app.Application, queueSvc queueservice.QueueService) appointmentsevents.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, booked events will not be published")
		return appointmentsevents.NoopPublisher{}
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.KafkaBookedTopic, cfg.KafkaBookedTopic+cfg.KafkaDLQSuffix, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	serverApp.OnShutdown("kafka-producer", producer.Close)

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.KafkaQueueTopic,
		cfg.KafkaGroupID,
		cfg.KafkaQueueTopic+cfg.KafkaDLQSuffix,
		queueevents.NewQueueAdvancedHandler(queueSvc, cfg.Log),
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
	serverApp.AddWorker("queue-advanced-consumer", func(ctx context.Context) error {
		return consumer.Start(ctx)
	})
	serverApp.OnShutdown("kafka-consumer", consumer.Close)

	cfg.Log.Info("Kafka enabled",
		"booked_topic", cfg.KafkaBookedTopic,
		"queue_topic", cfg.KafkaQueueTopic,
		"group_id", cfg.KafkaGroupID,
	)
	return appointmentsevents.NewKafkaPublisher(producer)
}
