package main

import (
	"context"

	"hotelbooking/internal/auth"
	bookingshandler "hotelbooking/internal/bookings/handler"
	bookingsrepo "hotelbooking/internal/bookings/repository"
	bookingsservice "hotelbooking/internal/bookings/service"
	bookingsvalidator "hotelbooking/internal/bookings/validator"
	customershandler "hotelbooking/internal/customers/handler"
	customersrepo "hotelbooking/internal/customers/repository"
	customersservice "hotelbooking/internal/customers/service"
	customersvalidator "hotelbooking/internal/customers/validator"
	"hotelbooking/internal/events"
	"hotelbooking/internal/health"
	paymentshandler "hotelbooking/internal/payments/handler"
	paymentsrepo "hotelbooking/internal/payments/repository"
	paymentsservice "hotelbooking/internal/payments/service"
	paymentsvalidator "hotelbooking/internal/payments/validator"
	roomshandler "hotelbooking/internal/rooms/handler"
	roomsrepo "hotelbooking/internal/rooms/repository"
	roomsservice "hotelbooking/internal/rooms/service"
	roomsvalidator "hotelbooking/internal/rooms/validator"
	"hotelbooking/pkg/app"
	"hotelbooking/pkg/config"
	"hotelbooking/pkg/contracts"
	"hotelbooking/pkg/kafka"
	kafka_config "hotelbooking/pkg/kafka/config"
	kafka_middleware "hotelbooking/pkg/kafka/middleware"
	"hotelbooking/pkg/middleware"
)

const ServiceName = "hotel-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting hotel booking API")
	serverApp := app.NewApplication(cfg)

	dispatcher := initEvents(cfg, serverApp)
	handlers := initHandlers(cfg, dispatcher)

	guard := contracts.Guard(middleware.RequireAPIKey(
		auth.NewTokenAuthenticator(auth.NewMongoTokenRepository(cfg), cfg.Log),
		cfg.Log,
	))

	serverApp.SetApp(
		health.NewHealthHandler(cfg.Client.Mongo, cfg.Client.Redis, cfg.Log),
		guard,
		handlers...,
	)
	serverApp.Run()
}

// initEvents starts the booking event dispatcher. Shutdown hooks drain it
// before the producer it writes to is closed.
func initEvents(cfg *config.Config, serverApp *app.Application) *events.Dispatcher {
	var sink events.Sink = events.NewLogSink(cfg.Log)
	var producer *kafka.Producer

	if cfg.EventSink == config.EventSinkKafka {
		kafkaCfg := kafka_config.Load(cfg.Log)
		p, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.BookingEventsDLQ, cfg.Log)
		if err != nil {
			cfg.Log.Fatal("Failed to create kafka producer", "error", err)
		}
		if kafkaCfg.EnableMiddleware {
			p.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		}
		producer = p
		sink = events.NewKafkaSink(producer)
		cfg.Log.Info("Booking events published to kafka", "topic", cfg.BookingEventsTopic)
	} else {
		cfg.Log.Info("Booking events written to the log only")
	}

	dispatcher := events.NewDispatcher(sink, cfg.EventQueueSize, cfg.EventWorkers, cfg.WriteTimeout, cfg.Log)
	serverApp.OnShutdown("event-dispatcher", dispatcher.Close)
	if producer != nil {
		serverApp.OnShutdown("kafka-producer", func(context.Context) error {
			return producer.Close()
		})
	}
	return dispatcher
}

func initHandlers(cfg *config.Config, publisher events.Publisher) []contracts.Handler {
	bookingRepo := bookingsrepo.NewMongoBookingRepository(cfg)
	roomRepo := roomsrepo.NewMongoRoomRepository(cfg)

	roomService := roomsservice.NewRoomService(
		roomRepo,
		bookingRepo,
		roomsvalidator.NewRoomValidator(cfg.Log),
		cfg,
	)
	customerService := customersservice.NewCustomerService(
		customersrepo.NewMongoCustomerRepository(cfg),
		bookingRepo,
		customersvalidator.NewCustomerValidator(cfg.Log),
		cfg,
	)
	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		roomService,
		customerService,
		roomsservice.NewAvailabilityManager(roomRepo, cfg),
		publisher,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		cfg,
	)
	paymentService := paymentsservice.NewPaymentService(
		paymentsrepo.NewMongoPaymentRepository(cfg),
		bookingRepo,
		paymentsvalidator.NewPaymentValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)
	return []contracts.Handler{
		roomshandler.NewRoomHandler(roomService, cfg.Log),
		customershandler.NewCustomerHandler(customerService, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
		paymentshandler.NewPaymentHandler(paymentService, cfg.Log),
	}
}
