package main

import (
	"context"

	"salonbook/internal/calendar"
	"salonbook/internal/scheduling"
	"salonbook/internal/scheduling/handler"
	"salonbook/internal/scheduling/validator"
	"salonbook/pkg/app"
	"salonbook/pkg/config"
	"salonbook/pkg/kafka"
)

const ServiceName = "salonbook"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting salonbook service")

	gateway := initGateway(cfg)
	schedulingService := initServices(cfg, gateway)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewSchedulingHandler(schedulingService, cfg.Log),
		handler.NewHealthHandler(gateway, cfg.Resources[0].CalendarID, cfg.Log),
	)
	serverApp.Run()
}

func initGateway(cfg *config.Config) calendar.Gateway {
	if cfg.CalendarBackend == config.BackendMemory {
		cfg.Log.Warn("Using in-memory calendar backend; bookings will not survive a restart")
		return calendar.NewMemoryGateway()
	}

	gateway, err := calendar.NewGoogleGateway(context.Background(), cfg.GoogleCredentialsFile)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Google Calendar gateway", "error", err)
	}
	cfg.Log.Info("Google Calendar gateway initialized", "credentials_file", cfg.GoogleCredentialsFile)
	return gateway
}

func initServices(cfg *config.Config, gateway calendar.Gateway) scheduling.SchedulingService {
	hours, err := scheduling.ParseOpeningHours(cfg.OpeningHours)
	if err != nil {
		cfg.Log.Fatal("Invalid opening hours configuration", "error", err)
	}

	var events scheduling.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			cfg.Log.Fatal("Failed to initialize Kafka producer", "error", err)
		}
		events = producer
		cfg.Log.Info("Booking event stream enabled", "topic", cfg.KafkaTopic)
	}

	requestValidator := validator.NewRequestValidator(cfg.Log)
	service := scheduling.NewSchedulingService(cfg, gateway, hours, requestValidator, events)

	cfg.Log.Info("Scheduling service initialized",
		"staff_count", len(cfg.Resources),
		"slot_duration", cfg.SlotDuration,
	)
	return service
}
