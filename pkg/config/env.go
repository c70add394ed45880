package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvStaffFile       = "STAFF_FILE"
	EnvTimeZone        = "TIME_ZONE"
	EnvSlotDurationMin = "SLOT_DURATION_MIN"
	EnvHorizonDays     = "HORIZON_DAYS"
	EnvNextSlotCount   = "NEXT_SLOT_COUNT"
	EnvMatchStrategy   = "CANCEL_MATCH_STRATEGY"

	EnvCalendarBackend       = "CALENDAR_BACKEND"
	EnvGoogleCredentialsFile = "GOOGLE_CREDENTIALS_FILE"
	EnvGatewayTimeout        = "GATEWAY_TIMEOUT"

	EnvKafkaBrokers = "KAFKA_BROKERS"
	EnvKafkaTopic   = "KAFKA_TOPIC"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
