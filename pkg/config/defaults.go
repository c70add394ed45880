package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultStaffFile = "staff.yml"

	// All slot math happens in one fixed zone; the original deployments all
	// ran salons in Germany.
	DefaultTimeZone = "Europe/Berlin"

	// The booking grid. 30 minutes is the system-wide grid; every
	// availability check, day listing and horizon search uses it.
	DefaultSlotDurationMin = 30

	DefaultHorizonDays   = 14
	DefaultNextSlotCount = 3

	MatchExact     = "exact"
	MatchSubstring = "substring"

	DefaultMatchStrategy = MatchExact

	BackendGoogle = "google"
	BackendMemory = "memory"

	DefaultCalendarBackend       = BackendGoogle
	DefaultGoogleCredentialsFile = "credentials.json"
	DefaultGatewayTimeout        = 10 * time.Second

	DefaultKafkaTopic = "booking-events"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

// DefaultOpeningHours mirrors the salons' published hours; a staff file may
// override any weekday. Sunday absent means closed.
var DefaultOpeningHours = map[string]string{
	"monday":    "09:00-18:00",
	"tuesday":   "09:00-18:00",
	"wednesday": "09:00-18:00",
	"thursday":  "09:00-18:00",
	"friday":    "09:00-18:00",
	"saturday":  "09:00-14:00",
}
