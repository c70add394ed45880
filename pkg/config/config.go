package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"salonbook/pkg/logger"
	"salonbook/pkg/model"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string

	StaffFile    string
	Resources    []model.Resource
	OpeningHours map[string]string
	TimeZone     string
	Location     *time.Location

	SlotDuration  time.Duration
	HorizonDays   int
	NextSlotCount int
	MatchStrategy string

	CalendarBackend       string
	GoogleCredentialsFile string
	GatewayTimeout        time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log *logger.Logger
}

// staffFile is the YAML document describing who can be booked and when the
// salon is open. Opening hours listed here override the defaults per weekday.
type staffFile struct {
	TimeZone     string           `yaml:"timezone"`
	Staff        []model.Resource `yaml:"staff"`
	OpeningHours map[string]string `yaml:"opening_hours"`
}

func Load(serviceName string) *Config {
	// A missing .env is fine; containers inject real environment variables.
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		StaffFile: getEnvStr(EnvStaffFile, DefaultStaffFile),
		TimeZone:  getEnvStr(EnvTimeZone, DefaultTimeZone),

		SlotDuration:  time.Duration(getEnvNum(EnvSlotDurationMin, DefaultSlotDurationMin)) * time.Minute,
		HorizonDays:   getEnvNum(EnvHorizonDays, DefaultHorizonDays),
		NextSlotCount: getEnvNum(EnvNextSlotCount, DefaultNextSlotCount),
		MatchStrategy: getEnvStr(EnvMatchStrategy, DefaultMatchStrategy),

		CalendarBackend:       getEnvStr(EnvCalendarBackend, DefaultCalendarBackend),
		GoogleCredentialsFile: getEnvStr(EnvGoogleCredentialsFile, DefaultGoogleCredentialsFile),
		GatewayTimeout:        getEnvDuration(EnvGatewayTimeout, DefaultGatewayTimeout),

		KafkaBrokers: splitNonEmpty(getEnvStr(EnvKafkaBrokers, "")),
		KafkaTopic:   getEnvStr(EnvKafkaTopic, DefaultKafkaTopic),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
	}

	if err := cfg.loadStaffFile(); err != nil {
		cfg.Log.Fatal("Failed to load staff file", "path", cfg.StaffFile, "error", err)
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		cfg.Log.Fatal("Unknown timezone", "timezone", cfg.TimeZone, "error", err)
	}
	cfg.Location = loc

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) loadStaffFile() error {
	data, err := os.ReadFile(cfg.StaffFile)
	if err != nil {
		return fmt.Errorf("failed to read staff file: %w", err)
	}

	var sf staffFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("failed to unmarshal staff file: %w", err)
	}

	cfg.Resources = sf.Staff
	if sf.TimeZone != "" {
		cfg.TimeZone = sf.TimeZone
	}

	cfg.OpeningHours = make(map[string]string, len(DefaultOpeningHours))
	for day, window := range DefaultOpeningHours {
		cfg.OpeningHours[day] = window
	}
	for day, window := range sf.OpeningHours {
		cfg.OpeningHours[strings.ToLower(day)] = window
	}

	return nil
}

var windowRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]-([01][0-9]|2[0-3]):[0-5][0-9]$`)

var weekdayNames = map[string]struct{}{
	"sunday": {}, "monday": {}, "tuesday": {}, "wednesday": {},
	"thursday": {}, "friday": {}, "saturday": {},
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if len(cfg.Resources) == 0 {
		errors = append(errors, "at least one staff member must be configured")
	}
	seen := make(map[string]struct{}, len(cfg.Resources))
	for _, r := range cfg.Resources {
		if strings.TrimSpace(r.Name) == "" {
			errors = append(errors, "staff entries must have a name")
			continue
		}
		if strings.TrimSpace(r.CalendarID) == "" {
			errors = append(errors, fmt.Sprintf("staff member %q has no calendar_id", r.Name))
		}
		key := strings.ToLower(r.Name)
		if _, dup := seen[key]; dup {
			errors = append(errors, fmt.Sprintf("duplicate staff member %q", r.Name))
		}
		seen[key] = struct{}{}
	}

	for day, window := range cfg.OpeningHours {
		if _, ok := weekdayNames[day]; !ok {
			errors = append(errors, fmt.Sprintf("opening_hours has unknown weekday %q", day))
		}
		if !windowRegex.MatchString(window) {
			errors = append(errors, fmt.Sprintf("opening_hours[%s] must be HH:MM-HH:MM, got: %s", day, window))
		}
	}

	if cfg.SlotDuration <= 0 || cfg.SlotDuration > 8*time.Hour {
		errors = append(errors, fmt.Sprintf("SlotDuration must be between 1 minute and 8 hours, got: %s", cfg.SlotDuration))
	}
	if cfg.SlotDuration%time.Minute != 0 {
		errors = append(errors, fmt.Sprintf("SlotDuration must be whole minutes, got: %s", cfg.SlotDuration))
	}
	if cfg.HorizonDays < 1 || cfg.HorizonDays > 365 {
		errors = append(errors, fmt.Sprintf("HorizonDays must be between 1 and 365, got: %d", cfg.HorizonDays))
	}
	if cfg.NextSlotCount < 1 || cfg.NextSlotCount > 50 {
		errors = append(errors, fmt.Sprintf("NextSlotCount must be between 1 and 50, got: %d", cfg.NextSlotCount))
	}
	if cfg.MatchStrategy != MatchExact && cfg.MatchStrategy != MatchSubstring {
		errors = append(errors, fmt.Sprintf("MatchStrategy must be %q or %q, got: %s", MatchExact, MatchSubstring, cfg.MatchStrategy))
	}

	if cfg.CalendarBackend != BackendGoogle && cfg.CalendarBackend != BackendMemory {
		errors = append(errors, fmt.Sprintf("CalendarBackend must be %q or %q, got: %s", BackendGoogle, BackendMemory, cfg.CalendarBackend))
	}
	if cfg.CalendarBackend == BackendGoogle && cfg.GoogleCredentialsFile == "" {
		errors = append(errors, "GoogleCredentialsFile cannot be empty for the google backend")
	}
	if cfg.GatewayTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("GatewayTimeout must be positive, got: %s", cfg.GatewayTimeout))
	}

	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
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
		"staff_file", cfg.StaffFile,
		"staff_count", len(cfg.Resources),
		"timezone", cfg.TimeZone,
		"slot_duration", cfg.SlotDuration,
		"horizon_days", cfg.HorizonDays,
		"next_slot_count", cfg.NextSlotCount,
		"match_strategy", cfg.MatchStrategy,
		"calendar_backend", cfg.CalendarBackend,
		"gateway_timeout", cfg.GatewayTimeout,
		"kafka_enabled", len(cfg.KafkaBrokers) > 0,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

// FindResource resolves a staff name to its calendar, case-insensitively.
func (cfg *Config) FindResource(name string) (model.Resource, bool) {
	for _, r := range cfg.Resources {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return model.Resource{}, false
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

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
