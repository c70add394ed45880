package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"salonbook/pkg/logger"
	"salonbook/pkg/model"
)

func validTestConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Port: "8080",
		Resources: []model.Resource{
			{Name: "Lisa Fischer", CalendarID: "lisa@example.com"},
		},
		OpeningHours:          DefaultOpeningHours,
		TimeZone:              "Europe/Berlin",
		SlotDuration:          30 * time.Minute,
		HorizonDays:           14,
		NextSlotCount:         3,
		MatchStrategy:         MatchExact,
		CalendarBackend:       BackendMemory,
		GoogleCredentialsFile: "credentials.json",
		GatewayTimeout:        10 * time.Second,
		RequestTimeout:        30 * time.Second,
		MaxRequestSize:        1024 * 1024,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		IdleTimeout:           60 * time.Second,
		ShutdownTimeout:       30 * time.Second,
		Log: logger.New(logger.Config{
			Level:   logger.ERROR,
			Format:  logger.JSON,
			Output:  io.Discard,
			Service: "test",
		}),
	}
}

func TestValidate_Valid(t *testing.T) {
	if err := validTestConfig(t).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(cfg *Config)
		wantPart string
	}{
		{
			name:     "bad port",
			mutate:   func(cfg *Config) { cfg.Port = "99999" },
			wantPart: "Port",
		},
		{
			name:     "no staff",
			mutate:   func(cfg *Config) { cfg.Resources = nil },
			wantPart: "at least one staff member",
		},
		{
			name: "staff without calendar",
			mutate: func(cfg *Config) {
				cfg.Resources = []model.Resource{{Name: "Lisa Fischer"}}
			},
			wantPart: "calendar_id",
		},
		{
			name: "duplicate staff names",
			mutate: func(cfg *Config) {
				cfg.Resources = []model.Resource{
					{Name: "Lisa Fischer", CalendarID: "a@example.com"},
					{Name: "lisa fischer", CalendarID: "b@example.com"},
				}
			},
			wantPart: "duplicate staff member",
		},
		{
			name: "unknown weekday",
			mutate: func(cfg *Config) {
				cfg.OpeningHours = map[string]string{"moonday": "09:00-18:00"}
			},
			wantPart: "unknown weekday",
		},
		{
			name: "malformed window",
			mutate: func(cfg *Config) {
				cfg.OpeningHours = map[string]string{"monday": "9-18"}
			},
			wantPart: "HH:MM-HH:MM",
		},
		{
			name:     "zero slot duration",
			mutate:   func(cfg *Config) { cfg.SlotDuration = 0 },
			wantPart: "SlotDuration",
		},
		{
			name:     "fractional minute duration",
			mutate:   func(cfg *Config) { cfg.SlotDuration = 90 * time.Second },
			wantPart: "whole minutes",
		},
		{
			name:     "horizon too long",
			mutate:   func(cfg *Config) { cfg.HorizonDays = 400 },
			wantPart: "HorizonDays",
		},
		{
			name:     "bad match strategy",
			mutate:   func(cfg *Config) { cfg.MatchStrategy = "fuzzy" },
			wantPart: "MatchStrategy",
		},
		{
			name:     "bad backend",
			mutate:   func(cfg *Config) { cfg.CalendarBackend = "outlook" },
			wantPart: "CalendarBackend",
		},
		{
			name: "google backend without credentials",
			mutate: func(cfg *Config) {
				cfg.CalendarBackend = BackendGoogle
				cfg.GoogleCredentialsFile = ""
			},
			wantPart: "GoogleCredentialsFile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.wantPart) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantPart)
			}
		})
	}
}

func TestFindResource(t *testing.T) {
	cfg := validTestConfig(t)

	if _, ok := cfg.FindResource("Lisa Fischer"); !ok {
		t.Error("expected exact name to resolve")
	}
	if _, ok := cfg.FindResource("LISA FISCHER"); !ok {
		t.Error("expected uppercase name to resolve")
	}
	if _, ok := cfg.FindResource("Lisa"); ok {
		t.Error("partial names must not resolve")
	}
	if _, ok := cfg.FindResource("Nobody"); ok {
		t.Error("unknown names must not resolve")
	}
}

func TestLoadStaffFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staff.yml")
	doc := `
timezone: Europe/Vienna
staff:
  - name: Lisa Fischer
    calendar_id: lisa@example.com
  - name: Marco Richter
    calendar_id: marco@example.com
opening_hours:
  Saturday: "10:00-13:00"
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write staff file: %v", err)
	}

	cfg := validTestConfig(t)
	cfg.StaffFile = path
	if err := cfg.loadStaffFile(); err != nil {
		t.Fatalf("loadStaffFile: %v", err)
	}

	if len(cfg.Resources) != 2 {
		t.Fatalf("expected 2 staff members, got %d", len(cfg.Resources))
	}
	if cfg.TimeZone != "Europe/Vienna" {
		t.Errorf("TimeZone = %s, want Europe/Vienna", cfg.TimeZone)
	}
	if got := cfg.OpeningHours["saturday"]; got != "10:00-13:00" {
		t.Errorf("saturday window = %s, want the override", got)
	}
	if got := cfg.OpeningHours["monday"]; got != "09:00-18:00" {
		t.Errorf("monday window = %s, want the default", got)
	}
}

func TestLoadStaffFile_Missing(t *testing.T) {
	cfg := validTestConfig(t)
	cfg.StaffFile = filepath.Join(t.TempDir(), "absent.yml")
	if err := cfg.loadStaffFile(); err == nil {
		t.Error("expected an error for a missing staff file")
	}
}
