package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"dispatch/internal/pkg/errs"
)

// Event relay modes.
const (
	RelayLocal    = "local"
	RelayPostgres = "postgres"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	SweepSchedule    string
	ArchiveCancelled bool

	EventBufferSize int
	EventsRelay     string
	EventsChannel   string
	SSEHeartbeat    time.Duration

	GeocoderURL     string
	GeocoderTimeout time.Duration
}

// LoadConfig reads the configuration through lookup, usually os.LookupEnv
// after the optional .env file has been loaded. Unset values get defaults.
func LoadConfig(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		HTTPPort:      get("HTTP_PORT", "8082"),
		DBHost:        get("DB_HOST", "localhost"),
		DBPort:        get("DB_PORT", "5432"),
		DBUser:        get("DB_USER", "postgres"),
		DBPassword:    get("DB_PASSWORD", ""),
		DBName:        get("DB_NAME", "dispatch"),
		DBSslMode:     get("DB_SSLMODE", "disable"),
		SweepSchedule: get("SWEEP_SCHEDULE", "@every 1m"),
		EventsRelay:   get("EVENTS_RELAY", RelayLocal),
		EventsChannel: get("EVENTS_CHANNEL", "assignment_events"),
		GeocoderURL:   get("GEOCODER_URL", ""),
	}

	var archiveErr, bufferErr, heartbeatErr, timeoutErr, relayErr error

	cfg.ArchiveCancelled, archiveErr = strconv.ParseBool(get("ARCHIVE_CANCELLED", "false"))
	if archiveErr != nil {
		archiveErr = errs.NewValueIsInvalidErrorWithCause("ARCHIVE_CANCELLED", archiveErr)
	}

	cfg.EventBufferSize, bufferErr = strconv.Atoi(get("EVENT_BUFFER_SIZE", "16"))
	if bufferErr != nil {
		bufferErr = errs.NewValueIsInvalidErrorWithCause("EVENT_BUFFER_SIZE", bufferErr)
	} else if cfg.EventBufferSize < 1 {
		bufferErr = errs.NewValueIsOutOfRangeError("EVENT_BUFFER_SIZE", cfg.EventBufferSize, 1, 1<<16)
	}

	cfg.SSEHeartbeat, heartbeatErr = time.ParseDuration(get("SSE_HEARTBEAT", "15s"))
	if heartbeatErr != nil {
		heartbeatErr = errs.NewValueIsInvalidErrorWithCause("SSE_HEARTBEAT", heartbeatErr)
	}

	cfg.GeocoderTimeout, timeoutErr = time.ParseDuration(get("GEOCODER_TIMEOUT", "3s"))
	if timeoutErr != nil {
		timeoutErr = errs.NewValueIsInvalidErrorWithCause("GEOCODER_TIMEOUT", timeoutErr)
	}

	if cfg.EventsRelay != RelayLocal && cfg.EventsRelay != RelayPostgres {
		relayErr = errs.NewValueIsInvalidErrorWithCause("EVENTS_RELAY",
			fmt.Errorf("%q is neither %q nor %q", cfg.EventsRelay, RelayLocal, RelayPostgres))
	}

	if err := errors.Join(archiveErr, bufferErr, heartbeatErr, timeoutErr, relayErr); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the key=value connection string understood by both the GORM
// driver and lib/pq.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
