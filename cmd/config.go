package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/adapters/out/messaging"
	"dispatch/internal/adapters/out/ors"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/jobs"
)

const (
	SMSDriverTwilio = "twilio"
	SMSDriverLog    = "log"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	ORSAPIKey     string
	ORSBaseURL    string
	ORSTimeout    time.Duration
	ORSMaxRetries int
	ORSRatePerSec float64

	DepotLng float64
	DepotLat float64

	SMSDriver        string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	RedisURL string

	ExpirySchedule  string
	ExpiryBatchSize int
}

// ConfigFromEnv reads the configuration through getenv, filling defaults for
// optional keys. It does not validate; call Validate on the result.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:         withDefault(getenv("HTTP_PORT"), "8080"),
		DBHost:           getenv("DB_HOST"),
		DBPort:           withDefault(getenv("DB_PORT"), "5432"),
		DBUser:           getenv("DB_USER"),
		DBPassword:       getenv("DB_PASSWORD"),
		DBName:           getenv("DB_NAME"),
		DBSslMode:        withDefault(getenv("DB_SSLMODE"), "disable"),
		ORSAPIKey:        getenv("ORS_API_KEY"),
		ORSBaseURL:       withDefault(getenv("ORS_BASE_URL"), ors.DefaultBaseURL),
		SMSDriver:        strings.ToLower(withDefault(getenv("SMS_DRIVER"), SMSDriverTwilio)),
		TwilioAccountSID: getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: getenv("TWILIO_FROM_NUMBER"),
		RedisURL:         getenv("REDIS_URL"),
		ExpirySchedule:   withDefault(getenv("EXPIRY_SCHEDULE"), jobs.DefaultExpirySchedule),
	}

	var err error
	var parseErrs []error

	if cfg.ORSTimeout, err = parseDuration(getenv("ORS_TIMEOUT"), ors.DefaultTimeout); err != nil {
		parseErrs = append(parseErrs, fmt.Errorf("ORS_TIMEOUT: %w", err))
	}
	if cfg.ORSMaxRetries, err = parseInt(getenv("ORS_MAX_RETRIES"), ors.DefaultMaxRetries); err != nil {
		parseErrs = append(parseErrs, fmt.Errorf("ORS_MAX_RETRIES: %w", err))
	}
	if cfg.ORSRatePerSec, err = parseFloat(getenv("ORS_RATE_PER_SECOND"), ors.DefaultRatePerSec); err != nil {
		parseErrs = append(parseErrs, fmt.Errorf("ORS_RATE_PER_SECOND: %w", err))
	}
	if cfg.ExpiryBatchSize, err = parseInt(getenv("EXPIRY_BATCH_SIZE"), jobs.DefaultExpiryBatchSize); err != nil {
		parseErrs = append(parseErrs, fmt.Errorf("EXPIRY_BATCH_SIZE: %w", err))
	}
	if cfg.DepotLng, err = parseRequiredFloat(getenv("DEPOT_LNG")); err != nil {
		parseErrs = append(parseErrs, fmt.Errorf("DEPOT_LNG: %w", err))
	}
	if cfg.DepotLat, err = parseRequiredFloat(getenv("DEPOT_LAT")); err != nil {
		parseErrs = append(parseErrs, fmt.Errorf("DEPOT_LAT: %w", err))
	}

	return cfg, errors.Join(parseErrs...)
}

// Validate reports every missing or malformed setting at once.
func (c Config) Validate() error {
	var problems []error

	required := []struct{ key, value string }{
		{"HTTP_PORT", c.HTTPPort},
		{"DB_HOST", c.DBHost},
		{"DB_PORT", c.DBPort},
		{"DB_USER", c.DBUser},
		{"DB_NAME", c.DBName},
		{"ORS_API_KEY", c.ORSAPIKey},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			problems = append(problems, fmt.Errorf("%s is required", r.key))
		}
	}

	if _, err := c.Depot(); err != nil {
		problems = append(problems, fmt.Errorf("depot: %w", err))
	}

	switch c.SMSDriver {
	case SMSDriverLog:
	case SMSDriverTwilio:
		if err := c.Twilio().Validate(); err != nil {
			problems = append(problems, err)
		}
	default:
		problems = append(problems, fmt.Errorf("SMS_DRIVER must be %q or %q, got %q", SMSDriverTwilio, SMSDriverLog, c.SMSDriver))
	}

	if c.ORSMaxRetries < 0 {
		problems = append(problems, errors.New("ORS_MAX_RETRIES must not be negative"))
	}
	if c.ORSRatePerSec <= 0 {
		problems = append(problems, errors.New("ORS_RATE_PER_SECOND must be positive"))
	}
	if c.ORSTimeout <= 0 {
		problems = append(problems, errors.New("ORS_TIMEOUT must be positive"))
	}
	if c.ExpiryBatchSize <= 0 {
		problems = append(problems, errors.New("EXPIRY_BATCH_SIZE must be positive"))
	}

	return errors.Join(problems...)
}

func (c Config) Depot() (kernel.Location, error) {
	return kernel.NewLocation(c.DepotLng, c.DepotLat)
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) ORS() ors.Config {
	return ors.Config{
		APIKey:     c.ORSAPIKey,
		BaseURL:    c.ORSBaseURL,
		Timeout:    c.ORSTimeout,
		MaxRetries: c.ORSMaxRetries,
		RatePerSec: c.ORSRatePerSec,
		Burst:      ors.DefaultBurst,
	}
}

func (c Config) Twilio() messaging.TwilioConfig {
	return messaging.TwilioConfig{
		AccountSID: c.TwilioAccountSID,
		AuthToken:  c.TwilioAuthToken,
		FromNumber: c.TwilioFromNumber,
	}
}

func (c Config) Expiry() jobs.ExpiryJobConfig {
	return jobs.ExpiryJobConfig{
		Schedule:    c.ExpirySchedule,
		BatchSize:   c.ExpiryBatchSize,
		TickTimeout: jobs.DefaultTickTimeout,
	}
}

func withDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

func parseDuration(v string, def time.Duration) (time.Duration, error) {
	if strings.TrimSpace(v) == "" {
		return def, nil
	}
	return time.ParseDuration(strings.TrimSpace(v))
}

func parseInt(v string, def int) (int, error) {
	if strings.TrimSpace(v) == "" {
		return def, nil
	}
	return strconv.Atoi(strings.TrimSpace(v))
}

func parseFloat(v string, def float64) (float64, error) {
	if strings.TrimSpace(v) == "" {
		return def, nil
	}
	return strconv.ParseFloat(strings.TrimSpace(v), 64)
}

func parseRequiredFloat(v string) (float64, error) {
	if strings.TrimSpace(v) == "" {
		return 0, errors.New("is required")
	}
	return strconv.ParseFloat(strings.TrimSpace(v), 64)
}
