package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/robfig/cron/v3"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars lists all environment variables that must be set
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"API_KEY",
	"PAYMENT_PROCESSOR_URL",
	"PAYMENT_PROCESSOR_API_KEY",
}

// ScheduleEnvVars hold the cron specs of the background jobs, seconds field first
var ScheduleEnvVars = []string{
	"SETTLEMENT_SWEEP_SPEC",
	"EVENT_LOG_CLEANUP_SPEC",
	"PAYOUT_RECONCILE_SPEC",
}

// Same field layout the scheduler parses with
var scheduleParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateEnv checks the schema version, that every required variable is set,
// that the payment processor URL is usable and that job schedules parse.
func ValidateEnv() error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion == "" {
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	}
	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	var missing []string
	for _, envVar := range RequiredEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	var problems []string
	if err := checkProcessorURL(os.Getenv("PAYMENT_PROCESSOR_URL")); err != nil {
		problems = append(problems, err.Error())
	}
	for _, envVar := range ScheduleEnvVars {
		spec, ok := os.LookupEnv(envVar)
		if !ok {
			continue
		}
		if _, err := scheduleParser.Parse(spec); err != nil {
			problems = append(problems, fmt.Sprintf("%s is not a valid schedule: %v", envVar, err))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid environment: %s", strings.Join(problems, "; "))
	}

	return nil
}

func checkProcessorURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return fmt.Errorf("PAYMENT_PROCESSOR_URL must be an absolute http(s) URL, got %q", raw)
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and reports settings that work but
// look unintended, such as example secrets
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv("DB_PASSWORD") == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}

	if os.Getenv("API_KEY") == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	// Card numbers and processor credentials go over this connection
	if strings.HasPrefix(os.Getenv("PAYMENT_PROCESSOR_URL"), "http://") && os.Getenv("ENVIRONMENT") == "production" {
		warnings = append(warnings, "PAYMENT_PROCESSOR_URL uses plain http in production")
	}

	if os.Getenv("EVENT_LOG_RETENTION_DAYS") == "0" {
		warnings = append(warnings, "EVENT_LOG_RETENTION_DAYS is 0 - the contest audit trail will never be pruned")
	}

	return warnings, nil
}
