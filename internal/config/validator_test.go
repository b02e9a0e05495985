package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	for _, envVar := range RequiredEnvVars {
		t.Setenv(envVar, "test_value")
	}
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("PAYMENT_PROCESSOR_URL", "https://processor.test")
	for _, envVar := range ScheduleEnvVars {
		t.Setenv(envVar, "")
		os.Unsetenv(envVar)
	}
}

func TestValidateEnv_MissingVersion(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "")
	os.Unsetenv("ENV_SCHEMA_VERSION")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("PAYMENT_PROCESSOR_API_KEY", "")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required environment variables")
	assert.Contains(t, err.Error(), "PAYMENT_PROCESSOR_API_KEY")
}

func TestValidateEnv_AllSet(t *testing.T) {
	setRequired(t)
	assert.NoError(t, ValidateEnv())
}

func TestValidateEnvWithWarnings_InsecureDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_PASSWORD", "change_this_secure_password")
	t.Setenv("API_KEY", "generate_with_openssl_rand_hex_32")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "DB_PASSWORD")
	assert.Contains(t, warnings[1], "API_KEY")
}

func TestValidateEnv_ProcessorURL(t *testing.T) {
	for _, raw := range []string{"test_value", "ftp://processor.test", "/v1/payouts"} {
		t.Run(raw, func(t *testing.T) {
			setRequired(t)
			t.Setenv("PAYMENT_PROCESSOR_URL", raw)

			err := ValidateEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "PAYMENT_PROCESSOR_URL")
		})
	}
}

func TestValidateEnv_Schedules(t *testing.T) {
	setRequired(t)
	t.Setenv("SETTLEMENT_SWEEP_SPEC", DefaultSettlementSweepSpec)
	t.Setenv("PAYOUT_RECONCILE_SPEC", "@every 2m")
	require.NoError(t, ValidateEnv())

	t.Setenv("EVENT_LOG_CLEANUP_SPEC", "30 3 * * *")
	err := ValidateEnv()
	require.Error(t, err, "five fields lack the seconds column")
	assert.Contains(t, err.Error(), "EVENT_LOG_CLEANUP_SPEC")
}

func TestValidateEnvWithWarnings_ProcessorAndRetention(t *testing.T) {
	setRequired(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PAYMENT_PROCESSOR_URL", "http://processor.internal")
	t.Setenv("EVENT_LOG_RETENTION_DAYS", "0")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "plain http")
	assert.Contains(t, warnings[1], "never be pruned")
}
