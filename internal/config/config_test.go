package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFIG_FILE", "DYNAMODB_TABLE", "FROM_EMAIL", "ADMIN_EMAIL", "COMPANY_EMAIL",
		"AWS_REGION", "AWS_ENDPOINT_URL", "LOG_LEVEL", "PORT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
aws:
  region: "eu-west-1"
  endpoint_url: "http://localhost:8000"

table:
  name: "travel-submissions"

email:
  from: "noreply@travelease.com"
  admin: "admin@travelease.com"
  company: "sales@travelease.com"

server:
  port: 9090

log:
  level: "debug"
  redact_pii: false
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.AWS.Region)
	assert.Equal(t, "http://localhost:8000", cfg.AWS.EndpointURL)
	assert.Equal(t, "travel-submissions", cfg.Table.Name)
	assert.Equal(t, "noreply@travelease.com", cfg.Email.From)
	assert.Equal(t, "admin@travelease.com", cfg.Email.Admin)
	assert.Equal(t, "sales@travelease.com", cfg.Email.Company)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.RedactPIIEnabled())
}

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("table:\n  name: t\n"), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.RedactPIIEnabled())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("table: [unclosed"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DYNAMODB_TABLE", "travel-submissions")
	t.Setenv("FROM_EMAIL", "noreply@travelease.com")
	t.Setenv("ADMIN_EMAIL", "admin@travelease.com")
	t.Setenv("COMPANY_EMAIL", "sales@travelease.com")
	t.Setenv("PORT", "3000")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "travel-submissions", cfg.Table.Name)
	assert.Equal(t, "noreply@travelease.com", cfg.Email.From)
	assert.Equal(t, "admin@travelease.com", cfg.Email.Admin)
	assert.Equal(t, "sales@travelease.com", cfg.Email.Company)
	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Equal(t, 3000, cfg.Server.Port)

	assert.NoError(t, cfg.ValidateIntake())
	assert.NoError(t, cfg.ValidateClient())
	assert.NoError(t, cfg.ValidateBusiness())
}

func TestLoadFromEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("table:\n  name: from-file\nemail:\n  admin: file@travelease.com\n"), 0644))
	t.Setenv("CONFIG_FILE", configPath)
	t.Setenv("DYNAMODB_TABLE", "from-env")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Table.Name)
	assert.Equal(t, "file@travelease.com", cfg.Email.Admin)
}

func TestLoadFromEnvInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "http")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestValidateReportsMissingKeys(t *testing.T) {
	cfg := &Config{Email: EmailConfig{Admin: "admin@travelease.com"}}

	err := cfg.ValidateBusiness()
	require.Error(t, err)
	var missing *MissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"FROM_EMAIL", "COMPANY_EMAIL"}, missing.Keys)
	assert.Equal(t, "business-handler: missing required configuration: FROM_EMAIL, COMPANY_EMAIL", err.Error())

	err = cfg.ValidateIntake()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DYNAMODB_TABLE")

	err = cfg.ValidateClient()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COMPANY_EMAIL")
}

func TestLoadAWS(t *testing.T) {
	cfg := &Config{AWS: AWSConfig{
		Region:      "us-east-1",
		AccessKey:   "AKIDEXAMPLE",
		SecretKey:   "secret",
		EndpointURL: "http://localhost:4566",
	}}

	awsCfg, err := cfg.LoadAWS(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", awsCfg.Region)
	require.NotNil(t, awsCfg.BaseEndpoint)
	assert.Equal(t, "http://localhost:4566", *awsCfg.BaseEndpoint)

	creds, err := awsCfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIDEXAMPLE", creds.AccessKeyID)
}
