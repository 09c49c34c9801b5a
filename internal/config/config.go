package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the pipeline binaries
type Config struct {
	AWS    AWSConfig    `yaml:"aws"`
	Table  TableConfig  `yaml:"table"`
	Email  EmailConfig  `yaml:"email"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// AWSConfig holds region and optional static credentials. When the keys are
// empty the SDK default chain (Lambda execution role, profile, env) is used.
type AWSConfig struct {
	Region      string `yaml:"region"`
	AccessKey   string `yaml:"access_key"`
	SecretKey   string `yaml:"secret_key"`
	EndpointURL string `yaml:"endpoint_url"` // local DynamoDB / SES emulators
}

// TableConfig names the submissions table
type TableConfig struct {
	Name string `yaml:"name"`
}

// EmailConfig holds the fixed sender and internal recipient addresses
type EmailConfig struct {
	From    string `yaml:"from"`
	Admin   string `yaml:"admin"`
	Company string `yaml:"company"`
}

// ServerConfig holds local development server settings
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level     string `yaml:"level"`
	RedactPII *bool  `yaml:"redact_pii"`
}

// MissingError lists required settings that were not provided.
type MissingError struct {
	Role string
	Keys []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s: missing required configuration: %s", e.Role, strings.Join(e.Keys, ", "))
}

// Load reads and parses a YAML configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.setDefaults()
	return &cfg, nil
}

// LoadFromEnv builds the configuration from the environment. It loads a .env
// file when present, then the YAML file named by CONFIG_FILE (if any), then
// applies environment overrides.
func LoadFromEnv() (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if v := os.Getenv("DYNAMODB_TABLE"); v != "" {
		cfg.Table.Name = v
	}
	if v := os.Getenv("FROM_EMAIL"); v != "" {
		cfg.Email.From = v
	}
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		cfg.Email.Admin = v
	}
	if v := os.Getenv("COMPANY_EMAIL"); v != "" {
		cfg.Email.Company = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.AWS.Region = v
	}
	if v := os.Getenv("AWS_ENDPOINT_URL"); v != "" {
		cfg.AWS.EndpointURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}

	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.AWS.Region == "" {
		c.AWS.Region = "us-east-1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// RedactPIIEnabled reports whether logs should mask email addresses. Defaults to true.
func (c LogConfig) RedactPIIEnabled() bool {
	return c.RedactPII == nil || *c.RedactPII
}

// ValidateIntake checks the settings the submit handler needs.
func (c *Config) ValidateIntake() error {
	return requireKeys("submit-handler", map[string]string{
		"DYNAMODB_TABLE": c.Table.Name,
	})
}

// ValidateClient checks the settings the client-notification handler needs.
// Confirmations are sent from the company mailbox.
func (c *Config) ValidateClient() error {
	return requireKeys("client-handler", map[string]string{
		"COMPANY_EMAIL": c.Email.Company,
	})
}

// ValidateBusiness checks the settings the business-notification handler needs.
func (c *Config) ValidateBusiness() error {
	return requireKeys("business-handler", map[string]string{
		"FROM_EMAIL":    c.Email.From,
		"ADMIN_EMAIL":   c.Email.Admin,
		"COMPANY_EMAIL": c.Email.Company,
	})
}

func requireKeys(role string, values map[string]string) error {
	var missing []string
	for _, key := range []string{"DYNAMODB_TABLE", "FROM_EMAIL", "ADMIN_EMAIL", "COMPANY_EMAIL"} {
		if v, ok := values[key]; ok && strings.TrimSpace(v) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &MissingError{Role: role, Keys: missing}
	}
	return nil
}

// LoadAWS builds the SDK configuration shared by the DynamoDB and SES clients.
func (c *Config) LoadAWS(ctx context.Context) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.AWS.Region),
	}
	if c.AWS.AccessKey != "" && c.AWS.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AWS.AccessKey, c.AWS.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("loading AWS config: %w", err)
	}
	if c.AWS.EndpointURL != "" {
		cfg.BaseEndpoint = aws.String(c.AWS.EndpointURL)
	}
	return cfg, nil
}
