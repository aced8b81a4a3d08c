package config

import (
	"bytes"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"silvo/patrimony"
)

const (
	KeyDatabasePath      = "database.path"
	KeyServerListen      = "server.listen"
	KeyImportStrictEnums = "import.strict_enums"
	KeyTenantID          = "tenant.id"
	KeyTenantPrivileged  = "tenant.privileged"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Server   ServerConfig   `mapstructure:"server"`
	Import   ImportConfig   `mapstructure:"import"`
	Tenant   TenantConfig   `mapstructure:"tenant"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type ServerConfig struct {
	Listen string `mapstructure:"listen" validate:"required,hostname_port"`
}

type ImportConfig struct {
	// StrictEnums turns the silent per-level enum fallback into a row-level
	// rejection for any unrecognized type/shape/legal-status value.
	StrictEnums bool `mapstructure:"strict_enums"`
}

type TenantConfig struct {
	ID         string `mapstructure:"id"`
	Privileged bool   `mapstructure:"privileged"`
}

// Scope builds the authorization scope this installation operates under.
func (c Config) Scope() patrimony.Scope {
	return patrimony.Scope{TenantID: c.Tenant.ID, Privileged: c.Tenant.Privileged}
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# silvo configuration
database:
  path: "./silvo.db"

server:
  listen: "127.0.0.1:8710"

import:
  # Reject rows with unrecognized enum values instead of substituting the
  # per-level default.
  strict_enums: false

tenant:
  # Tenant this installation works for. Leave privileged false unless the
  # operator must act across tenants.
  id: ""
  privileged: false
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, "./silvo.db")
	v.SetDefault(KeyServerListen, "127.0.0.1:8710")
	v.SetDefault(KeyImportStrictEnums, false)
	v.SetDefault(KeyTenantID, "")
	v.SetDefault(KeyTenantPrivileged, false)
}
