package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	DataDir string `mapstructure:"data_dir"`
	Remote  struct {
		URL          string        `mapstructure:"url"`
		Password     string        `mapstructure:"password"`
		DB           int           `mapstructure:"db"`
		PollInterval time.Duration `mapstructure:"poll_interval"`
	} `mapstructure:"remote"`
}

// RemoteEnabled reports whether a remote backend is configured. The
// decision is made once at startup and holds for the whole process.
func (c *Config) RemoteEnabled() bool {
	return c.Remote.URL != ""
}

var AppConfig *Config

// Initialize loads or creates the configuration file
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".vagalivre")
	configFile := filepath.Join(configDir, "config.yaml")

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create default config if it doesn't exist
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := createDefaultConfig(configFile); err != nil {
			return err
		}
	}

	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")

	// Set defaults
	viper.SetDefault("data_dir", configDir)
	viper.SetDefault("remote.url", "")
	viper.SetDefault("remote.password", "")
	viper.SetDefault("remote.db", 0)
	viper.SetDefault("remote.poll_interval", "30s")

	// Read config
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	// Unmarshal into struct
	AppConfig = &Config{}
	if err := viper.Unmarshal(AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# VagaLivre Configuration

# Directory for the local job/employer snapshots
data_dir: ""

# Remote backend (leave url empty to run fully offline)
remote:
  url: ""
  password: ""
  db: 0
  poll_interval: 30s
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Set updates a configuration value
func Set(key, value string) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

// Get retrieves a configuration value
func Get(key string) string {
	return viper.GetString(key)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".vagalivre", "config.yaml")
}
