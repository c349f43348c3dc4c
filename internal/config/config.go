package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config wraps the live configuration store. Threshold getters always read
// the current value, so a settings change between refresh cycles is picked
// up on the very next cycle.
type Config struct {
	v *viper.Viper
}

// Load reads configuration from the given file (YAML), falling back to
// defaults plus DISKWARDEN_* environment variables. With an empty path it
// searches the usual locations and tolerates a missing file.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("data_dirs", []string{"/var/lib/diskwarden"})
	v.SetDefault("storage_space_alert_free_threshold_percent", 5)
	v.SetDefault("storage_space_alert_free_threshold_bytes", 1<<30)
	v.SetDefault("poll_interval", 30*time.Second)
	v.SetDefault("despam_interval", time.Hour)
	v.SetDefault("listen_addr", "localhost:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.secret_key", "")
	v.SetDefault("allowed_origins", []string{})

	v.SetEnvPrefix("DISKWARDEN")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("diskwarden")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/diskwarden")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// Live reload: viper re-reads the file on change, so threshold getters
	// see new values without a restart.
	if v.ConfigFileUsed() != "" {
		v.WatchConfig()
	}

	return &Config{v: v}, nil
}

// Set overrides a key at runtime. Used by tests and the CLI.
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

// DataDirs returns the watched storage locations.
func (c *Config) DataDirs() []string {
	return c.v.GetStringSlice("data_dirs")
}

// FreeThresholdPercent returns the percent-of-capacity alert threshold,
// clamped to 0-100.
func (c *Config) FreeThresholdPercent() uint {
	p := c.v.GetUint("storage_space_alert_free_threshold_percent")
	if p > 100 {
		p = 100
	}
	return p
}

// FreeThresholdBytes returns the absolute free-space alert threshold.
func (c *Config) FreeThresholdBytes() uint64 {
	return c.v.GetUint64("storage_space_alert_free_threshold_bytes")
}

func (c *Config) PollInterval() time.Duration {
	return c.v.GetDuration("poll_interval")
}

func (c *Config) DespamInterval() time.Duration {
	return c.v.GetDuration("despam_interval")
}

func (c *Config) ListenAddr() string {
	return c.v.GetString("listen_addr")
}

func (c *Config) LogLevel() string {
	return c.v.GetString("log_level")
}

func (c *Config) LogFormat() string {
	return c.v.GetString("log_format")
}

func (c *Config) AuthEnabled() bool {
	return c.v.GetBool("auth.enabled")
}

func (c *Config) AuthSecretKey() string {
	return c.v.GetString("auth.secret_key")
}

func (c *Config) AllowedOrigins() []string {
	return c.v.GetStringSlice("allowed_origins")
}
