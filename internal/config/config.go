package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix       = "RELAY"
	defaultPort     = "8080"
	defaultSimPort  = "8081"
	defaultLogLevel = "info"
)

var ErrDeviceAddressMissing = errors.New("device.address is not set (config file or RELAY_DEVICE_ADDRESS)")

type Config struct {
	Port      string
	LogLevel  string
	Device    DeviceConfig
	Simulator SimulatorConfig
}

type DeviceConfig struct {
	Address string // e.g. "192.168.1.100" or "http://esp32.local"
}

type SimulatorConfig struct {
	Port     string
	DeviceID string
}

// Load reads config.yml from the given directories (first match wins) and
// applies RELAY_* environment overrides, e.g. RELAY_DEVICE_ADDRESS.
// A missing file is not an error; defaults and env still apply.
func Load(paths ...string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", defaultPort)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("device.address", "")
	v.SetDefault("simulator.port", defaultSimPort)
	v.SetDefault("simulator.device_id", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return Config{
		Port:     v.GetString("port"),
		LogLevel: v.GetString("log.level"),
		Device: DeviceConfig{
			Address: strings.TrimSpace(v.GetString("device.address")),
		},
		Simulator: SimulatorConfig{
			Port:     v.GetString("simulator.port"),
			DeviceID: v.GetString("simulator.device_id"),
		},
	}, nil
}

// Validate checks what the dashboard needs to start.
func (c Config) Validate() error {
	if c.Device.Address == "" {
		return ErrDeviceAddressMissing
	}
	return nil
}
