package shared

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	CommonPorts        []uint16      `yaml:"common_ports"`
	GracePeriod        time.Duration `yaml:"grace_period"`
	RefreshInterval    time.Duration `yaml:"refresh_interval"`
	ConfirmKillTimeout time.Duration `yaml:"confirm_kill_timeout"`
}

// DefaultGracePeriod is how long a gracefully signalled process gets to exit.
// Windows has no graceful signal, so the wait there is only for teardown.
func DefaultGracePeriod() time.Duration {
	if runtime.GOOS == "windows" {
		return 300 * time.Millisecond
	}
	return 500 * time.Millisecond
}

func DefaultConfig() Config {
	ports := make([]uint16, len(DefaultCommonPorts))
	copy(ports, DefaultCommonPorts)
	return Config{
		CommonPorts:        ports,
		GracePeriod:        DefaultGracePeriod(),
		RefreshInterval:    2 * time.Second,
		ConfirmKillTimeout: 3 * time.Second,
	}
}

// LoadConfig reads a YAML config from path. A missing file yields defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.merge(fileCfg)
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if ports := validPorts(o.CommonPorts); len(ports) > 0 {
		c.CommonPorts = ports
	}
	if o.GracePeriod > 0 {
		c.GracePeriod = o.GracePeriod
	}
	if o.RefreshInterval > 0 {
		c.RefreshInterval = o.RefreshInterval
	}
	if o.ConfirmKillTimeout > 0 {
		c.ConfirmKillTimeout = o.ConfirmKillTimeout
	}
}

func validPorts(in []uint16) []uint16 {
	out := make([]uint16, 0, len(in))
	for _, p := range in {
		if p != 0 {
			out = append(out, p)
		}
	}
	return out
}
