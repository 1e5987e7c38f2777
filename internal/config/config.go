// Package config loads operator-upgradepath settings from flags, the
// environment and defaults, and reads filter documents.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"k8s.io/client-go/util/homedir"

	"github.com/bayleafwalker/operator-upgradepath/api/v1alpha1"
)

// EnvPrefix is the prefix of environment variables overriding settings,
// e.g. UPGRADEPATH_WORKING_DIR.
const EnvPrefix = "UPGRADEPATH"

// Setting keys. They double as flag names.
const (
	KeyLogLevel     = "loglevel"
	KeyWorkingDir   = "working-dir"
	KeyOutputDir    = "output-dir"
	KeyAPIVersion   = "api-version"
	KeyWorkers      = "workers"
	KeyMetricsFile  = "metrics-file"
	KeySkipManifest = "skip-manifest"
)

const (
	DefaultOutputDir = "artifacts"
	DefaultWorkers   = 4
)

// Settings holds the runtime configuration of a command.
type Settings struct {
	LogLevel     Level  `mapstructure:"loglevel"`
	WorkingDir   string `mapstructure:"working-dir"`
	OutputDir    string `mapstructure:"output-dir"`
	APIVersion   string `mapstructure:"api-version"`
	Workers      int    `mapstructure:"workers"`
	MetricsFile  string `mapstructure:"metrics-file"`
	SkipManifest bool   `mapstructure:"skip-manifest"`
}

// DefaultWorkingDir is where extracted catalogs are looked up when no working
// dir is configured.
func DefaultWorkingDir() string {
	return filepath.Join(homedir.HomeDir(), ".operator-upgradepath", "working-dir")
}

// New returns a viper instance with defaults and environment binding set up.
// Callers bind their flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyLogLevel, string(LevelInfo))
	v.SetDefault(KeyWorkingDir, DefaultWorkingDir())
	v.SetDefault(KeyOutputDir, DefaultOutputDir)
	v.SetDefault(KeyAPIVersion, v1alpha1.DefaultMirrorVersion)
	v.SetDefault(KeyWorkers, DefaultWorkers)
	v.SetDefault(KeyMetricsFile, "")
	v.SetDefault(KeySkipManifest, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the settings from v. An unknown log level falls back to info.
func Load(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	s.LogLevel = ParseLevel(string(s.LogLevel))

	if s.Workers < 1 {
		return Settings{}, fmt.Errorf("%s must be at least 1, got %d", KeyWorkers, s.Workers)
	}
	if strings.TrimSpace(s.WorkingDir) == "" {
		return Settings{}, errors.New(KeyWorkingDir + " must not be empty")
	}
	return s, nil
}

// ReadFilterConfig reads, decodes and validates a filter document.
func ReadFilterConfig(fsys afero.Fs, path string) (*v1alpha1.FilterConfig, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read filter config: %w", err)
	}
	cfg, err := v1alpha1.DecodeFilterConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: invalid filter config: %w", path, err)
	}
	return cfg, nil
}
