package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/songscribbler/songscribbler/internal/scroll"
	"github.com/songscribbler/songscribbler/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend         = "backend"
	cfgKeyDataDir         = "data_dir"
	cfgKeyStrictUpgrade   = "strict_upgrade"
	cfgKeyScrollInterval  = "scroll.interval"
	cfgKeyScrollAutoStart = "scroll.autostart"
	cfgKeyLogLevel        = "log.level"

	defaultLogLevel = "warn"
)

// configHeader precedes the generated config.yaml.
const configHeader = `# songscribbler configuration
# data_dir may be overridden by --data-dir or SONGSCRIBBLER_DATA_DIR.
`

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend       string       `yaml:"backend"`
	DataDir       string       `yaml:"data_dir,omitempty"`
	StrictUpgrade bool         `yaml:"strict_upgrade"`
	Scroll        scrollConfig `yaml:"scroll"`
	Log           logConfig    `yaml:"log"`
}

type scrollConfig struct {
	Interval  string `yaml:"interval"`
	AutoStart bool   `yaml:"autostart"`
}

type logConfig struct {
	Level string `yaml:"level"`
}

func defaultConfigFile() configFile {
	return configFile{
		Backend: types.BackendSQLite,
		Scroll: scrollConfig{
			Interval: scroll.DefaultInterval.String(),
		},
		Log: logConfig{Level: defaultLogLevel},
	}
}

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run. A config.yaml removed
// after creation is not an error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	def := defaultConfigFile()
	v := viper.New()
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeyStrictUpgrade, false)
	v.SetDefault(cfgKeyScrollInterval, scroll.DefaultInterval)
	v.SetDefault(cfgKeyScrollAutoStart, false)
	v.SetDefault(cfgKeyLogLevel, def.Log.Level)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile writes the default config.yaml if the file does
// not exist. An existing file is left untouched.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(defaultConfigFile())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}

// storageConfig builds the Songbook config from settings.
func storageConfig() (types.Config, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	return types.Config{
		Backend:       settings.GetString(cfgKeyBackend),
		DataDir:       dataDir,
		StrictUpgrade: settings.GetBool(cfgKeyStrictUpgrade),
	}, nil
}
