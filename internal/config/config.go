package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. ABO_PARSER_ENCODING.
const EnvPrefix = "ABO"

const appDirName = "abo-parser"

type Config struct {
	Parser     ParserConfig `mapstructure:"parser"`
	Output     OutputConfig `mapstructure:"output"`
	Server     ServerConfig `mapstructure:"server"`
	Store      StoreConfig  `mapstructure:"store"`
	Log        LogConfig    `mapstructure:"log"`
	ConfigPath string       `mapstructure:"-"`
}

type ParserConfig struct {
	Encoding        string `mapstructure:"encoding"`
	ConvertEncoding bool   `mapstructure:"convert_encoding"`
	Workers         int    `mapstructure:"workers"`
}

type OutputConfig struct {
	Format        string `mapstructure:"format"`
	IncludeHeader bool   `mapstructure:"include_header"`
}

type ServerConfig struct {
	Addr        string `mapstructure:"addr"`
	BodyLimitMB int    `mapstructure:"body_limit_mb"`
}

type StoreConfig struct {
	// Path of the sqlite archive. Empty means <user config dir>/abo-parser/abo.db.
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func NewDefault() *Config {
	return &Config{
		Parser: ParserConfig{Encoding: "windows-1250", ConvertEncoding: true, Workers: 4},
		Output: OutputConfig{Format: "json", IncludeHeader: true},
		Server: ServerConfig{Addr: ":8080", BodyLimitMB: 32},
		Store:  StoreConfig{Path: ""},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// SetDefaults registers every default with v so that environment variables
// are honored for keys absent from the config file.
func SetDefaults(v *viper.Viper) {
	d := NewDefault()
	v.SetDefault("parser.encoding", d.Parser.Encoding)
	v.SetDefault("parser.convert_encoding", d.Parser.ConvertEncoding)
	v.SetDefault("parser.workers", d.Parser.Workers)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.include_header", d.Output.IncludeHeader)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.body_limit_mb", d.Server.BodyLimitMB)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load reads configuration from path, or from config.yaml in the user config
// directory when path is empty. A missing default file is not an error; a
// missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if appDir, err := AppDataDir(); err == nil {
			v.AddConfigPath(appDir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
	}

	cfg := NewDefault()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if c.Parser.Workers < 1 {
		return fmt.Errorf("parser.workers must be at least 1, got %d", c.Parser.Workers)
	}
	if c.Server.BodyLimitMB < 1 {
		return fmt.Errorf("server.body_limit_mb must be at least 1, got %d", c.Server.BodyLimitMB)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// StorePath returns the archive location, falling back to the user config
// directory.
func (c *Config) StorePath() (string, error) {
	if c.Store.Path != "" {
		return expandPath(c.Store.Path)
	}
	appDir, err := AppDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, "abo.db"), nil
}

// AppDataDir is the per-user directory holding config.yaml and the archive.
func AppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, "."+appDirName), nil
	}
	return filepath.Join(configDir, appDirName), nil
}

func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
