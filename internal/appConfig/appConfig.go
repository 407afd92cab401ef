package appConfig

import (
	"os"
	"path/filepath"
	"strings"

	"emperror.dev/errors"
	"gopkg.in/yaml.v2"

	"pacl/internal/ext"
	"pacl/internal/gitremote"
)

const (
	ConfigFileName    = ".pacl.yaml"
	BaseDirEnvVar     = "PACL_BASE_DIR"
	DefaultBaseDir    = ".pacl"
	DefaultGitCommand = "git"
)

const ErrHomeDirectoryNotDetected = errors.Sentinel("home directory not detected")

type AppConfig struct {
	BaseDir     string `yaml:"baseDir"`     // Root of the mirrored clone tree, ~ is expanded
	DefaultHost string `yaml:"defaultHost"` // Host used for owner/repo shorthands
	GitCommand  string `yaml:"gitCommand"`  // Executable invoked for cloning
}

// Environment is the process environment as seen by the config layer.
type Environment struct {
	Getenv      func(string) string
	UserHomeDir func() (string, error)
}

func OSEnvironment() Environment {
	return Environment{Getenv: os.Getenv, UserHomeDir: os.UserHomeDir}
}

func (env Environment) homeDir() (string, error) {
	homeDir, err := env.UserHomeDir()
	if err != nil || homeDir == "" {
		return "", errors.WrapIf(ErrHomeDirectoryNotDetected, "cannot locate home directory")
	}
	return homeDir, nil
}

// LoadConfig reads the config file. An empty configFilePath means ~/.pacl.yaml, which may be absent.
// A file given explicitly has to exist.
func LoadConfig(configFilePath string, env Environment) (*AppConfig, error) {
	explicit := configFilePath != ""
	if !explicit {
		homeDir, err := env.homeDir()
		if err != nil {
			return &AppConfig{}, nil
		}
		configFilePath = filepath.Join(homeDir, ConfigFileName)
	}

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &AppConfig{}, nil
		}
		return nil, errors.Wrapf(err, "could not read config file %s", configFilePath)
	}

	var config AppConfig
	err = yaml.UnmarshalStrict(data, &config)
	if err != nil {
		return nil, errors.Wrapf(err, "could not unmarshal config file %s", configFilePath)
	}

	return &config, nil
}

// ResolveBaseDir picks the clone root: flag, then PACL_BASE_DIR, then the config file, then ~/.pacl.
func (config *AppConfig) ResolveBaseDir(flagValue string, env Environment) (string, error) {
	baseDir := ext.DefaultValue(flagValue, ext.DefaultValue(env.Getenv(BaseDirEnvVar), config.BaseDir))

	homeDir, err := env.homeDir()
	if baseDir == "" {
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, DefaultBaseDir), nil
	}

	if baseDir == "~" || strings.HasPrefix(baseDir, "~/") {
		if err != nil {
			return "", err
		}
		baseDir = ext.ExpandTilde(baseDir, homeDir)
	}
	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return "", errors.Wrapf(err, "invalid base directory %s", baseDir)
	}
	return absBaseDir, nil
}

func (config *AppConfig) GetDefaultHost() string {
	return ext.DefaultValue(config.DefaultHost, gitremote.DefaultHost)
}

func (config *AppConfig) GetGitCommand() string {
	return ext.DefaultValue(config.GitCommand, DefaultGitCommand)
}
