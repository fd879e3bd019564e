package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/counsyl/gocd-get-test-failures/internal/discovery"
)

// ErrMissingCredentials indicates GOCD_USER or GOCD_PASSWORD is unset.
var ErrMissingCredentials = errors.New("missing GoCD credentials")

// ErrInvalidFormat indicates an output format outside the recognized set.
var ErrInvalidFormat = errors.New("unsupported format")

// FileName is the optional per-directory config file.
const FileName = ".gocd-get-test-failures.yml"

// DefaultHost is the GoCD server used when neither the environment nor a
// config file names one.
const DefaultHost = "go-cd.counsyl.com"

const (
	// FormatJSON renders machine readable output.
	FormatJSON = "json"
	// FormatOrg renders an org-mode outline.
	FormatOrg = "org"
)

// Config captures CLI options sourced from defaults, the config file, the
// environment, and flags.
type Config struct {
	Host          string
	SkipSSLVerify bool
	Format        string

	Pipelines map[string]discovery.StageJob

	Stage   string
	Job     string
	Test    string
	Verbose bool

	User     string
	Password string
}

// Default returns the baseline configuration used when nothing else
// specifies values.
func Default() Config {
	return Config{
		Host:          DefaultHost,
		SkipSSLVerify: true,
		Format:        FormatJSON,
	}
}

// fileConfig mirrors the YAML config file. Credentials never come from the
// file; only the environment carries them.
type fileConfig struct {
	Host          string                        `yaml:"host"`
	SkipSSLVerify *bool                         `yaml:"skip_ssl_verify"`
	Format        string                        `yaml:"format"`
	Pipelines     map[string]discovery.StageJob `yaml:"pipelines"`
}

// envConfig mirrors the GOCD_* environment variables.
type envConfig struct {
	User          string `env:"GOCD_USER"`
	Password      string `env:"GOCD_PASSWORD"`
	Host          string `env:"GOCD_HOST"`
	SkipSSLVerify string `env:"GOCD_SKIP_SSL_VERIFY"`
}

// Load builds the configuration for a run: defaults, overlaid with
// .gocd-get-test-failures.yml from dir when present, overlaid with the
// environment. Missing files are ignored.
func Load(dir string) (Config, error) {
	cfg := Default()

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err == nil {
		var fileCfg fileConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse config %q: %w", path, err)
		}
		cfg = mergeFile(cfg, fileCfg)
	} else if !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return mergeEnv(cfg, envCfg)
}

func mergeFile(base Config, override fileConfig) Config {
	out := base

	if override.Host != "" {
		out.Host = override.Host
	}
	if override.SkipSSLVerify != nil {
		out.SkipSSLVerify = *override.SkipSSLVerify
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	if len(override.Pipelines) > 0 {
		out.Pipelines = make(map[string]discovery.StageJob, len(override.Pipelines))
		for name, entry := range override.Pipelines {
			out.Pipelines[name] = entry
		}
	}

	return out
}

func mergeEnv(base Config, override envConfig) (Config, error) {
	out := base

	if override.User != "" {
		out.User = override.User
	}
	if override.Password != "" {
		out.Password = override.Password
	}
	if override.Host != "" {
		out.Host = override.Host
	}
	if override.SkipSSLVerify != "" {
		skip, err := strconv.ParseBool(override.SkipSSLVerify)
		if err != nil {
			return out, fmt.Errorf("parse GOCD_SKIP_SSL_VERIFY: %w", err)
		}
		out.SkipSSLVerify = skip
	}

	return out, nil
}

// ApplyFlags mutates cfg by applying values from CLI flags when they are present.
func ApplyFlags(cfg *Config, flags FlagValues) {
	if flags.Format.Set {
		cfg.Format = flags.Format.Value
	}
	if flags.Stage.Set {
		cfg.Stage = flags.Stage.Value
	}
	if flags.Job.Set {
		cfg.Job = flags.Job.Value
	}
	if flags.Test.Set {
		cfg.Test = flags.Test.Value
	}
	if flags.Verbose.Set {
		cfg.Verbose = flags.Verbose.Value
	}
}

// Credentials returns the basic-auth pair, failing when either half is absent.
func (c Config) Credentials() (string, string, error) {
	if c.User == "" || c.Password == "" {
		return "", "", fmt.Errorf("%w: set GOCD_USER and GOCD_PASSWORD", ErrMissingCredentials)
	}
	return c.User, c.Password, nil
}

// ParseFormat validates a format name, returning its canonical value.
func ParseFormat(v string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatOrg:
		return FormatOrg, nil
	default:
		return "", fmt.Errorf("%w %q (expected %s or %s)", ErrInvalidFormat, v, FormatJSON, FormatOrg)
	}
}

// FlagValues captures CLI flag state with knowledge of whether each flag was
// set explicitly.
type FlagValues struct {
	Format  StringFlag
	Stage   StringFlag
	Job     StringFlag
	Test    StringFlag
	Verbose BoolFlag
}

// StringFlag represents a string flag and whether it was set.
type StringFlag struct {
	Value string
	Set   bool
}

// BoolFlag represents a bool flag and whether it was set.
type BoolFlag struct {
	Value bool
	Set   bool
}
