package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"layoutlint/internal/core/diagnostics"
	"layoutlint/internal/core/errors"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxNestingDepth = 3
	CurrentVersion         = 1
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
)

// DetectFormat maps a file extension to a format. ok is false for unknown
// extensions, which are decoded by trial.
func DetectFormat(path string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "json":
		return FormatJSON, true
	case "jsonc", "json5":
		return FormatJSONC, true
	case "yaml", "yml":
		return FormatYAML, true
	case "toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// DefaultConfig enables every rule at warn severity with built-in options.
func DefaultConfig() *Config {
	cfg := baseConfig()
	applyDefaults(cfg)
	return cfg
}

// baseConfig carries the defaults that decoding may override field by field.
// Maps stay nil so decoders replace rather than merge them.
func baseConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Rules: Rules{
			ServerSideExports:        RuleConfig{Severity: diagnostics.SeverityWarn},
			ComponentNestingDepth:    RuleConfig{Severity: diagnostics.SeverityWarn},
			FilenameStyleConsistency: RuleConfig{Severity: diagnostics.SeverityWarn},
			MissingCompanionFiles:    RuleConfig{Severity: diagnostics.SeverityWarn},
			FileOrganization:         RuleConfig{Severity: diagnostics.SeverityWarn},
		},
	}
}

// Load reads, decodes, defaults and validates the config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := errors.CodeIO
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.CodeNotFound
		}
		return nil, errors.AddContext(errors.Wrap(err, code, "read config"), errors.CtxPath, path)
	}

	format, known := DetectFormat(path)
	var cfg *Config
	if known {
		cfg, err = Parse(data, format)
	} else {
		cfg, err = parseAny(data)
	}
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxPath, path)
	}
	return cfg, nil
}

// Parse decodes data in the given format over the built-in defaults, then
// applies defaults and validation.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := baseConfig()
	if err := decode(data, format, cfg); err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeConfig, "decode config"), errors.CtxFormat, string(format))
	}

	applyDefaults(cfg)
	if errs := Validate(cfg); len(errs) > 0 {
		return nil, errors.Wrap(stderrors.Join(errs...), errors.CodeValidationError, "invalid config")
	}
	return cfg, nil
}

func parseAny(data []byte) (*Config, error) {
	var firstErr error
	for _, format := range []Format{FormatJSONC, FormatYAML, FormatTOML} {
		cfg, err := Parse(data, format)
		if err == nil {
			return cfg, nil
		}
		// A successful decode with invalid content is the real problem.
		if errors.IsCode(err, errors.CodeValidationError) {
			return nil, err
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

func decode(data []byte, format Format, cfg *Config) error {
	switch format {
	case FormatJSON, FormatJSONC:
		return json.Unmarshal(jsonc.ToJSON(data), cfg)
	case FormatYAML:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		return yaml.Unmarshal(data, cfg)
	case FormatTOML:
		_, err := toml.Decode(string(data), cfg)
		return err
	default:
		return errors.Newf(errors.CodeNotSupported, "unsupported config format %q", format)
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = CurrentVersion
	}
	if len(cfg.Resolve.Aliases) == 0 {
		cfg.Resolve.Aliases = map[string]string{"@/": ""}
	}

	for _, rule := range cfg.Rules.all() {
		if rule.Severity == "" {
			rule.Severity = diagnostics.SeverityWarn
		}
	}
}

// all returns pointers to every rule block in a fixed order.
func (r *Rules) all() []*RuleConfig {
	return []*RuleConfig{
		&r.ServerSideExports,
		&r.ComponentNestingDepth,
		&r.FilenameStyleConsistency,
		&r.MissingCompanionFiles,
		&r.FileOrganization,
	}
}
