package config

import (
	"bytes"
	"encoding/json"

	"layoutlint/internal/core/diagnostics"
	"layoutlint/internal/core/errors"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// StarterConfig is the config written by "layoutlint init".
func StarterConfig() *Config {
	depth := DefaultMaxNestingDepth
	cfg := DefaultConfig()
	cfg.Rules.ServerSideExports.Severity = diagnostics.SeverityError
	cfg.Rules.ComponentNestingDepth.Options.MaxNestingDepth = &depth
	cfg.Rules.FilenameStyleConsistency.Options.FilenameStyle = StyleKebabCase
	cfg.Rules.FileOrganization.Options.FileOrganizationChecks = []FileOrganizationCheck{
		{
			ID:          "page-user-stories",
			Description: "Every route page documents its user scenarios",
			Match:       MatchSpec{Glob: "app/**/page.tsx"},
			Require:     []Requirement{{Kind: RequireSiblingExact, Name: "User-Story.us.md"}},
		},
		{
			ID:          "route-ui-location",
			Description: "UI imported by routes lives under components/",
			Match:       MatchSpec{Glob: "**/*.tsx", ExcludeGlob: []string{"app/**"}},
			WhenImportedBy: &ImportTrigger{
				ImporterGlob:      "app/**",
				ImportPathMatches: []string{"^@/"},
			},
			EnforceLocation: &LocationPolicy{MustBeUnder: []string{"components"}},
		},
	}
	return cfg
}

// Encode serializes cfg in the requested format.
func Encode(cfg *Config, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, FormatJSONC:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.Newf(errors.CodeNotSupported, "unsupported config format %q", format)
	}
}

// FileNameFor returns the starter file name for a format.
func FileNameFor(format Format) string {
	switch format {
	case FormatYAML:
		return ".layoutlintrc.yaml"
	case FormatTOML:
		return ".layoutlintrc.toml"
	default:
		return DefaultFileName
	}
}
