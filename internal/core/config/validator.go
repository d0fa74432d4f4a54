package config

import (
	"fmt"
	"slices"
	"strings"

	"layoutlint/internal/shared/version"

	"github.com/Masterminds/semver/v3"
	"github.com/gobwas/glob"
)

// Validate returns every problem found in cfg. Invalid globs and regular
// expressions inside organization checks are not reported here; they are
// warned about when the rule set is compiled.
func Validate(cfg *Config) []error {
	var errs []error
	for _, validate := range []func(*Config) error{
		validateVersion,
		validateRequires,
		validateSeverities,
		validateNestingDepth,
		validateFilenameStyle,
		validateExclude,
		validateAliases,
		validateCompanionPatterns,
		validateFileOrganization,
	} {
		if err := validate(cfg); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func validateVersion(cfg *Config) error {
	if cfg.Version < 1 {
		return fmt.Errorf("version must be >= 1, got %d", cfg.Version)
	}
	if cfg.Version > CurrentVersion {
		return fmt.Errorf("unsupported config version %d; supported version is %d", cfg.Version, CurrentVersion)
	}
	return nil
}

func validateRequires(cfg *Config) error {
	raw := strings.TrimSpace(cfg.Requires)
	if raw == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(raw)
	if err != nil {
		return fmt.Errorf("requires %q is not a valid version constraint: %w", raw, err)
	}
	current, err := semver.NewVersion(version.Version)
	if err != nil {
		return fmt.Errorf("tool version %q is not semver: %w", version.Version, err)
	}
	if !constraint.Check(current) {
		return fmt.Errorf("config requires layoutlint %s, running %s", raw, version.Version)
	}
	return nil
}

func validateSeverities(cfg *Config) error {
	names := []string{
		"server_side_exports",
		"component_nesting_depth",
		"filename_style_consistency",
		"missing_companion_files",
		"file_organization",
	}
	for i, rule := range cfg.Rules.all() {
		switch rule.Severity {
		case "warn", "error", "off":
		default:
			return fmt.Errorf("rules.%s.severity must be one of: warn, error, off; got %q", names[i], rule.Severity)
		}
	}
	return nil
}

func validateNestingDepth(cfg *Config) error {
	if depth := cfg.Rules.ComponentNestingDepth.Options.NestingDepth(); depth < 0 {
		return fmt.Errorf("rules.component_nesting_depth.options.max_nesting_depth must be >= 0, got %d", depth)
	}
	return nil
}

func validateFilenameStyle(cfg *Config) error {
	style := cfg.Rules.FilenameStyleConsistency.Options.Style()
	if !slices.Contains(FilenameStyles, style) {
		return fmt.Errorf("rules.filename_style_consistency.options.filename_style %q must be one of: kebab-case, camel-case, pascal-case, snake-case", style)
	}
	return nil
}

func validateExclude(cfg *Config) error {
	for i, pattern := range cfg.Exclude.Dirs {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("exclude.dirs[%d] must not be empty", i)
		}
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("exclude.dirs[%d] %q is not a valid glob: %w", i, pattern, err)
		}
	}
	return nil
}

func validateAliases(cfg *Config) error {
	for prefix := range cfg.Resolve.Aliases {
		if strings.TrimSpace(prefix) == "" {
			return fmt.Errorf("resolve.aliases must not contain an empty prefix")
		}
	}
	return nil
}

func validateCompanionPatterns(cfg *Config) error {
	patterns := cfg.Rules.MissingCompanionFiles.Options.CompanionFilePatterns
	if patterns == nil {
		return nil
	}
	for name, globs := range patterns.Custom {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("companion_file_patterns.custom must not contain an empty category name")
		}
		if len(globs) == 0 {
			return fmt.Errorf("companion_file_patterns.custom.%s must list at least one pattern", name)
		}
	}
	return nil
}

func validateFileOrganization(cfg *Config) error {
	seen := make(map[string]bool)
	for i, check := range cfg.Rules.FileOrganization.Options.FileOrganizationChecks {
		ref := fmt.Sprintf("file_organization_checks[%d]", i)
		id := strings.TrimSpace(check.ID)
		if id == "" {
			return fmt.Errorf("%s.id must not be empty", ref)
		}
		if seen[id] {
			return fmt.Errorf("%s.id %q is duplicated", ref, id)
		}
		seen[id] = true

		if strings.TrimSpace(check.Match.Glob) == "" {
			return fmt.Errorf("%s (%s): match.glob must not be empty", ref, id)
		}
		for j, req := range check.Require {
			switch req.Kind {
			case RequireSiblingExact:
				if strings.TrimSpace(req.Name) == "" {
					return fmt.Errorf("%s (%s): require[%d] sibling_exact needs a name", ref, id, j)
				}
			case RequireSiblingGlob:
				if strings.TrimSpace(req.Glob) == "" {
					return fmt.Errorf("%s (%s): require[%d] sibling_glob needs a glob", ref, id, j)
				}
			default:
				return fmt.Errorf("%s (%s): require[%d].kind must be sibling_exact or sibling_glob, got %q", ref, id, j, req.Kind)
			}
		}
		if check.WhenImportedBy != nil && strings.TrimSpace(check.WhenImportedBy.ImporterGlob) == "" {
			return fmt.Errorf("%s (%s): when_imported_by.importer_glob must not be empty", ref, id)
		}
		if check.EnforceLocation != nil && len(check.EnforceLocation.MustBeUnder) == 0 {
			return fmt.Errorf("%s (%s): enforce_location.must_be_under must list at least one prefix", ref, id)
		}
	}
	return nil
}
