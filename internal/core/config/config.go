package config

import "layoutlint/internal/core/diagnostics"

// Config is the user-facing lint configuration. Every format decodes into
// the same structure.
type Config struct {
	Version  int     `json:"version" yaml:"version" toml:"version"`
	Requires string  `json:"requires,omitempty" yaml:"requires,omitempty" toml:"requires,omitempty"`
	Exclude  Exclude `json:"exclude" yaml:"exclude" toml:"exclude"`
	Resolve  Resolve `json:"resolve" yaml:"resolve" toml:"resolve"`
	Rules    Rules   `json:"rules" yaml:"rules" toml:"rules"`
}

// Exclude lists extra directory-name globs skipped by the walker, on top of
// the built-in ignore list.
type Exclude struct {
	Dirs []string `json:"dirs,omitempty" yaml:"dirs,omitempty" toml:"dirs,omitempty"`
}

// Resolve configures import alias prefixes. Targets are root-relative.
type Resolve struct {
	Aliases map[string]string `json:"aliases,omitempty" yaml:"aliases,omitempty" toml:"aliases,omitempty"`
}

type Rules struct {
	ServerSideExports        RuleConfig `json:"server_side_exports" yaml:"server_side_exports" toml:"server_side_exports"`
	ComponentNestingDepth    RuleConfig `json:"component_nesting_depth" yaml:"component_nesting_depth" toml:"component_nesting_depth"`
	FilenameStyleConsistency RuleConfig `json:"filename_style_consistency" yaml:"filename_style_consistency" toml:"filename_style_consistency"`
	MissingCompanionFiles    RuleConfig `json:"missing_companion_files" yaml:"missing_companion_files" toml:"missing_companion_files"`
	FileOrganization         RuleConfig `json:"file_organization" yaml:"file_organization" toml:"file_organization"`
}

type RuleConfig struct {
	Severity diagnostics.Severity `json:"severity" yaml:"severity" toml:"severity"`
	Options  RuleOptions          `json:"options" yaml:"options" toml:"options"`
}

// RuleOptions is shared by all rules; each rule reads the fields it needs.
type RuleOptions struct {
	MaxNestingDepth        *int                    `json:"max_nesting_depth,omitempty" yaml:"max_nesting_depth,omitempty" toml:"max_nesting_depth,omitempty"`
	FilenameStyle          FilenameStyle           `json:"filename_style,omitempty" yaml:"filename_style,omitempty" toml:"filename_style,omitempty"`
	ServerOnlyExports      []string                `json:"server_only_exports,omitempty" yaml:"server_only_exports,omitempty" toml:"server_only_exports,omitempty"`
	RequireTestFiles       bool                    `json:"require_test_files,omitempty" yaml:"require_test_files,omitempty" toml:"require_test_files,omitempty"`
	RequireStoryFiles      bool                    `json:"require_story_files,omitempty" yaml:"require_story_files,omitempty" toml:"require_story_files,omitempty"`
	CompanionFilePatterns  *CompanionFilePatterns  `json:"companion_file_patterns,omitempty" yaml:"companion_file_patterns,omitempty" toml:"companion_file_patterns,omitempty"`
	FileOrganizationChecks []FileOrganizationCheck `json:"file_organization_checks,omitempty" yaml:"file_organization_checks,omitempty" toml:"file_organization_checks,omitempty"`
}

type FilenameStyle string

const (
	StyleKebabCase  FilenameStyle = "kebab-case"
	StyleCamelCase  FilenameStyle = "camel-case"
	StylePascalCase FilenameStyle = "pascal-case"
	StyleSnakeCase  FilenameStyle = "snake-case"
)

// FilenameStyles lists the accepted filename_style values.
var FilenameStyles = []FilenameStyle{StyleKebabCase, StyleCamelCase, StylePascalCase, StyleSnakeCase}

// CompanionFilePatterns lists sibling globs that must exist per category.
type CompanionFilePatterns struct {
	IntegrationTests  []string            `json:"integration_tests,omitempty" yaml:"integration_tests,omitempty" toml:"integration_tests,omitempty"`
	PageUserScenarios []string            `json:"page_user_scenarios,omitempty" yaml:"page_user_scenarios,omitempty" toml:"page_user_scenarios,omitempty"`
	Custom            map[string][]string `json:"custom,omitempty" yaml:"custom,omitempty" toml:"custom,omitempty"`
}

// FileOrganizationCheck is one declarative organization rule.
type FileOrganizationCheck struct {
	ID              string          `json:"id" yaml:"id" toml:"id"`
	Description     string          `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Match           MatchSpec       `json:"match" yaml:"match" toml:"match"`
	Require         []Requirement   `json:"require,omitempty" yaml:"require,omitempty" toml:"require,omitempty"`
	WhenImportedBy  *ImportTrigger  `json:"when_imported_by,omitempty" yaml:"when_imported_by,omitempty" toml:"when_imported_by,omitempty"`
	EnforceLocation *LocationPolicy `json:"enforce_location,omitempty" yaml:"enforce_location,omitempty" toml:"enforce_location,omitempty"`
}

type MatchSpec struct {
	Glob        string   `json:"glob" yaml:"glob" toml:"glob"`
	ExcludeGlob []string `json:"exclude_glob,omitempty" yaml:"exclude_glob,omitempty" toml:"exclude_glob,omitempty"`
}

type RequirementKind string

const (
	RequireSiblingExact RequirementKind = "sibling_exact"
	RequireSiblingGlob  RequirementKind = "sibling_glob"
)

// Requirement is tagged by Kind: sibling_exact uses Name, sibling_glob uses Glob.
type Requirement struct {
	Kind RequirementKind `json:"kind" yaml:"kind" toml:"kind"`
	Name string          `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Glob string          `json:"glob,omitempty" yaml:"glob,omitempty" toml:"glob,omitempty"`
}

type ImportTrigger struct {
	ImporterGlob      string   `json:"importer_glob" yaml:"importer_glob" toml:"importer_glob"`
	ImportPathMatches []string `json:"import_path_matches" yaml:"import_path_matches" toml:"import_path_matches"`
}

type LocationPolicy struct {
	MustBeUnder []string `json:"must_be_under" yaml:"must_be_under" toml:"must_be_under"`
	Message     string   `json:"message,omitempty" yaml:"message,omitempty" toml:"message,omitempty"`
}

// NestingDepth returns the configured limit or DefaultMaxNestingDepth.
func (o RuleOptions) NestingDepth() int {
	if o.MaxNestingDepth == nil {
		return DefaultMaxNestingDepth
	}
	return *o.MaxNestingDepth
}

// Style returns the configured filename style or the kebab-case default.
func (o RuleOptions) Style() FilenameStyle {
	if o.FilenameStyle == "" {
		return StyleKebabCase
	}
	return o.FilenameStyle
}
