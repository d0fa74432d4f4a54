package config

import (
	"testing"

	"layoutlint/internal/shared/version"

	"github.com/stretchr/testify/assert"
)

func validCheck() FileOrganizationCheck {
	return FileOrganizationCheck{
		ID:    "ui",
		Match: MatchSpec{Glob: "**/*.tsx"},
	}
}

func TestValidateFileOrganization(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*FileOrganizationCheck)
		extra   bool
		wantErr string
	}{
		{name: "valid", mutate: func(*FileOrganizationCheck) {}},
		{name: "missing id", mutate: func(c *FileOrganizationCheck) { c.ID = " " }, wantErr: "id must not be empty"},
		{name: "duplicate id", mutate: func(*FileOrganizationCheck) {}, extra: true, wantErr: `"ui" is duplicated`},
		{name: "missing glob", mutate: func(c *FileOrganizationCheck) { c.Match.Glob = "" }, wantErr: "match.glob must not be empty"},
		{
			name:    "unknown require kind",
			mutate:  func(c *FileOrganizationCheck) { c.Require = []Requirement{{Kind: "sibling_regex", Name: "x"}} },
			wantErr: "must be sibling_exact or sibling_glob",
		},
		{
			name:    "sibling exact without name",
			mutate:  func(c *FileOrganizationCheck) { c.Require = []Requirement{{Kind: RequireSiblingExact}} },
			wantErr: "sibling_exact needs a name",
		},
		{
			name:    "sibling glob without glob",
			mutate:  func(c *FileOrganizationCheck) { c.Require = []Requirement{{Kind: RequireSiblingGlob}} },
			wantErr: "sibling_glob needs a glob",
		},
		{
			name:    "trigger without importer glob",
			mutate:  func(c *FileOrganizationCheck) { c.WhenImportedBy = &ImportTrigger{} },
			wantErr: "importer_glob must not be empty",
		},
		{
			name:    "policy without prefixes",
			mutate:  func(c *FileOrganizationCheck) { c.EnforceLocation = &LocationPolicy{Message: "x"} },
			wantErr: "must_be_under must list at least one prefix",
		},
		{
			name: "lone policy is accepted",
			mutate: func(c *FileOrganizationCheck) {
				c.EnforceLocation = &LocationPolicy{MustBeUnder: []string{"components"}}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			check := validCheck()
			tt.mutate(&check)
			checks := []FileOrganizationCheck{check}
			if tt.extra {
				checks = append(checks, validCheck())
			}
			cfg.Rules.FileOrganization.Options.FileOrganizationChecks = checks

			err := validateFileOrganization(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateRequires(t *testing.T) {
	original := version.Version
	t.Cleanup(func() { version.Version = original })
	version.Version = "1.2.0"

	tests := []struct {
		requires string
		wantErr  bool
	}{
		{requires: ""},
		{requires: ">= 1.0.0"},
		{requires: "^1.1"},
		{requires: "~1.2.0"},
		{requires: ">= 2.0.0", wantErr: true},
		{requires: "not-a-constraint", wantErr: true},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Requires = tt.requires
		err := validateRequires(cfg)
		if tt.wantErr {
			assert.Error(t, err, tt.requires)
		} else {
			assert.NoError(t, err, tt.requires)
		}
	}
}

func TestValidateScalars(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Version = 2
	assert.ErrorContains(t, validateVersion(cfg), "unsupported config version 2")

	cfg = DefaultConfig()
	negative := -1
	cfg.Rules.ComponentNestingDepth.Options.MaxNestingDepth = &negative
	assert.ErrorContains(t, validateNestingDepth(cfg), "max_nesting_depth must be >= 0")

	cfg = DefaultConfig()
	cfg.Rules.ServerSideExports.Severity = "loud"
	assert.ErrorContains(t, validateSeverities(cfg), "rules.server_side_exports.severity")

	cfg = DefaultConfig()
	cfg.Exclude.Dirs = []string{"gen-["}
	assert.ErrorContains(t, validateExclude(cfg), "not a valid glob")

	cfg = DefaultConfig()
	cfg.Resolve.Aliases = map[string]string{"": "src"}
	assert.Error(t, validateAliases(cfg))

	cfg = DefaultConfig()
	cfg.Rules.MissingCompanionFiles.Options.CompanionFilePatterns = &CompanionFilePatterns{
		Custom: map[string][]string{"docs": nil},
	}
	assert.ErrorContains(t, validateCompanionPatterns(cfg), "custom.docs")
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Version = 9
	cfg.Rules.FilenameStyleConsistency.Options.FilenameStyle = "dot.case"
	assert.Len(t, Validate(cfg), 2)
}
