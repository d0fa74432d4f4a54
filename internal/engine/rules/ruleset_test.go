package rules

import (
	"testing"

	"layoutlint/internal/core/config"
	"layoutlint/internal/core/diagnostics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleNames(set *RuleSet) []string {
	var names []string
	for _, r := range set.Bind(nil) {
		names = append(names, r.Name())
	}
	return names
}

func TestNewRuleSetDefaults(t *testing.T) {
	set := NewRuleSet(config.DefaultConfig(), t.TempDir())

	assert.Equal(t, []string{RuleServerSideExports, RuleComponentNestingDepth, RuleFilenameStyle}, ruleNames(set))
	assert.False(t, set.NeedsImportGraph())
	assert.Equal(t, 3, set.Len())
}

func TestNewRuleSetHonorsSeverity(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rules.FilenameStyleConsistency.Severity = diagnostics.SeverityOff
	cfg.Rules.MissingCompanionFiles.Options.RequireTestFiles = true
	cfg.Rules.FileOrganization.Options.FileOrganizationChecks = []config.FileOrganizationCheck{placementCheck()}

	set := NewRuleSet(cfg, t.TempDir())
	assert.Equal(t, []string{RuleServerSideExports, RuleComponentNestingDepth, RuleMissingCompanions, RuleFileOrganization}, ruleNames(set))
	assert.True(t, set.NeedsImportGraph())
	require.Len(t, set.OrganizationRules(), 1)
	assert.Equal(t, "route-ui-location", set.OrganizationRules()[0].ID)

	cfg.Rules.FileOrganization.Severity = diagnostics.SeverityOff
	set = NewRuleSet(cfg, t.TempDir())
	assert.NotContains(t, ruleNames(set), RuleFileOrganization)
	assert.False(t, set.NeedsImportGraph())
}

func TestRuleSetSiblingOnlyNeedsNoGraph(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rules.FileOrganization.Options.FileOrganizationChecks = []config.FileOrganizationCheck{{
		ID:      "page-user-stories",
		Match:   config.MatchSpec{Glob: "app/**/page.tsx"},
		Require: []config.Requirement{{Kind: config.RequireSiblingExact, Name: "User-Story.us.md"}},
	}}

	set := NewRuleSet(cfg, t.TempDir())
	assert.False(t, set.NeedsImportGraph())
	assert.Contains(t, ruleNames(set), RuleFileOrganization)
}
