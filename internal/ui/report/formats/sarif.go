package formats

import (
	"encoding/json"
	"strings"

	"layoutlint/internal/core/diagnostics"
	"layoutlint/internal/engine/rules"
	"layoutlint/internal/shared/version"
)

// SARIF v2.1.0 schema – see https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json

const (
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	sarifVersion = "2.1.0"
	srcRoot      = "%SRCROOT%"
)

type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool              sarifTool               `json:"tool"`
	AutomationDetails *sarifAutomationDetails `json:"automationDetails,omitempty"`
	Results           []sarifResult           `json:"results"`
}

type sarifAutomationDetails struct {
	GUID string `json:"guid"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	DefaultConfig    sarifRuleDefaultConfig `json:"defaultConfiguration"`
}

type sarifRuleDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId"`
}

type sarifRegion struct {
	StartLine int `json:"startLine,omitempty"`
}

// GenerateSARIF builds a SARIF v2.1.0 document with one rule descriptor per
// distinct rule id, in first-seen order. All file URIs are made relative to
// the project root; absolute paths are never included so that reports are
// safe to share.
func GenerateSARIF(r Report) ([]byte, error) {
	rules := make([]sarifRule, 0)
	ruleIndex := make(map[string]int)
	results := make([]sarifResult, 0, len(r.Diagnostics))

	for _, d := range r.Diagnostics {
		level := sarifLevel(d.Severity)
		idx, ok := ruleIndex[d.Rule]
		if !ok {
			idx = len(rules)
			ruleIndex[d.Rule] = idx
			rules = append(rules, sarifRule{
				ID:               d.Rule,
				ShortDescription: sarifMessage{Text: ruleDescription(d.Rule)},
				DefaultConfig:    sarifRuleDefaultConfig{Level: level},
			})
		}

		loc := sarifLocation{
			PhysicalLocation: sarifPhysicalLocation{
				ArtifactLocation: sarifArtifactLocation{
					URI:       relativeURI(r.Root, d.File),
					URIBaseID: srcRoot,
				},
			},
		}
		if d.Line > 0 {
			loc.PhysicalLocation.Region = &sarifRegion{StartLine: d.Line}
		}
		results = append(results, sarifResult{
			RuleID:    d.Rule,
			RuleIndex: idx,
			Level:     level,
			Message:   sarifMessage{Text: d.Message},
			Locations: []sarifLocation{loc},
		})
	}

	run := sarifRun{
		Tool: sarifTool{
			Driver: sarifDriver{
				Name:    "layoutlint",
				Version: version.Version,
				Rules:   rules,
			},
		},
		Results: results,
	}
	if r.RunID != "" {
		run.AutomationDetails = &sarifAutomationDetails{GUID: r.RunID}
	}

	report := sarifReport{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs:    []sarifRun{run},
	}
	return json.MarshalIndent(report, "", "  ")
}

func sarifLevel(s diagnostics.Severity) string {
	switch s {
	case diagnostics.SeverityError:
		return "error"
	case diagnostics.SeverityWarn:
		return "warning"
	default:
		return "note"
	}
}

var ruleDescriptions = map[string]string{
	rules.RuleServerSideExports:     "Server-only data fetching export in a client component.",
	rules.RuleComponentNestingDepth: "Route component nested deeper than allowed.",
	rules.RuleFilenameStyle:         "File name does not follow the configured casing.",
	rules.RuleMissingCompanions:     "Required companion file is missing.",
	rules.RuleFileOrganization:      "File violates a configured organization rule.",
}

func ruleDescription(id string) string {
	base, _, _ := strings.Cut(id, ":")
	if text, ok := ruleDescriptions[base]; ok {
		return text
	}
	return id
}
