package diagfmt

import (
	"encoding/json"
	"io"

	"verdict/internal/diag"
	"verdict/internal/source"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string          `json:"name"`
	Version string          `json:"version,omitempty"`
	Rules   []sarifRuleMeta `json:"rules,omitempty"`
}

type sarifRuleMeta struct {
	ID               string            `json:"id"`
	Name             string            `json:"name,omitempty"`
	ShortDescription *sarifMessage     `json:"shortDescription,omitempty"`
	HelpURI          string            `json:"helpUri,omitempty"`
	DefaultConfig    *sarifRuleConfig  `json:"defaultConfiguration,omitempty"`
	Properties       map[string]string `json:"properties,omitempty"`
}

type sarifRuleConfig struct {
	Level   string `json:"level"`
	Enabled bool   `json:"enabled"`
}

type sarifInvocation struct {
	Arguments   []string `json:"arguments,omitempty"`
	ExecutionOK bool     `json:"executionSuccessful"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	case diag.SevInfo:
		return "note"
	default:
		return "none"
	}
}

// Sarif serializes the bag as a SARIF 2.1.0 log with one run. The
// descriptor list becomes the driver's rule metadata; results index
// into it.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, descriptors []diag.Descriptor, meta SarifRunMeta) error {
	ruleIndex := make(map[string]int, len(descriptors))
	rules := make([]sarifRuleMeta, 0, len(descriptors))
	for i, d := range descriptors {
		ruleIndex[d.ID] = i
		rm := sarifRuleMeta{
			ID:      d.ID,
			Name:    d.Title,
			HelpURI: d.HelpURI,
			DefaultConfig: &sarifRuleConfig{
				Level:   sarifLevel(d.DefaultSeverity),
				Enabled: d.EnabledByDefault,
			},
		}
		if d.Title != "" {
			rm.ShortDescription = &sarifMessage{Text: d.Title}
		}
		if d.Category != "" {
			rm.Properties = map[string]string{"category": d.Category}
		}
		rules = append(rules, rm)
	}

	results := make([]sarifResult, 0, bag.Len())
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		start, end := fs.Resolve(d.Primary)

		idx, ok := ruleIndex[d.Descriptor]
		if !ok {
			idx = -1
		}
		results = append(results, sarifResult{
			RuleID:    d.Descriptor,
			RuleIndex: idx,
			Level:     sarifLevel(d.Severity),
			Message:   sarifMessage{Text: d.Message},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{
						URI: f.FormatPath("relative", fs.BaseDir()),
					},
					Region: sarifRegion{
						StartLine:   start.Line,
						StartColumn: start.Col,
						EndLine:     end.Line,
						EndColumn:   end.Col,
					},
				},
			}},
		})
	}

	log := sarifLog{
		Version: sarifVersion,
		Schema:  sarifSchema,
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:    meta.ToolName,
				Version: meta.ToolVersion,
				Rules:   rules,
			}},
			Results: results,
		}},
	}
	if len(meta.InvocationArgs) > 0 {
		log.Runs[0].Invocations = []sarifInvocation{{
			Arguments:   meta.InvocationArgs,
			ExecutionOK: true,
		}}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(log)
}
