package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/yaklabco/mdcheck/pkg/issue"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

const (
	sarifToolName       = "mdcheck"
	sarifInformationURI = "https://github.com/yaklabco/mdcheck"
	documentationPrefix = "Documentation "
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule reported in this run.
type SARIFRule struct {
	ID      string `json:"id"`
	HelpURI string `json:"helpUri,omitempty"`
}

// SARIFResult represents a single issue.
type SARIFResult struct {
	RuleID     string           `json:"ruleId"`
	Level      string           `json:"level"`
	Kind       string           `json:"kind"`
	Message    SARIFMessage     `json:"message"`
	Locations  []SARIFLocation  `json:"locations"`
	Properties *SARIFProperties `json:"properties,omitempty"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
	ByteOffset  int `json:"byteOffset"`
	ByteLength  int `json:"byteLength"`
}

// SARIFProperties is the property bag carrying remediation text.
type SARIFProperties struct {
	Fixes []string `json:"fixes,omitempty"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildSARIFOutput(result, r.opts.ToolVersion)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func buildSARIFOutput(result *runner.Result, version string) *SARIFOutput {
	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           sarifToolName,
				Version:        version,
				InformationURI: sarifInformationURI,
				Rules:          make([]SARIFRule, 0),
			},
		},
		Results: make([]SARIFResult, 0),
	}

	if result != nil {
		rulesSeen := make(map[string]bool)
		for _, file := range result.Files {
			for i := range file.Issues {
				iss := &file.Issues[i]
				ruleID := iss.RuleID()
				if !rulesSeen[ruleID] {
					rulesSeen[ruleID] = true
					run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, SARIFRule{
						ID:      ruleID,
						HelpURI: documentationURI(iss),
					})
				}
				run.Results = append(run.Results, sarifResult(iss, ruleID))
			}
		}
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

func sarifResult(iss *issue.CheckIssue, ruleID string) SARIFResult {
	res := SARIFResult{
		RuleID:  ruleID,
		Level:   iss.Severity.SARIFLevel(),
		Kind:    iss.Category.SARIFKind(),
		Message: SARIFMessage{Text: iss.Message},
		Locations: []SARIFLocation{{
			PhysicalLocation: SARIFPhysicalLocation{
				ArtifactLocation: SARIFArtifactLocation{URI: filepath.ToSlash(iss.FilePath)},
				Region: SARIFRegion{
					StartLine:   iss.RowStart,
					StartColumn: iss.ColStart,
					EndLine:     iss.RowEnd,
					EndColumn:   iss.ColEnd,
					ByteOffset:  iss.OffsetStart,
					ByteLength:  max(0, iss.OffsetEnd-iss.OffsetStart),
				},
			},
		}},
	}
	if len(iss.Fixes) > 0 {
		res.Properties = &SARIFProperties{Fixes: iss.Fixes}
	}
	return res
}

// documentationURI extracts the link from an issue's "Documentation" fix line.
func documentationURI(iss *issue.CheckIssue) string {
	for _, fix := range iss.Fixes {
		if uri, ok := strings.CutPrefix(fix, documentationPrefix); ok {
			return uri
		}
	}
	return ""
}
