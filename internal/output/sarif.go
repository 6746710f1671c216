package output

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"
	"github.com/tapecheck-dev/tapecheck/internal/domain/values"
	"github.com/tapecheck-dev/tapecheck/internal/engine"
	"github.com/tapecheck-dev/tapecheck/internal/report"
)

// SARIFFormatter formats run results as SARIF 2.1.0 JSON.
// Checks map to SARIF rules; unwaived violations map to results with
// file/line locations, unused waivers to warnings.
type SARIFFormatter struct {
	writer io.Writer
}

// NewSARIFFormatter creates a new SARIF formatter.
func NewSARIFFormatter(w io.Writer) *SARIFFormatter {
	return &SARIFFormatter{writer: w}
}

// Format writes the run result as SARIF 2.1.0 JSON.
func (f *SARIFFormatter) Format(result *engine.RunResult) error {
	sarifReport := sarif.NewReport()

	run := sarif.NewRunWithInformationURI("tapecheck", "https://github.com/tapecheck-dev/tapecheck")
	if result.TapecheckVersion != "" {
		run.Tool.Driver.Version = &result.TapecheckVersion
	}

	for _, check := range result.Checks {
		f.addRule(run, check)
		f.addResults(run, check)
	}

	sarifReport.AddRun(run)

	if err := sarifReport.Write(f.writer); err != nil {
		return fmt.Errorf("failed to write SARIF output: %w", err)
	}

	_, err := f.writer.Write([]byte("\n"))
	return err
}

// addRule converts one check into a SARIF rule.
func (f *SARIFFormatter) addRule(run *sarif.Run, check engine.CheckResult) {
	rule := sarif.NewReportingDescriptor().WithID(check.ID)
	rule.WithName(check.Name)

	desc := check.Description
	if desc == "" {
		desc = check.Name
	}
	rule.WithShortDescription(&sarif.MultiformatMessageString{Text: &check.Name})
	rule.WithFullDescription(&sarif.MultiformatMessageString{Text: &desc})

	rule.WithDefaultConfiguration(&sarif.ReportingConfiguration{
		Level: severityToLevel(check.Severity),
	})

	props := sarif.NewPropertyBag()
	if len(check.Tags) > 0 {
		props.WithTags(check.Tags)
	}
	if check.Severity != "" {
		props.Add("severity", check.Severity)
	}
	rule.WithProperties(props)

	run.Tool.Driver.AddRule(rule)
}

// addResults emits one SARIF result per report item that carries signal:
// unwaived violations at the rule's level, unused waivers as warnings,
// waived items as notes.
func (f *SARIFFormatter) addResults(run *sarif.Run, check engine.CheckResult) {
	for _, item := range check.Sections.Error {
		run.AddResult(f.itemResult(check.ID, item, severityToLevel(check.Severity), "fail"))
	}
	for _, item := range check.Sections.Warn {
		run.AddResult(f.itemResult(check.ID, item, "warning", "review"))
	}
	for _, item := range check.Sections.Info {
		if item.Tag == values.TagWaiver || item.Tag == values.TagWaivedAsInfo {
			run.AddResult(f.itemResult(check.ID, item, "note", "pass"))
		}
	}
}

func (f *SARIFFormatter) itemResult(ruleID string, item report.Item, level, kind string) *sarif.Result {
	result := sarif.NewRuleResult(ruleID)
	result.Level = level
	result.Kind = kind
	result.Message = sarif.NewTextMessage(item.Text)

	if item.File != "" {
		pLoc := sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewArtifactLocation().WithURI(item.File))
		if item.Line > 0 {
			pLoc.WithRegion(sarif.NewRegion().WithStartLine(item.Line))
		}
		result.Locations = []*sarif.Location{sarif.NewLocation().WithPhysicalLocation(pLoc)}
	}

	if item.Tag != values.TagNone {
		props := sarif.NewPropertyBag()
		props.Add("tag", item.Tag.String())
		result.WithProperties(props)
	}

	return result
}

// severityToLevel converts check severity to a SARIF level.
func severityToLevel(severity string) string {
	switch severity {
	case "critical", "high":
		return "error"
	default:
		return "warning"
	}
}
