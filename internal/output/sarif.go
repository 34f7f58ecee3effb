package output

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/annolint/annolint/internal/issue"
	"github.com/annolint/annolint/internal/record"
)

// SARIFExporter outputs canonical issues in SARIF v2.1.0 format. Each
// occurrence becomes one result carrying a physical location per annotated
// file; true positives map to "warning" level and false-positive exemplars
// to "note".
type SARIFExporter struct{}

func (s *SARIFExporter) Export(w io.Writer, files []*record.File) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("creating SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("annolint", "https://github.com/annolint/annolint")
	for _, f := range files {
		for _, id := range f.IDs {
			iss := f.Issues[id]
			level := "warning"
			if !iss.ShouldFlag {
				level = "note"
			}
			rule := run.AddRule(id).
				WithDescription(iss.Rationale).
				WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: level})

			for _, occ := range iss.Occurrences {
				message := iss.Rationale
				if occ.Note != "" {
					message = fmt.Sprintf("%s (%s)", iss.Rationale, occ.Note)
				}
				result := sarif.NewRuleResult(rule.ID).
					WithMessage(sarif.NewTextMessage(message)).
					WithLevel(level).
					WithLocations(occurrenceLocations(occ))
				run.AddResult(result)
			}
		}
	}
	report.AddRun(run)

	if err := report.PrettyWrite(w); err != nil {
		return fmt.Errorf("writing SARIF: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}

func occurrenceLocations(occ issue.Occurrence) []*sarif.Location {
	var locations []*sarif.Location
	for _, path := range occ.Files.Paths() {
		ranges := occ.Files[path]
		if ranges == nil {
			// Whole-file reference: no region.
			locations = append(locations, sarif.NewLocation().WithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewArtifactLocation().WithUri(path)),
			))
			continue
		}
		for _, r := range ranges {
			locations = append(locations, sarif.NewLocation().WithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewArtifactLocation().WithUri(path)).
					WithRegion(sarif.NewRegion().WithStartLine(r.StartLine).WithEndLine(r.EndLine)),
			))
		}
	}
	return locations
}
