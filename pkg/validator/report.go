package validator

import (
	"cmp"
	"slices"

	"github.com/hacheck/hacheck/pkg/parser"
)

// Severity of a finding.
type Severity string

const (
	// SeverityError blocks deployment.
	SeverityError Severity = "error"
	// SeverityWarning is informational.
	SeverityWarning Severity = "warning"
)

// Check names, in execution order.
const (
	CheckScriptReferences  = "script-references"
	CheckHelperReferences  = "helper-references"
	CheckDashboardEntities = "dashboard-entities"
	CheckUngroupedHelpers  = "ungrouped-helpers"
)

// Finding kinds.
const (
	KindDanglingScriptReference = "dangling-script-reference"
	KindDanglingHelperReference = "dangling-helper-reference"
	KindUnknownDashboardEntity  = "unknown-dashboard-entity"
	KindUngroupedHelper         = "ungrouped-helper"
)

// Finding is one problem reported by a check.
type Finding struct {
	Severity Severity         `json:"severity" jsonschema:"error blocks deployment, warning is informational"`
	Check    string           `json:"check" jsonschema:"name of the check that produced the finding"`
	Kind     string           `json:"kind" jsonschema:"machine-readable finding kind"`
	Message  string           `json:"message"`
	Location *parser.Location `json:"location,omitempty" jsonschema:"where the offending reference or definition is"`
}

// Report is the outcome of one validation run.
type Report struct {
	Root         string    `json:"root" jsonschema:"corpus root that was validated"`
	Safe         bool      `json:"safe" jsonschema:"true when no finding has error severity"`
	ErrorCount   int       `json:"error_count"`
	WarningCount int       `json:"warning_count"`
	Findings     []Finding `json:"findings"`
}

// Errors returns the error findings in report order.
func (r *Report) Errors() []Finding {
	return r.filter(func(f Finding) bool { return f.Severity == SeverityError })
}

// Warnings returns the warning findings in report order.
func (r *Report) Warnings() []Finding {
	return r.filter(func(f Finding) bool { return f.Severity == SeverityWarning })
}

// ByCheck returns the findings of one check in report order.
func (r *Report) ByCheck(check string) []Finding {
	return r.filter(func(f Finding) bool { return f.Check == check })
}

func (r *Report) filter(keep func(Finding) bool) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

func (r *Report) add(findings []Finding) {
	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			r.ErrorCount++
		case SeverityWarning:
			r.WarningCount++
		}
	}
	r.Findings = append(r.Findings, findings...)
	r.Safe = r.ErrorCount == 0
}

func newFinding(severity Severity, check, kind string, loc parser.Location, message string) Finding {
	return Finding{
		Severity: severity,
		Check:    check,
		Kind:     kind,
		Message:  message,
		Location: &loc,
	}
}

// sortFindings orders findings by location, then message.
func sortFindings(findings []Finding) {
	slices.SortStableFunc(findings, func(a, b Finding) int {
		if c := compareLocation(a.Location, b.Location); c != 0 {
			return c
		}
		return cmp.Compare(a.Message, b.Message)
	})
}

func compareLocation(a, b *parser.Location) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}
