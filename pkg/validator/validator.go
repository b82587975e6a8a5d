package validator

import (
	"time"

	"github.com/hacheck/hacheck/pkg/corpus"
	"github.com/hacheck/hacheck/pkg/logger"
	"github.com/hacheck/hacheck/pkg/timeutil"
)

var validatorLog = logger.New("validator:validator")

type check struct {
	name string
	run  func(*referenceIndex) []Finding
}

// checks in execution order.
var checks = []check{
	{name: CheckScriptReferences, run: checkScriptReferences},
	{name: CheckHelperReferences, run: checkHelperReferences},
	{name: CheckDashboardEntities, run: checkDashboardEntities},
	{name: CheckUngroupedHelpers, run: checkUngroupedHelpers},
}

// CheckNames lists the checks in the order they run.
func CheckNames() []string {
	names := make([]string, 0, len(checks))
	for _, c := range checks {
		names = append(names, c.name)
	}
	return names
}

// Validate runs every check over snap. It never modifies snap and always runs
// all checks, so the report carries every finding at once.
func Validate(snap *corpus.Snapshot) *Report {
	start := time.Now()
	idx := newReferenceIndex(snap)

	report := &Report{Root: snap.Root, Safe: true, Findings: []Finding{}}
	for _, c := range checks {
		findings := c.run(idx)
		validatorLog.Printf("Check %s produced %d findings", c.name, len(findings))
		report.add(findings)
	}

	validatorLog.Printf("Validation finished in %s: errors=%d, warnings=%d, safe=%v",
		timeutil.FormatDuration(time.Since(start)), report.ErrorCount, report.WarningCount, report.Safe)
	return report
}
