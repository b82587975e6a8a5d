package validator

import "fmt"

// checkDashboardEntities warns about dashboard entities the registry does not
// know under any domain.
func checkDashboardEntities(idx *referenceIndex) []Finding {
	var findings []Finding
	for _, ref := range idx.snap.DashboardReferences {
		if idx.liveEntities[ref.EntityID] {
			continue
		}
		findings = append(findings, newFinding(SeverityWarning, CheckDashboardEntities, KindUnknownDashboardEntity, ref.Location,
			fmt.Sprintf("dashboard references unknown entity %s", ref.EntityID)))
	}
	sortFindings(findings)
	return findings
}
