package validator

import "fmt"

// checkUngroupedHelpers warns once per helper definition without a category.
func checkUngroupedHelpers(idx *referenceIndex) []Finding {
	var findings []Finding
	for _, h := range idx.snap.Helpers {
		if h.Category != "" {
			continue
		}
		findings = append(findings, newFinding(SeverityWarning, CheckUngroupedHelpers, KindUngroupedHelper, h.Location,
			fmt.Sprintf("helper %s has no category", h.EntityID())))
	}
	sortFindings(findings)
	return findings
}
