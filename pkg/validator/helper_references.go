package validator

import (
	"fmt"
	"strings"

	"github.com/hacheck/hacheck/pkg/logger"
)

var helperReferencesLog = logger.New("validator:helper_references")

// checkHelperReferences reports one error per helper reference that is not a
// live entity id in the registry. The helper documents are not consulted: a
// renamed helper is only reachable under the id the registry holds now.
//
// A reference that uses a helper's pre-rename id, or the right object id under
// the wrong helper domain, is still an error; the message names the live id.
func checkHelperReferences(idx *referenceIndex) []Finding {
	var findings []Finding
	for _, ref := range idx.snap.HelperReferences {
		if idx.liveEntities[ref.EntityID] {
			continue
		}
		helperReferencesLog.Printf("Dangling helper reference: %s at %s", ref.EntityID, ref.Location)

		msg := fmt.Sprintf("%s is not in the entity registry", ref.EntityID)
		if live, ok := idx.renamedHelpers[ref.EntityID]; ok {
			msg += fmt.Sprintf("; it was renamed to %s", live)
		} else if others := idx.otherDomainMatches(ref.Domain, ref.ObjectID); len(others) > 0 {
			msg += fmt.Sprintf("; did you mean %s?", strings.Join(others, " or "))
		}
		findings = append(findings, newFinding(SeverityError, CheckHelperReferences, KindDanglingHelperReference, ref.Location, msg))
	}
	sortFindings(findings)
	return findings
}
