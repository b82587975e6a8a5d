package validator

import (
	"fmt"

	"github.com/hacheck/hacheck/pkg/logger"
)

var scriptReferencesLog = logger.New("validator:script_references")

// checkScriptReferences reports one error per invocation of a script id that
// the scripts document does not define.
func checkScriptReferences(idx *referenceIndex) []Finding {
	var findings []Finding
	for _, inv := range idx.snap.ScriptInvocations {
		if idx.definedScripts[inv.ScriptID] {
			continue
		}
		scriptReferencesLog.Printf("Dangling script reference: %s at %s", inv.ScriptID, inv.Location)

		verb := "referenced"
		if inv.Direct {
			verb = "called"
		}
		findings = append(findings, newFinding(SeverityError, CheckScriptReferences, KindDanglingScriptReference, inv.Location,
			fmt.Sprintf("script.%s is %s but not defined in the scripts document", inv.ScriptID, verb)))
	}
	sortFindings(findings)
	return findings
}
