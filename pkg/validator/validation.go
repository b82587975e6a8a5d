// Package validator runs the reference-integrity checks over a corpus
// snapshot and produces a deterministic Report.
//
// # Checks
//
// The checks run in a fixed order, each in its own file:
//
//   - script_references.go: every invoked script is defined (ERROR)
//   - helper_references.go: every helper reference resolves to a live
//     registry entity id (ERROR)
//   - dashboard_entities.go: every dashboard entity is known to the
//     registry (WARNING)
//   - ungrouped_helpers.go: every helper definition has a category (WARNING)
//
// All checks read the same referenceIndex (index.go), built once per run and
// never modified.
//
// # Verdict
//
// A report is safe to deploy when no check produced an ERROR. Warnings never
// change the verdict.
//
// # Ordering
//
// Findings appear in check order. Within a check they are sorted by file,
// line, column and message, so an unchanged snapshot always yields an
// identical report.
package validator
