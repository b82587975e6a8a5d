package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cli/go-gh/v2/pkg/jsonpretty"
	"github.com/hacheck/hacheck/pkg/console"
	"github.com/hacheck/hacheck/pkg/corpus"
	"github.com/hacheck/hacheck/pkg/logger"
	"github.com/hacheck/hacheck/pkg/tty"
	"github.com/hacheck/hacheck/pkg/validator"
)

var validationOutputLog = logger.New("cli:validation_output")

// checkTitles are the section headings of the text report.
var checkTitles = map[string]string{
	validator.CheckScriptReferences:  "Script references",
	validator.CheckHelperReferences:  "Helper references",
	validator.CheckDashboardEntities: "Dashboard entities",
	validator.CheckUngroupedHelpers:  "Ungrouped helpers",
}

// FormatValidationError formats an error for console output. Corpus loading
// errors list every unreadable document on its own line.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	docs := corpus.UnreadableDocuments(err)
	if len(docs) == 0 {
		return console.FormatErrorMessage(err.Error())
	}

	var details strings.Builder
	for _, doc := range docs {
		details.WriteString(doc.Error())
		details.WriteString("\n")
	}
	header := "corpus unreadable"
	if len(docs) > 1 {
		header = fmt.Sprintf("corpus unreadable: %d documents could not be loaded", len(docs))
	}
	return console.FormatErrorWithDetails(header, details.String())
}

// PrintValidationError prints an error to stderr with console formatting.
func PrintValidationError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, FormatValidationError(err))
}

// renderTextReport writes report as one table per check with findings,
// followed by a verdict line.
func renderTextReport(w io.Writer, report *validator.Report) {
	validationOutputLog.Printf("Rendering text report for %s: findings=%d", report.Root, len(report.Findings))

	fmt.Fprintln(w, console.FormatInfoMessage("Corpus "+report.Root))
	for _, check := range validator.CheckNames() {
		findings := report.ByCheck(check)
		if len(findings) == 0 {
			continue
		}

		config := console.TableConfig{
			Title:   fmt.Sprintf("%s (%s)", checkTitles[check], pluralize(len(findings), string(findings[0].Severity))),
			Headers: []string{"Location", "Severity", "Message"},
		}
		for _, f := range findings {
			location := "-"
			if f.Location != nil {
				location = console.FormatLocation(f.Location.String())
			}
			config.Rows = append(config.Rows, []string{location, string(f.Severity), f.Message})
		}
		fmt.Fprintln(w)
		fmt.Fprint(w, console.RenderTable(config))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, verdictLine(report))
}

// verdictLine summarises the report in one styled line.
func verdictLine(report *validator.Report) string {
	counts := fmt.Sprintf("%s, %s", pluralize(report.ErrorCount, "error"), pluralize(report.WarningCount, "warning"))
	switch {
	case !report.Safe:
		return console.FormatErrorMessage("Unsafe to deploy: " + counts)
	case report.WarningCount > 0:
		return console.FormatWarningMessage("Safe to deploy: " + counts)
	default:
		return console.FormatSuccessMessage("Safe to deploy: " + counts)
	}
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// writeJSON encodes v as indented JSON. On a terminal the output is
// colourised with jsonpretty.
func writeJSON(w io.Writer, v any, colorize bool) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}

	if colorize {
		return jsonpretty.Format(w, &buf, "  ", true)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// stdoutColorize reports whether JSON written to stdout should be colourised.
func stdoutColorize(w io.Writer) bool {
	return w == io.Writer(os.Stdout) && tty.IsStdoutTerminal() && !console.IsAccessibleMode()
}

// renderStats writes the snapshot summary shown with --verbose.
func renderStats(w io.Writer, snap *corpus.Snapshot) {
	fmt.Fprint(w, console.RenderStruct(snap.Stats()))
	for _, file := range snap.Files {
		fmt.Fprintln(w, console.FormatVerboseMessage(file))
	}
}
