package cli

import (
	"fmt"
	"io"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/hacheck/hacheck/pkg/constants"
	"github.com/hacheck/hacheck/pkg/logger"
	"github.com/hacheck/hacheck/pkg/validator"
	"github.com/spf13/cobra"
)

var schemaLog = logger.New("cli:schema_command")

// NewSchemaCommand creates the schema command
func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the validate --json report",
		Long: `Print the JSON Schema describing the report written by "validate --json".

Deployment tooling can use it to check the report it consumes.

Examples:
  ` + string(constants.CLIName) + ` schema > report.schema.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeReportSchema(cmd.OutOrStdout())
		},
	}
}

// ReportSchema infers the JSON Schema of validator.Report from its Go type.
func ReportSchema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[validator.Report](nil)
	if err != nil {
		return nil, fmt.Errorf("failed to infer report schema: %w", err)
	}
	schema.Title = "hacheck validation report"
	schemaLog.Printf("Inferred report schema with %d properties", len(schema.Properties))
	return schema, nil
}

func writeReportSchema(w io.Writer) error {
	schema, err := ReportSchema()
	if err != nil {
		return err
	}
	return writeJSON(w, schema, stdoutColorize(w))
}
