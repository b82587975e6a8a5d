package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hacheck/hacheck/pkg/constants"
	"github.com/hacheck/hacheck/pkg/corpus"
	"github.com/hacheck/hacheck/pkg/logger"
	"github.com/hacheck/hacheck/pkg/validator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var mcpServerLog = logger.New("cli:mcp_server")

// NewMCPServerCommand creates the mcp-server command
func NewMCPServerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Serve the validate operation over the Model Context Protocol on stdio",
		Long: `Run a Model Context Protocol (MCP) server on stdin/stdout exposing one
tool, "validate", which returns the same JSON report as "validate --json".

Deployment orchestrators call the tool before syncing a configuration and
decide themselves whether to proceed.

Examples:
  ` + string(constants.CLIName) + ` mcp-server`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := NewMCPServer()
			mcpServerLog.Print("Starting MCP server on stdio")
			if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("mcp server failed: %w", err)
			}
			return nil
		},
	}
}

// validateToolArgs are the arguments of the validate tool.
type validateToolArgs struct {
	Root           string   `json:"root" jsonschema:"absolute path of the configuration directory"`
	Automations    string   `json:"automations,omitempty" jsonschema:"automations document relative to root"`
	Scripts        string   `json:"scripts,omitempty" jsonschema:"scripts document relative to root"`
	HelpersDir     string   `json:"helpers_dir,omitempty" jsonschema:"directory of helper registries relative to root"`
	EntityRegistry string   `json:"entity_registry,omitempty" jsonschema:"entity registry document relative to root"`
	Dashboards     []string `json:"dashboards,omitempty" jsonschema:"globs of dashboard documents relative to root"`
}

// NewMCPServer builds the MCP server with its tools registered.
func NewMCPServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    string(constants.CLIName),
		Version: constants.Version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Check a Home Assistant configuration directory for dangling script and helper references, unknown dashboard entities and ungrouped helpers. The report is safe when it has no errors.",
	}, validateTool)

	return server
}

func validateTool(ctx context.Context, req *mcp.CallToolRequest, args validateToolArgs) (*mcp.CallToolResult, validator.Report, error) {
	slog := logger.NewSlogLogger("cli:mcp_server")
	slog.Info("validate tool called", "root", args.Root)

	if !filepath.IsAbs(args.Root) {
		return nil, validator.Report{}, fmt.Errorf("root must be an absolute path, got %q", args.Root)
	}

	cfg, err := resolveCorpusConfig(args.Root, corpus.Config{
		AutomationsFile:    args.Automations,
		ScriptsFile:        args.Scripts,
		HelpersDir:         args.HelpersDir,
		EntityRegistryFile: args.EntityRegistry,
		DashboardGlobs:     args.Dashboards,
	}, "")
	if err != nil {
		return nil, validator.Report{}, err
	}

	result := validateCorpus(args.Root, cfg)
	if result.err != nil {
		slog.Warn("corpus unreadable", "root", args.Root, "error", result.err)
		return nil, validator.Report{}, result.err
	}

	slog.Info("validate tool finished", "safe", result.report.Safe, "errors", result.report.ErrorCount, "warnings", result.report.WarningCount)
	return nil, *result.report, nil
}
