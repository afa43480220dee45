package cmd

import (
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/joescharf/changeflow/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP stdio server for Claude Code integration",
	Long: `Start an MCP (Model Context Protocol) server on stdio.

This lets an MCP client such as Claude Code classify changes, score risk,
and look up approval workflows natively. Configure it with:

  {
    "mcpServers": {
      "changeflow": { "command": "changeflow", "args": ["mcp"] }
    }
  }

Available tools: change_classify, change_assess_risk, change_approval_path,
change_recommend, change_list_workflows`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), shutdownSignals()...)
		defer stop()

		logger.Debug("starting MCP stdio server", "version", buildVersion)
		return mcp.NewServer(buildVersion).ServeStdio(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
