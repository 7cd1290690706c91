package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/prodhub/workbench/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP stdio server for agent integration",
	Long: `Start an MCP (Model Context Protocol) server on stdio.

This lets MCP clients query and update workbench natively. Configure
a client with:

  {
    "mcpServers": {
      "workbench": { "command": "workbench", "args": ["mcp"] }
    }
  }

Available tools: workbench_list_tickets, workbench_create_ticket,
workbench_update_ticket, workbench_analyze_ticket,
workbench_list_versions, workbench_roadmap, workbench_dashboard`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcpRun()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func mcpRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}

	srv := mcp.NewServer(s, getAssist())
	return srv.ServeStdio(context.Background())
}
