package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "model-garden-agent",
		Short: "Conversational agent for Vertex AI Model Garden",
		Long: "model-garden-agent helps you discover, deploy, and manage AI models on " +
			"Vertex AI Model Garden: search deployable models, fetch recommended deployment " +
			"configurations, deploy to endpoints, run inference, and clean up endpoints, " +
			"through an interactive chat or as an MCP tool server.",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("env-file", ".env", "Path to the environment variables file")
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	root.PersistentFlags().Bool("log-source", false, "Include source file and line in logs")
	root.PersistentFlags().Bool("debug", false, "Enable debug mode (sets log level to debug)")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		debug, err := cmd.Flags().GetBool("debug")
		if err != nil {
			return fmt.Errorf("failed to get debug flag: %w", err)
		}
		if debug {
			return cmd.Flags().Set("log-level", "debug")
		}
		return nil
	}

	root.AddCommand(
		ChatCmd(),
		MCPCmd(),
		ToolsCmd(),
		VersionCmd(),
	)
	return root
}
