package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/francis-ohara/model-garden-agent/engine/tool"
	"github.com/francis-ohara/model-garden-agent/engine/vertex"
)

// ToolsCmd returns the tools command group for inspecting and invoking the
// Model Garden tools without going through the agent.
func ToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect and invoke the Model Garden tools directly",
	}
	cmd.AddCommand(toolsListCmd(), toolsCallCmd())
	return cmd
}

func toolsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available tools",
		RunE:  handleToolsListCmd,
	}
}

func toolsCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <tool-name>",
		Short: "Invoke a single tool and print its result envelope",
		Args:  cobra.ExactArgs(1),
		RunE:  handleToolsCallCmd,
	}
	cmd.Flags().String("args", "{}", "JSON object with the tool arguments")
	return cmd
}

// handleToolsListCmd prints the tool catalog. Definitions never touch the
// Vertex AI client, so no service is constructed.
func handleToolsListCmd(cmd *cobra.Command, _ []string) error {
	for _, t := range tool.Defaults(nil) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n    %s\n", t.Name(), t.Description())
	}
	return nil
}

func handleToolsCallCmd(cmd *cobra.Command, args []string) error {
	input, err := cmd.Flags().GetString("args")
	if err != nil {
		return fmt.Errorf("failed to get args flag: %w", err)
	}
	ctx, cfg, err := bootstrap(cmd, nil)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	garden, err := vertex.NewService(ctx, cfg.Google.Project, cfg.Google.Location)
	if err != nil {
		return err
	}
	defer garden.Close()

	name := args[0]
	for _, t := range tool.Defaults(garden) {
		if t.Name() != name {
			continue
		}
		out, err := t.Call(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
	return fmt.Errorf("unknown tool %q", name)
}
