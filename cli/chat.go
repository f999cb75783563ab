package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/francis-ohara/model-garden-agent/engine/agent"
	"github.com/francis-ohara/model-garden-agent/engine/llm"
	"github.com/francis-ohara/model-garden-agent/engine/tool"
	"github.com/francis-ohara/model-garden-agent/engine/vertex"
)

// ChatCmd returns the interactive chat command.
func ChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the Model Garden assistant",
		Long: "Start an interactive conversation with the Model Garden assistant. The " +
			"assistant can search deployable models, recommend deployment configurations, " +
			"deploy models to endpoints, run inference, and manage endpoints.",
		RunE: handleChatCmd,
	}
}

func handleChatCmd(cmd *cobra.Command, _ []string) error {
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

	registry := tool.NewRegistry()
	if err := tool.RegisterDefaults(ctx, registry, garden); err != nil {
		return err
	}
	defer registry.Close()

	assistant := agent.Assistant(cfg.Agent.Model, cfg.Agent.MaxIterations)
	svc, err := llm.NewService(ctx, cfg, assistant, registry)
	if err != nil {
		return err
	}
	defer svc.Close()

	return runChatLoop(ctx, svc)
}

func runChatLoop(ctx context.Context, svc *llm.Service) error {
	session := svc.NewSession()
	fmt.Println(promptStyle.Render("Model Garden Assistant"))
	fmt.Println(detailStyle.Render(`Ask about discovering, deploying, and running models. Type "exit" to quit.`))
	fmt.Println()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	for {
		fmt.Print(promptStyle.Render("you> "))
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			input := strings.TrimSpace(line)
			if input == "" {
				continue
			}
			if input == "exit" || input == "quit" {
				return nil
			}
			answer, err := svc.Send(ctx, session, input)
			if err != nil {
				if ctx.Err() != nil {
					fmt.Println()
					return nil
				}
				OutputError(err)
				continue
			}
			fmt.Println(promptStyle.Render("assistant> ") + answer)
			fmt.Println()
		}
	}
}
