package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/francis-ohara/model-garden-agent/pkg/config"
	"github.com/francis-ohara/model-garden-agent/pkg/logger"
)

// bootstrap performs the shared command setup: environment file, logging,
// and configuration (defaults, then environment, then flag overrides). The
// returned context carries the config manager.
func bootstrap(cmd *cobra.Command, overrides map[string]any) (context.Context, *config.Config, error) {
	if err := loadEnvFile(cmd); err != nil {
		return nil, nil, err
	}
	logLevel, logJSON, logSource, err := logger.GetLoggerConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger.SetupLogger(logLevel, logJSON, logSource)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	manager := config.NewManager(config.NewService())
	cfg, err := manager.Load(ctx,
		config.NewDefaultProvider(),
		config.NewEnvProvider(),
		config.NewCLIProvider(overrides),
	)
	if err != nil {
		return nil, nil, err
	}
	return config.ContextWithManager(ctx, manager), cfg, nil
}

// loadEnvFile loads environment variables from a file with security validation.
func loadEnvFile(cmd *cobra.Command) error {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return fmt.Errorf("failed to get env-file flag: %w", err)
	}
	if envFile == "" {
		return nil
	}
	pwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current working directory: %w", err)
	}
	if !filepath.IsAbs(envFile) {
		envFile = filepath.Join(pwd, envFile)
	}
	absPath, err := filepath.Abs(filepath.Clean(envFile))
	if err != nil {
		return fmt.Errorf("failed to resolve env file path: %w", err)
	}
	if !isPathWithinDirectory(absPath, pwd) {
		return fmt.Errorf("env file path '%s' is outside the project directory", envFile)
	}
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Missing env files are fine; the environment may be set directly.
			return nil
		}
		return fmt.Errorf("failed to stat env file: %w", err)
	}
	if !fileInfo.Mode().IsRegular() {
		return fmt.Errorf("env file path '%s' is not a regular file", envFile)
	}
	if err := godotenv.Load(absPath); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", absPath, err)
	}
	return nil
}

// isPathWithinDirectory checks if a given path is within the specified directory.
func isPathWithinDirectory(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
