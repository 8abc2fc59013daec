package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"kanban-board-api/internal/config"
	"kanban-board-api/internal/database"
)

// flag names
const (
	flagConfig = "config"
	flagRetain = "retain"
	flagDryRun = "dry-run"
)

const defaultConfigPath = "configs/config.yaml"

// env is the configuration and opened backend shared by one command run
type env struct {
	cfg     *config.Config
	backend *database.Backend
	logger  *zap.Logger
}

func (e *env) close() {
	if err := e.backend.Close(); err != nil {
		e.logger.Warn("Failed to close storage backend", zap.Error(err))
	}
	_ = e.logger.Sync()
}

// NewRootCmd builds the kanban command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kanban",
		Short: "Kanban CLI - maintenance commands for the board store",
		Long: `Kanban CLI works directly on the storage backend named in the configuration.
Stop the API server before running commands that write, such as "storage normalize".`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP(flagConfig, "c", defaultConfigPath, "Path to the configuration file")

	rootCmd.AddCommand(newProjectsCmd())
	rootCmd.AddCommand(newStorageCmd())
	rootCmd.AddCommand(newBackupCmd())

	return rootCmd
}

// openEnv loads the configuration named by --config and opens its backend
func openEnv(cmd *cobra.Command) (*env, error) {
	path, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("error getting config flag: %w", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	backend, err := database.OpenBackend(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, backend: backend, logger: logger}, nil
}

// newLogger logs to stderr so command output on stdout stays parseable
func newLogger(level string) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		zapLevel = zapcore.WarnLevel
	}
	// Info is the API default; the CLI only surfaces warnings unless asked for debug.
	if zapLevel == zapcore.InfoLevel {
		zapLevel = zapcore.WarnLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// printJSON pretty prints v to the command's output
func printJSON(cmd *cobra.Command, v interface{}) error {
	prettyJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(prettyJSON))
	return nil
}
