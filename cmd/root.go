package cmd

import (
	"context"
	"os"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/searxng-mcp/library/config"
	"github.com/Laisky/searxng-mcp/library/log"
)

var rootCMD = &cobra.Command{
	Use:   "searxng-mcp",
	Short: "searxng-mcp",
	Long: `MCP server exposing SearXNG web, news, media search and
multi-strategy research. Without a subcommand it serves MCP over stdio.`,
	Args: gcmd.NoExtraArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize(cmd.Context(), cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
	SilenceUsage: true,
}

func initialize(ctx context.Context, cmd *cobra.Command) error {
	if err := gconfig.Shared.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind pflags")
	}

	if err := setupSettings(ctx); err != nil {
		return errors.WithStack(err)
	}
	if err := setupLogger(ctx, cmd); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func setupSettings(_ context.Context) error {
	cfgPath := config.ResolvePath(gconfig.Shared.GetString("config"))
	if _, err := config.LoadFromFile(cfgPath); err != nil {
		return errors.WithStack(err)
	}

	if err := validateStartupConfig(); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func setupLogger(_ context.Context, cmd *cobra.Command) error {
	settings := config.LoadSettings()

	lvl := settings.Logging.Level
	if cmd.Flags().Changed("log-level") {
		lvl = gconfig.Shared.GetString("log-level")
	}
	if gconfig.Shared.GetBool("debug") {
		lvl = "debug"
	}

	if err := log.Setup(lvl, settings.Logging.File); err != nil {
		return errors.Wrap(err, "setup logger")
	}

	log.Logger.Info("logger ready",
		zap.String("level", lvl),
		zap.Bool("debug", gconfig.Shared.GetBool("debug")),
	)
	return nil
}

func init() {
	rootCMD.PersistentFlags().Bool("debug", false, "run in debug mode")
	rootCMD.PersistentFlags().StringP("config", "c", "",
		"config file path, falls back to $"+config.EnvConfigPath+" then "+config.DefaultConfigPath)
	rootCMD.PersistentFlags().String("log-level", config.DefaultLoggingLevel, "`debug/info/warn/error`")
	addServeFlags(rootCMD)
}

// Execute execute root command
func Execute() {
	if err := rootCMD.Execute(); err != nil {
		log.Logger.Error("exit", zap.Error(err))
		os.Exit(1)
	}
}
