package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/searxng-mcp/internal/mcp"
	"github.com/Laisky/searxng-mcp/internal/research"
	"github.com/Laisky/searxng-mcp/library/config"
	"github.com/Laisky/searxng-mcp/library/log"
	"github.com/Laisky/searxng-mcp/library/search/searxng"
)

const (
	transportStdio = "stdio"
	transportHTTP  = "http"
)

var serveCMD = &cobra.Command{
	Use:   "serve",
	Short: "serve MCP over stdio or streamable HTTP",
	Args:  gcmd.NoExtraArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize(cmd.Context(), cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
	SilenceUsage: true,
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("transport", transportStdio, "`stdio/http`")
	cmd.Flags().String("listen", "localhost:8080", "http listen address, like `localhost:8080`")
}

// newSearchStack builds the SearXNG client and the research engine on top of it.
func newSearchStack(settings config.Settings) (*searxng.Client, *research.Engine, error) {
	client, err := searxng.NewClient(settings.Searxng.URL,
		searxng.WithLogger(log.Logger.Named("searxng")),
		searxng.WithTimeout(settings.Searxng.Timeout),
		searxng.WithLanguage(settings.Searxng.Language),
		searxng.WithRateLimit(settings.Searxng.RateLimit, settings.Searxng.RateBurst),
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "new searxng client")
	}

	engine, err := research.NewEngine(client, log.Logger,
		research.WithStrategyTimeout(settings.Searxng.Timeout),
		research.WithSearchLanguage(settings.Searxng.Language),
		research.WithFanoutTimeout(settings.Research.FanoutTimeout),
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "new research engine")
	}

	return client, engine, nil
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings := config.LoadSettings()
	client, engine, err := newSearchStack(settings)
	if err != nil {
		return errors.WithStack(err)
	}

	server, err := mcp.NewServer(client, engine, mcp.LoadToolsSettingsFromConfig(), log.Logger)
	if err != nil {
		return errors.Wrap(err, "new mcp server")
	}

	log.Logger.Info("searxng mcp server starting",
		zap.String("searxng", client.Endpoint()),
		zap.Duration("timeout", settings.Searxng.Timeout),
		zap.String("language", settings.Searxng.Language),
	)

	transport := strings.ToLower(strings.TrimSpace(gconfig.Shared.GetString("transport")))
	switch transport {
	case "", transportStdio:
		return errors.WithStack(server.ServeStdio(ctx))
	case transportHTTP:
		addr := gconfig.Shared.GetString("listen")
		return errors.WithStack(server.RunHTTP(ctx, addr, gconfig.Shared.GetBool("debug")))
	default:
		return errors.Errorf("unknown transport %q, want %s or %s", transport, transportStdio, transportHTTP)
	}
}

func init() {
	addServeFlags(serveCMD)
	rootCMD.AddCommand(serveCMD)
}
