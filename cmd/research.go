package cmd

import (
	"fmt"
	"strings"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/spf13/cobra"

	"github.com/Laisky/searxng-mcp/internal/mcp/tools"
	"github.com/Laisky/searxng-mcp/internal/research"
	"github.com/Laisky/searxng-mcp/library/config"
)

var researchCMD = &cobra.Command{
	Use:   "research <topic>",
	Short: "run one research pass and print the aggregated sources",
	Args:  cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize(cmd.Context(), cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		depth, err := research.ParseDepth(gconfig.Shared.GetString("depth"))
		if err != nil {
			return errors.WithStack(err)
		}

		_, engine, err := newSearchStack(config.LoadSettings())
		if err != nil {
			return errors.WithStack(err)
		}

		result, err := engine.Research(cmd.Context(), strings.Join(args, " "), depth)
		if err != nil {
			return errors.Wrap(err, "research")
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), tools.RenderResearch(result))
		return errors.WithStack(err)
	},
	SilenceUsage: true,
}

func init() {
	researchCMD.Flags().String("depth", string(research.DefaultDepth), "`quick/standard/deep`")
	rootCMD.AddCommand(researchCMD)
}
