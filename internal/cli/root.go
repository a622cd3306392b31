// Package cli wires the cobra command tree for the hrfco-mcp binary.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hydroseo/hrfco-mcp/internal/logging"
)

var (
	cfgFile  string
	logLevel string

	// built by PersistentPreRunE
	log *logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hrfco-mcp",
		Short: "Korean hydrological data tool server",
		Long:  "hrfco-mcp serves Korean water-level, rainfall, dam, and weir observations from the HRFCO open API as MCP tools over stdio, or as an HTTP gateway.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logLevel
			if level == "" {
				level = os.Getenv("LOG_LEVEL")
			}
			if level == "" {
				level = "info"
			}
			// stdout carries the JSON-RPC stream; logs go to stderr only
			log = logging.New(nil, level)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newGatewayCmd())
	cmd.AddCommand(newStationsCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
