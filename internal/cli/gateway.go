package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hydroseo/hrfco-mcp/internal/gateway"
)

func newGatewayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gateway",
		Short: "Manage the HTTP gateway",
	}
	cmd.AddCommand(newGatewayRunCmd())
	return cmd
}

func newGatewayRunCmd() *cobra.Command {
	var (
		port int
		bind string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the HTTP gateway server",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService(log)
			if err != nil {
				return err
			}
			defer svc.Close()

			if port != 0 {
				svc.cfg.Gateway.Port = port
			}
			if bind != "" {
				svc.cfg.Gateway.Bind = bind
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := gateway.New(svc.cfg.Gateway, svc.registry, log)
			return server.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")
	cmd.Flags().StringVar(&bind, "bind", "", "bind mode: loopback, lan, custom")
	return cmd
}
