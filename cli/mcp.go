package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/jongio/weburl/logutil"
	"github.com/jongio/weburl/mcptool"
	"github.com/jongio/weburl/metrics"
	"github.com/jongio/weburl/version"
	"github.com/jongio/weburl/weburl"
)

func newMCPCommand(opts *rootOptions) *cobra.Command {
	var (
		metricsPort int
		burst       int
		refillRate  float64
	)
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the parser as MCP tools over stdio",
		Long: `Starts a Model Context Protocol server on stdin/stdout exposing the
parse_url, resolve_url and with_scheme tools.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logutil.NewLogger("cli").WithOperation("mcp")

			var observer weburl.Observer
			if metricsPort > 0 {
				recorder := metrics.NewRecorder()
				observer = recorder
				srv := metrics.CreateMetricsServer(metricsPort, recorder)
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						log.Error("metrics server failed", "error", err)
					}
				}()
				defer func() {
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(ctx)
				}()
				log.Info("serving metrics", "addr", srv.Addr)
			}

			settings, err := opts.settings(observer)
			if err != nil {
				return err
			}
			srv := mcptool.NewServer(mcptool.Options{
				Settings:   settings,
				Version:    version.New("weburl").Version,
				Burst:      burst,
				RefillRate: refillRate,
			})
			return srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&metricsPort, "metrics-port", 0, "Expose Prometheus metrics on this port (0 disables)")
	cmd.Flags().IntVar(&burst, "burst", mcptool.DefaultBurst, "Tool calls allowed in a burst")
	cmd.Flags().Float64Var(&refillRate, "rate", mcptool.DefaultRefillRate, "Sustained tool calls per second")
	return cmd
}
