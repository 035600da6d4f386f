package cmd

import (
	"github.com/spf13/cobra"

	"github.com/khrees2412/hirematch/internal/httpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search API over HTTP",
	Long: `Serve the search API:

  POST /v1/search          rank candidates (body: filter payload plus jobId, limit, offset, includeInactive)
  GET  /v1/candidates/{id} fetch a candidate
  GET  /v1/jobs/{id}       fetch a saved job
  GET  /healthz            liveness`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		addr := a.Config.ServerAddr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		srv := httpserver.New(a.Search, a.Repo, a.Logger, a.Config.RateLimitPerMin)
		return srv.ListenAndServe(cmd.Context(), addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (default from config)")
}
