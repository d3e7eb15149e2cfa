package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/fileandclaim/fcidash/internal/server"

	"github.com/spf13/cobra"
)

var flagServeAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard views as a read-only JSON API",
	Long: "Serve the three views over HTTP. Every request reads the spreadsheets\n" +
		"afresh, so edits show up without a restart.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config, 127.0.0.1:8790)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := cfg.Server.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := server.New(server.Config{
		Sources: sources(),
		Addr:    addr,
		Logger:  baseLog,
	})
	return svc.Run(ctx)
}
