// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc2md/internal/secrets"
	"github.com/pdiddy/doc2md/internal/server"
	"github.com/pdiddy/doc2md/internal/status"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP conversion service",
	Long: `Serve accepts document uploads over HTTP, converts them, and keeps the
results for download until the retention window passes.

Routes: POST /convert/, GET /status/{id}, GET /download/{id},
GET /supported-formats, GET /health. When the secrets directory holds an
api-token file, every route but /health requires it as a bearer token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sc := cfg.Serve
		store, err := status.Open(sc.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		token, err := secrets.APIToken(sc.SecretsDir, logger)
		if err != nil {
			return err
		}
		if token != "" {
			logger.Info().Msg("bearer authentication enabled")
		}

		srv, err := server.New(newConverter(cfg, logger), store, server.Config{
			UploadDir:     sc.UploadDir,
			ConvertedDir:  sc.ConvertedDir,
			Retention:     sc.Retention,
			SweepInterval: sc.SweepInterval,
			Token:         token,
		}, logger)
		if err != nil {
			return err
		}
		return srv.ListenAndServe(ctx, sc.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8000)")
	viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
