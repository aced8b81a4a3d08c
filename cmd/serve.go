package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"silvo/config"
	"silvo/storage"
	"silvo/web"

	"github.com/spf13/cobra"
)

var (
	serveListen string
	serveDBPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web console for patrimony maintenance and bulk imports",
	Long: `Start a local HTTP server exposing the patrimony catalog API.

The console lists, edits, and deletes hierarchy units, and accepts CSV/Excel
uploads on POST /api/import with the same per-row semantics as the import
command.`,
	Example: `
  # Start local server on the configured listen address
  silvo serve

  # Start with explicit listen address and database
  silvo serve --listen 127.0.0.1:9090 --db ./silvo.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		listen := serveListen
		if listen == "" {
			listen = cfg.Server.Listen
		}
		dbPath := serveDBPath
		if dbPath == "" {
			dbPath = cfg.Database.Path
		}

		store, err := storage.OpenSQLite(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		server := &http.Server{
			Addr:    listen,
			Handler: web.NewServer(store, *cfg),
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		fmt.Printf("Listening on http://%s\n", listen)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address override (default from configuration)")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "", "Path to local SQLite database (default from configuration)")
}
