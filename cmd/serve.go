package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/docchat/docchat/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the answering service",
	Long:  `Starts the docchat answering service: POST /api/chat answers questions with ranked keyword matches from the topic store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, database, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		m, err := createMatcherFromConfig(cfg)
		if err != nil {
			return err
		}

		port := cfg.Server.Port
		if servePort != 0 {
			port = servePort
		}

		srv := server.New(server.Config{
			Port:            port,
			TopK:            cfg.Server.TopK,
			DefaultDocument: cfg.Server.DefaultDocument,
			AllowAll:        cfg.Server.AllowAllOrigins,
		}, store, m)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		docs, err := store.ListDocuments(context.Background())
		if err != nil {
			return fmt.Errorf("listing documents: %w", err)
		}

		fmt.Fprintf(os.Stderr, "docchat server v%s starting on port %d\n", Version, port)
		fmt.Fprintf(os.Stderr, "  Matcher: %s\n", cfg.Matcher.Strategy)
		fmt.Fprintf(os.Stderr, "  Documents: %d\n", len(docs))

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "override the configured port")
	rootCmd.AddCommand(serveCmd)
}
