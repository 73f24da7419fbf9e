package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sagarc03/weft"
	"github.com/sagarc03/weft/config"
	"github.com/sagarc03/weft/fileapp"
	"github.com/sagarc03/weft/wefthttp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the document root over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 5709, "HTTP server port")
	serveCmd.Flags().Bool("debug", false, "include failure detail in 500 bodies")

	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.debug", serveCmd.Flags().Lookup("debug"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFiles(cmd), cmd.Flags())
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.Files.Root); err != nil {
		return fmt.Errorf("document root %s: %w", cfg.Files.Root, err)
	}

	app := buildApp(cfg)

	r := chi.NewRouter()
	if cfg.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   cfg.CORS.AllowedMethods,
			AllowedHeaders:   cfg.CORS.AllowedHeaders,
			ExposedHeaders:   cfg.CORS.ExposedHeaders,
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           cfg.CORS.MaxAge,
		}))
	}
	r.Handle("/*", wefthttp.Handler(app))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
	}()

	slog.Info("starting server", "addr", addr, "root", cfg.Files.Root)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// buildApp composes the serving pipeline: logging and timing outermost,
// failure translation inside them, the file tree at the bottom.
func buildApp(cfg *config.Config) weft.App {
	tree := fileapp.FileTree(cfg.Files.Root, &fileapp.TreeOptions{
		ContentType:      cfg.Files.ContentType,
		RedirectSymlinks: cfg.Files.RedirectSymlinks,
		Permanent:        cfg.Files.Permanent,
		Types:            fileapp.NewTypeResolver(cfg.Files.Types),
	})

	debug := cfg.Server.Debug
	return weft.Decorators([]weft.Decorator{
		func(a weft.App) weft.App { return weft.Log(a, nil) },
		weft.Time,
		weft.Date,
		func(a weft.App) weft.App { return weft.Error(a, debug) },
	}, tree)
}

func configFiles(cmd *cobra.Command) []string {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		return nil
	}
	return []string{configFile}
}
