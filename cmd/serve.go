package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vnkhanh/survey-insights/analysis"
	"github.com/vnkhanh/survey-insights/config"
	"github.com/vnkhanh/survey-insights/controllers"
	"github.com/vnkhanh/survey-insights/routes"
	"github.com/vnkhanh/survey-insights/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (default 8080, or $PORT)")
	bindFlag(serveCmd.Flags().Lookup("port"), "server.port")
	rootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command, _ []string) error {
	if cfg.Server.JWTSecret == "" {
		return utils.ErrNoSecret
	}
	if err := config.ConnectDB(cfg.Database); err != nil {
		return err
	}
	cats, err := analysis.LoadCategories(cfg.CategoriesFile)
	if err != nil {
		return err
	}
	controllers.Configure(controllers.RunSettings{
		RunsDir:        cfg.Server.RunsDir,
		MaxUploadBytes: cfg.Server.MaxUploadMB << 20,
		LowestCount:    cfg.LowestCount,
		Columns:        cfg.Columns,
		Categories:     cats,
		Publisher:      publisher(),
		Defaults:       &utils.RunOptions{SkipCharts: &cfg.Server.SkipCharts},
	})

	r := gin.Default()
	r.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))
	r.GET("/", func(c *gin.Context) {
		c.String(200, "Survey insights server is running")
	})
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}
	routes.SetupRoutes(r, cfg.Server)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: r}
	errc := make(chan error, 1)
	go func() {
		config.Log.Infow("server listening", "port", cfg.Server.Port)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
	}

	config.Log.Infow("shutting down, waiting for running analyses")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	controllers.WaitForRuns()
	return nil
}

func corsConfig(origins []string) cors.Config {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowed[origin] || allowed["*"]
		},
		AllowMethods:           []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:           []string{"Origin", "Content-Type", "Authorization", "X-Share-Token"},
		ExposeHeaders:          []string{"Content-Length", "Content-Disposition"},
		AllowCredentials:       true,
		MaxAge:                 12 * time.Hour,
		AllowWildcard:          true,
		AllowBrowserExtensions: true,
	}
}
