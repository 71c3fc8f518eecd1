/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/humaidq/clinitrend/analysis"
	"github.com/humaidq/clinitrend/client"
	"github.com/humaidq/clinitrend/db"
	"github.com/humaidq/clinitrend/form"
	"github.com/humaidq/clinitrend/logging"
	"github.com/humaidq/clinitrend/routes"
	"github.com/humaidq/clinitrend/static"
	"github.com/humaidq/clinitrend/templates"
)

const (
	runtimeEnvVar   = "CLINITREND_ENV"
	formIdleTimeout = time.Hour
	shutdownTimeout = 10 * time.Second
)

var CmdStart = &cli.Command{
	Name:    "start",
	Aliases: []string{"run"},
	Usage:   "Start the web server",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Value:   "8080",
			Sources: cli.EnvVars("PORT"),
			Usage:   "the web server port",
		},
		&cli.StringFlag{
			Name:    "database-url",
			Sources: cli.EnvVars("DATABASE_URL"),
			Usage:   "PostgreSQL connection string for analysis history (history is disabled when empty)",
		},
		&cli.StringFlag{
			Name:    "analysis-url",
			Sources: cli.EnvVars("ANALYSIS_URL"),
			Usage:   "base URL of the analysis endpoint used by the report form (defaults to this server)",
		},
		&cli.StringFlag{
			Name:    "csrf-secret",
			Sources: cli.EnvVars("CSRF_SECRET"),
			Usage:   "secret used to sign CSRF tokens",
		},
		&cli.StringFlag{
			Name:    "env",
			Value:   "development",
			Sources: cli.EnvVars(runtimeEnvVar),
			Usage:   "runtime environment (development or production)",
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Sources: cli.EnvVars("LOG_LEVEL"),
			Usage:   "log level (debug, info, warn, error)",
		},
	},
	Action: start,
}

type webConfig struct {
	AnalysisURL string
	CSRFSecret  string
}

// isProduction parses the runtime environment name.
func isProduction(env string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "", "development", "dev":
		return false, nil
	case "production", "prod":
		return true, nil
	default:
		return false, errInvalidRuntimeEnv
	}
}

// resolveCSRFSecret requires an explicit secret in production and generates
// a throwaway one otherwise.
func resolveCSRFSecret(secret string, production bool) (string, error) {
	if secret != "" {
		return secret, nil
	}

	if production {
		return "", errCSRFSecretRequired
	}

	appLogger.Warn("CSRF_SECRET not set, using a generated secret")

	return uuid.NewString(), nil
}

func start(ctx context.Context, cmd *cli.Command) error {
	if err := logging.SetLevel(cmd.String("log-level")); err != nil {
		return err
	}

	production, err := isProduction(cmd.String("env"))
	if err != nil {
		return err
	}

	secret, err := resolveCSRFSecret(cmd.String("csrf-secret"), production)
	if err != nil {
		return err
	}

	if databaseURL := cmd.String("database-url"); databaseURL != "" {
		if err := os.Setenv("DATABASE_URL", databaseURL); err != nil {
			return fmt.Errorf("failed to set DATABASE_URL: %w", err)
		}

		appLogger.Info("Connecting to database")

		if err := db.Init(ctx); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		appLogger.Info("Syncing database schema")

		if err := db.SyncSchema(ctx); err != nil {
			return fmt.Errorf("failed to sync schema: %w", err)
		}
	} else {
		appLogger.Info("DATABASE_URL not set, analysis history disabled")
	}

	port := cmd.String("port")

	analysisURL := cmd.String("analysis-url")
	if analysisURL == "" {
		analysisURL = "http://127.0.0.1:" + port
	}

	f, err := newWebApp(webConfig{AnalysisURL: analysisURL, CSRFSecret: secret})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", port),
		Handler:      f,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		ErrorLog:     requestStdLogger,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info("Starting web server", "port", port, "analysis_url", analysisURL, "production", production)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web server failed: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down web server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newWebApp wires middleware and routes. The report form talks to the
// analysis endpoint at cfg.AnalysisURL, which is normally this same app.
func newWebApp(cfg webConfig) (*flamego.Flame, error) {
	fs, err := template.EmbedFS(templates.Templates, ".", []string{".html"})
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	registry := form.NewRegistry(client.New(cfg.AnalysisURL), formIdleTimeout, form.WithCharts(true))

	f := flamego.New()
	f.Use(flamego.Recovery())
	f.Use(routes.RequestLogger)
	f.Use(flamego.Static(flamego.StaticOptions{
		FileSystem: http.FS(static.Static),
		Prefix:     "static",
	}))
	f.Use(session.Sessioner())
	f.Use(csrf.Csrfer(csrf.Options{Secret: cfg.CSRFSecret}))
	f.Use(template.Templater(template.Options{
		FileSystem: fs,
	}))
	f.Use(routes.NoCacheHeaders())
	f.Use(routes.SiteTitle())
	f.Use(routes.CSRFInjector())
	f.Use(routes.FlashInjector())
	f.Map(registry)
	f.Map(analysis.NewAnalyzer())

	f.Get("/", routes.ReportForm)
	f.Group("", func() {
		f.Post("/visits", routes.AddVisit)
		f.Post("/visits/{id}/remove", routes.RemoveVisit)
		f.Post("/reset", routes.ResetReport)
		f.Post("/analyze", routes.AnalyzeReports)
		f.Post("/history/{id}/load", routes.LoadRun)
		f.Post("/history/{id}/delete", routes.DeleteRun)
	}, csrf.Validate)

	f.Get("/history", routes.History)
	f.Get("/history/{id}", routes.ViewRun)

	f.Group("/api", func() {
		f.Post("/analyze", routes.AnalyzeAPI)
		f.Options("/analyze", routes.Preflight)
	}, routes.AllowCrossOrigin())

	configureEmptyNotFoundHandler(f)

	return f, nil
}

func configureEmptyNotFoundHandler(f *flamego.Flame) {
	f.NotFound(func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNotFound)
	})
}
