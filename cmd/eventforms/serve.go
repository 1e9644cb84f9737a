package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-eventforms/pkg/pages"
	"github.com/goliatone/go-eventforms/pkg/pipeline"
	"github.com/goliatone/go-eventforms/pkg/render/html"
	"github.com/goliatone/go-eventforms/pkg/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pages over HTTP",
	Long: `Serve the welcome page and both forms as HTML.

Form posts run the same validation and actions as the terminal commands.
JSON posts (Content-Type: application/json) return the result shapes from
'eventforms schema'. With metrics.enabled, /metrics exposes the counters.

Examples:
  eventforms serve
  eventforms serve --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&templateDir, "templates", "", "directory with template overrides")
}

func runServe(cmd *cobra.Command, args []string) error {
	renderOpts := []html.Option{html.WithTheme(&theme.RendererConfig{
		Theme:   app.cfg.Render.Theme,
		Variant: app.cfg.Render.Variant,
	})}
	if templateDir != "" {
		renderOpts = append(renderOpts, html.WithTemplateDir(templateDir))
	}
	renderer, err := html.New(renderOpts...)
	if err != nil {
		return err
	}

	mountOpts := []pages.Option{
		pages.WithPaymentDelay(app.cfg.PaymentDelay()),
		pages.WithBookingFailureMessage(app.cfg.Payment.FailureMessage),
	}
	handlerOpts := []web.Option{
		web.WithLogger(app.logger),
		web.WithRenderer(renderer),
	}
	if app.metrics != nil {
		mountOpts = append(mountOpts, pages.WithPipelineOptions(pipeline.WithMetrics(app.metrics)))
		handlerOpts = append(handlerOpts, web.WithMetricsHandler(
			promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{EnableOpenMetrics: true}),
		))
	}
	handler, err := web.New(append(handlerOpts, web.WithMountOptions(mountOpts...))...)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              serveAddr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info().Str("addr", serveAddr).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-cmd.Context().Done():
		app.logger.Info().Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
