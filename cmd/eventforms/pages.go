package main

import (
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-eventforms/pkg/navigation"
	"github.com/goliatone/go-eventforms/pkg/pages"
	"github.com/goliatone/go-eventforms/pkg/render"
	"github.com/goliatone/go-eventforms/pkg/render/html"
	"github.com/goliatone/go-eventforms/pkg/render/text"
)

var (
	renderFormat string
	renderOutput string
	templateDir  string
)

var welcomeCmd = &cobra.Command{
	Use:   "welcome",
	Short: "Show the welcome page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := text.New().Render(cmd.Context(), pages.Welcome(), render.RenderOptions{})
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var renderCmd = &cobra.Command{
	Use:   "render [route|form-id]",
	Short: "Render a page as HTML or text",
	Long: `Render one page with empty form state.

Examples:
  eventforms render /events/book
  eventforms render create-event --format text
  eventforms render / --output index.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the known pages",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, p := range pages.All() {
			form := "-"
			if !p.Static() {
				form = p.Schema.ID
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-12s %s\n", p.Route, form, p.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(welcomeCmd, renderCmd, pagesCmd)

	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", html.Name, "output format: html or text")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (stdout if empty)")
	renderCmd.Flags().StringVar(&templateDir, "templates", "", "directory with template overrides")
}

func runRender(cmd *cobra.Command, args []string) error {
	key := navigation.RouteWelcome
	if len(args) == 1 {
		key = args[0]
	}
	page, ok := pages.Lookup(key)
	if !ok {
		return fmt.Errorf("unknown page %q (see 'eventforms pages')", key)
	}

	registry, err := renderers()
	if err != nil {
		return err
	}
	renderer, err := registry.Get(strings.ToLower(renderFormat))
	if err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(registry.Names(), ", "))
	}

	out, err := renderer.Render(cmd.Context(), page, render.RenderOptions{})
	if err != nil {
		return err
	}
	if renderOutput == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(renderOutput, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	app.logger.Info().Str("page", page.Route).Str("path", renderOutput).Msg("page written")
	return nil
}

func renderers() (*render.Registry, error) {
	htmlOpts := []html.Option{
		html.WithTheme(&theme.RendererConfig{
			Theme:   app.cfg.Render.Theme,
			Variant: app.cfg.Render.Variant,
		}),
	}
	if templateDir != "" {
		htmlOpts = append(htmlOpts, html.WithTemplateDir(templateDir))
	}
	htmlRenderer, err := html.New(htmlOpts...)
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(htmlRenderer, text.New())
}
