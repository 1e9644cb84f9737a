package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	eventforms "github.com/goliatone/go-eventforms"
	"github.com/goliatone/go-eventforms/pkg/openapi"
)

var (
	schemaFormat string
	schemaOutput string
	schemaServer string
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Export the form schemas as an OpenAPI document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := []openapi.Option{openapi.WithInfo("eventforms", version)}
		if schemaServer != "" {
			opts = append(opts, openapi.WithServer(schemaServer))
		}
		out, err := eventforms.ExportOpenAPI(cmd.Context(), schemaFormat, opts...)
		if err != nil {
			return err
		}
		if schemaOutput == "" {
			_, err = cmd.OutOrStdout().Write(out)
			return err
		}
		if err := os.WriteFile(schemaOutput, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		app.logger.Info().Str("path", schemaOutput).Msg("schema written")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVarP(&schemaFormat, "format", "f", "json", "output format: json or yaml")
	schemaCmd.Flags().StringVarP(&schemaOutput, "output", "o", "", "output file (stdout if empty)")
	schemaCmd.Flags().StringVar(&schemaServer, "server", "", "server URL recorded in the document")
}
