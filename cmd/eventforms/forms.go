package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	eventforms "github.com/goliatone/go-eventforms"
	"github.com/goliatone/go-eventforms/pkg/navigation"
	"github.com/goliatone/go-eventforms/pkg/notify"
	"github.com/goliatone/go-eventforms/pkg/pages"
	"github.com/goliatone/go-eventforms/pkg/pipeline"
	"github.com/goliatone/go-eventforms/pkg/renderers/tui"
)

var (
	maxRounds  int
	formFields []string
)

// newPromptDriver is swapped out by tests.
var newPromptDriver = func(out io.Writer) tui.PromptDriver {
	return tui.NewSurveyDriver(out)
}

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book a ticket for an event",
	Long: `Prompt for ticket type, quantity and card details, then charge the
simulated payment gateway. Invalid fields are asked again until they pass.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runForm(cmd, pages.BookingFormID)
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new event",
	Long: `Prompt for the event name, date, location and description, then record
the event. The date must not be in the past.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runForm(cmd, pages.CreationFormID)
	},
}

func init() {
	rootCmd.AddCommand(bookCmd, createCmd)
	for _, c := range []*cobra.Command{bookCmd, createCmd} {
		c.Flags().IntVar(&maxRounds, "max-rounds", 0, "give up after this many correction rounds (0 = unlimited)")
		c.Flags().StringSliceVar(&formFields, "fields", nil, "ask only these fields first, in this order")
	}
}

func runForm(cmd *cobra.Command, formID string) error {
	out := cmd.OutOrStdout()
	log := app.logger.With().Str("form", formID).Logger()

	router := navigation.NewRouter(
		navigation.WithLogger(log),
		navigation.WithRoute(navigation.RouteEvents, func(_ context.Context, route string) error {
			fmt.Fprintf(out, "→ %s\n", route)
			return nil
		}),
	)
	pipelineOpts := []pipeline.Option{
		pipeline.WithNotifier(notify.Multi{notify.NewWriter(out), notify.Log{Logger: log}}),
		pipeline.WithNavigator(router),
	}
	if app.metrics != nil {
		pipelineOpts = append(pipelineOpts, pipeline.WithMetrics(app.metrics))
	}

	form, err := eventforms.Mount(formID,
		pages.WithLogger(log),
		pages.WithPaymentDelay(app.cfg.PaymentDelay()),
		pages.WithBookingFailureMessage(app.cfg.Payment.FailureMessage),
		pages.WithPipelineOptions(pipelineOpts...),
	)
	if err != nil {
		return err
	}
	defer form.Close()

	session := tui.New(
		tui.WithPromptDriver(newPromptDriver(out)),
		tui.WithMaxRounds(maxRounds),
		tui.WithFields(formFields...),
	)
	res, err := session.Run(cmd.Context(), form)
	switch {
	case errors.Is(err, tui.ErrAborted):
		fmt.Fprintln(out, "Cancelled.")
		return nil
	case err != nil:
		return err
	}
	log.Debug().Str("submission", res.ID).Stringer("status", res.Status).Msg("form finished")

	if res.Status == pipeline.StatusActionFailed {
		return fmt.Errorf("%s: %w", res.Message, res.Err)
	}
	return writeMetrics(out)
}

// writeMetrics dumps the collected series in the text exposition format when
// metrics are enabled.
func writeMetrics(out io.Writer) error {
	if app.registry == nil {
		return nil
	}
	families, err := app.registry.Gather()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	fmt.Fprintln(out)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}
	return nil
}
