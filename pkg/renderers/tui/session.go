// Package tui drives a mounted form from the terminal: it prompts each field
// through survey, feeds the answers into the orchestrator, submits and
// re-prompts only the fields that failed.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-eventforms/pkg/model"
	"github.com/goliatone/go-eventforms/pkg/pipeline"
	"github.com/goliatone/go-eventforms/pkg/render"
	"github.com/goliatone/go-eventforms/pkg/render/text"
)

// Session is a terminal input surface for one form at a time.
type Session struct {
	driver    PromptDriver
	theme     Theme
	maxRounds int
	pageSize  int
	fields    []string
}

// New constructs a session using the survey driver unless overridden.
func New(options ...Option) *Session {
	s := &Session{theme: defaultTheme()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Run fills and submits the form. It returns the terminal result (Success or
// ActionFailed once the user declines to retry) or the first prompt error.
func (s *Session) Run(ctx context.Context, o *pipeline.Orchestrator) (pipeline.Result, error) {
	if o == nil {
		return pipeline.Result{}, errors.New("tui: orchestrator is required")
	}
	schema := o.Schema()
	pending := schema.Names()
	if len(s.fields) > 0 {
		pending = s.fields
	}
	if err := schema.Bind(pending...); err != nil {
		return pipeline.Result{}, fmt.Errorf("tui: %w", err)
	}

	if schema.Title != "" {
		if err := s.driver.Info(ctx, schema.Title); err != nil {
			return pipeline.Result{}, err
		}
	}

	for round := 0; ; round++ {
		if s.maxRounds > 0 && round > s.maxRounds {
			return pipeline.Result{}, ErrTooManyRounds
		}
		for _, name := range pending {
			if err := s.promptField(ctx, o, name); err != nil {
				return pipeline.Result{}, err
			}
		}

		res, err := o.Submit(ctx)
		if err != nil {
			return pipeline.Result{}, err
		}

		switch res.Status {
		case pipeline.StatusValidationFailed:
			for _, fe := range res.Errors {
				if err := s.showError(ctx, schema, fe.Field, fe.Message); err != nil {
					return pipeline.Result{}, err
				}
			}
			pending = res.Errors.Fields()
		case pipeline.StatusActionFailed:
			retry, err := s.driver.Confirm(ctx, ConfirmConfig{Message: s.theme.RetryPrompt, Default: true})
			if err != nil {
				return pipeline.Result{}, err
			}
			if !retry {
				return res, nil
			}
			pending = nil
		default:
			return res, nil
		}
	}
}

func (s *Session) showError(ctx context.Context, schema model.FormSchema, name, msg string) error {
	label := name
	if field, ok := schema.Field(name); ok {
		label = field.DisplayLabel()
	}
	return s.driver.Info(ctx, fmt.Sprintf("%s%s: %s", s.theme.ErrorPrefix, label, msg))
}

// promptField asks for one value. Once a submit has been attempted the handle
// re-validates on set, so the field is asked again until its error clears.
func (s *Session) promptField(ctx context.Context, o *pipeline.Orchestrator, name string) error {
	h, err := o.Handle(name)
	if err != nil {
		return err
	}
	field := h.Field()

	for {
		answer, err := s.ask(ctx, field, h.Get())
		if err != nil {
			return err
		}
		if err := h.Set(answer); err != nil {
			return err
		}
		msg, invalid := h.Error()
		if !invalid {
			return nil
		}
		if err := s.driver.Info(ctx, fmt.Sprintf("%s%s: %s", s.theme.ErrorPrefix, field.DisplayLabel(), msg)); err != nil {
			return err
		}
	}
}

func (s *Session) ask(ctx context.Context, field model.Field, current any) (any, error) {
	label := field.DisplayLabel()
	help := text.Plain(field.Description)
	value := render.FormatValue(current)

	switch render.ControlFor(field) {
	case render.ControlSelect:
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      field.Enum,
			DefaultIndex: indexOf(field.Enum, value),
			Help:         help,
			PageSize:     s.pageSize,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(field.Enum) {
			return "", nil
		}
		return field.Enum[idx], nil
	case render.ControlTextArea:
		return s.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: value, Help: help})
	case render.ControlPassword:
		return s.driver.Password(ctx, InputConfig{Message: label, Help: help, Placeholder: field.Placeholder})
	default:
		if help == "" && field.Placeholder != "" && !strings.EqualFold(field.Placeholder, label) {
			help = field.Placeholder
		}
		return s.driver.Input(ctx, InputConfig{
			Message:     label,
			Default:     value,
			Help:        help,
			Placeholder: field.Placeholder,
		})
	}
}
