package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-eventforms/pkg/render"
	"github.com/goliatone/go-eventforms/pkg/render/html"
	"github.com/goliatone/go-eventforms/pkg/renderers/tui"
	"github.com/goliatone/go-eventforms/pkg/testsupport"
)

// execute runs the root command with args and returns what it wrote to
// stdout. Flag variables are restored afterwards.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		cfgFile = ""
		renderFormat = html.Name
		renderOutput = ""
		templateDir = ""
		schemaFormat = "json"
		schemaOutput = ""
		schemaServer = ""
		maxRounds = 0
		formFields = nil
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

type scriptedDriver struct {
	inputs    []string
	passwords []string
	selects   []int
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	return v, nil
}

func (d *scriptedDriver) Password(context.Context, tui.InputConfig) (string, error) {
	if len(d.passwords) == 0 {
		return "", errors.New("no password scripted")
	}
	v := d.passwords[0]
	d.passwords = d.passwords[1:]
	return v, nil
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return false, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return -1, errors.New("no select scripted")
	}
	v := d.selects[0]
	d.selects = d.selects[1:]
	return v, nil
}

func (d *scriptedDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	return "", errors.New("no textarea scripted")
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func useDriver(t *testing.T, d tui.PromptDriver) {
	t.Helper()
	prev := newPromptDriver
	newPromptDriver = func(io.Writer) tui.PromptDriver { return d }
	t.Cleanup(func() { newPromptDriver = prev })
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	testsupport.AssertContains(t, out, "eventforms dev", "commit:  none")
}

func TestPagesCommandListsRoutes(t *testing.T) {
	out, err := execute(t, "pages")
	if err != nil {
		t.Fatalf("pages: %v", err)
	}
	testsupport.AssertContains(t, out, "/events/create", "/events/book", "book-ticket", "create-event")
}

func TestWelcomeCommand(t *testing.T) {
	out, err := execute(t, "welcome")
	if err != nil {
		t.Fatalf("welcome: %v", err)
	}
	testsupport.AssertContains(t, out, "Welcome to the Event Management Platform")
}

func TestRenderCommand(t *testing.T) {
	out, err := execute(t, "render", "create-event", "--format", "text")
	if err != nil {
		t.Fatalf("render text: %v", err)
	}
	testsupport.AssertContains(t, out, "[ Create Event ]")

	path := filepath.Join(t.TempDir(), "book.html")
	if _, err := execute(t, "render", "/events/book", "--output", path); err != nil {
		t.Fatalf("render html: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	testsupport.AssertContains(t, string(data), `<form id="book-ticket"`)
}

func TestRenderCommandRejectsUnknownInputs(t *testing.T) {
	if _, err := execute(t, "render", "/nowhere"); err == nil {
		t.Fatal("expected an error for an unknown page")
	}
	if _, err := execute(t, "render", "/", "--format", "pdf"); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
}

func TestSchemaCommandYAML(t *testing.T) {
	out, err := execute(t, "schema", "--format", "yaml", "--server", "https://events.example.com")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	testsupport.AssertContains(t, out, "openapi: 3.0.3", "https://events.example.com", "submit-book-ticket")
}

func TestConfigCommandAppliesEnvironment(t *testing.T) {
	t.Setenv("EVENTFORMS_PAYMENT_DELAY", "0s")
	t.Setenv("EVENTFORMS_LOG_FORMAT", "json")

	out, err := execute(t, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	testsupport.AssertContains(t, out, "delay: 0s", "format: json", "failure_message: Payment failed. Please try again.")
}

func TestConfigCommandRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventforms.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := execute(t, "config", "--config", path); err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestBookCommandCompletesBooking(t *testing.T) {
	t.Setenv("EVENTFORMS_PAYMENT_DELAY", "0s")
	t.Setenv("EVENTFORMS_METRICS_ENABLED", "true")
	useDriver(t, &scriptedDriver{
		selects:   []int{1},
		inputs:    []string{"2", "4242424242424242", "12/27"},
		passwords: []string{"123"},
	})

	out, err := execute(t, "book")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	testsupport.AssertContains(t, out,
		"✔ Ticket booked successfully",
		"You have booked 2 VIP ticket(s).",
		"→ /events",
		`eventforms_submissions_total{form="book-ticket",outcome="success"} 1`,
	)
}
