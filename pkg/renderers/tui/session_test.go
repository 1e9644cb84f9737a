package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-eventforms/pkg/actions"
	"github.com/goliatone/go-eventforms/pkg/model"
	"github.com/goliatone/go-eventforms/pkg/pages"
	"github.com/goliatone/go-eventforms/pkg/pipeline"
	"github.com/goliatone/go-eventforms/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	prompts      []string
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
	passPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func mountBooking(t *testing.T, opts ...pages.Option) *pipeline.Orchestrator {
	t.Helper()
	base := []pages.Option{pages.WithClock(testsupport.FakeClock()), pages.WithPaymentDelay(0)}
	o, err := pages.MountBooking(append(base, opts...)...)
	if err != nil {
		t.Fatalf("mount booking: %v", err)
	}
	t.Cleanup(func() { _ = o.Close() })
	return o
}

func TestRun_BookingRepromptsOnlyFailingFields(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{1},
		inputs:    []string{"2", "123", "12/25", "1234567812345678"},
		passwords: []string{"123"},
	}
	o := mountBooking(t)

	res, err := New(WithPromptDriver(driver)).Run(context.Background(), o)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Status != pipeline.StatusSuccess || res.Message != "You have booked 2 VIP ticket(s)." {
		t.Fatalf("unexpected result %+v", res)
	}

	wantPrompts := []string{"Ticket Type", "Quantity", "Card Number", "Expiry Date (MM/YY)", "CVV", "Card Number"}
	if diff := cmp.Diff(wantPrompts, driver.prompts); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
	wantInfo := []string{"Book Ticket", "✖ Card Number: Card number must be 16 digits"}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_FieldIsAskedAgainUntilValid(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{0},
		inputs:    []string{"0", "123", "12/25", "3", "1234567812345678"},
		passwords: []string{"123"},
	}
	o := mountBooking(t)

	res, err := New(WithPromptDriver(driver)).Run(context.Background(), o)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Status != pipeline.StatusSuccess {
		t.Fatalf("unexpected status %s", res.Status)
	}
	if res.Message != "You have booked 3 Standard ticket(s)." {
		t.Fatalf("unexpected message %q", res.Message)
	}
	if !strings.Contains(strings.Join(driver.infoMessages, "\n"), "Quantity must be at least 1") {
		t.Fatalf("expected quantity error, got %v", driver.infoMessages)
	}
}

type decliningGateway struct{}

func (decliningGateway) Charge(context.Context, actions.Charge) (actions.Receipt, error) {
	return actions.Receipt{}, errors.New("declined")
}

func TestRun_ActionFailureOffersRetry(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{2},
		inputs:    []string{"1", "1234567812345678", "01/27"},
		passwords: []string{"321"},
		confirm:   []bool{true, false},
	}
	o := mountBooking(t, pages.WithGateway(decliningGateway{}))

	res, err := New(WithPromptDriver(driver)).Run(context.Background(), o)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Status != pipeline.StatusActionFailed || res.Message != actions.BookingFailureMessage {
		t.Fatalf("unexpected result %+v", res)
	}
	if driver.confirmPos != 2 {
		t.Fatalf("expected two retry prompts, got %d", driver.confirmPos)
	}
}

func TestRun_PromptErrorsStopTheSession(t *testing.T) {
	driver := &stubDriver{}
	o := mountBooking(t)

	if _, err := New(WithPromptDriver(driver)).Run(context.Background(), o); err == nil {
		t.Fatal("expected prompt error")
	}
	if o.Phase() != pipeline.PhaseIdle {
		t.Fatalf("form should stay idle, got %s", o.Phase())
	}
}

func TestRun_CreationUsesTextArea(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Launch", "2026-11-02", "HQ"},
		textAreas: []string{"Product launch"},
	}
	o, err := pages.MountCreation(pages.WithClock(testsupport.FakeClock()))
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	defer o.Close()

	res, err := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "})).Run(context.Background(), o)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Message != "Launch on Mon Nov 02 2026" {
		t.Fatalf("unexpected message %q", res.Message)
	}
	if driver.textPos != 1 {
		t.Fatalf("description should be asked through the textarea prompt")
	}
}

func TestRun_MaxRoundsBoundsRetries(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{0},
		inputs:    []string{"1", "1234567812345678", "12/25"},
		passwords: []string{"123"},
		confirm:   []bool{true, true, true},
	}
	o := mountBooking(t, pages.WithGateway(decliningGateway{}))

	_, err := New(WithPromptDriver(driver), WithMaxRounds(1)).Run(context.Background(), o)
	if !errors.Is(err, ErrTooManyRounds) {
		t.Fatalf("expected ErrTooManyRounds, got %v", err)
	}
	if driver.confirmPos != 2 {
		t.Fatalf("expected two retry prompts before giving up, got %d", driver.confirmPos)
	}
}

func TestRun_FieldsOrderTheFirstRound(t *testing.T) {
	driver := &stubDriver{
		passwords: []string{"123"},
		inputs:    []string{"1234567812345678", "12/27"},
		selectIdx: []int{1},
	}
	o := mountBooking(t)

	res, err := New(WithPromptDriver(driver), WithFields("cvv", "cardNumber")).Run(context.Background(), o)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Message != "You have booked 1 VIP ticket(s)." {
		t.Fatalf("unexpected result %+v", res)
	}
	want := []string{"CVV", "Card Number", "Ticket Type", "Expiry Date (MM/YY)"}
	if diff := cmp.Diff(want, driver.prompts); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_UnknownFieldFailsBeforePrompting(t *testing.T) {
	driver := &stubDriver{}
	o := mountBooking(t)

	_, err := New(WithPromptDriver(driver), WithFields("quantity", "seat")).Run(context.Background(), o)
	if !errors.Is(err, model.ErrSchemaMisconfigured) {
		t.Fatalf("expected ErrSchemaMisconfigured, got %v", err)
	}
	if len(driver.prompts) != 0 || len(driver.infoMessages) != 0 {
		t.Fatalf("nothing should be asked, got prompts %v info %v", driver.prompts, driver.infoMessages)
	}
}

func TestValidatorOpts(t *testing.T) {
	if validatorOpts(nil) != nil {
		t.Fatal("nil validator should produce no options")
	}
	if got := len(validatorOpts(func(string) error { return nil })); got != 1 {
		t.Fatalf("expected one option, got %d", got)
	}
}
