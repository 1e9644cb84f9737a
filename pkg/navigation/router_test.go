package navigation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-eventforms/pkg/navigation"
)

func TestRouter_RecordsHistoryAndRunsHandlers(t *testing.T) {
	var visited []string
	r := navigation.NewRouter(navigation.WithRoute(navigation.RouteEvents, func(_ context.Context, route string) error {
		visited = append(visited, route)
		return nil
	}))

	if err := r.NavigateTo(context.Background(), "events/"); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if err := r.NavigateTo(context.Background(), navigation.RouteBookTicket); err != nil {
		t.Fatalf("navigate: %v", err)
	}

	want := []string{navigation.RouteWelcome, navigation.RouteEvents, navigation.RouteBookTicket}
	if diff := cmp.Diff(want, r.History()); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{navigation.RouteEvents}, visited); diff != "" {
		t.Fatalf("handler calls mismatch (-want +got):\n%s", diff)
	}
	if r.Current() != navigation.RouteBookTicket {
		t.Fatalf("unexpected current route %q", r.Current())
	}
}

func TestRouter_RejectsUnknownRoutes(t *testing.T) {
	r := navigation.NewRouter()
	err := r.NavigateTo(context.Background(), "/admin")
	if !errors.Is(err, navigation.ErrUnknownRoute) {
		t.Fatalf("expected ErrUnknownRoute, got %v", err)
	}
	if r.Current() != navigation.RouteWelcome {
		t.Fatalf("failed navigation must not change the current route")
	}
}

func TestRouter_HandlerErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	r := navigation.NewRouter()
	r.Handle("/events", func(context.Context, string) error { return boom })

	if err := r.NavigateTo(context.Background(), "/events"); !errors.Is(err, boom) {
		t.Fatalf("expected handler error, got %v", err)
	}
}
