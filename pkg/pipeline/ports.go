package pipeline

import "context"

// Outcome is what a successful Action reports back: a notification title, a
// message built from the submitted values and the route to navigate to.
type Outcome struct {
	Title    string
	Message  string
	Redirect string
}

// Action is the side effect a page binds to a valid submission. Returning a
// non-nil error signals an action fault.
type Action interface {
	Perform(ctx context.Context, values map[string]any) (Outcome, error)
}

// ActionFunc adapts a function to the Action interface.
type ActionFunc func(ctx context.Context, values map[string]any) (Outcome, error)

// Perform calls fn.
func (fn ActionFunc) Perform(ctx context.Context, values map[string]any) (Outcome, error) {
	return fn(ctx, values)
}

// NotificationKind distinguishes success toasts from error toasts.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a single toast.
type Notification struct {
	Kind        NotificationKind `json:"kind"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
}

// NotificationSink shows notifications to the user.
type NotificationSink interface {
	Notify(ctx context.Context, n Notification)
}

// NotificationFunc adapts a function to NotificationSink.
type NotificationFunc func(ctx context.Context, n Notification)

// Notify calls fn.
func (fn NotificationFunc) Notify(ctx context.Context, n Notification) {
	fn(ctx, n)
}

// Navigator moves the user to another route.
type Navigator interface {
	NavigateTo(ctx context.Context, route string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, route string) error

// NavigateTo calls fn.
func (fn NavigatorFunc) NavigateTo(ctx context.Context, route string) error {
	return fn(ctx, route)
}

type discardSink struct{}

func (discardSink) Notify(context.Context, Notification) {}

type stayNavigator struct{}

func (stayNavigator) NavigateTo(context.Context, string) error { return nil }
