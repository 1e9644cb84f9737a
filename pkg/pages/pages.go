// Package pages declares the three screens of the event platform: the static
// welcome page and the two data-entry forms, each bound to its action.
package pages

import (
	"strings"

	"github.com/goliatone/go-eventforms/pkg/model"
	"github.com/goliatone/go-eventforms/pkg/navigation"
)

// Welcome page copy.
const (
	WelcomeHeading = "Welcome to the Event Management Platform"
	WelcomeTagline = "Manage your events, attendees, and settings with ease."
)

// Page describes one routable screen. Static pages carry no schema.
type Page struct {
	Route   string
	Title   string
	Heading string
	Tagline string
	Schema  *model.FormSchema
}

// Static reports whether the page has no form.
func (p Page) Static() bool {
	return p.Schema == nil
}

// Welcome returns the landing page.
func Welcome() Page {
	return Page{
		Route:   navigation.RouteWelcome,
		Title:   "Home",
		Heading: WelcomeHeading,
		Tagline: WelcomeTagline,
	}
}

// Booking returns the ticket booking page.
func Booking() Page {
	schema := BookingSchema().MustCheck()
	return Page{
		Route:   navigation.RouteBookTicket,
		Title:   schema.Title,
		Heading: schema.Title,
		Schema:  &schema,
	}
}

// Creation returns the event creation page.
func Creation() Page {
	schema := CreationSchema().MustCheck()
	return Page{
		Route:   navigation.RouteCreateEvent,
		Title:   schema.Title,
		Heading: schema.Title,
		Schema:  &schema,
	}
}

// All lists every page in menu order.
func All() []Page {
	return []Page{Welcome(), Creation(), Booking()}
}

// Lookup finds a page by route or form ID.
func Lookup(key string) (Page, bool) {
	key = strings.TrimSpace(key)
	for _, p := range All() {
		if p.Route == key || (p.Schema != nil && p.Schema.ID == key) {
			return p, true
		}
	}
	return Page{}, false
}
