package navigation

// Routes of the event-management front end.
const (
	RouteWelcome     = "/"
	RouteEvents      = "/events"
	RouteCreateEvent = "/events/create"
	RouteBookTicket  = "/events/book"
)
