package main

const AppTitle = "Vocab Trainer"

// Route constants
const (
	RouteHome     = "/"
	RouteState    = "/state"
	RouteMark     = "/mark"
	RouteNext     = "/next"
	RoutePrevious = "/previous"
	RouteReset    = "/reset"
	RouteJump     = "/jump"
	RouteSummary  = "/summary"
	RouteHealth   = "/healthz"
)

// Template names
const (
	TemplatePage    = "index.html"
	TemplateContent = "trainer-content"
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)

type contextKey string
