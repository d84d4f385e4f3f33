package server

const (
	RouteIndex     = "/"
	RouteLogin     = "/login"
	RouteRefresh   = "/refresh"
	RouteProtected = "/protected"
	RouteStatus    = "/status"
)
