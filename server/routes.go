package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteIndex, ChainMiddleware(s.IndexHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteRefresh, ChainMiddleware(s.RefreshHandler(), s.APIMiddleware()...))

	// Guarded routes. /protected is the one non-consuming route: its whole
	// purpose is to be polled repeatedly with the same token. /status
	// consumes the token it is presented with.
	s.RegisterRouteFunc("GET "+RouteProtected, ChainMiddleware(s.ProtectedHandler(), append(s.APIMiddleware(), s.RequireToken(false))...))
	s.RegisterRouteFunc("GET "+RouteStatus, ChainMiddleware(s.StatusHandler(), append(s.APIMiddleware(), s.RequireToken(true))...))
}
