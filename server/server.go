package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-session-service/auth"
	"github.com/jrsteele09/go-session-service/buildinfo"
	"github.com/jrsteele09/go-session-service/internal/config"
	"github.com/jrsteele09/go-session-service/token"
)

type Server struct {
	env       string // Environment (e.g., "DEV", "production")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	sessions  *auth.SessionService
	ledger    token.Ledger
	buildInfo *buildinfo.Cache
}

func New(cfg config.Config, revision buildinfo.RevisionLookup) (*Server, error) {
	rotator, err := token.NewRotator(cfg.GetSecretLength())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create secret rotator: %w", err)
	}

	ledger := token.NewInMemoryLedger()
	codec := token.NewCodec(cfg.GetTokenExpiry())

	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		sessions:  auth.NewSessionService(rotator, codec, ledger),
		ledger:    ledger,
		buildInfo: buildinfo.NewCache(cfg.GetMetadataPath(), revision, cfg.GetConfigCacheTTL()),
	}
	s.env = cfg.GetEnv()

	// A metadata document that cannot be loaded at boot is a startup
	// failure, not a per-request 500.
	if _, err := s.buildInfo.Load(context.Background()); err != nil {
		return nil, fmt.Errorf("[Server New] initial configuration load failed: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Ledger exposes the consumed-token ledger so the bootstrap can drive
// periodic pruning.
func (s *Server) Ledger() token.Ledger {
	return s.ledger
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
