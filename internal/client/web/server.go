package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/myhealth/internal/client/editsession"
	"github.com/dmitrijs2005/myhealth/internal/client/kinds"
	"github.com/dmitrijs2005/myhealth/internal/client/models"
	"github.com/dmitrijs2005/myhealth/internal/client/services"
	"github.com/dmitrijs2005/myhealth/internal/logging"
	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 5 * time.Second

// Backend is everything the pages need from the REST backend.
type Backend interface {
	kinds.FoodStore
	kinds.UserSettingsStore
	kinds.WeightStore
	services.FoodClient
	services.WeightClient
}

type Server struct {
	address string
	logger  logging.Logger

	food     *editsession.Kind[models.Food]
	settings *editsession.Kind[models.UserSettings]
	weight   *editsession.Kind[models.Weight]

	foods   services.FoodService
	weights services.WeightService

	sessions *sessionManager
	pages    *renderer
}

func NewServer(address string, b Backend, sessions *sessionManager, logger logging.Logger) (*Server, error) {
	pages, err := newRenderer()
	if err != nil {
		return nil, err
	}

	return &Server{
		address:  address,
		logger:   logger.With("module", "web_server"),
		food:     kinds.Food(b),
		settings: kinds.UserSettings(b),
		weight:   kinds.Weight(b),
		foods:    services.NewFoodService(b, logger),
		weights:  services.NewWeightService(b, logger),
		sessions: sessions,
		pages:    pages,
	}, nil
}

// Handler returns the router of all console pages.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.sessions.middleware)

	r.Get("/", s.handleHome)

	r.Route("/food", func(r chi.Router) {
		r.Get("/", s.handleFoodList)
		r.Get("/create", s.handleFoodCreate)
		r.Post("/create", s.handleFoodCreate)
		r.Get("/edit", s.handleFoodEdit)
		r.Post("/edit", s.handleFoodEdit)
		r.Post("/delete", s.handleFoodDelete)
	})

	r.Get("/settings/user", s.handleSettings)
	r.Post("/settings/user", s.handleSettings)

	r.Route("/weight", func(r chi.Router) {
		r.Get("/", s.handleWeightList)
		r.Get("/create", s.handleWeightCreate)
		r.Post("/create", s.handleWeightCreate)
		r.Get("/edit", s.handleWeightEdit)
		r.Post("/edit", s.handleWeightEdit)
		r.Post("/delete", s.handleWeightDelete)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping web server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn(ctx, "web server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting web server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
