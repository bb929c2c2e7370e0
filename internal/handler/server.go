// Package handler implements the HTTP handlers for the GlobeTrotter API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, catalog.go, user.go, ...) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/auth"
	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/domain"
	"github.com/Sai-Sri-Kumar/globetrotter/backend/spec"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, userID uuid.UUID, draft domain.TripDraft) (domain.Trip, error)
	GetDetail(ctx context.Context, userID, tripID uuid.UUID) (domain.TripDetail, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.TripDetail, error)
	Delete(ctx context.Context, userID, tripID uuid.UUID) error
}

// CatalogServicer defines the read-only browse operations.
type CatalogServicer interface {
	Countries(ctx context.Context) ([]domain.Country, error)
	ActivitiesByCountry(ctx context.Context, countryID uuid.UUID) ([]domain.Activity, error)
	Search(ctx context.Context, query string) (domain.SearchResult, error)
	HomeOverview(ctx context.Context) (domain.HomeOverview, error)
}

// UserServicer defines the account operations.
type UserServicer interface {
	Register(ctx context.Context, reg domain.Registration) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// ExportServicer defines the itinerary export operation.
type ExportServicer interface {
	Export(ctx context.Context, userID uuid.UUID) ([]domain.ExportRow, error)
}

// Server holds the dependencies shared by every handler method.
type Server struct {
	trips   TripServicer
	catalog CatalogServicer
	users   UserServicer
	export  ExportServicer
	tokens  *auth.Tokens
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, catalog CatalogServicer, users UserServicer, export ExportServicer, tokens *auth.Tokens) *Server {
	return &Server{trips: trips, catalog: catalog, users: users, export: export, tokens: tokens}
}

// Routes mounts every endpoint on a chi router. Trip routes sit behind the
// auth middleware; catalog, account, and operational routes are public.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	requireAuth := auth.NewMiddleware(s.tokens).Require

	r.Get("/healthz", s.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/register", s.Register)
		r.Post("/users/login", s.Login)
		r.With(requireAuth).Get("/users/me", s.Me)

		r.Get("/countries", s.Countries)
		r.Get("/activities", s.Activities)
		r.Get("/search", s.Search)
		r.Get("/home/overview", s.HomeOverview)

		r.Route("/trips", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/create", s.CreateTrip)
			r.Get("/my", s.ListMyTrips)
			r.Get("/export", s.ExportTrips)
			r.Get("/{tripID}", s.GetTrip)
			r.Delete("/{tripID}", s.DeleteTrip)
		})
	})

	return r
}

// Health implements GET /healthz. Liveness only — it does not touch the DB.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// serveOpenAPI returns the embedded OpenAPI document.
func serveOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
