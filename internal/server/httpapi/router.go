package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/pdstore/internal/logging"
	"github.com/dmitrijs2005/pdstore/internal/server/auth"
	"github.com/dmitrijs2005/pdstore/internal/server/metrics"
	"github.com/dmitrijs2005/pdstore/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// WelcomeMessage is the body of GET /.
const WelcomeMessage = "Welcome to the Personal Data Store!"

// Users is the account side of the API.
type Users interface {
	Signup(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// Profiles is the survey side of the API.
type Profiles interface {
	SubmitSurvey(ctx context.Context, userID string, fields models.ProfileFields, challengeIDs []int64) (*models.ProfileView, error)
	GetProfile(ctx context.Context, userID string) (*models.ProfileView, error)
	ListChallenges(ctx context.Context) ([]models.Challenge, error)
}

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	users        Users
	profiles     Profiles
	tokens       auth.TokenVerifier
	metrics      *metrics.Metrics
	logger       logging.Logger
	maxBodyBytes int64
}

// NewHandler wires the handlers to their collaborators.
func NewHandler(users Users, profiles Profiles, tokens auth.TokenVerifier, m *metrics.Metrics, l logging.Logger, maxBodyBytes int64) *Handler {
	return &Handler{
		users:        users,
		profiles:     profiles,
		tokens:       tokens,
		metrics:      m,
		logger:       l.With("module", "http_api"),
		maxBodyBytes: maxBodyBytes,
	}
}

// Routes builds the chi router.
//
//	GET  /            welcome text
//	POST /auth/signup {"email","password"} -> 201 {"token"}
//	POST /auth/login  {"email","password"} -> 200 {"token"}
//	GET  /user        bearer -> profile
//	PUT  /user        bearer, survey -> profile
//	GET  /challenges  bearer -> catalog
//	GET  /metrics     Prometheus exposition
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(h.requestID)
	r.Use(h.observe)
	r.Use(middleware.Recoverer)
	r.Use(h.limitBody)

	r.Get("/", h.handleWelcome)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.handleSignup)
		r.Post("/login", h.handleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.requireUser)
		r.Get("/user", h.handleGetProfile)
		r.Put("/user", h.handleSubmitSurvey)
		r.Get("/challenges", h.handleListChallenges)
	})

	return r
}
