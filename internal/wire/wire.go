package wire

import (
	"net/http"

	"carwash-marketplace/internal/adaptor"
	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/internal/data/repository"
	"carwash-marketplace/internal/usecase"
	"carwash-marketplace/pkg/middleware"
	"carwash-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router
func Wiring(
	repo *repository.Repository,
	deps usecase.Deps,
	verifier middleware.TokenVerifier,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, deps, config, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, deps, verifier, config, logger),
		Service: service,
	}
}

// guards builds the authentication chain for one role
type guards struct {
	verifier middleware.TokenVerifier
	log      *zap.Logger
}

func (g guards) only(roles ...entity.Role) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.Authenticate(g.verifier, g.log),
		middleware.RequireRole(roles...),
	}
}

func setupRouter(
	handler *adaptor.Handler,
	deps usecase.Deps,
	verifier middleware.TokenVerifier,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(deps.Metrics))
	if config.App.RequestTimeout > 0 {
		r.Use(chimw.Timeout(config.App.RequestTimeout))
	}

	g := guards{verifier: verifier, log: logger}

	wireCustomer(r, handler.Customer, g)
	wireProvider(r, handler.Provider, g)
	wireEmployee(r, handler.Employee, g)
	wireBooking(r, handler.Booking, g)
	wireComplaint(r, handler.Complaint, handler.Feedback, g)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	return r
}
