package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/plugscrtf/marketplace-service/internal/application"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

type Handler struct {
	service *application.Service
	kv      ports.KV
	logger  *slog.Logger
}

type Config struct {
	AdminPassword string
	SyncSecretKey string
}

func NewHandler(service *application.Service, kv ports.KV, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, kv: kv, logger: logger}
}

func NewRouter(handler *Handler, cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware(handler.logger))
	r.Use(loggingMiddleware(handler.logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", handler.ready)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	adminOnly := bearerAuth(cfg.AdminPassword)
	syncOnly := bearerAuth(cfg.SyncSecretKey)

	r.Route("/api", func(r chi.Router) {
		r.Route("/plugs", func(r chi.Router) {
			r.Get("/", handler.listPlugs)
			r.Post("/", handler.createPlug)
			r.Get("/{id}", handler.getPlug)
			r.Put("/{id}", handler.updatePlug)
			r.Delete("/{id}", handler.deletePlug)
			r.Post("/{id}/like", handler.likePlug)
			r.Post("/{id}/referral", handler.trackPlugReferral)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", handler.listProducts)
			r.Post("/", handler.createProduct)
			r.Get("/{id}", handler.getProduct)
			r.Put("/{id}", handler.updateProduct)
			r.Delete("/{id}", handler.deleteProduct)
			r.Post("/{id}/like", handler.likeProduct)
			r.Post("/{id}/view", handler.viewProduct)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", handler.listCategories)
			r.Post("/", handler.createCategory)
			r.Put("/{id}", handler.updateCategory)
			r.Delete("/{id}", handler.deleteCategory)
		})

		r.Route("/applications", func(r chi.Router) {
			r.Get("/", handler.listApplications)
			r.Post("/", handler.submitApplication)
			r.Put("/{id}", handler.updateApplication)
			r.Delete("/{id}", handler.deleteApplication)
			r.Post("/{id}/approve", handler.approveApplication)
			r.Post("/{id}/reject", handler.rejectApplication)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", handler.getSettings)
			r.Post("/", handler.updateSettings)
			r.Get("/background", handler.getBackground)
			r.Post("/background", handler.updateBackground)
		})
		r.Get("/social", handler.getSocial)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", handler.listUsers)
			r.Get("/me", handler.getUserMe)
			r.Get("/stats", handler.getUserStats)
			r.Get("/count", handler.countUsers)
			r.Get("/refresh-count", handler.countUsers)
			r.Post("/send-points", handler.sendPoints)
			r.Group(func(r chi.Router) {
				r.Use(syncOnly)
				r.Post("/sync", handler.syncUser)
				r.Delete("/sync", handler.removeSyncedUser)
			})
		})

		r.Post("/upload", handler.uploadFile)
		r.Get("/stats", handler.getStats)

		r.Route("/admin", func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/plugs", handler.createPlug)
			r.Post("/plugs/add-likes", handler.addLikesToAllPlugs)
		})
	})
	return r
}

func (h *Handler) ready(w http.ResponseWriter, r *http.Request) {
	if err := h.kv.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "Service temporairement indisponible")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
