package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/naming-registry/internal/account"
	"github.com/frahmantamala/naming-registry/internal/permission"
	"github.com/frahmantamala/naming-registry/internal/transport/middleware"
	"github.com/frahmantamala/naming-registry/internal/transport/swagger"
	"github.com/go-chi/chi"
)

// RegisterAllRoutes wires the full public surface of the registry onto
// the router.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, accountHandler *account.Handler, permissionHandler *permission.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.RequestID)
	router.Use(middleware.CallerIdentity)
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve the OpenAPI spec at root, with the Swagger UI pointing at it.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if accountHandler != nil {
			r.Route("/accounts", func(ar chi.Router) {
				ar.Get("/lookup", accountHandler.Lookup)
				ar.Get("/availability", accountHandler.Availability)
				ar.Patch("/about", accountHandler.EditAbout)
				ar.Patch("/domain", accountHandler.EditDomain)
				ar.Patch("/username", accountHandler.EditUsername)
				ar.Post("/enable", accountHandler.Enable)
				ar.Post("/disable", accountHandler.Disable)
				ar.Delete("/", accountHandler.Destroy)
			})
		}

		if permissionHandler != nil {
			r.Route("/permissions", func(pr chi.Router) {
				pr.Get("/", permissionHandler.GetForPair)
				pr.Post("/grant", permissionHandler.Grant)
				pr.Post("/clear", permissionHandler.Clear)
			})
		}
	})
}
