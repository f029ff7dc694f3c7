package directory

import (
	"net/http"

	"github.com/AbsensiKu/Absensi-Backend/internal/auth"
	"github.com/AbsensiKu/Absensi-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts the admin-only employee CRUD. Every route requires a
// valid session and the admin role.
func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.SessionMiddleware(auth.Cookies))
	r.Use(middleware.AdminMiddleware)

	r.Get("/", ListHandler)
	r.Post("/", CreateHandler)
	r.Put("/{id}", UpdateHandler)
	r.Delete("/{id}", DeleteHandler)

	return r
}
