package attendance

import (
	"net/http"

	"github.com/AbsensiKu/Absensi-Backend/internal/auth"
	"github.com/AbsensiKu/Absensi-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.SessionMiddleware(auth.Cookies))

	r.Get("/", ListHandler)
	r.Post("/", CheckHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminMiddleware)
		r.Get("/recap", RecapHandler)
	})

	return r
}
