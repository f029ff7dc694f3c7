package auth

import (
	"net/http"

	"github.com/AbsensiKu/Absensi-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.With(middleware.LoginRateLimiter(loginRatePerMin)).Post("/login", LoginHandler)
	r.Post("/logout", LogoutHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(Cookies))
		r.Get("/me", MeHandler)
		r.Post("/update", ProfileUpdateHandler)
	})

	return r
}
