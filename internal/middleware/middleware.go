package middleware

import (
	"net"
	"net/http"
	"sync"

	"github.com/AbsensiKu/Absensi-Backend/internal/session"
	"github.com/AbsensiKu/Absensi-Backend/internal/utils"
	"golang.org/x/time/rate"
)

// SessionDecoder reads and verifies the session cookie off a request.
// *session.Codec satisfies it; tests substitute a mock.
type SessionDecoder interface {
	FromRequest(r *http.Request) (session.User, error)
}

func SessionMiddleware(dec SessionDecoder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := dec.FromRequest(r)
			if err != nil {
				utils.WriteMessage(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			if user.Expired() {
				utils.WriteMessage(w, http.StatusUnauthorized, "Session expired")
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithSessionUser(r.Context(), user)))
		})
	}
}

// AdminMiddleware must run after SessionMiddleware. The role is trusted from
// the signed cookie for its lifetime; a revoked role takes effect at the next
// login.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := utils.GetSessionUser(r.Context())
		if !ok {
			utils.WriteMessage(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		if !user.IsAdmin() {
			utils.WriteMessage(w, http.StatusForbidden, "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

var allowed = map[string]struct{}{
	"http://localhost:3000": {},
	"http://localhost:5173": {},
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Echo the origin back only if it's on our allow-list
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin") // important for caches
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods",
				"GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers",
				"Content-Type, Authorization")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoginRateLimiter caps attempts per client IP. Limiters are kept per IP for
// the process lifetime; login traffic is small enough that eviction is not
// worth the bookkeeping.
func LoginRateLimiter(perMinute int) func(http.Handler) http.Handler {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		lim, ok := limiters[ip]
		if !ok {
			lim = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)
			limiters[ip] = lim
		}
		return lim
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiterFor(ip).Allow() {
				w.Header().Set("Retry-After", "60")
				utils.WriteMessage(w, http.StatusTooManyRequests, "too many login attempts")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
