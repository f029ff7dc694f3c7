package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/AbsensiKu/Absensi-Backend/internal/attendance"
	"github.com/AbsensiKu/Absensi-Backend/internal/auth"
	"github.com/AbsensiKu/Absensi-Backend/internal/config"
	"github.com/AbsensiKu/Absensi-Backend/internal/db"
	"github.com/AbsensiKu/Absensi-Backend/internal/directory"
	"github.com/AbsensiKu/Absensi-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	db.Connect(cfg.DatabaseURL)

	auth.Init(cfg)
	attendance.Init(cfg)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)

	r.Mount("/auth", auth.SetupRoutes())
	r.Mount("/attendance", attendance.SetupRoutes())
	r.Mount("/users", directory.SetupRoutes())

	log.Printf("Server listening on port :%s...", cfg.Port)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
