// Resets every user's password to a known default. Local recovery tool for
// seeded databases; refuses to run against production.
package main

import (
	"database/sql"
	"flag"
	"log"

	"github.com/AbsensiKu/Absensi-Backend/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	password := flag.String("password", "123456", "default password to set for every account")
	flag.Parse()

	_ = godotenv.Load(".env.local")

	cfg := config.LoadFromEnv()
	if cfg.IsProduction() {
		log.Fatal("refusing to run with APP_ENV=production")
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password: ", err)
	}

	conn, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer conn.Close()

	res, err := conn.Exec(`UPDATE app_auth.users SET password = $1`, string(hashed))
	if err != nil {
		log.Fatal("Failed to update passwords: ", err)
	}

	n, _ := res.RowsAffected()
	log.Printf("reset %d account(s) to the default password", n)
}
