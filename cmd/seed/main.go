// Seeds the users table from seeds/users.yaml. Existing accounts (matched by
// email) are left alone, so re-running is safe.
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/AbsensiKu/Absensi-Backend/internal/auth"
	"github.com/AbsensiKu/Absensi-Backend/internal/config"
	"github.com/AbsensiKu/Absensi-Backend/internal/db"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedFile struct {
	Users []struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Role     string `yaml:"role"`
	} `yaml:"users"`
}

func main() {
	path := flag.String("file", "seeds/users.yaml", "seed file")
	flag.Parse()

	_ = godotenv.Load(".env.local")

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	db.Connect(cfg.DatabaseURL)
	auth.Init(cfg)

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatal("Failed to read seed file: ", err)
	}

	var seeds seedFile
	if err := yaml.Unmarshal(raw, &seeds); err != nil {
		log.Fatal("Failed to parse seed file: ", err)
	}

	created := 0
	for _, s := range seeds.Users {
		var existing auth.User
		err := db.DB.First(&existing, "email = ?", s.Email).Error
		if err == nil {
			log.Printf("skip %s (already present)", s.Email)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatal("Failed to check existing user: ", err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Failed to hash password: ", err)
		}

		user := auth.User{
			Name:           s.Name,
			Email:          s.Email,
			HashedPassword: string(hashed),
			Role:           s.Role,
		}
		if err := db.DB.Create(&user).Error; err != nil {
			log.Fatal("Failed to create user: ", err)
		}
		log.Printf("created %s (%s)", s.Email, s.Role)
		created++
	}

	log.Printf("done, %d user(s) created", created)
}
