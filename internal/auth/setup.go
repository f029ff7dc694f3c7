package auth

import (
	"log"

	"github.com/AbsensiKu/Absensi-Backend/internal/config"
	"github.com/AbsensiKu/Absensi-Backend/internal/db"
	"github.com/AbsensiKu/Absensi-Backend/internal/session"
)

// Cookies signs and verifies the user_session cookie for the whole app.
var Cookies *session.Codec

var loginRatePerMin int

func Init(cfg config.Config) {
	Cookies = session.NewCodec(cfg.SessionSecret, cfg.IsProduction())
	loginRatePerMin = cfg.LoginRatePerMin

	if err := db.EnsureSchema(db.DB, "app_auth"); err != nil {
		log.Fatal("Failed to ensure schema app_auth: ", err)
	}

	if err := db.DB.AutoMigrate(&User{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
