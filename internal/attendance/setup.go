package attendance

import (
	"log"

	"github.com/AbsensiKu/Absensi-Backend/internal/config"
	"github.com/AbsensiKu/Absensi-Backend/internal/db"
)

var clock *Clock

func Init(cfg config.Config) {
	clock = NewClock(cfg.AttendanceTZ, cfg.LateCutoff)

	if err := db.EnsureSchema(db.DB, "attendance"); err != nil {
		log.Fatal("Failed to ensure schema attendance: ", err)
	}

	if err := db.DB.AutoMigrate(&Record{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
