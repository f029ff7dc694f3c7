package db

import "gorm.io/gorm"

// EnsureSchema creates the named Postgres schema if it does not exist yet.
// Each domain package calls this from Init before automigrating its tables.
func EnsureSchema(d *gorm.DB, schema string) error {
	return d.Exec(`CREATE SCHEMA IF NOT EXISTS "` + schema + `"`).Error
}
