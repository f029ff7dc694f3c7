package attendance

import "time"

const (
	StatusPresent = "Hadir"
	StatusLate    = "Terlambat"
)

// Record is one user's attendance for one calendar day. The composite unique
// index is what actually guarantees "one check-in per day" under concurrent
// requests; the handler's pre-check only exists for the friendly error.
type Record struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_attendance_user_date" json:"user_id"`
	Date      string    `gorm:"size:10;not null;uniqueIndex:idx_attendance_user_date" json:"date"` // YYYY-MM-DD
	CheckIn   string    `gorm:"size:8;not null" json:"check_in"`                                   // HH:MM:SS
	CheckOut  *string   `gorm:"size:8" json:"check_out"`
	Status    string    `gorm:"size:20;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (Record) TableName() string { return "attendance.records" }

// RecordWithName joins the owner's display name onto a record for admin views.
type RecordWithName struct {
	Record
	Name string `json:"name"`
}
