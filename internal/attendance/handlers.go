package attendance

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/AbsensiKu/Absensi-Backend/internal/db"
	"github.com/AbsensiKu/Absensi-Backend/internal/utils"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const adminListQuery = `
	SELECT a.id, a.user_id, u.name, a.date, a.check_in, a.check_out, a.status, a.created_at
	FROM attendance.records a
	JOIN app_auth.users u ON u.id = a.user_id
	ORDER BY a.date DESC, a.check_in DESC`

// ListHandler returns every user's records (joined with names) for admins and
// only the caller's own records otherwise, newest first.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetSessionUser(r.Context())
	if !ok {
		utils.WriteMessage(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	// Attendance dashboards must never serve stale rows.
	w.Header().Set("Cache-Control", "no-store")

	if user.IsAdmin() {
		var rows []RecordWithName
		if err := db.DB.Raw(adminListQuery).Scan(&rows).Error; err != nil {
			utils.WriteServerError(w, "list attendance (admin)", err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, rows)
		return
	}

	var records []Record
	if err := db.DB.Where("user_id = ?", user.ID).
		Order("date DESC, check_in DESC").
		Find(&records).Error; err != nil {
		utils.WriteServerError(w, "list attendance", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, records)
}

// CheckHandler performs the daily state transition: "in" creates today's
// record (at most once), "out" stamps the check-out time on it.
func CheckHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetSessionUser(r.Context())
	if !ok {
		utils.WriteMessage(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var input struct {
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	today, now := clock.Today()

	switch input.Type {
	case "in":
		var existing Record
		err := db.DB.First(&existing, "user_id = ? AND date = ?", user.ID, today).Error
		if err == nil {
			utils.WriteMessage(w, http.StatusBadRequest, "already checked in today")
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteServerError(w, "look up today's record", err)
			return
		}

		record := Record{
			UserID:  user.ID,
			Date:    today,
			CheckIn: now,
			Status:  clock.Classify(now),
		}
		if err := db.DB.Create(&record).Error; err != nil {
			// Two near-simultaneous check-ins race past the pre-check; the
			// unique index serializes them and the loser lands here.
			if isUniqueViolation(err) {
				utils.WriteMessage(w, http.StatusBadRequest, "already checked in today")
				return
			}
			utils.WriteServerError(w, "create attendance record", err)
			return
		}
		utils.WriteMessage(w, http.StatusOK, "checked in at "+now)

	case "out":
		// Blind update, exactly like the original: with no check-in today
		// this touches zero rows and still reports success, and repeating
		// "out" simply keeps the latest timestamp.
		if err := db.DB.Model(&Record{}).
			Where("user_id = ? AND date = ?", user.ID, today).
			Update("check_out", now).Error; err != nil {
			utils.WriteServerError(w, "update check-out", err)
			return
		}
		utils.WriteMessage(w, http.StatusOK, "checked out at "+now)

	default:
		utils.WriteMessage(w, http.StatusBadRequest, "type must be \"in\" or \"out\"")
	}
}

// RecapHandler serves the admin reporting slice: records in a date range,
// optionally narrowed to a status set.
//
// GET /attendance/recap?start=YYYY-MM-DD&end=YYYY-MM-DD&statuses=Hadir,Terlambat
func RecapHandler(w http.ResponseWriter, r *http.Request) {
	start := strings.TrimSpace(r.URL.Query().Get("start"))
	end := strings.TrimSpace(r.URL.Query().Get("end"))
	if start == "" || end == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "start and end are required")
		return
	}

	query := `
		SELECT a.id, a.user_id, u.name, a.date, a.check_in, a.check_out, a.status, a.created_at
		FROM attendance.records a
		JOIN app_auth.users u ON u.id = a.user_id
		WHERE a.date >= ? AND a.date <= ?`
	args := []any{start, end}

	if statuses := splitCSV(r.URL.Query().Get("statuses")); len(statuses) > 0 {
		query += ` AND a.status = ANY(?)`
		args = append(args, pq.Array(statuses))
	}
	query += ` ORDER BY a.date DESC, a.check_in DESC`

	var rows []RecordWithName
	if err := db.DB.Raw(query, args...).Scan(&rows).Error; err != nil {
		utils.WriteServerError(w, "attendance recap", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, rows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
