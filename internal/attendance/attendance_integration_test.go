package attendance_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/AbsensiKu/Absensi-Backend/internal/attendance"
	"github.com/AbsensiKu/Absensi-Backend/internal/auth"
	"github.com/AbsensiKu/Absensi-Backend/internal/config"
	"github.com/AbsensiKu/Absensi-Backend/internal/db"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var dbAvailable bool

var testServer *httptest.Server

func TestMain(m *testing.M) {
	_ = godotenv.Load("../../.env.local")

	if os.Getenv("DATABASE_URL") == "" {
		os.Exit(m.Run())
	}

	os.Setenv("APP_ENV", "dev")
	os.Setenv("LOGIN_RATE_PER_MIN", "1000")

	cfg := config.LoadFromEnv()
	db.Connect(cfg.DatabaseURL)
	dbAvailable = true

	auth.Init(cfg)
	attendance.Init(cfg)

	r := chi.NewRouter()
	r.Mount("/auth", auth.SetupRoutes())
	r.Mount("/attendance", attendance.SetupRoutes())

	testServer = httptest.NewServer(r)
	defer testServer.Close()

	os.Exit(m.Run())
}

func createTestUser(t *testing.T, role string) (auth.User, string) {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	password := "TestPass123!"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}

	user := auth.User{
		Name:           fmt.Sprintf("Test User %s", uuid.New().String()[:8]),
		Email:          fmt.Sprintf("test_%s@example.com", uuid.New().String()[:8]),
		HashedPassword: string(hashed),
		Role:           role,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	t.Cleanup(func() {
		db.DB.Where("user_id = ?", user.ID).Delete(&attendance.Record{})
		db.DB.Where("id = ?", user.ID).Delete(&auth.User{})
	})

	return user, password
}

// loggedInClient creates a user with the given role and returns a client
// whose jar holds a fresh session for them.
func loggedInClient(t *testing.T, role string) (*http.Client, auth.User) {
	t.Helper()
	user, password := createTestUser(t, role)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New: %v", err)
	}
	client := &http.Client{Jar: jar}

	body, _ := json.Marshal(map[string]string{"identifier": user.Email, "password": password})
	resp, err := client.Post(testServer.URL+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /auth/login: %v", err)
	}
	b := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d %s", resp.StatusCode, b)
	}

	return client, user
}

func postAttendance(t *testing.T, client *http.Client, kind string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"type": kind})
	resp, err := client.Post(testServer.URL+"/attendance", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /attendance: %v", err)
	}
	return resp
}

func listRecords(t *testing.T, client *http.Client) []attendance.RecordWithName {
	t.Helper()
	resp, err := client.Get(testServer.URL + "/attendance")
	if err != nil {
		t.Fatalf("GET /attendance: %v", err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from GET /attendance, got %d; body: %s", resp.StatusCode, body)
	}

	var rows []attendance.RecordWithName
	if err := json.Unmarshal([]byte(body), &rows); err != nil {
		t.Fatalf("invalid JSON body: %s", body)
	}
	return rows
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

// TestCheckInCreatesTodayRecord verifies "in" creates exactly one record with
// a classification and no check-out yet.
func TestCheckInCreatesTodayRecord(t *testing.T) {
	client, user := loggedInClient(t, "user")

	resp := postAttendance(t, client, "in")
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", resp.StatusCode, body)
	}

	rows := listRecords(t, client)
	if len(rows) != 1 {
		t.Fatalf("expected 1 record, got %d", len(rows))
	}

	rec := rows[0]
	if rec.UserID != user.ID {
		t.Errorf("expected user_id %d, got %d", user.ID, rec.UserID)
	}
	if rec.Status != attendance.StatusPresent && rec.Status != attendance.StatusLate {
		t.Errorf("expected Hadir or Terlambat, got %q", rec.Status)
	}
	if rec.CheckIn == "" {
		t.Error("expected check_in to be set")
	}
	if rec.CheckOut != nil {
		t.Errorf("expected no check_out yet, got %q", *rec.CheckOut)
	}
}

// TestDuplicateCheckInRejected verifies the second "in" of the day is a 400.
func TestDuplicateCheckInRejected(t *testing.T) {
	client, _ := loggedInClient(t, "user")

	readBody(t, postAttendance(t, client, "in"))

	resp := postAttendance(t, client, "in")
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d; body: %s", resp.StatusCode, body)
	}
	if !strings.Contains(body, "already checked in") {
		t.Errorf("expected duplicate check-in message, got: %s", body)
	}
}

// TestCheckOutWithoutCheckInIsNoOp verifies "out" with no prior "in" reports
// success but creates nothing.
func TestCheckOutWithoutCheckInIsNoOp(t *testing.T) {
	client, _ := loggedInClient(t, "user")

	resp := postAttendance(t, client, "out")
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", resp.StatusCode, body)
	}

	if rows := listRecords(t, client); len(rows) != 0 {
		t.Errorf("expected no records after lone check-out, got %d", len(rows))
	}
}

// TestCheckOutStampsRecord verifies "in" then "out" fills check_out, and a
// repeated "out" keeps the latest timestamp without erroring.
func TestCheckOutStampsRecord(t *testing.T) {
	client, _ := loggedInClient(t, "user")

	readBody(t, postAttendance(t, client, "in"))
	readBody(t, postAttendance(t, client, "out"))

	rows := listRecords(t, client)
	if len(rows) != 1 {
		t.Fatalf("expected 1 record, got %d", len(rows))
	}
	if rows[0].CheckOut == nil {
		t.Fatal("expected check_out to be set")
	}
	first := *rows[0].CheckOut

	time.Sleep(1100 * time.Millisecond)
	resp := postAttendance(t, client, "out")
	readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on repeated out, got %d", resp.StatusCode)
	}

	rows = listRecords(t, client)
	if rows[0].CheckOut == nil || *rows[0].CheckOut < first {
		t.Errorf("expected check_out >= %q, got %v", first, rows[0].CheckOut)
	}
}

// TestUnknownTypeRejected verifies anything but in/out is a 400.
func TestUnknownTypeRejected(t *testing.T) {
	client, _ := loggedInClient(t, "user")

	resp := postAttendance(t, client, "sideways")
	readBody(t, resp)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// TestListRoleFiltering verifies non-admins only see their own rows while an
// admin sees everyone's, joined with names.
func TestListRoleFiltering(t *testing.T) {
	aliceClient, alice := loggedInClient(t, "user")
	bobClient, _ := loggedInClient(t, "user")
	adminClient, _ := loggedInClient(t, "admin")

	readBody(t, postAttendance(t, aliceClient, "in"))
	readBody(t, postAttendance(t, bobClient, "in"))

	aliceRows := listRecords(t, aliceClient)
	if len(aliceRows) != 1 {
		t.Fatalf("expected alice to see 1 record, got %d", len(aliceRows))
	}
	for _, row := range aliceRows {
		if row.UserID != alice.ID {
			t.Errorf("non-admin saw foreign record for user %d", row.UserID)
		}
	}

	adminRows := listRecords(t, adminClient)
	if len(adminRows) < 2 {
		t.Fatalf("expected admin to see at least 2 records, got %d", len(adminRows))
	}
	for _, row := range adminRows {
		if row.Name == "" {
			t.Error("expected admin rows to carry the user name")
		}
	}
}

// TestRecapAdminOnly verifies the recap endpoint's role gate and its date and
// status filtering.
func TestRecapAdminOnly(t *testing.T) {
	userClient, _ := loggedInClient(t, "user")
	adminClient, _ := loggedInClient(t, "admin")

	readBody(t, postAttendance(t, userClient, "in"))

	resp, err := userClient.Get(testServer.URL + "/attendance/recap?start=2000-01-01&end=2100-01-01")
	if err != nil {
		t.Fatalf("GET /attendance/recap: %v", err)
	}
	readBody(t, resp)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", resp.StatusCode)
	}

	resp, err = adminClient.Get(testServer.URL + "/attendance/recap?start=2000-01-01&end=2100-01-01&statuses=Hadir,Terlambat")
	if err != nil {
		t.Fatalf("GET /attendance/recap: %v", err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d; body: %s", resp.StatusCode, body)
	}

	var rows []attendance.RecordWithName
	if err := json.Unmarshal([]byte(body), &rows); err != nil {
		t.Fatalf("invalid JSON body: %s", body)
	}
	if len(rows) < 1 {
		t.Error("expected at least one recap row")
	}

	// Missing range is a validation error.
	resp, err = adminClient.Get(testServer.URL + "/attendance/recap")
	if err != nil {
		t.Fatalf("GET /attendance/recap: %v", err)
	}
	readBody(t, resp)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 without start/end, got %d", resp.StatusCode)
	}
}

// TestAttendanceRequiresSession verifies both verbs are 401 without a cookie.
func TestAttendanceRequiresSession(t *testing.T) {
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	resp, err := http.Get(testServer.URL + "/attendance")
	if err != nil {
		t.Fatalf("GET /attendance: %v", err)
	}
	readBody(t, resp)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 from GET, got %d", resp.StatusCode)
	}

	resp, err = http.Post(testServer.URL+"/attendance", "application/json", strings.NewReader(`{"type":"in"}`))
	if err != nil {
		t.Fatalf("POST /attendance: %v", err)
	}
	readBody(t, resp)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 from POST, got %d", resp.StatusCode)
	}
}
