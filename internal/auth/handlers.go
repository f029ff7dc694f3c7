package auth

import (
	"encoding/json"
	"net/http"

	"github.com/AbsensiKu/Absensi-Backend/internal/db"
	"github.com/AbsensiKu/Absensi-Backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// genericLoginError is deliberately the same for unknown accounts and wrong
// passwords so callers can't enumerate users.
const genericLoginError = "account or password incorrect"

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Identifier == "" || input.Password == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "identifier and password are required")
		return
	}

	// The identifier matches either the email or the display name. Email is
	// unique; a name colliding with someone else's email resolves to the
	// lowest id, matching the original behavior.
	var user User
	err := db.DB.First(&user, "email = ? OR name = ?", input.Identifier, input.Identifier).Error
	if err != nil {
		utils.WriteMessage(w, http.StatusUnauthorized, genericLoginError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.Password)); err != nil {
		utils.WriteMessage(w, http.StatusUnauthorized, genericLoginError)
		return
	}

	if _, err := Cookies.Issue(w, user.SessionUser()); err != nil {
		utils.WriteServerError(w, "issue session cookie", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "login successful",
		"user":    user,
	})
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	Cookies.Clear(w)
	utils.WriteMessage(w, http.StatusOK, "logout successful")
}

// MeHandler answers from the cookie alone; the user row is not re-read.
func MeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetSessionUser(r.Context())
	if !ok {
		utils.WriteMessage(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"user": user})
}

// ProfileUpdateHandler lets any authenticated user change their own name and
// optionally their password. The cookie is re-issued with the new name so the
// UI updates without a fresh login.
func ProfileUpdateHandler(w http.ResponseWriter, r *http.Request) {
	sessionUser, ok := utils.GetSessionUser(r.Context())
	if !ok {
		utils.WriteMessage(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var input struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Name == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "name is required")
		return
	}

	updates := map[string]any{"name": input.Name}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.WriteServerError(w, "hash password", err)
			return
		}
		updates["password"] = string(hashed)
	}

	if err := db.DB.Model(&User{}).Where("id = ?", sessionUser.ID).Updates(updates).Error; err != nil {
		utils.WriteServerError(w, "update profile", err)
		return
	}

	sessionUser.Name = input.Name
	updated, err := Cookies.Issue(w, sessionUser)
	if err != nil {
		utils.WriteServerError(w, "re-issue session cookie", err)
		return
	}

	message := "profile updated"
	if input.Password != "" {
		// The cookie stays valid, but the original app tells the user to log
		// in again after a password change. Kept for parity.
		message = "profile updated, please log in again"
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"message": message,
		"user":    updated,
	})
}
