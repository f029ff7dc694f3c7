package directory

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/AbsensiKu/Absensi-Backend/internal/auth"
	"github.com/AbsensiKu/Absensi-Backend/internal/db"
	"github.com/AbsensiKu/Absensi-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var titleCaser = cases.Title(language.Und)

// normalizeName trims, collapses inner whitespace and title-cases a display
// name so the directory stays consistent however HR types it in.
func normalizeName(name string) string {
	return titleCaser.String(strings.Join(strings.Fields(name), " "))
}

func ListHandler(w http.ResponseWriter, r *http.Request) {
	var users []auth.User
	if err := db.DB.Order("id DESC").Find(&users).Error; err != nil {
		utils.WriteServerError(w, "list users", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, users)
}

func CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Name == "" || input.Email == "" || input.Password == "" || input.Role == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "name, email, password and role are required")
		return
	}

	var existing auth.User
	if err := db.DB.First(&existing, "email = ?", input.Email).Error; err == nil {
		utils.WriteMessage(w, http.StatusBadRequest, "email already registered")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteServerError(w, "check existing email", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteServerError(w, "hash password", err)
		return
	}

	user := auth.User{
		Name:           normalizeName(input.Name),
		Email:          input.Email,
		HashedPassword: string(hashed),
		Role:           input.Role,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		utils.WriteServerError(w, "create user", err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "employee created",
		"user":    user,
	})
}

func UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Name == "" || input.Email == "" || input.Role == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "name, email and role are required")
		return
	}

	// Name, email and role are always overwritten; the stored hash is only
	// touched when a new password is supplied.
	updates := map[string]any{
		"name":  normalizeName(input.Name),
		"email": input.Email,
		"role":  input.Role,
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.WriteServerError(w, "hash password", err)
			return
		}
		updates["password"] = string(hashed)
	}

	if err := db.DB.Model(&auth.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		utils.WriteServerError(w, "update user", err)
		return
	}

	utils.WriteMessage(w, http.StatusOK, "employee updated")
}

func DeleteHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := utils.GetSessionUser(r.Context())
	if !ok {
		utils.WriteMessage(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if uint(id) == caller.ID {
		utils.WriteMessage(w, http.StatusBadRequest, "you cannot delete your own account")
		return
	}

	if err := db.DB.Delete(&auth.User{}, id).Error; err != nil {
		utils.WriteServerError(w, "delete user", err)
		return
	}

	utils.WriteMessage(w, http.StatusOK, "employee deleted")
}
