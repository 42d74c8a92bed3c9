package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/database"
	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/models"
	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/utils"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/admin/login
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	var admin models.Admin
	err := database.DB.Where("username = ? AND is_active = ?", req.Username, true).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !admin.ValidatePassword(req.Password)) {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid username or password"})
		return
	}
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	token, err := utils.GenerateJWT(admin.ID, admin.Username)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create token"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Logged in",
		Data: map[string]interface{}{
			"token": token,
			"admin": admin,
		},
	})
}

// POST /api/admin/logout
func Logout(w http.ResponseWriter, r *http.Request) {
	authz := r.Header.Get("Authorization")
	tokenString := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	claims, err := utils.ValidateAccessToken(tokenString)
	if err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized: invalid token"})
		return
	}
	if err := utils.RevokeToken(claims); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to revoke token"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Logged out"})
}
