package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/database"
	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/models"
	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/utils"
)

// GET /api/admin/platforms
func ListPlatformsHandler(w http.ResponseWriter, r *http.Request) {
	var platforms []models.Platform
	if err := database.DB.Order("name ASC").Find(&platforms).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: platforms})
}

type CreatePlatformRequest struct {
	Name    string  `json:"name"`
	Website *string `json:"website"`
}

// POST /api/admin/platforms
func CreatePlatformHandler(w http.ResponseWriter, r *http.Request) {
	var req CreatePlatformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Platform name is required"})
		return
	}

	platform := models.Platform{Name: req.Name, Website: req.Website, Status: "active"}
	if err := database.DB.Create(&platform).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create platform"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Platform created", Data: platform})
}
