package controllers

import (
	"net/http"
	"os"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/database"
	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/services"
	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/utils"
)

// POST /api/cron/status-sweep
// Runs the same sweep the background sweeper runs, for external schedulers
// and manual kicks.
func StatusSweepHandler(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get("X-CRON-KEY")
	if key == "" || key != os.Getenv("CRON_KEY") {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	sweeper := services.NewSweeper(database.DB)
	result, err := sweeper.RunOnce()
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Sweep failed"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Cron executed", Data: result})
}
