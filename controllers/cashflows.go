package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/database"
	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/services"
	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/utils"
)

// GET /api/admin/cashflows?investment_id=
func ListCashflowsHandler(w http.ResponseWriter, r *http.Request) {
	invID, err := strconv.ParseUint(r.URL.Query().Get("investment_id"), 10, 64)
	if err != nil || invID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "investment_id is required"})
		return
	}
	flows, err := services.ListCashflows(database.DB, uint(invID))
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: flows})
}

type UpdateCashflowRequest struct {
	DueDate      *string          `json:"due_date"`
	Amount       *decimal.Decimal `json:"amount"`
	Kind         *string          `json:"kind"`
	Status       *string          `json:"status"`
	ReceivedDate *string          `json:"received_date"`
}

// PUT /api/admin/cashflows/{id}
func UpdateCashflowHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid id"})
		return
	}
	var req UpdateCashflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	dueDate, err := parseDatePtr(req.DueDate)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid due date"})
		return
	}
	receivedDate, err := parseDatePtr(req.ReceivedDate)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid received date"})
		return
	}

	flow, err := services.UpdateCashflow(database.DB, id, services.CashflowUpdate{
		DueDate:      dueDate,
		Amount:       req.Amount,
		Kind:         req.Kind,
		Status:       req.Status,
		ReceivedDate: receivedDate,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Cashflow updated", Data: flow})
}
