package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/database"
	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/services"
	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/utils"
)

// GET /api/admin/cash-balance
func CashBalanceHandler(w http.ResponseWriter, r *http.Request) {
	balance, err := services.PoolBalance(database.DB)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: balance})
}

// GET /api/admin/cash-transactions
func ListCashTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := services.ListCashTransactions(database.DB)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: entries})
}

type CreateCashTransactionRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	Type       string          `json:"type"`
	Source     *string         `json:"source"`
	PlatformID *uint           `json:"platform_id"`
	Date       string          `json:"date"`
}

// POST /api/admin/cash-transactions
func CreateCashTransactionHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateCashTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	in := services.CashTransactionInput{
		Amount:     req.Amount,
		Type:       req.Type,
		Source:     req.Source,
		PlatformID: req.PlatformID,
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid date"})
			return
		}
		in.Date = date
	}

	entry, err := services.CreateCashTransaction(database.DB, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Transaction created", Data: entry})
}

// DELETE /api/admin/cash-transactions/{id}
func DeleteCashTransactionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid id"})
		return
	}
	if err := services.DeleteCashTransaction(database.DB, id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Transaction deleted"})
}
