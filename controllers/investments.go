package controllers

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/database"
	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/models"
	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/services"
	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/utils"
)

type DistributionPayload struct {
	DueDate string          `json:"due_date"`
	Amount  decimal.Decimal `json:"amount"`
	Kind    string          `json:"kind"`
	Note    *string         `json:"note,omitempty"`
}

func distributionInputs(payloads []DistributionPayload) ([]services.DistributionInput, error) {
	items := make([]services.DistributionInput, 0, len(payloads))
	for _, p := range payloads {
		due, err := parseDate(p.DueDate)
		if err != nil {
			return nil, err
		}
		items = append(items, services.DistributionInput{
			DueDate: due,
			Amount:  p.Amount,
			Kind:    p.Kind,
			Note:    p.Note,
		})
	}
	return items, nil
}

type CreateInvestmentRequest struct {
	PlatformID      uint                  `json:"platform_id"`
	Name            string                `json:"name"`
	FaceValue       decimal.Decimal       `json:"face_value"`
	ExpectedProfit  decimal.Decimal       `json:"expected_profit"`
	StartDate       string                `json:"start_date"`
	EndDate         string                `json:"end_date"`
	Frequency       string                `json:"frequency"`
	ProfitStructure string                `json:"profit_structure"`
	Status          string                `json:"status"`
	FundedFromCash  bool                  `json:"funded_from_cash"`
	RiskScore       int                   `json:"risk_score"`
	Distributions   []DistributionPayload `json:"distributions"`
}

// POST /api/admin/investments
func CreateInvestmentHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid start date"})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid end date"})
		return
	}
	dists, err := distributionInputs(req.Distributions)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid distribution due date"})
		return
	}

	inv, err := services.CreateInvestment(database.DB, services.InvestmentInput{
		PlatformID:      req.PlatformID,
		Name:            strings.TrimSpace(req.Name),
		FaceValue:       req.FaceValue,
		ExpectedProfit:  req.ExpectedProfit,
		StartDate:       start,
		EndDate:         end,
		Frequency:       req.Frequency,
		ProfitStructure: req.ProfitStructure,
		Status:          req.Status,
		FundedFromCash:  req.FundedFromCash,
		RiskScore:       req.RiskScore,
		Distributions:   dists,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Investment created", Data: inv})
}

// GET /api/admin/investments
func ListInvestmentsHandler(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	status := strings.TrimSpace(r.URL.Query().Get("status"))

	db := database.DB
	countQuery := db.Model(&models.Investment{})
	query := db.Preload("Platform").Preload("Distributions")
	if search != "" {
		countQuery = countQuery.Where("name LIKE ?", "%"+search+"%")
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if status != "" {
		countQuery = countQuery.Where("status = ?", status)
		query = query.Where("status = ?", status)
	}

	var totalRows int64
	if err := countQuery.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	var rows []models.Investment
	offset := (page - 1) * limit
	if err := query.Order("investment_no DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: map[string]interface{}{
		"data": rows,
		"pagination": map[string]interface{}{
			"page":        page,
			"limit":       limit,
			"total_rows":  totalRows,
			"total_pages": int(math.Ceil(float64(totalRows) / float64(limit))),
		},
	}})
}

// GET /api/admin/investments/{id}
func GetInvestmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid id"})
		return
	}
	inv, err := services.GetInvestment(database.DB, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	flows, err := services.ListCashflows(database.DB, inv.ID)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: map[string]interface{}{
		"investment": inv,
		"cashflows":  flows,
	}})
}

type UpdateInvestmentRequest struct {
	PlatformID      *uint                  `json:"platform_id"`
	Name            *string                `json:"name"`
	FaceValue       *decimal.Decimal       `json:"face_value"`
	ExpectedProfit  *decimal.Decimal       `json:"expected_profit"`
	StartDate       *string                `json:"start_date"`
	EndDate         *string                `json:"end_date"`
	Frequency       *string                `json:"frequency"`
	ProfitStructure *string                `json:"profit_structure"`
	Status          *string                `json:"status"`
	RiskScore       *int                   `json:"risk_score"`
	Distributions   *[]DistributionPayload `json:"distributions"`
}

// PUT /api/admin/investments/{id}
func UpdateInvestmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid id"})
		return
	}
	var req UpdateInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	startDate, err := parseDatePtr(req.StartDate)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid start date"})
		return
	}
	endDate, err := parseDatePtr(req.EndDate)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid end date"})
		return
	}

	// A present distributions key, even an empty list, replaces the
	// schedule; an absent key leaves it alone.
	patch := services.DistributionsPatch{}
	if req.Distributions != nil {
		items, err := distributionInputs(*req.Distributions)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid distribution due date"})
			return
		}
		patch = services.DistributionsPatch{Provided: true, Items: items}
	}

	inv, err := services.UpdateInvestment(database.DB, id, services.InvestmentUpdate{
		PlatformID:      req.PlatformID,
		Name:            req.Name,
		FaceValue:       req.FaceValue,
		ExpectedProfit:  req.ExpectedProfit,
		StartDate:       startDate,
		EndDate:         endDate,
		Frequency:       req.Frequency,
		ProfitStructure: req.ProfitStructure,
		Status:          req.Status,
		RiskScore:       req.RiskScore,
		Distributions:   patch,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Investment updated", Data: inv})
}

// DELETE /api/admin/investments/{id}
func DeleteInvestmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid id"})
		return
	}
	if err := services.DeleteInvestment(database.DB, id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Investment deleted"})
}

type CompleteInvestmentRequest struct {
	UseDueDates     bool    `json:"use_due_dates"`
	ClearLateStatus bool    `json:"clear_late_status"`
	ExtendLateDays  int     `json:"extend_late_days"`
	ReceivedDate    *string `json:"received_date"`
}

// POST /api/admin/investments/{id}/complete
func CompleteInvestmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid id"})
		return
	}
	var req CompleteInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	receivedDate, err := parseDatePtr(req.ReceivedDate)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid received date"})
		return
	}

	result, err := services.CompleteInvestment(database.DB, id, services.CompletionOptions{
		UseDueDates:     req.UseDueDates,
		ClearLateStatus: req.ClearLateStatus,
		ExtendLateDays:  req.ExtendLateDays,
		ReceivedDate:    receivedDate,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Investment completed", Data: result})
}

// GET /api/admin/investments/estimate
func EstimateProfitHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, err := parseDate(q.Get("start_date"))
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid start date"})
		return
	}
	end, err := parseDate(q.Get("end_date"))
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid end date"})
		return
	}
	profit, err := decimal.NewFromString(q.Get("expected_profit"))
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid expected profit"})
		return
	}

	est, err := services.EstimateProfit(start, end, profit, q.Get("frequency"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: est})
}
