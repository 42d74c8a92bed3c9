package services

import (
	"time"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/models"
)

// GracePeriodDays is the window after a missed due date before an investment
// is considered defaulted.
const GracePeriodDays = 30

// StatusDecision is the outcome of evaluating an investment against its
// cashflows at a point in time.
type StatusDecision struct {
	Status        string
	LateDate      *time.Time
	DefaultedDate *time.Time
}

// DecideStatus derives the lifecycle state of an investment from its
// cashflows. It is pure and idempotent: feeding it the same inputs always
// yields the same decision.
//
// All cashflows received means completed (milestone dates cleared). With no
// overdue unreceived cashflow the investment is active. Otherwise the earliest
// overdue due date drives the decision: past the grace period the investment
// is defaulted with the defaulted date pinned at dueDate+grace, else it is
// late. An already recorded late date is preserved.
func DecideStatus(inv *models.Investment, flows []models.Cashflow, now time.Time) StatusDecision {
	if len(flows) > 0 {
		allReceived := true
		for _, f := range flows {
			if f.Status != models.CashflowStatusReceived {
				allReceived = false
				break
			}
		}
		if allReceived {
			return StatusDecision{Status: models.InvestmentStatusCompleted}
		}
	}

	var earliest *time.Time
	for i := range flows {
		f := flows[i]
		if f.Status == models.CashflowStatusReceived || !f.DueDate.Before(now) {
			continue
		}
		if earliest == nil || f.DueDate.Before(*earliest) {
			earliest = &flows[i].DueDate
		}
	}
	if earliest == nil {
		return StatusDecision{Status: models.InvestmentStatusActive}
	}

	lateDate := inv.LateDate
	if lateDate == nil {
		lateDate = earliest
	}

	daysPastDue := int(now.Sub(*earliest).Hours() / 24)
	if daysPastDue > GracePeriodDays {
		defaulted := earliest.AddDate(0, 0, GracePeriodDays)
		return StatusDecision{
			Status:        models.InvestmentStatusDefaulted,
			LateDate:      lateDate,
			DefaultedDate: &defaulted,
		}
	}

	return StatusDecision{
		Status:   models.InvestmentStatusLate,
		LateDate: lateDate,
	}
}
